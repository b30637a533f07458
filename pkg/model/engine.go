package model

import "time"

type EngineData struct {
	ID                  int       `db:"id" json:"id"`
	SessionID           int       `db:"session_id" json:"session_id"`
	EngineMap           *string   `db:"engine_map" json:"engine_map"`
	RpmLimit            *int      `db:"rpm_limit" json:"rpm_limit"`
	OilTemp             *float64  `db:"oil_temp" json:"oil_temp"`
	WaterTemp           *float64  `db:"water_temp" json:"water_temp"`
	FuelConsumptionRate *float64  `db:"fuel_consumption_rate" json:"fuel_consumption_rate"` // liters per lap
	Notes               *string   `db:"notes" json:"notes"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

type EngineDataInput struct {
	EngineMap           *string  `json:"engine_map"`
	RpmLimit            *int     `json:"rpm_limit"`
	OilTemp             *float64 `json:"oil_temp"`
	WaterTemp           *float64 `json:"water_temp"`
	FuelConsumptionRate *float64 `json:"fuel_consumption_rate"`
	Notes               *string  `json:"notes"`
}

func (in *EngineDataInput) Validate() error {
	if in.RpmLimit != nil && *in.RpmLimit < 0 {
		return invalidValue("rpm_limit", *in.RpmLimit)
	}
	if in.FuelConsumptionRate != nil && *in.FuelConsumptionRate < 0 {
		return invalidValue("fuel_consumption_rate", *in.FuelConsumptionRate)
	}
	return nil
}

func (in *EngineDataInput) ToEngineData(sessionID int) *EngineData {
	return &EngineData{
		SessionID:           sessionID,
		EngineMap:           in.EngineMap,
		RpmLimit:            in.RpmLimit,
		OilTemp:             in.OilTemp,
		WaterTemp:           in.WaterTemp,
		FuelConsumptionRate: in.FuelConsumptionRate,
		Notes:               in.Notes,
	}
}
