package model

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
)

type Lap struct {
	ID           int            `db:"id" json:"id"`
	SessionID    int            `db:"session_id" json:"session_id"`
	LapNumber    int            `db:"lap_number" json:"lap_number"`
	LapTime      *string        `db:"lap_time" json:"lap_time"` // M:SS.mmm
	Sector1      *string        `db:"sector1" json:"sector1"`   // SS.mmm
	Sector2      *string        `db:"sector2" json:"sector2"`
	Sector3      *string        `db:"sector3" json:"sector3"`
	Sector4      *string        `db:"sector4" json:"sector4"`
	FuelConsumed *float64       `db:"fuel_consumed" json:"fuel_consumed"`
	TireSet      *string        `db:"tire_set" json:"tire_set"`
	LapStatus    *SessionStatus `db:"lap_status" json:"lap_status"` // nil for a normal lap
	Notes        *string        `db:"notes" json:"notes"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

type LapInput struct {
	LapNumber    *int           `json:"lap_number"`
	LapTime      *string        `json:"lap_time"`
	Sector1      *string        `json:"sector1"`
	Sector2      *string        `json:"sector2"`
	Sector3      *string        `json:"sector3"`
	Sector4      *string        `json:"sector4"`
	FuelConsumed *float64       `json:"fuel_consumed"`
	TireSet      *string        `json:"tire_set"`
	LapStatus    *SessionStatus `json:"lap_status"`
	Notes        *string        `json:"notes"`
}

type LapPatch struct {
	LapNumber    omit.Val[int]               `json:"lap_number"`
	LapTime      omitnull.Val[string]        `json:"lap_time"`
	Sector1      omitnull.Val[string]        `json:"sector1"`
	Sector2      omitnull.Val[string]        `json:"sector2"`
	Sector3      omitnull.Val[string]        `json:"sector3"`
	Sector4      omitnull.Val[string]        `json:"sector4"`
	FuelConsumed omitnull.Val[float64]       `json:"fuel_consumed"`
	TireSet      omitnull.Val[string]        `json:"tire_set"`
	LapStatus    omitnull.Val[SessionStatus] `json:"lap_status"`
	Notes        omitnull.Val[string]        `json:"notes"`
}

func (in *LapInput) Validate() error {
	if in.LapNumber == nil {
		return missingField("lap_number")
	}
	if in.LapStatus != nil && !in.LapStatus.Valid() {
		return invalidValue("lap_status", *in.LapStatus)
	}
	return nil
}

func (in *LapInput) ToLap(sessionID int) *Lap {
	ret := &Lap{
		SessionID:    sessionID,
		LapTime:      in.LapTime,
		Sector1:      in.Sector1,
		Sector2:      in.Sector2,
		Sector3:      in.Sector3,
		Sector4:      in.Sector4,
		FuelConsumed: in.FuelConsumed,
		TireSet:      in.TireSet,
		LapStatus:    in.LapStatus,
		Notes:        in.Notes,
	}
	if in.LapNumber != nil {
		ret.LapNumber = *in.LapNumber
	}
	return ret
}

func (p *LapPatch) Validate() error {
	if v, ok := p.LapStatus.Get(); ok && !v.Valid() {
		return invalidValue("lap_status", v)
	}
	return nil
}

func (p *LapPatch) Apply(l *Lap) {
	apply(&l.LapNumber, p.LapNumber)
	applyNull(&l.LapTime, p.LapTime)
	applyNull(&l.Sector1, p.Sector1)
	applyNull(&l.Sector2, p.Sector2)
	applyNull(&l.Sector3, p.Sector3)
	applyNull(&l.Sector4, p.Sector4)
	applyNull(&l.FuelConsumed, p.FuelConsumed)
	applyNull(&l.TireSet, p.TireSet)
	applyNull(&l.LapStatus, p.LapStatus)
	applyNull(&l.Notes, p.Notes)
}
