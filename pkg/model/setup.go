package model

import "time"

// SetupData is a snapshot of the car setup used in a session.
// Spring rates in N/m, ride heights in mm, camber and toe in degrees.
//
//nolint:lll // readability
type SetupData struct {
	ID                     int       `db:"id" json:"id"`
	SessionID              int       `db:"session_id" json:"session_id"`
	FrontWing              *float64  `db:"front_wing" json:"front_wing"`
	RearWing               *float64  `db:"rear_wing" json:"rear_wing"`
	FrontRideHeight        *float64  `db:"front_ride_height" json:"front_ride_height"`
	RearRideHeight         *float64  `db:"rear_ride_height" json:"rear_ride_height"`
	FrontSpringRate        *float64  `db:"front_spring_rate" json:"front_spring_rate"`
	RearSpringRate         *float64  `db:"rear_spring_rate" json:"rear_spring_rate"`
	FrontDamperCompression *float64  `db:"front_damper_compression" json:"front_damper_compression"`
	RearDamperCompression  *float64  `db:"rear_damper_compression" json:"rear_damper_compression"`
	FrontDamperRebound     *float64  `db:"front_damper_rebound" json:"front_damper_rebound"`
	RearDamperRebound      *float64  `db:"rear_damper_rebound" json:"rear_damper_rebound"`
	FrontAntiRollBar       *float64  `db:"front_anti_roll_bar" json:"front_anti_roll_bar"`
	RearAntiRollBar        *float64  `db:"rear_anti_roll_bar" json:"rear_anti_roll_bar"`
	CamberFrontLeft        *float64  `db:"camber_front_left" json:"camber_front_left"`
	CamberFrontRight       *float64  `db:"camber_front_right" json:"camber_front_right"`
	CamberRearLeft         *float64  `db:"camber_rear_left" json:"camber_rear_left"`
	CamberRearRight        *float64  `db:"camber_rear_right" json:"camber_rear_right"`
	ToeFront               *float64  `db:"toe_front" json:"toe_front"`
	ToeRear                *float64  `db:"toe_rear" json:"toe_rear"`
	BrakeBalance           *float64  `db:"brake_balance" json:"brake_balance"` // percent front
	Notes                  *string   `db:"notes" json:"notes"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// SetupDataInput uses the same fields as SetupData, id and timestamps are ignored
type SetupDataInput SetupData

func (in *SetupDataInput) ToSetupData(sessionID int) *SetupData {
	ret := SetupData(*in)
	ret.ID = 0
	ret.SessionID = sessionID
	ret.CreatedAt = time.Time{}
	return &ret
}

func (in *SetupDataInput) Validate() error {
	if in.BrakeBalance != nil && (*in.BrakeBalance < 0 || *in.BrakeBalance > 100) {
		return invalidValue("brake_balance", *in.BrakeBalance)
	}
	return nil
}
