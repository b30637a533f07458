package model

import (
	"slices"
	"time"
)

type TirePosition string

const (
	TireFrontLeft  TirePosition = "FL"
	TireFrontRight TirePosition = "FR"
	TireRearLeft   TirePosition = "RL"
	TireRearRight  TirePosition = "RR"
)

func (p TirePosition) Valid() bool {
	return slices.Contains(
		[]TirePosition{TireFrontLeft, TireFrontRight, TireRearLeft, TireRearRight}, p)
}

// TireData holds pressures (bar) and temperatures (°C) of a single tire
type TireData struct {
	ID           int          `db:"id" json:"id"`
	SessionID    int          `db:"session_id" json:"session_id"`
	TirePosition TirePosition `db:"tire_position" json:"tire_position"`
	TireSet      *string      `db:"tire_set" json:"tire_set"`
	PressureCold *float64     `db:"pressure_cold" json:"pressure_cold"`
	PressureHot  *float64     `db:"pressure_hot" json:"pressure_hot"`
	TempInner    *float64     `db:"temp_inner" json:"temp_inner"`
	TempMiddle   *float64     `db:"temp_middle" json:"temp_middle"`
	TempOuter    *float64     `db:"temp_outer" json:"temp_outer"`
	WearLevel    *float64     `db:"wear_level" json:"wear_level"` // percent
	Notes        *string      `db:"notes" json:"notes"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

type TireDataInput struct {
	TirePosition TirePosition `json:"tire_position"`
	TireSet      *string      `json:"tire_set"`
	PressureCold *float64     `json:"pressure_cold"`
	PressureHot  *float64     `json:"pressure_hot"`
	TempInner    *float64     `json:"temp_inner"`
	TempMiddle   *float64     `json:"temp_middle"`
	TempOuter    *float64     `json:"temp_outer"`
	WearLevel    *float64     `json:"wear_level"`
	Notes        *string      `json:"notes"`
}

func (in *TireDataInput) Validate() error {
	if in.TirePosition == "" {
		return missingField("tire_position")
	}
	if !in.TirePosition.Valid() {
		return invalidValue("tire_position", in.TirePosition)
	}
	return nil
}

func (in *TireDataInput) ToTireData(sessionID int) *TireData {
	return &TireData{
		SessionID:    sessionID,
		TirePosition: in.TirePosition,
		TireSet:      in.TireSet,
		PressureCold: in.PressureCold,
		PressureHot:  in.PressureHot,
		TempInner:    in.TempInner,
		TempMiddle:   in.TempMiddle,
		TempOuter:    in.TempOuter,
		WearLevel:    in.WearLevel,
		Notes:        in.Notes,
	}
}
