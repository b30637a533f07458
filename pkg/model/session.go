package model

import (
	"slices"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
)

type (
	SessionType   string
	SessionStatus string
)

const (
	SessionTypeTest      SessionType = "Test"
	SessionTypeFP1       SessionType = "FP1"
	SessionTypeFP2       SessionType = "FP2"
	SessionTypeFP3       SessionType = "FP3"
	SessionTypeQualify   SessionType = "Q"
	SessionTypeRace1     SessionType = "R1"
	SessionTypeRace2     SessionType = "R2"
	SessionTypeEndurance SessionType = "Endurance"
)

// track status flags used for sessions and laps
const (
	StatusRaceFlag         SessionStatus = "RF"
	StatusFullCourseYellow SessionStatus = "FCY"
	StatusSafetyCar        SessionStatus = "SC"
	StatusTrackFullCourse  SessionStatus = "TFC"
)

var (
	sessionTypes = []SessionType{
		SessionTypeTest, SessionTypeFP1, SessionTypeFP2, SessionTypeFP3,
		SessionTypeQualify, SessionTypeRace1, SessionTypeRace2, SessionTypeEndurance,
	}
	statusValues = []SessionStatus{
		StatusRaceFlag, StatusFullCourseYellow, StatusSafetyCar, StatusTrackFullCourse,
	}
)

func (t SessionType) Valid() bool   { return slices.Contains(sessionTypes, t) }
func (s SessionStatus) Valid() bool { return slices.Contains(statusValues, s) }

type Session struct {
	ID            int            `db:"id" json:"id"`
	EventID       int            `db:"event_id" json:"event_id"`
	SessionType   SessionType    `db:"session_type" json:"session_type"`
	SessionNumber int            `db:"session_number" json:"session_number"`
	Duration      *int           `db:"duration" json:"duration"` // minutes
	FuelStart     *float64       `db:"fuel_start" json:"fuel_start"`
	FuelPerLap    *float64       `db:"fuel_per_lap" json:"fuel_per_lap"`
	FuelConsumed  *float64       `db:"fuel_consumed" json:"fuel_consumed"`
	TireSet       *string        `db:"tire_set" json:"tire_set"`
	BestLapTime   *string        `db:"best_lap_time" json:"best_lap_time"` // M:SS.mmm
	SessionStatus *SessionStatus `db:"session_status" json:"session_status"`
	Notes         *string        `db:"notes" json:"notes"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// SessionInput is used to create a session. If SessionNumber is nil the
// next free number for the session type within the event is used.
type SessionInput struct {
	SessionType   SessionType    `json:"session_type"`
	SessionNumber *int           `json:"session_number"`
	Duration      *int           `json:"duration"`
	FuelStart     *float64       `json:"fuel_start"`
	FuelPerLap    *float64       `json:"fuel_per_lap"`
	FuelConsumed  *float64       `json:"fuel_consumed"`
	TireSet       *string        `json:"tire_set"`
	BestLapTime   *string        `json:"best_lap_time"`
	SessionStatus *SessionStatus `json:"session_status"`
	Notes         *string        `json:"notes"`
}

type SessionPatch struct {
	SessionType   omit.Val[SessionType]       `json:"session_type"`
	SessionNumber omit.Val[int]               `json:"session_number"`
	Duration      omitnull.Val[int]           `json:"duration"`
	FuelStart     omitnull.Val[float64]       `json:"fuel_start"`
	FuelPerLap    omitnull.Val[float64]       `json:"fuel_per_lap"`
	FuelConsumed  omitnull.Val[float64]       `json:"fuel_consumed"`
	TireSet       omitnull.Val[string]        `json:"tire_set"`
	BestLapTime   omitnull.Val[string]        `json:"best_lap_time"`
	SessionStatus omitnull.Val[SessionStatus] `json:"session_status"`
	Notes         omitnull.Val[string]        `json:"notes"`
}

func (in *SessionInput) Validate() error {
	if in.SessionType == "" {
		return missingField("session_type")
	}
	if !in.SessionType.Valid() {
		return invalidValue("session_type", in.SessionType)
	}
	if in.SessionStatus != nil && !in.SessionStatus.Valid() {
		return invalidValue("session_status", *in.SessionStatus)
	}
	if in.SessionNumber != nil && *in.SessionNumber < 1 {
		return invalidValue("session_number", *in.SessionNumber)
	}
	return nil
}

func (in *SessionInput) ToSession(eventID int) *Session {
	ret := &Session{
		EventID:       eventID,
		SessionType:   in.SessionType,
		Duration:      in.Duration,
		FuelStart:     in.FuelStart,
		FuelPerLap:    in.FuelPerLap,
		FuelConsumed:  in.FuelConsumed,
		TireSet:       in.TireSet,
		BestLapTime:   in.BestLapTime,
		SessionStatus: in.SessionStatus,
		Notes:         in.Notes,
	}
	if in.SessionNumber != nil {
		ret.SessionNumber = *in.SessionNumber
	}
	return ret
}

func (p *SessionPatch) Validate() error {
	if v, ok := p.SessionType.Get(); ok && !v.Valid() {
		return invalidValue("session_type", v)
	}
	if v, ok := p.SessionStatus.Get(); ok && !v.Valid() {
		return invalidValue("session_status", v)
	}
	if v, ok := p.SessionNumber.Get(); ok && v < 1 {
		return invalidValue("session_number", v)
	}
	return nil
}

func (p *SessionPatch) Apply(s *Session) {
	apply(&s.SessionType, p.SessionType)
	apply(&s.SessionNumber, p.SessionNumber)
	applyNull(&s.Duration, p.Duration)
	applyNull(&s.FuelStart, p.FuelStart)
	applyNull(&s.FuelPerLap, p.FuelPerLap)
	applyNull(&s.FuelConsumed, p.FuelConsumed)
	applyNull(&s.TireSet, p.TireSet)
	applyNull(&s.BestLapTime, p.BestLapTime)
	applyNull(&s.SessionStatus, p.SessionStatus)
	applyNull(&s.Notes, p.Notes)
}

// NextSessionNumber returns the number for a new session of type t,
// which is the highest existing number of that type plus one.
func NextSessionNumber(sessions []*Session, t SessionType) int {
	ret := 0
	for _, s := range sessions {
		if s.SessionType == t && s.SessionNumber > ret {
			ret = s.SessionNumber
		}
	}
	return ret + 1
}
