// Package basedata provides sample records for tests
package basedata

import (
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-04-28T11:10:12Z")
	return t
}

func SampleEvent() *model.RaceEvent {
	return &model.RaceEvent{
		Name:        "testevent",
		Track:       "testtrack",
		TrackLength: lo.ToPtr(5.891),
		DateStart:   TestTime(),
		DateEnd:     TestTime().Add(24 * time.Hour),
		Weather:     lo.ToPtr("dry"),
	}
}

func SampleSession(eventID int) *model.Session {
	return &model.Session{
		EventID:       eventID,
		SessionType:   model.SessionTypeRace1,
		SessionNumber: 1,
		Duration:      lo.ToPtr(60),
		FuelStart:     lo.ToPtr(100.0),
		FuelPerLap:    lo.ToPtr(2.5),
		TireSet:       lo.ToPtr("set1"),
	}
}

// SampleLaps returns laps 1..n with 1:30.000 as lap time
func SampleLaps(sessionID, n int) []*model.Lap {
	return lo.Times(n, func(i int) *model.Lap {
		return &model.Lap{
			SessionID:    sessionID,
			LapNumber:    i + 1,
			LapTime:      lo.ToPtr("1:30.000"),
			FuelConsumed: lo.ToPtr(2.5),
		}
	})
}

func SampleTire(sessionID int, pos model.TirePosition) *model.TireData {
	return &model.TireData{
		SessionID:    sessionID,
		TirePosition: pos,
		PressureHot:  lo.ToPtr(2.1),
		TempInner:    lo.ToPtr(92.0),
		TempMiddle:   lo.ToPtr(85.0),
		TempOuter:    lo.ToPtr(83.6),
	}
}

func SampleSetup(sessionID int) *model.SetupData {
	return &model.SetupData{
		SessionID:       sessionID,
		FrontWing:       lo.ToPtr(4.0),
		RearWing:        lo.ToPtr(6.0),
		FrontSpringRate: lo.ToPtr(120000.0),
		RearSpringRate:  lo.ToPtr(100000.0),
	}
}
