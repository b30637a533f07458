package calc

import (
	"fmt"
)

// RaceTimeResult is the outcome of a race simulation. Seconds are rounded
// to 2 decimals, the formatted time uses the unrounded total.
type RaceTimeResult struct {
	TotalTimeSeconds   float64 `json:"total_time_seconds"`
	TotalTimeFormatted string  `json:"total_time_formatted"`
	PitStops           int     `json:"pit_stops"`
	AverageLapTime     float64 `json:"average_lap_time"`
}

// LapTimeWithFuel adds the weight penalty of the carried fuel to baseLapTime.
// Use DefaultFuelEffect if there is no car specific value.
func LapTimeWithFuel(baseLapTime, fuelWeightKg, fuelEffect float64) float64 {
	return baseLapTime + fuelWeightKg*fuelEffect
}

// TireWear returns the tire wear in percent, capped at 100.
// Negative laps are not validated and yield a negative wear.
func TireWear(lapsOnTire, tireLifeLaps, wearRate float64) (float64, error) {
	if tireLifeLaps <= 0 {
		return 0, fmt.Errorf("%w: tire life must be positive (got %v)",
			ErrInvalidArgument, tireLifeLaps)
	}
	return min(100, lapsOnTire/tireLifeLaps*100*wearRate), nil
}

// RaceTime simulates a race lap by lap.
// After each lap the fuel is reduced. If the fuel drops below PitFuelThreshold
// the car pits (except after the last lap) and is refueled to initialFuel.
// Options: WithFuelEffect, WithPitStopTime
//
//nolint:whitespace // editor/linter issue
func RaceTime(
	laps int,
	baseLapTime, fuelPerLap, initialFuel float64,
	opts ...Option,
) (RaceTimeResult, error) {
	if laps <= 0 || laps > MaxRaceLaps {
		return RaceTimeResult{}, fmt.Errorf("%w: laps must be within 1..%d (got %d)",
			ErrInvalidArgument, MaxRaceLaps, laps)
	}
	s := resolve(opts)
	if !finite(baseLapTime, fuelPerLap, initialFuel, s.FuelEffect, s.PitStopTime) {
		return RaceTimeResult{}, fmt.Errorf("%w: inputs must be finite numbers",
			ErrInvalidArgument)
	}
	curFuel := initialFuel
	total := 0.0
	pitStops := 0
	for lap := range laps {
		total += LapTimeWithFuel(baseLapTime, curFuel*FuelDensity, s.FuelEffect)
		curFuel -= fuelPerLap
		if curFuel < PitFuelThreshold && lap < laps-1 {
			total += s.PitStopTime
			curFuel = initialFuel
			pitStops++
		}
	}
	return RaceTimeResult{
		TotalTimeSeconds:   round(total, 2),
		TotalTimeFormatted: FormatTime(total),
		PitStops:           pitStops,
		AverageLapTime:     round(total/float64(laps), 2),
	}, nil
}
