package calc

import (
	"fmt"
	"math"
)

// StintStrategy splits a session into stints. The stints sum up to TotalLaps,
// FuelPerStint holds the fuel needed for each stint.
type StintStrategy struct {
	TotalLaps    int       `json:"total_laps"`
	PitStops     int       `json:"pit_stops"`
	LapsPerTank  int       `json:"laps_per_tank"`
	Stints       []int     `json:"stints"`
	FuelPerStint []float64 `json:"fuel_per_stint"`
}

// FuelConsumption returns the fuel needed for laps. Not rounded.
func FuelConsumption(laps, fuelPerLap float64) float64 {
	return laps * fuelPerLap
}

// FuelRemaining may return a negative value which means the car ran out of fuel.
func FuelRemaining(initial, consumed float64) float64 {
	return initial - consumed
}

// CalcStintStrategy splits a session into stints of equal length.
// Non-finite inputs and lap counts beyond int32 are rejected.
// The remainder of the integer division is added to the last stint.
// Options: WithMinimumFuel
//
//nolint:whitespace // editor/linter issue
func CalcStintStrategy(
	sessionMinutes, lapTime, tankCapacity, fuelPerLap float64,
	opts ...Option,
) (StintStrategy, error) {
	s := resolve(opts)
	if !finite(sessionMinutes, lapTime, tankCapacity, fuelPerLap, s.MinimumFuel) {
		return StintStrategy{}, fmt.Errorf("%w: inputs must be finite numbers",
			ErrInvalidArgument)
	}
	if fuelPerLap <= 0 {
		return StintStrategy{}, fmt.Errorf("%w: fuel per lap must be positive (got %v)",
			ErrInvalidArgument, fuelPerLap)
	}
	if lapTime <= 0 {
		return StintStrategy{}, fmt.Errorf("%w: lap time must be positive (got %v)",
			ErrInvalidArgument, lapTime)
	}
	if sessionMinutes < 0 {
		return StintStrategy{}, fmt.Errorf("%w: session duration must not be negative (got %v)",
			ErrInvalidArgument, sessionMinutes)
	}
	laps := math.Floor(sessionMinutes * 60 / lapTime)
	if laps > math.MaxInt32 {
		return StintStrategy{}, fmt.Errorf("%w: session of %v laps is out of range",
			ErrInvalidArgument, laps)
	}
	totalLaps := int(laps)
	usable := tankCapacity - s.MinimumFuel
	perTank := math.Floor(usable / fuelPerLap)
	if perTank > math.MaxInt32 {
		return StintStrategy{}, fmt.Errorf("%w: tank of %v laps is out of range",
			ErrInvalidArgument, perTank)
	}
	lapsPerTank := int(perTank)
	if lapsPerTank < 1 {
		return StintStrategy{}, fmt.Errorf(
			"%w: usable fuel %v does not cover a single lap at %v per lap",
			ErrInvalidArgument, usable, fuelPerLap)
	}

	pitStops := totalLaps / lapsPerTank
	var stints []int
	if pitStops == 0 {
		stints = []int{totalLaps}
	} else {
		base := totalLaps / (pitStops + 1)
		stints = make([]int, pitStops+1)
		for i := range pitStops {
			stints[i] = base
		}
		stints[pitStops] = totalLaps - base*pitStops
	}
	fuel := make([]float64, len(stints))
	for i, laps := range stints {
		fuel[i] = FuelConsumption(float64(laps), fuelPerLap)
	}
	return StintStrategy{
		TotalLaps:    totalLaps,
		PitStops:     pitStops,
		LapsPerTank:  lapsPerTank,
		Stints:       stints,
		FuelPerStint: fuel,
	}, nil
}
