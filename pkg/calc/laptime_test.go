//nolint:lll,funlen // readability
package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
)

func TestLapTimeWithFuel(t *testing.T) {
	tests := []struct {
		name   string
		base   float64
		weight float64
		effect float64
		want   float64
	}{
		{name: "no fuel", base: 90, weight: 0, effect: DefaultFuelEffect, want: 90},
		{name: "10kg", base: 90, weight: 10, effect: DefaultFuelEffect, want: 90.35},
		{name: "90kg", base: 90, weight: 90, effect: DefaultFuelEffect, want: 93.15},
		{name: "custom effect", base: 90, weight: 10, effect: 0.1, want: 91},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LapTimeWithFuel(tt.base, tt.weight, tt.effect)
			assert.Assert(t, cmp.DeepEqual(got, tt.want, cmpopts.EquateApprox(0, 1e-9)))
		})
	}
}

func TestTireWear(t *testing.T) {
	tests := []struct {
		name    string
		laps    float64
		life    float64
		rate    float64
		want    float64
		wantErr bool
	}{
		{name: "new tire", laps: 0, life: 40, rate: 1, want: 0},
		{name: "half", laps: 20, life: 40, rate: 1, want: 50},
		{name: "aggressive", laps: 20, life: 40, rate: 1.5, want: 75},
		{name: "clamped", laps: 50, life: 40, rate: 1, want: 100},
		{name: "negative laps propagate", laps: -10, life: 40, rate: 1, want: -25},
		{name: "zero life", laps: 10, life: 0, rate: 1, wantErr: true},
		{name: "negative life", laps: 10, life: -5, rate: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TireWear(tt.laps, tt.life, tt.rate)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestRaceTime(t *testing.T) {
	type args struct {
		laps        int
		base        float64
		fuelPerLap  float64
		initialFuel float64
		opts        []Option
	}
	tests := []struct {
		name    string
		args    args
		want    RaceTimeResult
		wantErr bool
	}{
		{
			name: "single lap never pits",
			args: args{laps: 1, base: 90, fuelPerLap: 0, initialFuel: 0},
			want: RaceTimeResult{TotalTimeSeconds: 90, TotalTimeFormatted: "1:30.000", PitStops: 0, AverageLapTime: 90},
		},
		{
			name: "low fuel pits before last lap",
			args: args{laps: 2, base: 90, fuelPerLap: 0, initialFuel: 0},
			want: RaceTimeResult{TotalTimeSeconds: 205, TotalTimeFormatted: "3:25.000", PitStops: 1, AverageLapTime: 102.5},
		},
		{
			name: "custom pit stop time",
			args: args{laps: 2, base: 90, fuelPerLap: 0, initialFuel: 0, opts: []Option{WithPitStopTime(40)}},
			want: RaceTimeResult{TotalTimeSeconds: 220, TotalTimeFormatted: "3:40.000", PitStops: 1, AverageLapTime: 110},
		},
		{
			name: "fuel effect disabled",
			args: args{laps: 4, base: 60, fuelPerLap: 1, initialFuel: 100, opts: []Option{WithFuelEffect(0)}},
			want: RaceTimeResult{TotalTimeSeconds: 240, TotalTimeFormatted: "4:00.000", PitStops: 0, AverageLapTime: 60},
		},
		{
			name: "total on a tie rounds to even",
			args: args{laps: 1, base: 90.125, fuelPerLap: 0, initialFuel: 0, opts: []Option{WithFuelEffect(0)}},
			want: RaceTimeResult{TotalTimeSeconds: 90.12, TotalTimeFormatted: "1:30.125", PitStops: 0, AverageLapTime: 90.12},
		},
		{
			name:    "zero laps",
			args:    args{laps: 0, base: 90, fuelPerLap: 2, initialFuel: 50},
			wantErr: true,
		},
		{
			name:    "negative laps",
			args:    args{laps: -3, base: 90, fuelPerLap: 2, initialFuel: 50},
			wantErr: true,
		},
		{
			name:    "too many laps",
			args:    args{laps: MaxRaceLaps + 1, base: 90, fuelPerLap: 2, initialFuel: 50},
			wantErr: true,
		},
		{
			name:    "NaN lap time",
			args:    args{laps: 10, base: math.NaN(), fuelPerLap: 2, initialFuel: 50},
			wantErr: true,
		},
		{
			name:    "infinite fuel",
			args:    args{laps: 10, base: 90, fuelPerLap: 2, initialFuel: math.Inf(1)},
			wantErr: true,
		},
		{
			name:    "infinite pit stop time",
			args:    args{laps: 10, base: 90, fuelPerLap: 2, initialFuel: 50, opts: []Option{WithPitStopTime(math.Inf(1))}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RaceTime(tt.args.laps, tt.args.base, tt.args.fuelPerLap,
				tt.args.initialFuel, tt.args.opts...)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			assert.NilError(t, err)
			assert.DeepEqual(t, got, tt.want)
		})
	}
}

func TestRaceTimeStintWithPitStop(t *testing.T) {
	// fuel drops below the threshold after lap 24 of 25
	got, err := RaceTime(25, 92, 2.8, 70)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, RaceTimeResult{
		TotalTimeSeconds:   2350.65,
		TotalTimeFormatted: "39:10.652",
		PitStops:           1,
		AverageLapTime:     94.03,
	})
}

func TestRaceTimeMaxLaps(t *testing.T) {
	got, err := RaceTime(MaxRaceLaps, 90, 0, 0, WithFuelEffect(0), WithPitStopTime(0))
	assert.NilError(t, err)
	assert.Equal(t, got.PitStops, MaxRaceLaps-1)
	assert.Equal(t, got.AverageLapTime, 90.0)
}

func TestRaceTimeIsReproducible(t *testing.T) {
	first, err := RaceTime(120, 101.7, 3.1, 95, WithPitStopTime(31))
	assert.NilError(t, err)
	for range 10 {
		again, err := RaceTime(120, 101.7, 3.1, 95, WithPitStopTime(31))
		assert.NilError(t, err)
		assert.Equal(t, again, first)
	}
}
