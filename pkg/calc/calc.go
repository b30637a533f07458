// Package calc contains the stateless formulas used by race engineers:
// fuel and stint planning, tire pressure advisory, lap time and race
// simulation, setup balance.
//
// All functions are pure and safe for concurrent use. Units are fixed:
// liters, seconds, minutes (session duration), kg, bar, °C, N/m.
package calc

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument is returned for inputs a formula cannot be evaluated
// with (zero denominators, non-finite values, out of range counts)
var ErrInvalidArgument = errors.New("invalid argument")

// defaults and model coefficients
const (
	DefaultMinimumFuel = 5.0   // liters kept in the tank at the end of a stint
	DefaultTargetTemp  = 85.0  // °C
	PressurePerDegree  = 0.02  // bar per °C deviation from target
	CamberThreshold    = 5.0   // °C inner/outer difference before camber advice
	TargetWindow       = 5.0   // °C around target that counts as on target
	DefaultFuelEffect  = 0.035 // seconds per kg of fuel
	FuelDensity        = 0.75  // kg per liter
	DefaultPitStopTime = 25.0  // seconds
	PitFuelThreshold   = 5.0   // liters, pit when below this before the last lap
	DefaultWearRate    = 1.0
	BalanceThreshold   = 10.0 // percent
	MaxRaceLaps        = 10000
)

type (
	// Settings holds the tunable defaults of the formulas.
	Settings struct {
		MinimumFuel float64
		TargetTemp  float64
		FuelEffect  float64
		PitStopTime float64
	}
	Option func(*Settings)
)

func DefaultSettings() Settings {
	return Settings{
		MinimumFuel: DefaultMinimumFuel,
		TargetTemp:  DefaultTargetTemp,
		FuelEffect:  DefaultFuelEffect,
		PitStopTime: DefaultPitStopTime,
	}
}

func WithMinimumFuel(liters float64) Option {
	return func(s *Settings) {
		s.MinimumFuel = liters
	}
}

func WithTargetTemp(celsius float64) Option {
	return func(s *Settings) {
		s.TargetTemp = celsius
	}
}

func WithFuelEffect(secsPerKg float64) Option {
	return func(s *Settings) {
		s.FuelEffect = secsPerKg
	}
}

func WithPitStopTime(secs float64) Option {
	return func(s *Settings) {
		s.PitStopTime = secs
	}
}

func resolve(opts []Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// round rounds the exact binary value of v to places decimals, ties to even.
// 86.25 becomes 86.2 while 2.675 (stored as 2.67499..) becomes 2.67.
// NaN and Inf are returned unchanged.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return exact(v).RoundBank(places).InexactFloat64()
}

// exact returns the decimal representation of v without loss
func exact(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	m := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(m.Mul(m, five), int32(exp))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
