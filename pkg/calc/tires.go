package calc

import (
	"math"

	"github.com/samber/lo"
)

type (
	DistributionRating string
	CamberAdvice       string
)

const (
	DistributionExcellent DistributionRating = "Excellent"
	DistributionGood      DistributionRating = "Good"
	DistributionFair      DistributionRating = "Fair"
	DistributionPoor      DistributionRating = "Poor"
)

const (
	CamberReduceNegative   CamberAdvice = "Reduce negative camber"
	CamberIncreaseNegative CamberAdvice = "Increase negative camber"
	CamberGood             CamberAdvice = "Camber is good"
)

// TireOptimization is the pressure and camber advice for one tire
type TireOptimization struct {
	AverageTemp         float64            `json:"average_temp"`
	TempRange           float64            `json:"temp_range"`
	CurrentPressure     float64            `json:"current_pressure"`
	RecommendedPressure float64            `json:"recommended_pressure"`
	PressureChange      float64            `json:"pressure_change"`
	DistributionRating  DistributionRating `json:"distribution_rating"`
	CamberAdvice        CamberAdvice       `json:"camber_advice"`
	WithinTarget        bool               `json:"within_target"`
}

// OptimizeTirePressure derives a pressure recommendation from the
// inner/middle/outer temperatures of one tire.
// A tire running hotter than target gets less pressure.
// Options: WithTargetTemp
//
//nolint:whitespace // editor/linter issue
func OptimizeTirePressure(
	inner, middle, outer, currentPressure float64,
	opts ...Option,
) TireOptimization {
	s := resolve(opts)
	temps := []float64{inner, middle, outer}
	avg := lo.Mean(temps)
	spread := lo.Max(temps) - lo.Min(temps)
	adjustment := (avg - s.TargetTemp) * PressurePerDegree

	return TireOptimization{
		AverageTemp:         round(avg, 1),
		TempRange:           round(spread, 1),
		CurrentPressure:     currentPressure,
		RecommendedPressure: round(currentPressure-adjustment, 2),
		PressureChange:      round(adjustment, 2),
		DistributionRating:  rateDistribution(spread),
		CamberAdvice:        adviseCamber(inner, outer),
		WithinTarget:        math.Abs(avg-s.TargetTemp) < TargetWindow,
	}
}

func rateDistribution(spread float64) DistributionRating {
	switch {
	case spread < 5:
		return DistributionExcellent
	case spread < 10:
		return DistributionGood
	case spread < 15:
		return DistributionFair
	default:
		return DistributionPoor
	}
}

func adviseCamber(inner, outer float64) CamberAdvice {
	switch {
	case inner > outer+CamberThreshold:
		return CamberReduceNegative
	case outer > inner+CamberThreshold:
		return CamberIncreaseNegative
	default:
		return CamberGood
	}
}
