//nolint:lll,funlen // readability
package calc

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestOptimizeTirePressure(t *testing.T) {
	type args struct {
		inner, middle, outer float64
		pressure             float64
		opts                 []Option
	}
	tests := []struct {
		name string
		args args
		want TireOptimization
	}{
		{
			name: "inner hot",
			args: args{inner: 90.5, middle: 88.2, outer: 82.1, pressure: 2.1},
			want: TireOptimization{
				AverageTemp: 86.9, TempRange: 8.4, CurrentPressure: 2.1,
				RecommendedPressure: 2.06, PressureChange: 0.04,
				DistributionRating: DistributionGood, CamberAdvice: CamberReduceNegative, WithinTarget: true,
			},
		},
		{
			name: "cold and even",
			args: args{inner: 80, middle: 80, outer: 80, pressure: 2.0},
			want: TireOptimization{
				AverageTemp: 80, TempRange: 0, CurrentPressure: 2.0,
				RecommendedPressure: 2.1, PressureChange: -0.1,
				DistributionRating: DistributionExcellent, CamberAdvice: CamberGood, WithinTarget: false,
			},
		},
		{
			name: "custom target",
			args: args{inner: 80, middle: 80, outer: 80, pressure: 2.0, opts: []Option{WithTargetTemp(80)}},
			want: TireOptimization{
				AverageTemp: 80, TempRange: 0, CurrentPressure: 2.0,
				RecommendedPressure: 2.0, PressureChange: 0,
				DistributionRating: DistributionExcellent, CamberAdvice: CamberGood, WithinTarget: true,
			},
		},
		{
			name: "outer hot",
			args: args{inner: 80, middle: 85, outer: 90, pressure: 2.0},
			want: TireOptimization{
				AverageTemp: 85, TempRange: 10, CurrentPressure: 2.0,
				RecommendedPressure: 2.0, PressureChange: 0,
				DistributionRating: DistributionFair, CamberAdvice: CamberIncreaseNegative, WithinTarget: true,
			},
		},
		{
			name: "camber threshold is exclusive",
			args: args{inner: 90, middle: 88, outer: 85, pressure: 2.0},
			want: TireOptimization{
				AverageTemp: 87.7, TempRange: 5, CurrentPressure: 2.0,
				RecommendedPressure: 1.95, PressureChange: 0.05,
				DistributionRating: DistributionGood, CamberAdvice: CamberGood, WithinTarget: true,
			},
		},
		{
			name: "average on a tie rounds to even",
			args: args{inner: 86.25, middle: 86.25, outer: 86.25, pressure: 2.0},
			want: TireOptimization{
				AverageTemp: 86.2, TempRange: 0, CurrentPressure: 2.0,
				RecommendedPressure: 1.98, PressureChange: 0.03,
				DistributionRating: DistributionExcellent, CamberAdvice: CamberGood, WithinTarget: true,
			},
		},
		{
			name: "adjustment on a tie rounds to even",
			args: args{inner: 91.25, middle: 91.25, outer: 91.25, pressure: 2.0},
			want: TireOptimization{
				AverageTemp: 91.2, TempRange: 0, CurrentPressure: 2.0,
				RecommendedPressure: 1.88, PressureChange: 0.12,
				DistributionRating: DistributionExcellent, CamberAdvice: CamberGood, WithinTarget: false,
			},
		},
		{
			name: "poor distribution",
			args: args{inner: 70, middle: 85, outer: 100, pressure: 2.0},
			want: TireOptimization{
				AverageTemp: 85, TempRange: 30, CurrentPressure: 2.0,
				RecommendedPressure: 2.0, PressureChange: 0,
				DistributionRating: DistributionPoor, CamberAdvice: CamberIncreaseNegative, WithinTarget: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptimizeTirePressure(tt.args.inner, tt.args.middle, tt.args.outer,
				tt.args.pressure, tt.args.opts...)
			assert.DeepEqual(t, got, tt.want)
		})
	}
}

func Test_rateDistribution(t *testing.T) {
	tests := []struct {
		spread float64
		want   DistributionRating
	}{
		{0, DistributionExcellent},
		{4.99, DistributionExcellent},
		{5, DistributionGood},
		{9.99, DistributionGood},
		{10, DistributionFair},
		{14.99, DistributionFair},
		{15, DistributionPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, rateDistribution(tt.spread), tt.want, "spread %v", tt.spread)
	}
}
