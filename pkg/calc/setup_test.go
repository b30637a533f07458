//nolint:lll // readability
package calc

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCalcSetupBalance(t *testing.T) {
	type args struct {
		frontWing, rearWing, frontSpring, rearSpring float64
	}
	tests := []struct {
		name    string
		args    args
		want    SetupBalance
		wantErr bool
	}{
		{
			name: "neutral",
			args: args{frontWing: 5, rearWing: 5, frontSpring: 100, rearSpring: 100},
			want: SetupBalance{
				WingBalancePercent: 0, SpringBalancePercent: 0,
				AeroTendency: AeroNeutral, MechanicalTendency: MechanicalNeutral,
				Aero: TendencyNeutral, Mechanical: TendencyNeutral,
			},
		},
		{
			name: "rear wing, front springs",
			args: args{frontWing: 5, rearWing: 8, frontSpring: 120, rearSpring: 100},
			want: SetupBalance{
				WingBalancePercent: 37.5, SpringBalancePercent: -16.7,
				AeroTendency: AeroOversteer, MechanicalTendency: MechanicalUndersteer,
				Aero: TendencyOversteer, Mechanical: TendencyUndersteer,
			},
		},
		{
			name: "front wing, rear springs",
			args: args{frontWing: 8, rearWing: 5, frontSpring: 100, rearSpring: 150},
			want: SetupBalance{
				WingBalancePercent: -37.5, SpringBalancePercent: 33.3,
				AeroTendency: AeroUndersteer, MechanicalTendency: MechanicalOversteer,
				Aero: TendencyUndersteer, Mechanical: TendencyOversteer,
			},
		},
		{
			name: "small difference stays neutral",
			args: args{frontWing: 19, rearWing: 20, frontSpring: 95, rearSpring: 100},
			want: SetupBalance{
				WingBalancePercent: 5, SpringBalancePercent: 5,
				AeroTendency: AeroNeutral, MechanicalTendency: MechanicalNeutral,
				Aero: TendencyNeutral, Mechanical: TendencyNeutral,
			},
		},
		{name: "zero wings", args: args{frontWing: 0, rearWing: 0, frontSpring: 100, rearSpring: 100}, wantErr: true},
		{name: "zero springs", args: args{frontWing: 5, rearWing: 5, frontSpring: 0, rearSpring: 0}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalcSetupBalance(tt.args.frontWing, tt.args.rearWing,
				tt.args.frontSpring, tt.args.rearSpring)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			assert.NilError(t, err)
			assert.DeepEqual(t, got, tt.want)
		})
	}
}

func TestCalcSetupBalanceNamesPair(t *testing.T) {
	_, err := CalcSetupBalance(0, 0, 100, 100)
	assert.ErrorContains(t, err, "wing")
	_, err = CalcSetupBalance(5, 5, 0, 0)
	assert.ErrorContains(t, err, "spring")
}
