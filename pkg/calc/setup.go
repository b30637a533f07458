package calc

import (
	"fmt"
)

type Tendency string

const (
	TendencyOversteer  Tendency = "oversteer"
	TendencyUndersteer Tendency = "understeer"
	TendencyNeutral    Tendency = "neutral"
)

// display labels
const (
	AeroOversteer        = "Oversteer (rear-biased aero)"
	AeroUndersteer       = "Understeer (front-biased aero)"
	AeroNeutral          = "Neutral aero balance"
	MechanicalOversteer  = "Oversteer (rear-biased springs)"
	MechanicalUndersteer = "Understeer (front-biased springs)"
	MechanicalNeutral    = "Neutral mechanical balance"
)

// SetupBalance holds the front/rear balance in percent (positive: rear
// biased) along with the display label and tendency of each pair.
type SetupBalance struct {
	WingBalancePercent   float64  `json:"wing_balance_percent"`
	SpringBalancePercent float64  `json:"spring_balance_percent"`
	AeroTendency         string   `json:"aero_tendency"`
	MechanicalTendency   string   `json:"mechanical_tendency"`
	Aero                 Tendency `json:"aero"`
	Mechanical           Tendency `json:"mechanical"`
}

// CalcSetupBalance compares front and rear wing and spring settings.
// A positive balance means the rear is stronger.
//
//nolint:whitespace // editor/linter issue
func CalcSetupBalance(
	frontWing, rearWing, frontSpring, rearSpring float64,
) (SetupBalance, error) {
	wing, err := balance("wing", frontWing, rearWing)
	if err != nil {
		return SetupBalance{}, err
	}
	spring, err := balance("spring", frontSpring, rearSpring)
	if err != nil {
		return SetupBalance{}, err
	}
	ret := SetupBalance{
		WingBalancePercent:   round(wing, 1),
		SpringBalancePercent: round(spring, 1),
		Aero:                 classify(wing),
		Mechanical:           classify(spring),
	}
	ret.AeroTendency = map[Tendency]string{
		TendencyOversteer:  AeroOversteer,
		TendencyUndersteer: AeroUndersteer,
		TendencyNeutral:    AeroNeutral,
	}[ret.Aero]
	ret.MechanicalTendency = map[Tendency]string{
		TendencyOversteer:  MechanicalOversteer,
		TendencyUndersteer: MechanicalUndersteer,
		TendencyNeutral:    MechanicalNeutral,
	}[ret.Mechanical]
	return ret, nil
}

func balance(pair string, front, rear float64) (float64, error) {
	denom := max(front, rear)
	if denom == 0 {
		return 0, fmt.Errorf("%w: %s values must not both be zero",
			ErrInvalidArgument, pair)
	}
	return (rear - front) / denom * 100, nil
}

func classify(pct float64) Tendency {
	switch {
	case pct > BalanceThreshold:
		return TendencyOversteer
	case pct < -BalanceThreshold:
		return TendencyUndersteer
	default:
		return TendencyNeutral
	}
}
