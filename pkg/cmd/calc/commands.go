//nolint:funlen // flag definitions
package calc

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-engineer-service-go/pkg/calc"
)

func newStintsCmd() *cobra.Command {
	var minutes, lapTime, tank, fpl, minFuel float64
	cmd := &cobra.Command{
		Use:   "stints",
		Short: "splits a session into stints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := calc.CalcStintStrategy(minutes, lapTime, tank, fpl,
				calc.WithMinimumFuel(minFuel))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), ret, []row{
				{"total laps", ret.TotalLaps},
				{"laps per tank", ret.LapsPerTank},
				{"pit stops", ret.PitStops},
				{"stints", joinInts(ret.Stints)},
				{"fuel per stint", joinFloats(ret.FuelPerStint)},
			})
		},
	}
	cmd.Flags().Float64Var(&minutes, "minutes", 0, "session duration in minutes")
	cmd.Flags().Float64Var(&lapTime, "lap-time", 0, "lap time in seconds")
	cmd.Flags().Float64Var(&tank, "tank", 0, "tank capacity in liters")
	cmd.Flags().Float64Var(&fpl, "fuel-per-lap", 0, "fuel per lap in liters")
	cmd.Flags().Float64Var(&minFuel, "minimum-fuel", calc.DefaultMinimumFuel,
		"liters kept in the tank at the end of a stint")
	markRequired(cmd, "minutes", "lap-time", "tank", "fuel-per-lap")
	return cmd
}

func newTiresCmd() *cobra.Command {
	var inner, middle, outer, pressure, target float64
	cmd := &cobra.Command{
		Use:   "tires",
		Short: "recommends a tire pressure from the tire temperatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ret := calc.OptimizeTirePressure(inner, middle, outer, pressure,
				calc.WithTargetTemp(target))
			return render(cmd.OutOrStdout(), ret, []row{
				{"average temp", ret.AverageTemp},
				{"temp range", ret.TempRange},
				{"current pressure", ret.CurrentPressure},
				{"recommended pressure", ret.RecommendedPressure},
				{"pressure change", ret.PressureChange},
				{"distribution", ret.DistributionRating},
				{"camber", ret.CamberAdvice},
				{"within target", ret.WithinTarget},
			})
		},
	}
	cmd.Flags().Float64Var(&inner, "inner", 0, "inner temperature in °C")
	cmd.Flags().Float64Var(&middle, "middle", 0, "middle temperature in °C")
	cmd.Flags().Float64Var(&outer, "outer", 0, "outer temperature in °C")
	cmd.Flags().Float64Var(&pressure, "pressure", 0, "current pressure in bar")
	cmd.Flags().Float64Var(&target, "target-temp", calc.DefaultTargetTemp,
		"target temperature in °C")
	markRequired(cmd, "inner", "middle", "outer", "pressure")
	return cmd
}

func newLapTimeCmd() *cobra.Command {
	var base, fuelKg, effect float64
	cmd := &cobra.Command{
		Use:   "laptime",
		Short: "computes the lap time including the fuel weight penalty",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := calc.LapTimeWithFuel(base, fuelKg, effect)
			return render(cmd.OutOrStdout(),
				map[string]any{"lap_time": v, "lap_time_formatted": calc.FormatTime(v)},
				[]row{
					{"lap time", v},
					{"formatted", calc.FormatTime(v)},
				})
		},
	}
	cmd.Flags().Float64Var(&base, "base", 0, "base lap time in seconds")
	cmd.Flags().Float64Var(&fuelKg, "fuel-kg", 0, "fuel weight in kg")
	cmd.Flags().Float64Var(&effect, "fuel-effect", calc.DefaultFuelEffect,
		"seconds per kg of fuel")
	markRequired(cmd, "base", "fuel-kg")
	return cmd
}

func newTireWearCmd() *cobra.Command {
	var laps, life, rate float64
	cmd := &cobra.Command{
		Use:   "tirewear",
		Short: "computes the tire wear in percent",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := calc.TireWear(laps, life, rate)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), map[string]any{"wear_percent": v},
				[]row{{"wear %", v}})
		},
	}
	cmd.Flags().Float64Var(&laps, "laps", 0, "laps driven on the tire")
	cmd.Flags().Float64Var(&life, "life", 0, "expected tire life in laps")
	cmd.Flags().Float64Var(&rate, "rate", calc.DefaultWearRate, "wear rate factor")
	markRequired(cmd, "laps", "life")
	return cmd
}

func newRaceTimeCmd() *cobra.Command {
	var laps int
	var base, fpl, fuel, pitStop, effect float64
	cmd := &cobra.Command{
		Use:   "racetime",
		Short: "simulates a race lap by lap",
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := calc.RaceTime(laps, base, fpl, fuel,
				calc.WithPitStopTime(pitStop), calc.WithFuelEffect(effect))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), ret, []row{
				{"total time", ret.TotalTimeFormatted},
				{"total seconds", ret.TotalTimeSeconds},
				{"pit stops", ret.PitStops},
				{"average lap", ret.AverageLapTime},
			})
		},
	}
	cmd.Flags().IntVar(&laps, "laps", 0, "number of laps")
	cmd.Flags().Float64Var(&base, "base", 0, "base lap time in seconds")
	cmd.Flags().Float64Var(&fpl, "fuel-per-lap", 0, "fuel per lap in liters")
	cmd.Flags().Float64Var(&fuel, "fuel", 0, "initial fuel in liters")
	cmd.Flags().Float64Var(&pitStop, "pit-stop-time", calc.DefaultPitStopTime,
		"seconds lost by a pit stop")
	cmd.Flags().Float64Var(&effect, "fuel-effect", calc.DefaultFuelEffect,
		"seconds per kg of fuel")
	markRequired(cmd, "laps", "base", "fuel-per-lap", "fuel")
	return cmd
}

func newBalanceCmd() *cobra.Command {
	var frontWing, rearWing, frontSpring, rearSpring float64
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "compares front and rear wing and spring settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := calc.CalcSetupBalance(frontWing, rearWing, frontSpring, rearSpring)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), ret, []row{
				{"wing balance %", ret.WingBalancePercent},
				{"aero", ret.AeroTendency},
				{"spring balance %", ret.SpringBalancePercent},
				{"mechanical", ret.MechanicalTendency},
			})
		},
	}
	cmd.Flags().Float64Var(&frontWing, "front-wing", 0, "front wing setting")
	cmd.Flags().Float64Var(&rearWing, "rear-wing", 0, "rear wing setting")
	cmd.Flags().Float64Var(&frontSpring, "front-spring", 0, "front spring rate in N/m")
	cmd.Flags().Float64Var(&rearSpring, "rear-spring", 0, "rear spring rate in N/m")
	markRequired(cmd, "front-wing", "rear-wing", "front-spring", "rear-spring")
	return cmd
}

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <seconds|M:SS.mmm>...",
		Short: "converts between seconds and M:SS.mmm",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]row, 0, len(args))
			data := make(map[string]float64, len(args))
			for _, arg := range args {
				secs, err := calc.ParseTime(arg)
				if err != nil {
					return err
				}
				rows = append(rows, row{arg, fmt.Sprintf("%s (%.3fs)", calc.FormatTime(secs), secs)})
				data[arg] = secs
			}
			return render(cmd.OutOrStdout(), data, rows)
		},
	}
	return cmd
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}
}

func joinInts(v []int) string {
	return strings.Join(lo.Map(v, func(x, _ int) string { return fmt.Sprint(x) }), ", ")
}

func joinFloats(v []float64) string {
	return strings.Join(lo.Map(v, func(x float64, _ int) string {
		return fmt.Sprintf("%.2f", x)
	}), ", ")
}
