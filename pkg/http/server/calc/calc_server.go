// Package calc exposes the calculation engine as stateless endpoints.
// Optional parameters fall back to the application config.
//
//nolint:whitespace // editor/linter issue
package calc

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	calcengine "github.com/mpapenbr/race-engineer-service-go/pkg/calc"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/util"
)

type (
	FuelConsumptionRequest struct {
		Laps       *float64 `json:"laps"`
		FuelPerLap *float64 `json:"fuel_per_lap"`
	}
	FuelRemainingRequest struct {
		InitialFuel *float64 `json:"initial_fuel"`
		Consumed    *float64 `json:"consumed"`
	}
	StintStrategyRequest struct {
		SessionMinutes *float64 `json:"session_minutes"`
		LapTime        *float64 `json:"lap_time"`
		TankCapacity   *float64 `json:"tank_capacity"`
		FuelPerLap     *float64 `json:"fuel_per_lap"`
		MinimumFuel    *float64 `json:"minimum_fuel"`
	}
	TirePressureRequest struct {
		TempInner       *float64 `json:"temp_inner"`
		TempMiddle      *float64 `json:"temp_middle"`
		TempOuter       *float64 `json:"temp_outer"`
		CurrentPressure *float64 `json:"current_pressure"`
		TargetTemp      *float64 `json:"target_temp"`
	}
	LapTimeRequest struct {
		BaseLapTime  *float64 `json:"base_lap_time"`
		FuelWeightKg *float64 `json:"fuel_weight_kg"`
		FuelEffect   *float64 `json:"fuel_effect"`
	}
	TireWearRequest struct {
		LapsOnTire   *float64 `json:"laps_on_tire"`
		TireLifeLaps *float64 `json:"tire_life_laps"`
		WearRate     *float64 `json:"wear_rate"`
	}
	RaceTimeRequest struct {
		Laps        *int     `json:"laps"`
		BaseLapTime *float64 `json:"base_lap_time"`
		FuelPerLap  *float64 `json:"fuel_per_lap"`
		InitialFuel *float64 `json:"initial_fuel"`
		PitStopTime *float64 `json:"pit_stop_time"`
		FuelEffect  *float64 `json:"fuel_effect"`
	}
	SetupBalanceRequest struct {
		FrontWing       *float64 `json:"front_wing"`
		RearWing        *float64 `json:"rear_wing"`
		FrontSpringRate *float64 `json:"front_spring_rate"`
		RearSpringRate  *float64 `json:"rear_spring_rate"`
	}
	// FormatTimeRequest converts seconds to "M:SS.mmm" or parses time
	// if seconds is absent
	FormatTimeRequest struct {
		Seconds *float64 `json:"seconds"`
		Time    *string  `json:"time"`
	}

	FuelConsumptionResponse struct {
		FuelConsumption float64 `json:"fuel_consumption"`
	}
	FuelRemainingResponse struct {
		FuelRemaining float64 `json:"fuel_remaining"`
	}
	LapTimeResponse struct {
		LapTime          float64 `json:"lap_time"`
		LapTimeFormatted string  `json:"lap_time_formatted"`
	}
	TireWearResponse struct {
		WearPercent float64 `json:"wear_percent"`
	}
	FormatTimeResponse struct {
		Seconds   float64 `json:"seconds"`
		Formatted string  `json:"formatted"`
	}
)

type calcServer struct{}

func NewServer() *calcServer {
	return &calcServer{}
}

func (s *calcServer) Register(r chi.Router) {
	r.Route("/calc", func(r chi.Router) {
		r.Post("/fuel-consumption", handle(fuelConsumption))
		r.Post("/fuel-remaining", handle(fuelRemaining))
		r.Post("/stint-strategy", handle(stintStrategy))
		r.Post("/tire-pressure", handle(tirePressure))
		r.Post("/lap-time", handle(lapTime))
		r.Post("/tire-wear", handle(tireWear))
		r.Post("/race-time", handle(raceTime))
		r.Post("/setup-balance", handle(setupBalance))
		r.Post("/format-time", handle(formatTime))
	})
}

// handle decodes the request body into Req and responds with the result of fn
func handle[Req, Resp any](fn func(r *http.Request, req *Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, r, err)
			return
		}
		ret, err := fn(r, &req)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, ret)
	}
}

func fuelConsumption(_ *http.Request, req *FuelConsumptionRequest) (
	*FuelConsumptionResponse, error,
) {
	v, err := values(field("laps", req.Laps), field("fuel_per_lap", req.FuelPerLap))
	if err != nil {
		return nil, err
	}
	return &FuelConsumptionResponse{FuelConsumption: calcengine.FuelConsumption(v[0], v[1])}, nil
}

func fuelRemaining(_ *http.Request, req *FuelRemainingRequest) (
	*FuelRemainingResponse, error,
) {
	v, err := values(field("initial_fuel", req.InitialFuel), field("consumed", req.Consumed))
	if err != nil {
		return nil, err
	}
	return &FuelRemainingResponse{FuelRemaining: calcengine.FuelRemaining(v[0], v[1])}, nil
}

func stintStrategy(r *http.Request, req *StintStrategyRequest) (
	*calcengine.StintStrategy, error,
) {
	cfg := util.ConfigFromContext(r)
	tank := req.TankCapacity
	if tank == nil && cfg.TankCapacity > 0 {
		tank = &cfg.TankCapacity
	}
	v, err := values(
		field("session_minutes", req.SessionMinutes),
		field("lap_time", req.LapTime),
		field("tank_capacity", tank),
		field("fuel_per_lap", req.FuelPerLap))
	if err != nil {
		return nil, err
	}
	ret, err := calcengine.CalcStintStrategy(v[0], v[1], v[2], v[3],
		calcengine.WithMinimumFuel(orDefault(req.MinimumFuel, cfg.MinimumFuel)))
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func tirePressure(r *http.Request, req *TirePressureRequest) (
	*calcengine.TireOptimization, error,
) {
	cfg := util.ConfigFromContext(r)
	v, err := values(
		field("temp_inner", req.TempInner),
		field("temp_middle", req.TempMiddle),
		field("temp_outer", req.TempOuter),
		field("current_pressure", req.CurrentPressure))
	if err != nil {
		return nil, err
	}
	ret := calcengine.OptimizeTirePressure(v[0], v[1], v[2], v[3],
		calcengine.WithTargetTemp(orDefault(req.TargetTemp, cfg.TargetTemp)))
	return &ret, nil
}

func lapTime(_ *http.Request, req *LapTimeRequest) (*LapTimeResponse, error) {
	v, err := values(
		field("base_lap_time", req.BaseLapTime),
		field("fuel_weight_kg", req.FuelWeightKg))
	if err != nil {
		return nil, err
	}
	t := calcengine.LapTimeWithFuel(v[0], v[1], orDefault(req.FuelEffect, calcengine.DefaultFuelEffect))
	return &LapTimeResponse{LapTime: t, LapTimeFormatted: calcengine.FormatTime(t)}, nil
}

func tireWear(_ *http.Request, req *TireWearRequest) (*TireWearResponse, error) {
	v, err := values(
		field("laps_on_tire", req.LapsOnTire),
		field("tire_life_laps", req.TireLifeLaps))
	if err != nil {
		return nil, err
	}
	wear, err := calcengine.TireWear(v[0], v[1], orDefault(req.WearRate, calcengine.DefaultWearRate))
	if err != nil {
		return nil, err
	}
	return &TireWearResponse{WearPercent: wear}, nil
}

func raceTime(r *http.Request, req *RaceTimeRequest) (*calcengine.RaceTimeResult, error) {
	cfg := util.ConfigFromContext(r)
	if req.Laps == nil {
		return nil, missing("laps")
	}
	if err := util.CheckLaps(*req.Laps); err != nil {
		return nil, err
	}
	v, err := values(
		field("base_lap_time", req.BaseLapTime),
		field("fuel_per_lap", req.FuelPerLap),
		field("initial_fuel", req.InitialFuel))
	if err != nil {
		return nil, err
	}
	ret, err := calcengine.RaceTime(*req.Laps, v[0], v[1], v[2],
		calcengine.WithPitStopTime(orDefault(req.PitStopTime, cfg.PitStopTime)),
		calcengine.WithFuelEffect(orDefault(req.FuelEffect, calcengine.DefaultFuelEffect)))
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func setupBalance(_ *http.Request, req *SetupBalanceRequest) (*calcengine.SetupBalance, error) {
	v, err := values(
		field("front_wing", req.FrontWing),
		field("rear_wing", req.RearWing),
		field("front_spring_rate", req.FrontSpringRate),
		field("rear_spring_rate", req.RearSpringRate))
	if err != nil {
		return nil, err
	}
	ret, err := calcengine.CalcSetupBalance(v[0], v[1], v[2], v[3])
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func formatTime(_ *http.Request, req *FormatTimeRequest) (*FormatTimeResponse, error) {
	switch {
	case req.Seconds != nil:
		return &FormatTimeResponse{
			Seconds:   *req.Seconds,
			Formatted: calcengine.FormatTime(*req.Seconds),
		}, nil
	case req.Time != nil:
		secs, err := calcengine.ParseTime(*req.Time)
		if err != nil {
			return nil, err
		}
		return &FormatTimeResponse{Seconds: secs, Formatted: calcengine.FormatTime(secs)}, nil
	default:
		return nil, missing("seconds")
	}
}

type namedValue struct {
	name  string
	value *float64
}

func field(name string, v *float64) namedValue {
	return namedValue{name: name, value: v}
}

// values dereferences the fields in order. The first absent field yields
// a bad request error.
func values(fields ...namedValue) ([]float64, error) {
	ret := make([]float64, len(fields))
	for i, f := range fields {
		if f.value == nil {
			return nil, missing(f.name)
		}
		ret[i] = *f.value
	}
	return ret, nil
}

func missing(name string) error {
	return fmt.Errorf("%w: missing field %s", util.ErrBadRequest, name)
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
