// Package analysis feeds stored session records into the calculation engine.
//
//nolint:whitespace // can't make both editor and linter happy
package analysis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/calc"
	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
)

// ErrMissingData is returned if a stored record lacks a value required
// for a calculation
var ErrMissingData = errors.New("missing data")

var tracer = otel.Tracer("analysis")

type (
	Service struct {
		repos api.Repositories
		log   *log.Logger
	}
	// TireAdvisory is the pressure advice for a single stored tire record
	TireAdvisory struct {
		TireID       int                `json:"tire_id"`
		TirePosition model.TirePosition `json:"tire_position"`
		calc.TireOptimization
	}
	// StintPlan is the stint strategy for a session along with the inputs
	// taken from the stored records
	StintPlan struct {
		SessionMinutes float64 `json:"session_minutes"`
		LapTime        float64 `json:"lap_time"`
		FuelPerLap     float64 `json:"fuel_per_lap"`
		calc.StintStrategy
	}
)

func NewService(repos api.Repositories) *Service {
	return &Service{
		repos: repos,
		log:   log.Default().Named("analysis"),
	}
}

// SessionStintPlan computes the stint strategy for the session duration.
// The lap time is taken from the best lap (fallback: mean of the lap times),
// the fuel per lap from the session (fallback: mean of the laps fuel usage).
// Options: calc.WithMinimumFuel
func (s *Service) SessionStintPlan(
	ctx context.Context,
	sessionID int,
	tankCapacity float64,
	opts ...calc.Option,
) (*StintPlan, error) {
	ctx, span := s.startSpan(ctx, "SessionStintPlan", sessionID)
	defer span.End()

	session, laps, err := s.loadSessionWithLaps(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Duration == nil {
		return nil, fmt.Errorf("%w: session %d has no duration", ErrMissingData, sessionID)
	}
	lapTime, err := baseLapTime(session, laps)
	if err != nil {
		return nil, err
	}
	fpl, err := fuelPerLap(session, laps)
	if err != nil {
		return nil, err
	}
	minutes := float64(*session.Duration)
	strategy, err := calc.CalcStintStrategy(minutes, lapTime, tankCapacity, fpl, opts...)
	if err != nil {
		return nil, err
	}
	s.log.Debug("stint plan computed",
		log.Int("session", sessionID),
		log.Float64("lapTime", lapTime),
		log.Float64("fuelPerLap", fpl),
		log.Int("pitStops", strategy.PitStops))
	return &StintPlan{
		SessionMinutes: minutes,
		LapTime:        lapTime,
		FuelPerLap:     fpl,
		StintStrategy:  strategy,
	}, nil
}

// SessionRaceTime simulates a race of laps laps starting with the session
// start fuel.
// Options: calc.WithPitStopTime, calc.WithFuelEffect
func (s *Service) SessionRaceTime(
	ctx context.Context,
	sessionID, laps int,
	opts ...calc.Option,
) (*calc.RaceTimeResult, error) {
	ctx, span := s.startSpan(ctx, "SessionRaceTime", sessionID)
	defer span.End()

	session, lapRecords, err := s.loadSessionWithLaps(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.FuelStart == nil {
		return nil, fmt.Errorf("%w: session %d has no start fuel",
			ErrMissingData, sessionID)
	}
	lapTime, err := baseLapTime(session, lapRecords)
	if err != nil {
		return nil, err
	}
	fpl, err := fuelPerLap(session, lapRecords)
	if err != nil {
		return nil, err
	}
	ret, err := calc.RaceTime(laps, lapTime, fpl, *session.FuelStart, opts...)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// TireAdvisory computes the pressure advice for a stored tire record.
// The hot pressure is used if present, the cold pressure otherwise.
// Options: calc.WithTargetTemp
func (s *Service) TireAdvisory(
	ctx context.Context,
	tireID int,
	opts ...calc.Option,
) (*TireAdvisory, error) {
	ctx, span := tracer.Start(ctx, "TireAdvisory",
		trace.WithAttributes(attribute.Int("tire.id", tireID)))
	defer span.End()

	tire, err := s.repos.Tire().LoadByID(ctx, tireID)
	if err != nil {
		return nil, err
	}
	return tireAdvisory(tire, opts...)
}

// SessionTireAdvisories computes the advice for every tire record of the
// session. Records without temperatures or pressure are skipped.
func (s *Service) SessionTireAdvisories(
	ctx context.Context,
	sessionID int,
	opts ...calc.Option,
) ([]*TireAdvisory, error) {
	ctx, span := s.startSpan(ctx, "SessionTireAdvisories", sessionID)
	defer span.End()

	if _, err := s.repos.Session().LoadByID(ctx, sessionID); err != nil {
		return nil, err
	}
	tires, err := s.repos.Tire().LoadBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ret := make([]*TireAdvisory, 0, len(tires))
	for _, tire := range tires {
		item, err := tireAdvisory(tire, opts...)
		if errors.Is(err, ErrMissingData) {
			s.log.Debug("skipping tire record", log.Int("tire", tire.ID),
				log.ErrorField(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// SetupBalance computes the aero and mechanical balance of a stored setup
func (s *Service) SetupBalance(ctx context.Context, setupID int) (
	*calc.SetupBalance, error,
) {
	ctx, span := tracer.Start(ctx, "SetupBalance",
		trace.WithAttributes(attribute.Int("setup.id", setupID)))
	defer span.End()

	setup, err := s.repos.Setup().LoadByID(ctx, setupID)
	if err != nil {
		return nil, err
	}
	values, err := required(setupID, map[string]*float64{
		"front_wing":        setup.FrontWing,
		"rear_wing":         setup.RearWing,
		"front_spring_rate": setup.FrontSpringRate,
		"rear_spring_rate":  setup.RearSpringRate,
	})
	if err != nil {
		return nil, err
	}
	ret, err := calc.CalcSetupBalance(
		values["front_wing"], values["rear_wing"],
		values["front_spring_rate"], values["rear_spring_rate"])
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (s *Service) startSpan(ctx context.Context, name string, sessionID int) (
	context.Context, trace.Span,
) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(attribute.Int("session.id", sessionID)))
}

func (s *Service) loadSessionWithLaps(ctx context.Context, sessionID int) (
	*model.Session, []*model.Lap, error,
) {
	session, err := s.repos.Session().LoadByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	laps, err := s.repos.Lap().LoadBySessionID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, laps, nil
}

func tireAdvisory(tire *model.TireData, opts ...calc.Option) (*TireAdvisory, error) {
	pressure := tire.PressureHot
	if pressure == nil {
		pressure = tire.PressureCold
	}
	values, err := required(tire.ID, map[string]*float64{
		"temp_inner":  tire.TempInner,
		"temp_middle": tire.TempMiddle,
		"temp_outer":  tire.TempOuter,
		"pressure":    pressure,
	})
	if err != nil {
		return nil, err
	}
	return &TireAdvisory{
		TireID:       tire.ID,
		TirePosition: tire.TirePosition,
		TireOptimization: calc.OptimizeTirePressure(
			values["temp_inner"], values["temp_middle"], values["temp_outer"],
			values["pressure"], opts...),
	}, nil
}

// baseLapTime returns the best lap of the session in seconds.
// If the session has no (valid) best lap the mean of the recorded lap times
// of green flag laps is used.
func baseLapTime(session *model.Session, laps []*model.Lap) (float64, error) {
	if session.BestLapTime != nil {
		if v, err := calc.ParseTime(*session.BestLapTime); err == nil && v > 0 {
			return v, nil
		}
	}
	times := lo.FilterMap(laps, func(l *model.Lap, _ int) (float64, bool) {
		if l.LapTime == nil || l.LapStatus != nil {
			return 0, false
		}
		v, err := calc.ParseTime(*l.LapTime)
		return v, err == nil && v > 0
	})
	if len(times) == 0 {
		return 0, fmt.Errorf("%w: session %d has no lap time", ErrMissingData, session.ID)
	}
	return lo.Mean(times), nil
}

func fuelPerLap(session *model.Session, laps []*model.Lap) (float64, error) {
	if session.FuelPerLap != nil && *session.FuelPerLap > 0 {
		return *session.FuelPerLap, nil
	}
	values := lo.FilterMap(laps, func(l *model.Lap, _ int) (float64, bool) {
		if l.FuelConsumed == nil {
			return 0, false
		}
		return *l.FuelConsumed, *l.FuelConsumed > 0
	})
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: session %d has no fuel per lap",
			ErrMissingData, session.ID)
	}
	return lo.Mean(values), nil
}

// required dereferences the values. Nil values yield ErrMissingData.
func required(id int, values map[string]*float64) (map[string]float64, error) {
	ret := make(map[string]float64, len(values))
	missing := lo.Filter(lo.Keys(values), func(k string, _ int) bool {
		return values[k] == nil
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: record %d lacks %s", ErrMissingData, id,
			strings.Join(missing, ", "))
	}
	for k, v := range values {
		ret[k] = *v
	}
	return ret, nil
}
