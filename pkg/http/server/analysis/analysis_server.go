package analysis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/calc"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/util"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
	analysisservice "github.com/mpapenbr/race-engineer-service-go/pkg/service/analysis"
)

func NewServer(opts ...Option) *analysisServer {
	ret := &analysisServer{
		log: log.Default().Named("http.analysis"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type Option func(*analysisServer)

func WithRepositories(repos api.Repositories) Option {
	return func(srv *analysisServer) {
		srv.service = analysisservice.NewService(repos)
	}
}

type analysisServer struct {
	log     *log.Logger
	service *analysisservice.Service
}

func (s *analysisServer) Register(r chi.Router) {
	r.Get("/sessions/{id}/strategy", s.getStrategy)
	r.Get("/sessions/{id}/race-time", s.getRaceTime)
	r.Get("/sessions/{id}/tire-advisory", s.getSessionTireAdvisory)
	r.Get("/tires/{id}/advisory", s.getTireAdvisory)
	r.Get("/setups/{id}/balance", s.getSetupBalance)
}

// getStrategy computes the stint plan for the session.
// tank_capacity is required unless the server is configured with one.
func (s *analysisServer) getStrategy(w http.ResponseWriter, r *http.Request) {
	cfg := util.ConfigFromContext(r)
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	tank, err := util.QueryFloat(r, "tank_capacity", cfg.TankCapacity)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if tank <= 0 {
		util.WriteError(w, r, util.MissingParam("tank_capacity"))
		return
	}
	minFuel, err := util.QueryFloat(r, "minimum_fuel", cfg.MinimumFuel)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	ret, err := s.service.SessionStintPlan(r.Context(), id, tank,
		calc.WithMinimumFuel(minFuel))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, ret)
}

func (s *analysisServer) getRaceTime(w http.ResponseWriter, r *http.Request) {
	cfg := util.ConfigFromContext(r)
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	laps, err := util.QueryInt(r, "laps", 0)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if laps == 0 {
		util.WriteError(w, r, util.MissingParam("laps"))
		return
	}
	if err := util.CheckLaps(laps); err != nil {
		util.WriteError(w, r, err)
		return
	}
	pitStop, err := util.QueryFloat(r, "pit_stop_time", cfg.PitStopTime)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	ret, err := s.service.SessionRaceTime(r.Context(), id, laps,
		calc.WithPitStopTime(pitStop))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, ret)
}

func (s *analysisServer) getSessionTireAdvisory(w http.ResponseWriter, r *http.Request) {
	id, target, err := s.tireParams(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	ret, err := s.service.SessionTireAdvisories(r.Context(), id, calc.WithTargetTemp(target))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, ret)
}

func (s *analysisServer) getTireAdvisory(w http.ResponseWriter, r *http.Request) {
	id, target, err := s.tireParams(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	ret, err := s.service.TireAdvisory(r.Context(), id, calc.WithTargetTemp(target))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, ret)
}

func (s *analysisServer) getSetupBalance(w http.ResponseWriter, r *http.Request) {
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	ret, err := s.service.SetupBalance(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, ret)
}

func (s *analysisServer) tireParams(r *http.Request) (id int, target float64, err error) {
	if id, err = util.PathID(r, "id"); err != nil {
		return 0, 0, err
	}
	target, err = util.QueryFloat(r, "target_temp", util.ConfigFromContext(r).TargetTemp)
	return id, target, err
}
