package lap

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/util"
	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/notify"
	"github.com/mpapenbr/race-engineer-service-go/pkg/permission"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
)

func NewServer(opts ...Option) *lapServer {
	ret := &lapServer{
		log:      log.Default().Named("http.lap"),
		notifier: notify.Noop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("res")
	}
	return ret
}

type Option func(*lapServer)

func WithPermissionEvaluator(pe permission.PermissionEvaluator) Option {
	return func(srv *lapServer) {
		srv.pe = pe
	}
}

func WithRepositories(repos api.Repositories) Option {
	return func(srv *lapServer) {
		srv.sessionRepos = repos.Session()
		srv.lapRepos = repos.Lap()
	}
}

func WithTxManager(txMgr api.TransactionManager) Option {
	return func(srv *lapServer) {
		srv.txManager = txMgr
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(srv *lapServer) {
		srv.notifier = n
	}
}

type lapServer struct {
	pe           permission.PermissionEvaluator
	log          *log.Logger
	sessionRepos api.SessionRepository
	lapRepos     api.LapRepository
	txManager    api.TransactionManager
	notifier     notify.Notifier
	tracer       trace.Tracer
}

func (s *lapServer) Register(r chi.Router) {
	r.Get("/sessions/{id}/laps", s.getLaps)
	r.Get("/laps/{id}", s.getLap)

	w := r.With(util.RequirePermission(s.pe, permission.PermissionWriteRecords))
	w.Post("/sessions/{id}/laps", s.createLap)
	w.Put("/laps/{id}", s.updateLap)
	w.Delete("/laps/{id}", s.deleteLap)
}

// getLaps returns the laps of the session ordered by lap number
func (s *lapServer) getLaps(w http.ResponseWriter, r *http.Request) {
	sessionID, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if _, err = s.sessionRepos.LoadByID(r.Context(), sessionID); err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := s.lapRepos.LoadBySessionID(r.Context(), sessionID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (s *lapServer) getLap(w http.ResponseWriter, r *http.Request) {
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := s.lapRepos.LoadByID(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (s *lapServer) createLap(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "createLap")
	defer span.End()
	sessionID, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var req model.LapInput
	if err = util.DecodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err = req.Validate(); err != nil {
		util.WriteError(w, r, err)
		return
	}
	lap := req.ToLap(sessionID)
	if err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if _, loadErr := s.sessionRepos.LoadByID(ctx, sessionID); loadErr != nil {
			return loadErr
		}
		return s.lapRepos.Create(ctx, lap)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	s.log.Debug("lap created", log.Int("id", lap.ID), log.Int("session", sessionID),
		log.Int("lap", lap.LapNumber))
	s.notifier.Notify(ctx, notify.Change{Kind: notify.KindLap, Op: notify.OpCreate, ID: lap.ID})
	util.WriteJSON(w, http.StatusCreated, lap)
}

func (s *lapServer) updateLap(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "updateLap")
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var patch model.LapPatch
	if err = util.DecodeJSON(r, &patch); err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err = patch.Validate(); err != nil {
		util.WriteError(w, r, err)
		return
	}
	var lap *model.Lap
	if err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var loadErr error
		if lap, loadErr = s.lapRepos.LoadByID(ctx, id); loadErr != nil {
			return loadErr
		}
		patch.Apply(lap)
		return s.lapRepos.Update(ctx, lap)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	s.notifier.Notify(ctx, notify.Change{Kind: notify.KindLap, Op: notify.OpUpdate, ID: id})
	util.WriteJSON(w, http.StatusOK, lap)
}

func (s *lapServer) deleteLap(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "deleteLap")
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	n, err := s.lapRepos.DeleteByID(ctx, id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if n == 0 {
		util.WriteError(w, r, util.NotFound("lap", id))
		return
	}
	s.notifier.Notify(ctx, notify.Change{Kind: notify.KindLap, Op: notify.OpDelete, ID: id})
	w.WriteHeader(http.StatusNoContent)
}
