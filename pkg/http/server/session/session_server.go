package session

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

func NewServer(opts ...Option) *sessionServer {
	ret := &sessionServer{
		log:      log.Default().Named("http.session"),
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

type Option func(*sessionServer)

func WithPermissionEvaluator(pe permission.PermissionEvaluator) Option {
	return func(srv *sessionServer) {
		srv.pe = pe
	}
}

func WithRepositories(repos api.Repositories) Option {
	return func(srv *sessionServer) {
		srv.eventRepos = repos.Event()
		srv.sessionRepos = repos.Session()
	}
}

func WithTxManager(txMgr api.TransactionManager) Option {
	return func(srv *sessionServer) {
		srv.txManager = txMgr
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(srv *sessionServer) {
		srv.notifier = n
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(srv *sessionServer) {
		srv.tracer = tracer
	}
}

type sessionServer struct {
	pe           permission.PermissionEvaluator
	log          *log.Logger
	eventRepos   api.EventRepository
	sessionRepos api.SessionRepository
	txManager    api.TransactionManager
	notifier     notify.Notifier
	tracer       trace.Tracer
}

func (s *sessionServer) Register(r chi.Router) {
	r.Get("/events/{id}/sessions", s.getSessions)
	r.Get("/sessions/{id}", s.getSession)

	w := r.With(util.RequirePermission(s.pe, permission.PermissionWriteRecords))
	w.Post("/events/{id}/sessions", s.createSession)
	w.Put("/sessions/{id}", s.updateSession)
	w.Delete("/sessions/{id}", s.deleteSession)
}

func (s *sessionServer) getSessions(w http.ResponseWriter, r *http.Request) {
	eventID, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if _, err = s.eventRepos.LoadByID(r.Context(), eventID); err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := s.sessionRepos.LoadByEventID(r.Context(), eventID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (s *sessionServer) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := s.sessionRepos.LoadByID(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

// createSession stores a new session for the event. If the request has no
// session number the next free number for the session type is used.
func (s *sessionServer) createSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "createSession")
	defer span.End()
	eventID, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var req model.SessionInput
	if err = util.DecodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err = req.Validate(); err != nil {
		util.WriteError(w, r, err)
		return
	}
	session := req.ToSession(eventID)
	if err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if _, loadErr := s.eventRepos.LoadByID(ctx, eventID); loadErr != nil {
			return loadErr
		}
		return s.sessionRepos.Create(ctx, session)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	s.log.Info("session created",
		log.Int("id", session.ID),
		log.Int("event", eventID),
		log.String("type", string(session.SessionType)),
		log.Int("number", session.SessionNumber))
	s.notifier.Notify(ctx,
		notify.Change{Kind: notify.KindSession, Op: notify.OpCreate, ID: session.ID})
	util.WriteJSON(w, http.StatusCreated, session)
}

func (s *sessionServer) updateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "updateSession")
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var patch model.SessionPatch
	if err = util.DecodeJSON(r, &patch); err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err = patch.Validate(); err != nil {
		util.WriteError(w, r, err)
		return
	}
	var session *model.Session
	if err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var loadErr error
		if session, loadErr = s.sessionRepos.LoadByID(ctx, id); loadErr != nil {
			return loadErr
		}
		patch.Apply(session)
		return s.sessionRepos.Update(ctx, session)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	s.notifier.Notify(ctx,
		notify.Change{Kind: notify.KindSession, Op: notify.OpUpdate, ID: id})
	util.WriteJSON(w, http.StatusOK, session)
}

func (s *sessionServer) deleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "deleteSession")
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	n, err := s.sessionRepos.DeleteByID(ctx, id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if n == 0 {
		util.WriteError(w, r, util.NotFound("session", id))
		return
	}
	s.log.Info("session deleted", log.Int("id", id))
	s.notifier.Notify(ctx,
		notify.Change{Kind: notify.KindSession, Op: notify.OpDelete, ID: id})
	w.WriteHeader(http.StatusNoContent)
}
