package event

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

func NewServer(opts ...Option) *eventServer {
	ret := &eventServer{
		log:      log.Default().Named("http.event"),
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

type Option func(*eventServer)

func WithPermissionEvaluator(pe permission.PermissionEvaluator) Option {
	return func(srv *eventServer) {
		srv.pe = pe
	}
}

func WithEventRepository(repo api.EventRepository) Option {
	return func(srv *eventServer) {
		srv.eventRepos = repo
	}
}

func WithTxManager(txMgr api.TransactionManager) Option {
	return func(srv *eventServer) {
		srv.txManager = txMgr
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(srv *eventServer) {
		srv.notifier = n
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(srv *eventServer) {
		srv.tracer = tracer
	}
}

type eventServer struct {
	pe         permission.PermissionEvaluator
	log        *log.Logger
	eventRepos api.EventRepository
	txManager  api.TransactionManager
	notifier   notify.Notifier
	tracer     trace.Tracer
}

func (s *eventServer) Register(r chi.Router) {
	r.Get("/events", s.getEvents)
	r.Get("/events/{id}", s.getEvent)

	w := r.With(util.RequirePermission(s.pe, permission.PermissionWriteRecords))
	w.Post("/events", s.createEvent)
	w.Put("/events/{id}", s.updateEvent)
	w.Delete("/events/{id}", s.deleteEvent)
}

func (s *eventServer) getEvents(w http.ResponseWriter, r *http.Request) {
	data, err := s.eventRepos.LoadAll(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (s *eventServer) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := s.eventRepos.LoadByID(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (s *eventServer) createEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "createEvent")
	defer span.End()
	var req model.RaceEventInput
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		util.WriteError(w, r, err)
		return
	}
	event := req.ToEvent()
	if err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		return s.eventRepos.Create(ctx, event)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	s.log.Info("event created", log.Int("id", event.ID), log.String("name", event.Name))
	s.notifier.Notify(ctx, notify.Change{Kind: notify.KindEvent, Op: notify.OpCreate, ID: event.ID})
	util.WriteJSON(w, http.StatusCreated, event)
}

// updateEvent applies the fields present in the request to the stored event
func (s *eventServer) updateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "updateEvent")
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var patch model.RaceEventPatch
	if err := util.DecodeJSON(r, &patch); err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := patch.Validate(); err != nil {
		util.WriteError(w, r, err)
		return
	}
	var event *model.RaceEvent
	if err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var loadErr error
		if event, loadErr = s.eventRepos.LoadByID(ctx, id); loadErr != nil {
			return loadErr
		}
		patch.Apply(event)
		return s.eventRepos.Update(ctx, event)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	s.notifier.Notify(ctx, notify.Change{Kind: notify.KindEvent, Op: notify.OpUpdate, ID: id})
	util.WriteJSON(w, http.StatusOK, event)
}

// deleteEvent removes the event including its sessions and their records
func (s *eventServer) deleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "deleteEvent")
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	n, err := s.eventRepos.DeleteByID(ctx, id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if n == 0 {
		util.WriteError(w, r, util.NotFound("event", id))
		return
	}
	s.log.Info("event deleted", log.Int("id", id))
	s.notifier.Notify(ctx, notify.Change{Kind: notify.KindEvent, Op: notify.OpDelete, ID: id})
	w.WriteHeader(http.StatusNoContent)
}
