// Package record serves the tire, engine and setup records of a session.
package record

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

func NewServer(opts ...Option) *recordServer {
	ret := &recordServer{
		log:      log.Default().Named("http.record"),
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

type Option func(*recordServer)

func WithPermissionEvaluator(pe permission.PermissionEvaluator) Option {
	return func(srv *recordServer) {
		srv.pe = pe
	}
}

func WithRepositories(repos api.Repositories) Option {
	return func(srv *recordServer) {
		srv.repos = repos
	}
}

func WithTxManager(txMgr api.TransactionManager) Option {
	return func(srv *recordServer) {
		srv.txManager = txMgr
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(srv *recordServer) {
		srv.notifier = n
	}
}

type (
	recordServer struct {
		pe        permission.PermissionEvaluator
		log       *log.Logger
		repos     api.Repositories
		txManager api.TransactionManager
		notifier  notify.Notifier
		tracer    trace.Tracer
	}
	// collection describes the operations of one record kind.
	// T is the stored record, In the create request.
	collection[T any, In any] struct {
		srv    *recordServer
		kind   notify.Kind
		list   func(ctx context.Context, sessionID int) ([]*T, error)
		load   func(ctx context.Context, id int) (*T, error)
		create func(ctx context.Context, record *T) error
		remove func(ctx context.Context, id int) (int, error)
		build  func(req *In, sessionID int) (*T, error)
		id     func(record *T) int
	}
)

func (s *recordServer) Register(r chi.Router) {
	tires := &collection[model.TireData, model.TireDataInput]{
		srv:    s,
		kind:   notify.KindTire,
		list:   s.repos.Tire().LoadBySessionID,
		load:   s.repos.Tire().LoadByID,
		create: s.repos.Tire().Create,
		remove: s.repos.Tire().DeleteByID,
		build: func(req *model.TireDataInput, sessionID int) (*model.TireData, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return req.ToTireData(sessionID), nil
		},
		id: func(t *model.TireData) int { return t.ID },
	}
	engine := &collection[model.EngineData, model.EngineDataInput]{
		srv:    s,
		kind:   notify.KindEngine,
		list:   s.repos.Engine().LoadBySessionID,
		load:   s.repos.Engine().LoadByID,
		create: s.repos.Engine().Create,
		remove: s.repos.Engine().DeleteByID,
		build: func(req *model.EngineDataInput, sessionID int) (*model.EngineData, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return req.ToEngineData(sessionID), nil
		},
		id: func(e *model.EngineData) int { return e.ID },
	}
	setups := &collection[model.SetupData, model.SetupDataInput]{
		srv:    s,
		kind:   notify.KindSetup,
		list:   s.repos.Setup().LoadBySessionID,
		load:   s.repos.Setup().LoadByID,
		create: s.repos.Setup().Create,
		remove: s.repos.Setup().DeleteByID,
		build: func(req *model.SetupDataInput, sessionID int) (*model.SetupData, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return req.ToSetupData(sessionID), nil
		},
		id: func(s *model.SetupData) int { return s.ID },
	}

	w := r.With(util.RequirePermission(s.pe, permission.PermissionWriteRecords))

	r.Get("/sessions/{id}/tires", tires.getAll)
	r.Get("/tires/{id}", tires.get)
	w.Post("/sessions/{id}/tires", tires.post)
	w.Delete("/tires/{id}", tires.delete)

	r.Get("/sessions/{id}/engine", engine.getAll)
	w.Post("/sessions/{id}/engine", engine.post)
	w.Delete("/engine/{id}", engine.delete)

	r.Get("/sessions/{id}/setups", setups.getAll)
	r.Get("/setups/{id}", setups.get)
	w.Post("/sessions/{id}/setups", setups.post)
	w.Delete("/setups/{id}", setups.delete)
}

func (c *collection[T, In]) getAll(w http.ResponseWriter, r *http.Request) {
	sessionID, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if _, err = c.srv.repos.Session().LoadByID(r.Context(), sessionID); err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := c.list(r.Context(), sessionID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (c *collection[T, In]) get(w http.ResponseWriter, r *http.Request) {
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	data, err := c.load(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, data)
}

func (c *collection[T, In]) post(w http.ResponseWriter, r *http.Request) {
	ctx, span := c.srv.tracer.Start(r.Context(), "create."+string(c.kind))
	defer span.End()
	sessionID, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var req In
	if err = util.DecodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	record, err := c.build(&req, sessionID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err = c.srv.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if _, loadErr := c.srv.repos.Session().LoadByID(ctx, sessionID); loadErr != nil {
			return loadErr
		}
		return c.create(ctx, record)
	}); err != nil {
		util.WriteError(w, r, err)
		return
	}
	c.srv.log.Debug("record created", log.String("kind", string(c.kind)),
		log.Int("id", c.id(record)), log.Int("session", sessionID))
	c.srv.notifier.Notify(ctx, notify.Change{Kind: c.kind, Op: notify.OpCreate, ID: c.id(record)})
	util.WriteJSON(w, http.StatusCreated, record)
}

func (c *collection[T, In]) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := c.srv.tracer.Start(r.Context(), "delete."+string(c.kind))
	defer span.End()
	id, err := util.PathID(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	n, err := c.remove(ctx, id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if n == 0 {
		util.WriteError(w, r, util.NotFound(string(c.kind), id))
		return
	}
	c.srv.notifier.Notify(ctx, notify.Change{Kind: c.kind, Op: notify.OpDelete, ID: id})
	w.WriteHeader(http.StatusNoContent)
}
