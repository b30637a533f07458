// Package server assembles the HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/auth"
	"github.com/mpapenbr/race-engineer-service-go/pkg/config"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/analysis"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/calc"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/event"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/health"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/lap"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/record"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/session"
	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/util"
	"github.com/mpapenbr/race-engineer-service-go/pkg/notify"
	"github.com/mpapenbr/race-engineer-service-go/pkg/permission"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
)

const BasePath = "/api"

type (
	Option func(*handlerConfig)

	handlerConfig struct {
		repos        api.Repositories
		txManager    api.TransactionManager
		notifier     notify.Notifier
		pe           permission.PermissionEvaluator
		adminToken   string
		appConfig    *config.Config
		logger       *log.Logger
		healthChecks []health.Checker
		telemetry    bool
	}
)

func WithRepositories(repos api.Repositories) Option {
	return func(c *handlerConfig) {
		c.repos = repos
	}
}

func WithTxManager(txMgr api.TransactionManager) Option {
	return func(c *handlerConfig) {
		c.txManager = txMgr
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *handlerConfig) {
		c.notifier = n
	}
}

func WithPermissionEvaluator(pe permission.PermissionEvaluator) Option {
	return func(c *handlerConfig) {
		c.pe = pe
	}
}

func WithAdminToken(token string) Option {
	return func(c *handlerConfig) {
		c.adminToken = token
	}
}

func WithAppConfig(cfg *config.Config) Option {
	return func(c *handlerConfig) {
		c.appConfig = cfg
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *handlerConfig) {
		c.logger = l
	}
}

func WithHealthChecks(checks ...health.Checker) Option {
	return func(c *handlerConfig) {
		c.healthChecks = append(c.healthChecks, checks...)
	}
}

// WithTelemetry wraps the handler with the otelhttp instrumentation
func WithTelemetry(enabled bool) Option {
	return func(c *handlerConfig) {
		c.telemetry = enabled
	}
}

// NewHandler returns the handler serving all endpoints below BasePath
func NewHandler(opts ...Option) http.Handler {
	c := &handlerConfig{
		notifier:  notify.Noop(),
		appConfig: config.DefaultConfig(),
		logger:    log.Default().Named("http"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pe == nil {
		c.pe = permission.NewPermissionEvaluator()
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		util.RequestID(c.logger),
		util.TraceID,
		util.RequestLogger,
		auth.NewMiddleware(auth.WithAdminToken(c.adminToken)),
		util.AppContext(c.appConfig),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusNotFound, util.ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusMethodNotAllowed,
			util.ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
	})

	r.Route(BasePath, func(r chi.Router) {
		health.NewServer(c.healthChecks...).Register(r)
		calc.NewServer().Register(r)
		event.NewServer(
			event.WithEventRepository(c.repos.Event()),
			event.WithTxManager(c.txManager),
			event.WithNotifier(c.notifier),
			event.WithPermissionEvaluator(c.pe),
		).Register(r)
		session.NewServer(
			session.WithRepositories(c.repos),
			session.WithTxManager(c.txManager),
			session.WithNotifier(c.notifier),
			session.WithPermissionEvaluator(c.pe),
		).Register(r)
		lap.NewServer(
			lap.WithRepositories(c.repos),
			lap.WithTxManager(c.txManager),
			lap.WithNotifier(c.notifier),
			lap.WithPermissionEvaluator(c.pe),
		).Register(r)
		record.NewServer(
			record.WithRepositories(c.repos),
			record.WithTxManager(c.txManager),
			record.WithNotifier(c.notifier),
			record.WithPermissionEvaluator(c.pe),
		).Register(r)
		analysis.NewServer(
			analysis.WithRepositories(c.repos),
		).Register(r)
	})

	if c.telemetry {
		return otelhttp.NewHandler(r, "res",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}))
	}
	return r
}
