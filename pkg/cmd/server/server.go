package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // profiling endpoint on localhost only
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/config"
	"github.com/mpapenbr/race-engineer-service-go/pkg/db/postgres"
	httpserver "github.com/mpapenbr/race-engineer-service-go/pkg/http/server"
	"github.com/mpapenbr/race-engineer-service-go/pkg/notify"
	"github.com/mpapenbr/race-engineer-service-go/pkg/permission"
	bobRepos "github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob"
	"github.com/mpapenbr/race-engineer-service-go/pkg/utils"
)

var appConfig = config.DefaultConfig() // holds processed config values

//nolint:funlen // ok
func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "starts the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr,
		"addr",
		"a",
		"localhost:8080",
		"HTTP server listen address")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"debug",
		"controls the log level for sql methods")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"json",
		"controls the log output format (json, text)")
	cmd.Flags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules, e.g. \"debug:http.* info:*\"")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data (stdout: print to console)")
	cmd.Flags().IntVar(&config.ProfilingPort,
		"profiling-port",
		0,
		"port to use for providing profiling data")
	cmd.Flags().StringVar(&config.AdminToken,
		"admin-token",
		"",
		"admin token value, required for write operations")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url",
		"",
		"if set, record changes are published to this NATS server")
	cmd.Flags().Float64Var(&appConfig.TankCapacity,
		"tank-capacity",
		0,
		"tank capacity in liters used when a request omits it")
	cmd.Flags().Float64Var(&appConfig.MinimumFuel,
		"minimum-fuel",
		appConfig.MinimumFuel,
		"liters kept in the tank at the end of a stint")
	cmd.Flags().Float64Var(&appConfig.TargetTemp,
		"target-temp",
		appConfig.TargetTemp,
		"target tire temperature in °C")
	cmd.Flags().Float64Var(&appConfig.PitStopTime,
		"pit-stop-time",
		appConfig.PitStopTime,
		"seconds lost by a pit stop")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLoggers() (logger, sqlLogger *log.Logger, err error) {
	filter, err := log.WithFilter(config.LogFilter)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log filter: %w", err)
	}
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1),
			filter)
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1),
			filter)
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	return logger, sqlLogger, nil
}

//nolint:funlen,cyclop // ok
func startServer(ctx context.Context) error {
	var telemetry *config.Telemetry
	logger, sqlLogger, err := setupLoggers()
	if err != nil {
		return err
	}
	log.ResetDefault(logger)

	log.Debug("Config:",
		log.String("addr", config.ServerAddr),
		log.String("nats", config.NatsURL),
		log.Float64("tankCapacity", appConfig.TankCapacity),
		log.Float64("minimumFuel", appConfig.MinimumFuel),
		log.Float64("targetTemp", appConfig.TargetTemp),
		log.Float64("pitStopTime", appConfig.PitStopTime),
	)
	if config.AdminToken == "" {
		log.Warn("No admin token configured, write operations are disabled")
	}

	if config.ProfilingPort > 0 {
		log.Info("Starting profiling server on port", log.Int("port", config.ProfilingPort))
		go func() {
			//nolint:gosec // no timeouts for pprof
			err := http.ListenAndServe(
				fmt.Sprintf("localhost:%d", config.ProfilingPort),
				nil)
			if err != nil {
				log.Error("Profiling server stopped", log.ErrorField(err))
			}
		}()
	}

	waitForRequiredServices(ctx)

	pgTraceOption := postgres.WithTracer(sqlLogger, log.DebugLevel)
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		if telemetry, err = config.SetupTelemetry(ctx); err == nil {
			pgTraceOption = postgres.WithOtlpTracer()
		} else {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}

	pool := postgres.InitWithURL(config.DB, pgTraceOption)
	defer pool.Close()

	notifier, closeNotifier, err := setupNotifier()
	if err != nil {
		log.Error("could not connect to NATS", log.ErrorField(err))
		return err
	}
	defer closeNotifier()

	handler := httpserver.NewHandler(
		httpserver.WithRepositories(bobRepos.NewRepositoriesFromPool(pool)),
		httpserver.WithTxManager(bobRepos.NewTransactionManagerFromPool(pool)),
		httpserver.WithNotifier(notifier),
		httpserver.WithPermissionEvaluator(permission.NewPermissionEvaluator()),
		httpserver.WithAdminToken(config.AdminToken),
		httpserver.WithAppConfig(appConfig),
		httpserver.WithLogger(logger.Named("http")),
		httpserver.WithHealthChecks(pingCheck(pool)),
		httpserver.WithTelemetry(config.EnableTelemetry),
	)

	server := &http.Server{
		Addr:              config.ServerAddr,
		Handler:           h2c.NewHandler(newCORS().Handler(handler), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", log.String("addr", config.ServerAddr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	setupGoRoutinesDump()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case v := <-sigChan:
		log.Debug("Got signal ", log.Any("signal", v))
	case err := <-serverErr:
		log.Error("server could not be started", log.ErrorField(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", log.ErrorField(err))
	}
	if telemetry != nil {
		telemetry.Shutdown()
	}

	log.Info("Server terminated")
	return nil
}

func setupNotifier() (n notify.Notifier, closeFn func(), err error) {
	if config.NatsURL == "" {
		return notify.Noop(), func() {}, nil
	}
	conn, err := nats.Connect(config.NatsURL,
		nats.Name("res"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", log.ErrorField(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", log.String("url", c.ConnectedUrl()))
		}))
	if err != nil {
		return nil, nil, err
	}
	log.Info("Publishing record changes", log.String("url", config.NatsURL))
	ret := notify.NewNatsNotifier(conn, notify.WithLogger(log.Default().Named("nats")))
	return ret, ret.Close, nil
}

func pingCheck(pool *pgxpool.Pool) func(r *http.Request) error {
	return func(r *http.Request) error {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		return pool.Ping(ctx)
	}
}

func setupGoRoutinesDump() {
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGQUIT)
		buf := make([]byte, 1<<20)
		for {
			<-sigs
			stacklen := runtime.Stack(buf, true)
			fmt.Printf("=== received SIGQUIT ===\n*** goroutine dump...\n%s\n*** end\n",
				buf[:stacklen])
		}
	}()
}

func waitForRequiredServices(ctx context.Context) {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}

	wg := sync.WaitGroup{}
	checkTCP := func(addr string) {
		defer wg.Done()
		if err := utils.WaitForTCP(ctx, addr, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
	}

	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		wg.Add(1)
		go checkTCP(postgresAddr)
	}
	if natsAddr := utils.ExtractFromNatsURL(config.NatsURL); natsAddr != "" {
		wg.Add(1)
		go checkTCP(natsAddr)
	}
	log.Debug("Waiting for connection checks to return")
	wg.Wait()
	log.Debug("Required services are available")
}

func newCORS() *cors.Cors {
	// permissive setup, the api is protected by the admin token
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-Trace-ID",
		},
		MaxAge: int(2 * time.Hour / time.Second),
	})
}
