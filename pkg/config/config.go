package config

import (
	"context"

	"github.com/mpapenbr/race-engineer-service-go/pkg/calc"
)

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                 string // connection string for the database
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogFilter          string // zapfilter rules, e.g. "debug:http.* info:*"
	MigrationSourceURL string // location of migration files (empty: use embedded files)
	EnableTelemetry    bool   // enable telemetry
	TelemetryEndpoint  string // endpoint for telemetry ("stdout" writes to console)
	ProfilingPort      int    // port for profiling
	ServerAddr         string // listen addr for the HTTP server
	AdminToken         string // token for admin access
	NatsURL            string // if set, record changes are published to NATS
	OutputFormat       string // output format of calc commands (table, json)
)

// Config holds the configuration values which are used by the application
type Config struct {
	TankCapacity float64 // liters, used when a strategy request omits it
	MinimumFuel  float64 // liters kept in the tank at the end of a stint
	TargetTemp   float64 // °C target for tire advisories
	PitStopTime  float64 // seconds, used by race time simulation
}

// DefaultConfig uses the defaults of the calculation engine, no tank capacity
func DefaultConfig() *Config {
	return &Config{
		MinimumFuel: calc.DefaultMinimumFuel,
		TargetTemp:  calc.DefaultTargetTemp,
		PitStopTime: calc.DefaultPitStopTime,
	}
}

type ctxKey struct{}

func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, nil if there is none
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}
