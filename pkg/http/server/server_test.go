//nolint:funlen // ok for tests
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-engineer-service-go/pkg/auth"
	"github.com/mpapenbr/race-engineer-service-go/pkg/config"
	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/notify"
	"github.com/mpapenbr/race-engineer-service-go/testsupport/memrepos"
)

const adminToken = "secret"

type recordingNotifier struct {
	mu      sync.Mutex
	changes []notify.Change
}

func (n *recordingNotifier) Notify(_ context.Context, c notify.Change) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, c)
}

type testEnv struct {
	t        *testing.T
	handler  http.Handler
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	n := &recordingNotifier{}
	return &testEnv{
		t:        t,
		notifier: n,
		handler: NewHandler(
			WithRepositories(memrepos.New()),
			WithTxManager(memrepos.TxManager()),
			WithNotifier(n),
			WithAdminToken(adminToken),
			WithAppConfig(&config.Config{
				TankCapacity: 100,
				MinimumFuel:  5,
				TargetTemp:   85,
				PitStopTime:  25,
			}),
		),
	}
}

// do sends the request, body is encoded as json unless it is a string
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(e.t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) admin(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(method, path, adminToken, body)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var ret T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ret), rec.Body.String())
	return ret
}

func sampleEvent() map[string]any {
	return map[string]any{
		"name":       "24h Spa",
		"track":      "Spa-Francorchamps",
		"date_start": "2024-07-27T16:30:00Z",
		"date_end":   "2024-07-28T16:30:00Z",
	}
}

func (e *testEnv) createEvent() model.RaceEvent {
	e.t.Helper()
	rec := e.admin(http.MethodPost, "/api/events", sampleEvent())
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.RaceEvent](e.t, rec)
}

func (e *testEnv) createSession(eventID int, body map[string]any) model.Session {
	e.t.Helper()
	rec := e.admin(http.MethodPost, path("/api/events/%d/sessions", eventID), body)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Session](e.t, rec)
}

func path(format string, id int) string {
	return fmt.Sprintf(format, id)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestEventLifecycle(t *testing.T) {
	env := newTestEnv(t)

	ev := env.createEvent()
	assert.Equal(t, 1, ev.ID)
	assert.Equal(t, "24h Spa", ev.Name)

	rec := env.do(http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.RaceEvent](t, rec), 1)

	// partial update keeps the other fields
	rec = env.admin(http.MethodPut, "/api/events/1", map[string]any{"weather": "wet"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.RaceEvent](t, rec)
	assert.Equal(t, "24h Spa", updated.Name)
	require.NotNil(t, updated.Weather)
	assert.Equal(t, "wet", *updated.Weather)

	rec = env.admin(http.MethodDelete, "/api/events/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(http.MethodGet, "/api/events/1", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.admin(http.MethodDelete, "/api/events/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []notify.Change{
		{Kind: notify.KindEvent, Op: notify.OpCreate, ID: 1},
		{Kind: notify.KindEvent, Op: notify.OpUpdate, ID: 1},
		{Kind: notify.KindEvent, Op: notify.OpDelete, ID: 1},
	}, env.notifier.changes)
}

func TestWritePermission(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"wrong token", "other", http.StatusUnauthorized},
		{"admin", adminToken, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/events", tt.token, sampleEvent())
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestBadRequests(t *testing.T) {
	env := newTestEnv(t)
	env.createEvent()
	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"malformed json", http.MethodPost, "/api/events", "{", http.StatusBadRequest},
		{
			"missing name", http.MethodPost, "/api/events",
			map[string]any{"track": "x", "date_start": "2024-01-01", "date_end": "2024-01-02"},
			http.StatusBadRequest,
		},
		{
			"invalid date", http.MethodPost, "/api/events",
			map[string]any{"name": "x", "track": "x", "date_start": "yesterday"},
			http.StatusBadRequest,
		},
		{"invalid id", http.MethodGet, "/api/events/abc", nil, http.StatusBadRequest},
		{
			"invalid session type", http.MethodPost, "/api/events/1/sessions",
			map[string]any{"session_type": "XYZ"}, http.StatusBadRequest,
		},
		{
			"unknown event", http.MethodPost, "/api/events/99/sessions",
			map[string]any{"session_type": "R1"}, http.StatusNotFound,
		},
		{"empty name", http.MethodPut, "/api/events/1", map[string]any{"name": ""}, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/unknown", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.admin(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[map[string]any](t, rec)["error"])
		})
	}
}

func TestSessionNumbering(t *testing.T) {
	env := newTestEnv(t)
	ev := env.createEvent()

	s1 := env.createSession(ev.ID, map[string]any{"session_type": "R1"})
	s2 := env.createSession(ev.ID, map[string]any{"session_type": "R1"})
	s3 := env.createSession(ev.ID, map[string]any{"session_type": "R1", "session_number": 5})
	s4 := env.createSession(ev.ID, map[string]any{"session_type": "R1"})
	q := env.createSession(ev.ID, map[string]any{"session_type": "Q"})

	assert.Equal(t, []int{1, 2, 5, 6, 1},
		[]int{s1.SessionNumber, s2.SessionNumber, s3.SessionNumber, s4.SessionNumber, q.SessionNumber})

	rec := env.do(http.MethodGet, path("/api/events/%d/sessions", ev.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Session](t, rec), 5)
}

func TestLapsAndAnalysis(t *testing.T) {
	env := newTestEnv(t)
	ev := env.createEvent()
	s := env.createSession(ev.ID, map[string]any{
		"session_type": "R1",
		"duration":     60,
		"fuel_start":   100,
		"fuel_per_lap": 2.5,
	})

	for i, lt := range []string{"1:31.000", "1:29.000"} {
		rec := env.admin(http.MethodPost, path("/api/sessions/%d/laps", s.ID),
			map[string]any{"lap_number": i + 1, "lap_time": lt})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := env.do(http.MethodGet, path("/api/sessions/%d/laps", s.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Lap](t, rec), 2)

	// mean lap time 90s: 40 laps, 38 laps per tank
	rec = env.do(http.MethodGet, path("/api/sessions/%d/strategy", s.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	plan := decode[map[string]any](t, rec)
	assert.EqualValues(t, 40, plan["total_laps"])
	assert.EqualValues(t, 38, plan["laps_per_tank"])
	assert.EqualValues(t, 1, plan["pit_stops"])

	rec = env.do(http.MethodGet,
		path("/api/sessions/%d/strategy", s.ID)+"?tank_capacity=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, path("/api/sessions/%d/race-time", s.ID)+"?laps=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 0, decode[map[string]any](t, rec)["pit_stops"])

	rec = env.do(http.MethodGet, path("/api/sessions/%d/race-time", s.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet,
		path("/api/sessions/%d/race-time", s.ID)+"?laps=1000000000000000", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec)["error"], "laps must be within")

	// session without duration and laps
	bare := env.createSession(ev.ID, map[string]any{"session_type": "FP1"})
	rec = env.do(http.MethodGet, path("/api/sessions/%d/strategy", bare.ID), "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/sessions/99/strategy", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordsAndAdvisories(t *testing.T) {
	env := newTestEnv(t)
	ev := env.createEvent()
	s := env.createSession(ev.ID, map[string]any{"session_type": "FP1"})

	rec := env.admin(http.MethodPost, path("/api/sessions/%d/tires", s.ID), map[string]any{
		"tire_position": "FL",
		"pressure_hot":  2.1,
		"temp_inner":    92,
		"temp_middle":   85,
		"temp_outer":    83.6,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tire := decode[model.TireData](t, rec)

	rec = env.admin(http.MethodPost, path("/api/sessions/%d/tires", s.ID),
		map[string]any{"tire_position": "XX"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, path("/api/tires/%d/advisory", tire.ID)+"?target_temp=80", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	advice := decode[map[string]any](t, rec)
	assert.Equal(t, "FL", advice["tire_position"])
	assert.Equal(t, false, advice["within_target"])
	assert.Equal(t, "Reduce negative camber", advice["camber_advice"])

	rec = env.do(http.MethodGet, path("/api/sessions/%d/tire-advisory", s.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = env.admin(http.MethodPost, path("/api/sessions/%d/setups", s.ID), map[string]any{
		"front_wing":        4,
		"rear_wing":         6,
		"front_spring_rate": 120000,
		"rear_spring_rate":  100000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	setup := decode[model.SetupData](t, rec)

	rec = env.do(http.MethodGet, path("/api/setups/%d/balance", setup.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "oversteer", decode[map[string]any](t, rec)["aero"])

	rec = env.admin(http.MethodPost, path("/api/sessions/%d/engine", s.ID),
		map[string]any{"engine_map": "2", "oil_temp": 105})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	engine := decode[model.EngineData](t, rec)

	rec = env.do(http.MethodDelete, path("/api/engine/%d", engine.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.admin(http.MethodDelete, path("/api/engine/%d", engine.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(http.MethodGet, path("/api/sessions/%d/engine", s.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.EngineData](t, rec), 0)

	rec = env.admin(http.MethodPost, "/api/sessions/99/tires", map[string]any{"tire_position": "FL"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalcEndpoints(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name  string
		path  string
		body  any
		want  int
		check func(t *testing.T, got map[string]any)
	}{
		{
			"fuel consumption", "/api/calc/fuel-consumption",
			map[string]any{"laps": 10, "fuel_per_lap": 2.5}, http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.InDelta(t, 25.0, got["fuel_consumption"], 1e-9)
			},
		},
		{
			"fuel remaining negative", "/api/calc/fuel-remaining",
			map[string]any{"initial_fuel": 10, "consumed": 12}, http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.InDelta(t, -2.0, got["fuel_remaining"], 1e-9)
			},
		},
		{
			"stint strategy uses configured tank", "/api/calc/stint-strategy",
			map[string]any{"session_minutes": 60, "lap_time": 90, "fuel_per_lap": 2.5},
			http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.EqualValues(t, 38, got["laps_per_tank"])
			},
		},
		{
			"stint strategy zero fuel per lap", "/api/calc/stint-strategy",
			map[string]any{"session_minutes": 60, "lap_time": 90, "fuel_per_lap": 0},
			http.StatusBadRequest, nil,
		},
		{
			"tire pressure", "/api/calc/tire-pressure",
			map[string]any{
				"temp_inner": 90, "temp_middle": 90, "temp_outer": 90,
				"current_pressure": 2.0,
			},
			http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.InDelta(t, 1.9, got["recommended_pressure"], 1e-9)
			},
		},
		{"tire pressure missing field", "/api/calc/tire-pressure", map[string]any{}, http.StatusBadRequest, nil},
		{
			"lap time", "/api/calc/lap-time",
			map[string]any{"base_lap_time": 90, "fuel_weight_kg": 100}, http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.Equal(t, "1:33.500", got["lap_time_formatted"])
			},
		},
		{
			"tire wear capped", "/api/calc/tire-wear",
			map[string]any{"laps_on_tire": 50, "tire_life_laps": 40}, http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.InDelta(t, 100.0, got["wear_percent"], 1e-9)
			},
		},
		{
			"tire wear zero life", "/api/calc/tire-wear",
			map[string]any{"laps_on_tire": 5, "tire_life_laps": 0}, http.StatusBadRequest, nil,
		},
		{
			"race time", "/api/calc/race-time",
			map[string]any{"laps": 3, "base_lap_time": 90, "fuel_per_lap": 2.5, "initial_fuel": 100},
			http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.EqualValues(t, 0, got["pit_stops"])
			},
		},
		{
			"race time above lap limit", "/api/calc/race-time",
			map[string]any{"laps": 10001, "base_lap_time": 90, "fuel_per_lap": 2.5, "initial_fuel": 100},
			http.StatusBadRequest,
			func(t *testing.T, got map[string]any) {
				assert.Contains(t, got["error"], "laps must be within 1..10000")
			},
		},
		{
			"fuel consumption overflows", "/api/calc/fuel-consumption",
			map[string]any{"laps": 1e308, "fuel_per_lap": 10}, http.StatusBadRequest,
			func(t *testing.T, got map[string]any) {
				assert.Contains(t, got["error"], "not a finite number")
			},
		},
		{
			"stint strategy session out of range", "/api/calc/stint-strategy",
			map[string]any{"session_minutes": 1e300, "lap_time": 1, "tank_capacity": 120, "fuel_per_lap": 2.5},
			http.StatusBadRequest,
			func(t *testing.T, got map[string]any) {
				assert.Contains(t, got["error"], "out of range")
			},
		},
		{
			"setup balance zero", "/api/calc/setup-balance",
			map[string]any{
				"front_wing": 0, "rear_wing": 0,
				"front_spring_rate": 1, "rear_spring_rate": 1,
			},
			http.StatusBadRequest, nil,
		},
		{
			"format seconds", "/api/calc/format-time", map[string]any{"seconds": 65.25}, http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.Equal(t, "1:05.250", got["formatted"])
			},
		},
		{
			"parse time", "/api/calc/format-time", map[string]any{"time": "1:05.250"}, http.StatusOK,
			func(t *testing.T, got map[string]any) {
				assert.InDelta(t, 65.25, got["seconds"], 1e-9)
			},
		},
		{
			"parse invalid time", "/api/calc/format-time", map[string]any{"time": "1:75.000"},
			http.StatusBadRequest, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, tt.path, "", tt.body)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, decode[map[string]any](t, rec))
			}
		})
	}
}
