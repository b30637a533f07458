package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/auth"
	"github.com/mpapenbr/race-engineer-service-go/pkg/calc"
	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
	"github.com/mpapenbr/race-engineer-service-go/pkg/service/analysis"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFinite       = fmt.Errorf("%w: result is not a finite number", ErrBadRequest)
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error to the http status code of the response
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, calc.ErrInvalidArgument),
		errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, api.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrMissingData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON encodes v before the header is written. Values json cannot
// represent (NaN, ±Inf) are answered with 400, other encoding errors with 500.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Default().Warn("could not encode response", log.ErrorField(err))
		status = http.StatusInternalServerError
		msg := http.StatusText(status)
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) {
			status = http.StatusBadRequest
			msg = ErrNotFinite.Error()
		}
		body, _ = json.Marshal(ErrorResponse{Error: msg})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Default().Warn("could not write response", log.ErrorField(err))
	}
}

// WriteError responds with the status for err. Internal errors are logged,
// their message is not passed to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.GetFromContext(r.Context()).Error("request failed",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.ErrorField(err))
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %w", ErrBadRequest, err)
	}
	return nil
}

func PathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return id, nil
}

// QueryFloat returns def if the parameter is absent
func QueryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return v, nil
}

// QueryInt returns def if the parameter is absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return v, nil
}

func NotFound(kind string, id int) error {
	return fmt.Errorf("%w: %s %d", api.ErrNoRows, kind, id)
}

func MissingParam(name string) error {
	return fmt.Errorf("%w: missing parameter %s", ErrBadRequest, name)
}

// CheckLaps rejects lap counts outside the range of the race simulation
func CheckLaps(laps int) error {
	if laps < 1 || laps > calc.MaxRaceLaps {
		return fmt.Errorf("%w: laps must be within 1..%d (got %d)",
			ErrBadRequest, calc.MaxRaceLaps, laps)
	}
	return nil
}
