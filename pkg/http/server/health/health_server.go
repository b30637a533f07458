package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mpapenbr/race-engineer-service-go/pkg/http/server/util"
)

type (
	Response struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	// Checker reports an error if a required service is not available
	Checker func(r *http.Request) error
)

func NewServer(checks ...Checker) *healthServer {
	return &healthServer{checks: checks}
}

type healthServer struct {
	checks []Checker
}

func (s *healthServer) Register(r chi.Router) {
	r.Get("/health", s.getHealth)
}

// getHealth responds with 503 if one of the checks fails
func (s *healthServer) getHealth(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.checks {
		if err := check(r); err != nil {
			util.WriteJSON(w, http.StatusServiceUnavailable,
				Response{Status: "unhealthy", Timestamp: time.Now().UTC()})
			return
		}
	}
	util.WriteJSON(w, http.StatusOK, Response{Status: "healthy", Timestamp: time.Now().UTC()})
}
