package auth

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/mpapenbr/race-engineer-service-go/log"
)

const (
	TokenHeader = "api-token"
)

type (
	AuthenticationProvider interface {
		Authenticate(ctx context.Context, h http.Header) (Authentication, error)
	}
	Option     func(*middleware)
	middleware struct {
		adminToken   string
		authProvider []AuthenticationProvider
		l            *log.Logger
	}
	anonymousAuthenticator struct{}
	apiKeyAuthenticator    struct {
		adminToken string
	}
)

func WithAdminToken(token string) Option {
	return func(m *middleware) {
		m.adminToken = token
	}
}

// NewMiddleware stores the authentication of the request in the request
// context. Requests without a known token are authenticated as anonymous.
func NewMiddleware(opts ...Option) func(http.Handler) http.Handler {
	m := &middleware{l: log.Default().Named("http.auth")}
	for _, opt := range opts {
		opt(m)
	}
	m.authProvider = []AuthenticationProvider{
		&apiKeyAuthenticator{adminToken: m.adminToken},
		&anonymousAuthenticator{},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(m.handleAuth(r.Context(), r.Header)))
		})
	}
}

func (m *middleware) handleAuth(ctx context.Context, h http.Header) context.Context {
	for _, p := range m.authProvider {
		a, err := p.Authenticate(ctx, h)
		if a != nil {
			return AddAuthToContext(ctx, a)
		}
		if err != nil {
			m.l.Error("error authenticating", log.ErrorField(err))
		}
	}
	return ctx
}

//nolint:whitespace // editor/linter issue
func (a *anonymousAuthenticator) Authenticate(
	ctx context.Context,
	h http.Header,
) (Authentication, error) {
	return anon, nil
}

//nolint:whitespace // editor/linter issue
func (a *apiKeyAuthenticator) Authenticate(
	ctx context.Context,
	h http.Header,
) (Authentication, error) {
	token := h.Get(TokenHeader)
	if token == "" || a.adminToken == "" {
		return nil, nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) == 1 {
		return NewSimpleAuth("admin", RoleAdmin), nil
	}
	return nil, nil
}
