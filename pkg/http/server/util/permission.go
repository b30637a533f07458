package util

import (
	"context"
	"net/http"

	"github.com/mpapenbr/race-engineer-service-go/pkg/auth"
	"github.com/mpapenbr/race-engineer-service-go/pkg/permission"
)

// CheckPermission returns ErrUnauthenticated for anonymous requests and
// auth.ErrPermissionDenied if the authenticated caller lacks perm.
//
//nolint:whitespace // editor/linter issue
func CheckPermission(
	ctx context.Context,
	pe permission.PermissionEvaluator,
	perm permission.Permission,
) error {
	a := auth.FromContext(ctx)
	if pe != nil && pe.HasPermission(a, perm) {
		return nil
	}
	if a == nil || len(a.Roles()) == 0 {
		return ErrUnauthenticated
	}
	return auth.ErrPermissionDenied
}

// RequirePermission rejects requests of callers lacking perm
//
//nolint:whitespace // editor/linter issue
func RequirePermission(
	pe permission.PermissionEvaluator,
	perm permission.Permission,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckPermission(r.Context(), pe, perm); err != nil {
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
