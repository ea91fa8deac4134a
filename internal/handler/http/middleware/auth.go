package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a valid access token and stores the
// caller's principal in the request context. Runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		principal, err := jwt.PrincipalFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	}
	return http.HandlerFunc(hfn)
}

// AuthOptional attaches a principal when a token is present and passes anonymous
// requests through. A token that is present but invalid is still rejected.
func AuthOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := jwt.PrincipalFromContext(r.Context())
		switch {
		case errors.Is(err, auth.ErrNoToken):
			next.ServeHTTP(w, r)
		case err != nil:
			response.HandleError(w, err)
		default:
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
	})
}
