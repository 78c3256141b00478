package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// RequireAuth verifies the Authorization header carries a valid bearer token
// and stores the caller identity in the request context.
func RequireAuth(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.RespondError(w, fmt.Errorf("%w: missing authorization header", httpx.ErrUnauthorized))
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpx.RespondError(w, fmt.Errorf("%w: authorization header must be 'Bearer <token>'", httpx.ErrUnauthorized))
				return
			}
			claims, err := issuer.Verify(parts[1])
			if err != nil {
				httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrUnauthorized, err))
				return
			}
			ctx := shared.ContextWithIdentity(r.Context(), shared.Identity{UserID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
