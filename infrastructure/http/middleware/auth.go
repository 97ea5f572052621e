package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/http/response"
)

type principalKey struct{}

type AuthMiddleware struct {
	tokenService outbound.TokenService
}

func NewAuthMiddleware(tokenService outbound.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// RequireAuth validates the bearer token and stores the acting admin in the
// request context. Every mutation downstream snapshots this principal into
// its audit entry.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		principal := entity.Principal{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
		}
		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetPrincipal retrieves the acting admin placed by RequireAuth. The second
// return is false on routes that skipped authentication.
func GetPrincipal(ctx context.Context) (entity.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(entity.Principal)
	return p, ok
}
