package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/Riverafc7/esports-club-platform/services"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

var (
	ErrNoClaims     = errors.New("user claims not found in context")
	ErrInvalidClaim = errors.New("invalid claim in token")
)

// Authenticator verifies the Bearer access token on every request and stores
// its claims in the request context. 401 here is the client's contractual
// signal to attempt a refresh.
func Authenticator(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			claims, err := tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin only passes requests whose token carries the admin role.
// Must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := GetUserRoleFromContext(r.Context())
		if err != nil || role != models.RoleAdmin {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, ErrNoClaims
	}

	raw, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, ErrInvalidClaim
	}
	id, ok := raw.(float64)
	if !ok || id != float64(int(id)) || int(id) <= 0 {
		return 0, ErrInvalidClaim
	}
	return int(id), nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", ErrNoClaims
	}

	roleStr, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", ErrInvalidClaim
	}
	role := models.UserRole(roleStr)
	if role != models.RoleUser && role != models.RoleAdmin {
		return "", ErrInvalidClaim
	}
	return role, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"invalid or missing access token"}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"admin access required"}`))
}
