package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in access tokens.
const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
)

type authClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type identityKey struct{}

type identity struct {
	userID int64
	role   string
}

// RequireAuth validates the HS256 bearer token and injects the requester's
// id and role into the request context. Token issuance lives outside this
// service; only verification happens here.
func RequireAuth(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.UserID <= 0 {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity{
			userID: claims.UserID,
			role:   claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated requests whose token carries a
// different role. Must be wrapped by RequireAuth.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFromContext(r.Context())
		if !ok || id.role != role {
			writeError(w, http.StatusForbidden, codeForbidden, "insufficient role")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromContext(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	return id, ok
}
