package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ownerKey struct{}

// ownerFromContext returns the authenticated owner's id, or empty string.
func ownerFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ownerKey{}).(string)
	return v
}

// ownerClaims is the JWT payload issued by the authentication provider.
// The subject carries the owner's UUID.
type ownerClaims struct {
	jwt.RegisteredClaims
}

// Identity extracts the owner identity from the auth_token cookie or an
// Authorization bearer token and stores it in the request context. It never
// rejects the request: reads with no owner degrade to empty result sets,
// and writes fail inside the core with an explicit error that maps to 401.
func (h *Handler) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			if cookie, err := r.Cookie("auth_token"); err == nil {
				raw = cookie.Value
			}
		}
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims := &ownerClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// me handles GET /api/auth/me — returns the current owner identity.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())
	if owner == "" {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	type meResponse struct {
		OwnerID string `json:"owner_id"`
	}
	writeJSON(w, meResponse{OwnerID: owner})
}
