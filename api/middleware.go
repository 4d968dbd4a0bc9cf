package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	identityapp "tienda/internal/identity/application"
	identitydomain "tienda/internal/identity/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// principalFrom extrait l'identité vérifiée du contexte de requête
func principalFrom(r *http.Request) *identityapp.Principal {
	principal, _ := r.Context().Value(principalKey).(*identityapp.Principal)
	return principal
}

// RequestLogger logge chaque requête avec sa durée
func RequestLogger(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("request handled")
		})
	}
}

// RateLimit limite le débit global de l'API. Au-delà de la limite, la
// requête est refusée avec 429 sans attente.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth vérifie le token Bearer et place l'identité dans le
// contexte de la requête
func RequireAuth(auth *identityapp.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			principal, err := auth.Verify(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin refuse les identités sans rôle admin. À monter derrière
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := principalFrom(r)
		if principal == nil || principal.Role != identitydomain.RoleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// canAccessOwner vérifie que l'identité accède à ses propres ressources;
// le rôle admin accède à tout
func canAccessOwner(r *http.Request, ownerID string) bool {
	principal := principalFrom(r)
	if principal == nil {
		return false
	}
	return principal.Role == identitydomain.RoleAdmin || principal.UserID.String() == ownerID
}
