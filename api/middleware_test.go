package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	identityapp "tienda/internal/identity/application"
	identitydomain "tienda/internal/identity/domain"
	identityinfra "tienda/internal/identity/infrastructure"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func testAuthService(t *testing.T) (*identityapp.AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return identityapp.NewAuthService(
		identityinfra.NewUserRepository(db), "test-secret", time.Hour, log,
	), mock, func() { db.Close() }
}

func loginAs(t *testing.T, auth *identityapp.AuthService, mock sqlmock.Sqlmock, role string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at", "active"}).
			AddRow(uuid.New(), "ana@tienda.local", string(hash), role, time.Now().UTC(), true))

	token, err := auth.Login("ana@tienda.local", "secret-pass")
	require.NoError(t, err)
	return token
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	auth, _, cleanup := testAuthService(t)
	defer cleanup()

	handler := RequireAuth(auth)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pedidos", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	auth, _, cleanup := testAuthService(t)
	defer cleanup()

	handler := RequireAuth(auth)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/pedidos", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInjectsPrincipal(t *testing.T) {
	auth, mock, cleanup := testAuthService(t)
	defer cleanup()

	token := loginAs(t, auth, mock, "user")

	var seen *identityapp.Principal
	handler := RequireAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = principalFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/pedidos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ana@tienda.local", seen.Email)
}

func TestRequireAdminForbidsPlainUser(t *testing.T) {
	auth, mock, cleanup := testAuthService(t)
	defer cleanup()

	token := loginAs(t, auth, mock, "user")
	handler := RequireAuth(auth)(RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/estadisticas/ingresos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	auth, mock, cleanup := testAuthService(t)
	defer cleanup()

	token := loginAs(t, auth, mock, "admin")
	handler := RequireAuth(auth)(RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/estadisticas/ingresos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCanAccessOwner(t *testing.T) {
	ownerID := uuid.New()

	withPrincipal := func(p *identityapp.Principal) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), principalKey, p))
	}

	self := &identityapp.Principal{UserID: ownerID, Role: identitydomain.RoleUser}
	assert.True(t, canAccessOwner(withPrincipal(self), ownerID.String()))

	admin := &identityapp.Principal{UserID: uuid.New(), Role: identitydomain.RoleAdmin}
	assert.True(t, canAccessOwner(withPrincipal(admin), ownerID.String()))

	stranger := &identityapp.Principal{UserID: uuid.New(), Role: identitydomain.RoleUser}
	assert.False(t, canAccessOwner(withPrincipal(stranger), ownerID.String()))

	assert.False(t, canAccessOwner(httptest.NewRequest(http.MethodGet, "/", nil), ownerID.String()))
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	handler := RateLimit(1, 1)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/articulos", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/articulos", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
