package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"himart/config"
	deliverycontext "himart/internal/delivery/context"
	"himart/internal/delivery/http/cookie"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/infra/auth"
	"himart/internal/infra/persistence/postgres"
	"himart/internal/infra/persistence/postgres/testdb"
	"himart/internal/usecase"
	"himart/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, usecase.SessionUsecase) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = "test-secret"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour, SessionTTL: time.Hour}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	sessions := impl.NewSessionService(impl.SessionServiceParams{
		SessionRepo:  postgres.NewSessionRepository(testdb.New(t)),
		TokenService: tokens,
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return NewAuthMiddleware(sessions, cookie.NewJar(cfg)), sessions
}

func issueToken(t *testing.T, sessions usecase.SessionUsecase) *usecase.SessionOutput {
	t.Helper()

	out, err := sessions.CreateSession(context.Background(), usecase.CreateSessionInput{
		User:     &entity.User{ID: "u1", Email: "ada@example.com"},
		Provider: entity.ProviderCredentials,
	})
	require.NoError(t, err)

	return out
}

func serve(handler echo.HandlerFunc, token string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.AuthToken, Value: token})
	}
	rec := httptest.NewRecorder()

	return rec, handler(echo.New().NewContext(req, rec))
}

func clearedAuthCookie(rec *httptest.ResponseRecorder) bool {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookie.AuthToken && ck.Value == "" {
			return true
		}
	}

	return false
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	m, sessions := newAuthMiddleware(t)
	session := issueToken(t, sessions)

	var seen *entity.Identity
	next := func(c echo.Context) error {
		seen = deliverycontext.GetIdentity(c)
		assert.Equal(t, seen, deliverycontext.GetIdentityFromContext(c.Request().Context()))

		return c.NoContent(http.StatusOK)
	}
	handler := m.RequireAuth(next)

	t.Run("no cookie", func(t *testing.T) {
		rec, err := serve(handler, "")
		assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
		assert.False(t, clearedAuthCookie(rec))
	})

	t.Run("garbage token clears cookie", func(t *testing.T) {
		rec, err := serve(handler, "not-a-token")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
		assert.True(t, clearedAuthCookie(rec))
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		rec, err := serve(handler, session.Token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, &entity.Identity{UserID: "u1", SessionID: session.SessionID}, seen)
	})

	t.Run("destroyed session is rejected", func(t *testing.T) {
		require.NoError(t, sessions.DestroySession(context.Background(), session.SessionID))

		rec, err := serve(handler, session.Token)
		assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
		assert.True(t, clearedAuthCookie(rec))
	})
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	m, sessions := newAuthMiddleware(t)
	session := issueToken(t, sessions)

	tests := []struct {
		name         string
		token        string
		wantIdentity bool
		wantCleared  bool
	}{
		{name: "anonymous"},
		{name: "invalid token proceeds anonymously", token: "bogus", wantCleared: true},
		{name: "valid token", token: session.Token, wantIdentity: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := m.OptionalAuth(func(c echo.Context) error {
				called = true
				assert.Equal(t, tt.wantIdentity, deliverycontext.GetIdentity(c) != nil)

				return nil
			})

			rec, err := serve(handler, tt.token)
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, tt.wantCleared, clearedAuthCookie(rec))
		})
	}
}
