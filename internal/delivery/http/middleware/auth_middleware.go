package middleware

import (
	deliverycontext "himart/internal/delivery/context"
	"himart/internal/delivery/http/cookie"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the auth cookie to a session identity.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
	jar      *cookie.Jar
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase, jar *cookie.Jar) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, jar: jar}
}

// RequireAuth rejects requests without a live session. A cookie that fails validation
// is cleared so the browser stops sending it.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.jar.Auth(c)
		if token == "" {
			return domainerrors.ErrAuthRequired
		}

		identity, err := m.sessions.ValidateSession(c.Request().Context(), token)
		if err != nil {
			m.jar.ClearAuth(c)

			return err
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

// OptionalAuth attaches an identity when the cookie is valid and lets anonymous
// requests through otherwise.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.jar.Auth(c)
		if token == "" {
			return next(c)
		}

		identity, err := m.sessions.ValidateSession(c.Request().Context(), token)
		if err != nil {
			m.jar.ClearAuth(c)

			return next(c)
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}
