package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"himart/config"
	deliverycontext "himart/internal/delivery/context"
	"himart/internal/delivery/http/cookie"
	"himart/internal/delivery/http/response"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Message types posted to the opener window by the Google callback page.
const (
	googleAuthSuccess = "google-auth-success"
	googleUserMissing = "user-not-found"
	googleAuthFailure = "google-auth-failure"
)

var oauthPopupTemplate = template.Must(template.New("oauth").Parse(`<!DOCTYPE html>
<html>
  <body>
    <script>
      window.opener.postMessage({{.Message}}, {{.Origin}});
      window.close();
    </script>
  </body>
</html>
`))

type popupMessage struct {
	Type  string `json:"type"`
	User  any    `json:"user,omitempty"`
	Error string `json:"error,omitempty"`
}

// RegisterRequest is the signup form. Field order sets which missing field is reported first.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required"`
	Country     string `json:"country" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// LoginRequest is the credentials login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// FacebookLoginRequest carries the access token obtained by the client SDK.
type FacebookLoginRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// AuthHandler serves the /auth routes.
type AuthHandler struct {
	auth     usecase.AuthUsecase
	sessions usecase.SessionUsecase
	jar      *cookie.Jar
	origin   string
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(
	auth usecase.AuthUsecase,
	sessions usecase.SessionUsecase,
	jar *cookie.Jar,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		jar:      jar,
		origin:   cfg.Frontend.URL,
		logger:   logger,
	}
}

func (h *AuthHandler) startSession(c echo.Context, output *usecase.AuthOutput) {
	h.jar.SetAuth(c, output.Session.Token, output.Session.TokenExpiresAt)
}

// Register creates a credentials account and logs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.auth.Register(c.Request().Context(), usecase.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
	}, clientInfo(c))
	if err != nil {
		return errors.WithStack(err)
	}
	h.startSession(c, output)

	return response.Created(c, map[string]any{"user": output.User}, "User registered successfully")
}

// Login handles the credentials login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.auth.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, clientInfo(c))
	if err != nil {
		return errors.WithStack(err)
	}
	h.startSession(c, output)

	return response.Success(c, http.StatusOK, map[string]any{"user": output.User}, "Login successful")
}

// GoogleLogin returns the consent URL and remembers its state in a cookie.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	start, err := h.auth.StartGoogleLogin(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	h.jar.SetOAuthState(c, start.State)

	return response.Success(c, http.StatusOK, map[string]string{"url": start.URL}, "Google OAuth URL generated successfully")
}

// GoogleCallback finishes the Google flow. It always answers with a page that posts the
// outcome to the frontend window that opened the popup.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	expected := h.jar.OAuthState(c)
	h.jar.ClearOAuthState(c)

	output, err := h.auth.CompleteGoogleLogin(c.Request().Context(), usecase.GoogleCallbackInput{
		Code:          c.QueryParam("code"),
		State:         c.QueryParam("state"),
		ExpectedState: expected,
	}, clientInfo(c))
	if err == nil {
		h.startSession(c, output)

		return h.renderPopup(c, http.StatusOK, popupMessage{Type: googleAuthSuccess, User: output.User})
	}

	var signupErr *domainerrors.SignupRequiredError
	if errors.As(err, &signupErr) {
		return h.renderPopup(c, http.StatusNotFound, popupMessage{Type: googleUserMissing, User: signupErr.Signup})
	}

	status, message := http.StatusInternalServerError, "Authentication failed"
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		status, message = appErr.HTTPCode(), appErr.Message()
	}
	if status >= http.StatusInternalServerError {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Error("Google login failed", slog.Any("error", err))
	}

	return h.renderPopup(c, status, popupMessage{Type: googleAuthFailure, Error: message})
}

func (h *AuthHandler) renderPopup(c echo.Context, status int, msg popupMessage) error {
	var buf bytes.Buffer
	if err := oauthPopupTemplate.Execute(&buf, map[string]any{
		"Message": msg,
		"Origin":  h.origin,
	}); err != nil {
		return errors.Wrap(err, "failed to render oauth popup")
	}

	return c.HTMLBlob(status, buf.Bytes())
}

// FacebookLogin logs in with a client-side Facebook access token.
func (h *AuthHandler) FacebookLogin(c echo.Context) error {
	var req FacebookLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.auth.FacebookLogin(c.Request().Context(), req.AccessToken, clientInfo(c))
	if err != nil {
		return errors.WithStack(err)
	}
	h.startSession(c, output)

	return response.Success(c, http.StatusOK, map[string]any{"user": output.User}, "Login successful")
}

// Session returns the logged-in user. A session whose user vanished loses its cookie.
func (h *AuthHandler) Session(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			h.jar.ClearAuth(c)
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]*entity.User{"user": user}, "")
}

// Logout destroys the current session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), identity.SessionID); err != nil {
		return errors.WithStack(err)
	}
	h.jar.ClearAuth(c)

	return response.Success(c, http.StatusOK, nil, "Logged out successfully")
}

// Refresh re-issues the auth token while its session is still alive.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.jar.Auth(c)
	if token == "" {
		return domainerrors.ErrAuthRequired
	}

	output, err := h.sessions.RefreshToken(c.Request().Context(), token)
	if err != nil {
		h.jar.ClearAuth(c)

		return errors.WithStack(err)
	}
	h.jar.SetAuth(c, output.Token, output.TokenExpiresAt)

	return response.Success(c, http.StatusOK, map[string]any{"expiresAt": output.TokenExpiresAt}, "Token refreshed successfully")
}
