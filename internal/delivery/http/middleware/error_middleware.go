package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/delivery/http/response"
	domainerrors "himart/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	// Signup-required still answers 404 but hands the client its prefill data
	var signupErr *domainerrors.SignupRequiredError
	if errors.As(err, &signupErr) {
		m.write(c, logger, response.ErrorWithData(c, signupErr.HTTPCode(), signupErr.ErrorCode(),
			signupErr.Message(), signupErr.Details(), map[string]any{"signupData": signupErr.Signup}))

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.Any("error", err))
			m.write(c, logger, response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), ""))

			return
		}
		m.write(c, logger, response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details()))

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
		m.write(c, logger, response.Error(c, httpErr.Code, "HTTP_ERROR", message, message))

		return
	}

	// Default to internal error; the cause stays in the logs
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	m.write(c, logger, response.Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode(),
		domainerrors.ErrInternalError.Message(), ""))
}

func (m *ErrorMiddleware) write(c echo.Context, logger *slog.Logger, err error) {
	if err != nil {
		logger.Warn("Failed to write error response", slog.Any("error", err))
	}
}
