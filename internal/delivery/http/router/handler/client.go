package handler

import (
	"net"
	"strings"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// clientInfo reads the caller's address and user agent. The first X-Forwarded-For hop
// wins over the socket address.
func clientInfo(c echo.Context) usecase.ClientInfo {
	req := c.Request()

	ip := ""
	if fwd := req.Header.Get(echo.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		ip = strings.TrimSpace(first)
	}
	if ip == "" {
		host, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			host = req.RemoteAddr
		}
		ip = host
	}

	return usecase.ClientInfo{
		IP:        ip,
		UserAgent: req.UserAgent(),
	}
}

// bindAndValidate decodes the body into input and runs the struct validator.
func bindAndValidate(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("Malformed request body")
	}

	return c.Validate(input)
}

// requester returns the identity attached by RequireAuth.
func requester(c echo.Context) (*entity.Identity, error) {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil {
		return nil, domainerrors.ErrAuthRequired
	}

	return identity, nil
}
