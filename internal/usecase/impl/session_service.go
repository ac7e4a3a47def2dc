// Package impl contains the implementation of the application's business logic.
package impl

import (
	"cmp"
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"himart/config"
	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const sessionIDBytes = 16

type sessionService struct {
	sessionRepo  repository.SessionRepository
	tokenService service.TokenService
	geoLocator   service.GeoLocator
	sessionTTL   time.Duration
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo  repository.SessionRepository
	TokenService service.TokenService
	GeoLocator   service.GeoLocator
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSessionService creates a new session service instance.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	sessionTTL := 30 * 24 * time.Hour
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.SessionTTL > 0 {
		sessionTTL = params.Config.Auth.SessionTTL
	}

	return &sessionService{
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		geoLocator:   params.GeoLocator,
		sessionTTL:   sessionTTL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSession persists a session for the user and signs the token that points at it.
func (srv *sessionService) CreateSession(ctx context.Context, input usecase.CreateSessionInput) (*usecase.SessionOutput, error) {
	if input.User == nil {
		return nil, errors.New("session requires a user")
	}

	sessionID, err := randomHex(sessionIDBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session id")
	}

	now := time.Now().UTC()
	session := &entity.Session{
		ID:     sessionID,
		UserID: input.User.ID,
		DeviceInfo: entity.DeviceInfo{
			IP:        input.Client.IP,
			UserAgent: cmp.Or(input.Client.UserAgent, entity.UserAgentUnknown),
			Location:  srv.locate(ctx, input.Client.IP),
		},
		Provider:  input.Provider,
		CreatedAt: now,
		ExpiresAt: now.Add(srv.sessionTTL),
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	token, claims, err := srv.tokenService.Issue(input.User.ID, sessionID, input.User.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Session created",
		slog.String("userID", input.User.ID),
		slog.String("sessionID", sessionID),
		slog.String("provider", input.Provider.String()),
	)

	return &usecase.SessionOutput{
		SessionID:        sessionID,
		Token:            token,
		TokenExpiresAt:   claims.ExpiresAt,
		SessionExpiresAt: session.ExpiresAt,
	}, nil
}

// ValidateSession resolves a token to the identity of its live session.
func (srv *sessionService) ValidateSession(ctx context.Context, token string) (*entity.Identity, error) {
	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	session, err := srv.liveSession(ctx, claims)
	if err != nil {
		return nil, err
	}

	return &entity.Identity{UserID: session.UserID, SessionID: session.ID}, nil
}

// DestroySession removes the session record. Missing sessions are ignored.
func (srv *sessionService) DestroySession(ctx context.Context, sessionID string) error {
	if err := srv.sessionRepo.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	srv.log(ctx).Debug("Session destroyed", slog.String("sessionID", sessionID))

	return nil
}

// RefreshToken issues a fresh token for the session of a possibly expired token.
func (srv *sessionService) RefreshToken(ctx context.Context, token string) (*usecase.SessionOutput, error) {
	claims, err := srv.tokenService.VerifySignature(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	session, err := srv.liveSession(ctx, claims)
	if err != nil {
		return nil, err
	}

	fresh, freshClaims, err := srv.tokenService.Issue(session.UserID, session.ID, claims.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.SessionOutput{
		SessionID:        session.ID,
		Token:            fresh,
		TokenExpiresAt:   freshClaims.ExpiresAt,
		SessionExpiresAt: session.ExpiresAt,
	}, nil
}

// liveSession loads the session named by claims. An expired session is deleted before it is rejected.
func (srv *sessionService) liveSession(ctx context.Context, claims *entity.SessionClaims) (*entity.Session, error) {
	session, err := srv.sessionRepo.FindByID(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, domainerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.UserID != claims.UserID {
		return nil, domainerrors.ErrInvalidToken
	}

	if session.IsExpired(time.Now()) {
		if err := srv.sessionRepo.Delete(ctx, session.ID); err != nil {
			srv.log(ctx).Warn("Failed to delete expired session",
				slog.String("sessionID", session.ID),
				slog.Any("error", err),
			)
		}

		return nil, domainerrors.ErrSessionExpired
	}

	return session, nil
}

// locate never fails; lookups that error fall back to the unknown location.
func (srv *sessionService) locate(ctx context.Context, ip string) entity.GeoLocation {
	if srv.geoLocator == nil || ip == "" {
		return entity.UnknownLocation()
	}

	location, err := srv.geoLocator.Locate(ctx, ip)
	if err != nil || location == nil {
		srv.log(ctx).Debug("Geolocation unavailable", slog.String("ip", ip), slog.Any("error", err))

		return entity.UnknownLocation()
	}

	return *location
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.WithStack(err)
	}

	return hex.EncodeToString(buf), nil
}
