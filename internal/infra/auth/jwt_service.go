// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"himart/config"
	"himart/internal/domain/entity"
	"himart/internal/domain/service"
	"himart/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the JWT payload: the session binding plus registered claims.
type sessionClaims struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// Startup fails when no signing secret is configured.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Session, ttl, time.Now), nil
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue signs a token for the given session.
func (s *jwtService) Issue(userID, sessionID, email string) (string, *entity.SessionClaims, error) {
	now := s.now()
	claims := sessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign token")
	}

	return token, toSessionClaims(&claims), nil
}

// Verify checks the signature and the expiry of a token.
func (s *jwtService) Verify(token string) (*entity.SessionClaims, error) {
	return s.parse(token, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
}

// VerifySignature checks the signature only so that an expired token can still name its session.
func (s *jwtService) VerifySignature(token string) (*entity.SessionClaims, error) {
	return s.parse(token, jwt.WithoutClaimsValidation())
}

func (s *jwtService) parse(token string, opts ...jwt.ParserOption) (*entity.SessionClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.WithStack(service.ErrTokenExpired)
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	if claims.UserID == "" || claims.SessionID == "" {
		return nil, errors.Wrap(service.ErrTokenInvalid, "token is missing session binding")
	}

	return toSessionClaims(claims), nil
}

func toSessionClaims(c *sessionClaims) *entity.SessionClaims {
	out := &entity.SessionClaims{
		UserID:    c.UserID,
		SessionID: c.SessionID,
		Email:     c.Email,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}

	return out
}
