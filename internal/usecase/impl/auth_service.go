package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const oauthStateBytes = 16

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// identityAssertion is one way of proving who a user is. Every login flow resolves its
// assertion to a stored user and then shares the same session creation.
type identityAssertion interface {
	provider() entity.Provider
	resolve(ctx context.Context, srv *authService) (*entity.User, error)
}

type credentialsAssertion struct {
	email    string
	password string
}

func (credentialsAssertion) provider() entity.Provider { return entity.ProviderCredentials }

func (a credentialsAssertion) resolve(ctx context.Context, srv *authService) (*entity.User, error) {
	user, err := srv.findByEmail(ctx, a.email)
	if err != nil {
		return nil, err
	}

	if !user.HasPassword() || !srv.hasher.Check(a.password, user.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return user, nil
}

type googleAssertion struct {
	identity *service.ExternalIdentity
}

func (googleAssertion) provider() entity.Provider { return entity.ProviderGoogle }

func (a googleAssertion) resolve(ctx context.Context, srv *authService) (*entity.User, error) {
	if !a.identity.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	user, err := srv.findExternal(ctx, a.identity)
	if err != nil {
		return nil, err
	}

	user.GoogleID = a.identity.Subject
	user.EmailVerified = true
	if a.identity.RefreshToken != "" {
		user.GoogleRefreshToken = a.identity.RefreshToken
	}
	if a.identity.Picture != "" {
		user.Picture = a.identity.Picture
	}

	return user, srv.link(ctx, user)
}

type facebookAssertion struct {
	identity *service.ExternalIdentity
}

func (facebookAssertion) provider() entity.Provider { return entity.ProviderFacebook }

func (a facebookAssertion) resolve(ctx context.Context, srv *authService) (*entity.User, error) {
	if a.identity.Email == "" {
		return nil, domainerrors.ErrEmailNotProvided
	}

	user, err := srv.findExternal(ctx, a.identity)
	if err != nil {
		return nil, err
	}

	user.FacebookID = a.identity.Subject
	user.FacebookAccessToken = a.identity.AccessToken
	if a.identity.Picture != "" {
		user.Picture = a.identity.Picture
	}

	return user, srv.link(ctx, user)
}

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	sessions usecase.SessionUsecase
	google   service.GoogleAuthenticator
	facebook service.FacebookAuthenticator
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Sessions usecase.SessionUsecase
	Google   service.GoogleAuthenticator
	Facebook service.FacebookAuthenticator
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		sessions: params.Sessions,
		google:   params.Google,
		facebook: params.Facebook,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a credentials account and logs it in.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput, client usecase.ClientInfo) (*usecase.AuthOutput, error) {
	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, domainerrors.ErrInvalidEmail
	}

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:          uuid.NewString(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Email:       email,
		PhoneNumber: input.PhoneNumber,
		JoinedOn:    time.Now().UTC(),
		Password:    hashedPassword,
		Addresses: []entity.Address{{
			Street:     input.Address,
			City:       input.City,
			State:      input.State,
			PostalCode: input.PostalCode,
			Country:    input.Country,
			Default:    true,
		}},
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID))

	return srv.startSession(ctx, user, entity.ProviderCredentials, client)
}

// Login authenticates with email and password.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput, client usecase.ClientInfo) (*usecase.AuthOutput, error) {
	switch {
	case input.Email == "":
		return nil, domainerrors.MissingField("email")
	case input.Password == "":
		return nil, domainerrors.MissingField("password")
	}

	return srv.login(ctx, credentialsAssertion{email: strings.TrimSpace(input.Email), password: input.Password}, client)
}

// StartGoogleLogin builds the consent URL bound to a fresh state value.
func (srv *authService) StartGoogleLogin(_ context.Context) (*usecase.GoogleAuthStart, error) {
	state, err := randomHex(oauthStateBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate oauth state")
	}

	return &usecase.GoogleAuthStart{URL: srv.google.AuthCodeURL(state), State: state}, nil
}

// CompleteGoogleLogin checks state, exchanges the code and logs the linked user in.
func (srv *authService) CompleteGoogleLogin(ctx context.Context, input usecase.GoogleCallbackInput, client usecase.ClientInfo) (*usecase.AuthOutput, error) {
	if input.State == "" || input.State != input.ExpectedState {
		return nil, domainerrors.ErrOAuthStateMismatch
	}
	if input.Code == "" {
		return nil, domainerrors.MissingField("code")
	}

	identity, err := srv.google.Exchange(ctx, input.Code)
	if err != nil {
		srv.log(ctx).Warn("Google code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthFailed
	}

	return srv.login(ctx, googleAssertion{identity: identity}, client)
}

// FacebookLogin introspects a client-side access token and logs the linked user in.
func (srv *authService) FacebookLogin(ctx context.Context, accessToken string, client usecase.ClientInfo) (*usecase.AuthOutput, error) {
	if accessToken == "" {
		return nil, domainerrors.MissingField("accessToken")
	}

	identity, err := srv.facebook.Me(ctx, accessToken)
	if err != nil {
		srv.log(ctx).Warn("Facebook token introspection failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthFailed
	}

	return srv.login(ctx, facebookAssertion{identity: identity}, client)
}

// CurrentUser loads the profile of an authenticated user.
func (srv *authService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// Logout destroys the caller's session.
func (srv *authService) Logout(ctx context.Context, sessionID string) error {
	return srv.sessions.DestroySession(ctx, sessionID)
}

func (srv *authService) login(ctx context.Context, assertion identityAssertion, client usecase.ClientInfo) (*usecase.AuthOutput, error) {
	user, err := assertion.resolve(ctx, srv)
	if err != nil {
		return nil, err
	}

	return srv.startSession(ctx, user, assertion.provider(), client)
}

func (srv *authService) startSession(ctx context.Context, user *entity.User, provider entity.Provider, client usecase.ClientInfo) (*usecase.AuthOutput, error) {
	session, err := srv.sessions.CreateSession(ctx, usecase.CreateSessionInput{
		User:     user,
		Client:   client,
		Provider: provider,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	srv.log(ctx).Info("User logged in", slog.String("userID", user.ID), slog.String("provider", provider.String()))

	return &usecase.AuthOutput{User: user, Session: session}, nil
}

func (srv *authService) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user, nil
}

// findExternal signals a missing account with the signup prefill rather than a bare not-found.
func (srv *authService) findExternal(ctx context.Context, identity *service.ExternalIdentity) (*entity.User, error) {
	user, err := srv.findByEmail(ctx, identity.Email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.NewSignupRequiredError(domainerrors.SignupData{
			Email:     identity.Email,
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
			Picture:   identity.Picture,
		})
	}

	return user, err
}

func (srv *authService) link(ctx context.Context, user *entity.User) error {
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to link provider account")
	}

	return nil
}
