package usecase

import (
	"context"

	"himart/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput holds the signup form. Address fields become the user's default address.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth string
	Address     string
	City        string
	State       string
	PostalCode  string
	Country     string
	PhoneNumber string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleCallbackInput is the redirect from Google plus the state the client was given.
type GoogleCallbackInput struct {
	Code          string
	State         string
	ExpectedState string
}

// --- Output DTOs ---

// AuthOutput is a logged-in user with the session created for them.
type AuthOutput struct {
	User    *entity.User
	Session *SessionOutput
}

// GoogleAuthStart is the consent URL and the state value to remember until the callback.
type GoogleAuthStart struct {
	URL   string
	State string
}

// AuthUsecase covers every way a user gets into or out of a session.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput, client ClientInfo) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput, client ClientInfo) (*AuthOutput, error)
	StartGoogleLogin(ctx context.Context) (*GoogleAuthStart, error)
	CompleteGoogleLogin(ctx context.Context, input GoogleCallbackInput, client ClientInfo) (*AuthOutput, error)
	FacebookLogin(ctx context.Context, accessToken string, client ClientInfo) (*AuthOutput, error)
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
	Logout(ctx context.Context, sessionID string) error
}
