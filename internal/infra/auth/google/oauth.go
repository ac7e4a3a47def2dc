// Package google implements the server-side Google sign-in flow.
package google

import (
	"context"

	"himart/config"
	"himart/internal/domain/service"
	"himart/internal/errors"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

var defaultScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// idTokenVerifier matches idtoken.Validate.
type idTokenVerifier func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Authenticator runs the authorization code flow and verifies the returned ID token.
type Authenticator struct {
	oauthConfig *oauth2.Config
	verify      idTokenVerifier
}

// NewAuthenticator creates the Google authenticator from configuration.
func NewAuthenticator(cfg *config.Config) service.GoogleAuthenticator {
	oauthCfg := &oauth2.Config{
		Endpoint: googleoauth.Endpoint,
		Scopes:   defaultScopes,
	}
	if cfg.GoogleOAuth != nil {
		oauthCfg.ClientID = cfg.GoogleOAuth.ClientID
		oauthCfg.ClientSecret = cfg.GoogleOAuth.ClientSecret
		oauthCfg.RedirectURL = cfg.GoogleOAuth.RedirectURI
	}

	return newAuthenticator(oauthCfg, idtoken.Validate)
}

func newAuthenticator(oauthCfg *oauth2.Config, verify idTokenVerifier) *Authenticator {
	return &Authenticator{
		oauthConfig: oauthCfg,
		verify:      verify,
	}
}

// AuthCodeURL requests offline access and forces the consent screen so a refresh token is returned.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades the code for tokens and returns the identity asserted by the ID token.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*service.ExternalIdentity, error) {
	if code == "" {
		return nil, errors.New("authorization code is empty")
	}

	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange authorization code")
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		return nil, errors.New("token response has no id_token")
	}

	payload, err := a.verify(ctx, rawIDToken, a.oauthConfig.ClientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify id token")
	}

	identity := identityFromPayload(payload)
	identity.RefreshToken = token.RefreshToken
	identity.AccessToken = token.AccessToken

	return identity, nil
}
