// Package facebook introspects client-side Facebook access tokens through the Graph API.
package facebook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"himart/config"
	"himart/internal/domain/entity"
	"himart/internal/domain/service"
	"himart/internal/errors"

	"golang.org/x/oauth2"
)

const (
	defaultGraphURL     = "https://graph.facebook.com"
	defaultGraphVersion = "v12.0"
	profileFields       = "id,first_name,last_name,email,picture"
)

type graphProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GraphClient reads the profile behind an access token.
type GraphClient struct {
	meURL string
}

// NewGraphClient builds the client from configuration.
func NewGraphClient(cfg *config.Config) service.FacebookAuthenticator {
	base, version := defaultGraphURL, defaultGraphVersion
	if cfg.Facebook != nil {
		if cfg.Facebook.GraphURL != "" {
			base = cfg.Facebook.GraphURL
		}
		if cfg.Facebook.GraphVersion != "" {
			version = cfg.Facebook.GraphVersion
		}
	}

	return newGraphClient(base, version)
}

func newGraphClient(base, version string) *GraphClient {
	return &GraphClient{
		meURL: strings.TrimRight(base, "/") + "/" + version + "/me?fields=" + profileFields,
	}
}

// Me returns the profile of the token's owner. The token is sent as a bearer credential.
func (g *GraphClient) Me(ctx context.Context, accessToken string) (*service.ExternalIdentity, error) {
	if accessToken == "" {
		return nil, errors.New("access token is empty")
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.meURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build graph request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "graph request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read graph response")
	}

	if resp.StatusCode != http.StatusOK {
		var gErr graphError
		if json.Unmarshal(body, &gErr) == nil && gErr.Error.Message != "" {
			return nil, errors.Errorf("graph api error %d: %s", resp.StatusCode, gErr.Error.Message)
		}

		return nil, errors.Errorf("graph api returned status %d", resp.StatusCode)
	}

	var profile graphProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, errors.Wrap(err, "failed to decode graph profile")
	}

	return &service.ExternalIdentity{
		Provider:    entity.ProviderFacebook,
		Subject:     profile.ID,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Picture:     profile.Picture.Data.URL,
		AccessToken: accessToken,
	}, nil
}
