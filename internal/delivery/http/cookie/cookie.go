// Package cookie reads and writes the cookies the API owns: the auth token, the OAuth
// state and the storefront preference list.
package cookie

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"himart/config"

	"github.com/labstack/echo/v4"
)

// Cookie names
const (
	AuthToken       = "auth_token"
	OAuthState      = "oauth_state"
	UserPreferences = "userPreferences"
)

const oauthStateTTL = 10 * time.Minute

// Jar applies the configured cookie attributes.
type Jar struct {
	secure   bool
	sameSite http.SameSite
	domain   string
}

// NewJar builds a Jar from the cookie configuration.
func NewJar(cfg *config.Config) *Jar {
	jar := &Jar{sameSite: http.SameSiteLaxMode}
	if cfg.Cookie == nil {
		return jar
	}

	jar.secure = cfg.Cookie.Secure
	jar.domain = cfg.Cookie.Domain
	jar.sameSite = parseSameSite(cfg.Cookie.SameSite)
	// Browsers drop SameSite=None cookies that are not Secure.
	if jar.sameSite == http.SameSiteNoneMode {
		jar.secure = true
	}

	return jar
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (j *Jar) write(c echo.Context, name, value string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   j.domain,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: j.sameSite,
	})
}

func read(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return ck.Value
}

// SetAuth stores the session token until the token expires.
func (j *Jar) SetAuth(c echo.Context, token string, expiresAt time.Time) {
	j.write(c, AuthToken, token, expiresAt)
}

// ClearAuth expires the auth cookie.
func (j *Jar) ClearAuth(c echo.Context) {
	j.write(c, AuthToken, "", time.Unix(0, 0))
}

// Auth returns the auth token, or "" when the cookie is absent.
func (j *Jar) Auth(c echo.Context) string {
	return read(c, AuthToken)
}

// SetOAuthState remembers the state handed to Google until the callback comes back.
func (j *Jar) SetOAuthState(c echo.Context, state string) {
	j.write(c, OAuthState, state, time.Now().Add(oauthStateTTL))
}

// ClearOAuthState expires the OAuth state cookie.
func (j *Jar) ClearOAuthState(c echo.Context) {
	j.write(c, OAuthState, "", time.Unix(0, 0))
}

// OAuthState returns the remembered OAuth state.
func (j *Jar) OAuthState(c echo.Context) string {
	return read(c, OAuthState)
}

// Preferences decodes the client-managed preference cookie. It accepts a JSON array
// or a comma separated list and ignores anything else.
func Preferences(c echo.Context) []string {
	raw := read(c, UserPreferences)
	if raw == "" {
		return nil
	}
	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}

	var prefs []string
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
			return nil
		}
	} else {
		prefs = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
