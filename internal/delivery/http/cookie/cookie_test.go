package cookie

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"himart/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestJar_SetAuth(t *testing.T) {
	cfg := &config.Config{Cookie: &config.CookieConfig{Secure: false, SameSite: "none", Domain: "example.com"}}
	jar := NewJar(cfg)

	c, rec := newContext()
	jar.SetAuth(c, "tok", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, AuthToken, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, "example.com", ck.Domain)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure, "SameSite=None forces Secure")
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	assert.Greater(t, ck.MaxAge, 0)
}

func TestJar_ClearAuth(t *testing.T) {
	jar := NewJar(&config.Config{})

	c, rec := newContext()
	jar.ClearAuth(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AuthToken, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestJar_Read(t *testing.T) {
	jar := NewJar(&config.Config{})

	c, _ := newContext(&http.Cookie{Name: AuthToken, Value: "tok"}, &http.Cookie{Name: OAuthState, Value: "st"})
	assert.Equal(t, "tok", jar.Auth(c))
	assert.Equal(t, "st", jar.OAuthState(c))

	empty, _ := newContext()
	assert.Empty(t, jar.Auth(empty))
}

func TestPreferences(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "json array", value: url.QueryEscape(`["electronics"," phones "]`), want: []string{"electronics", "phones"}},
		{name: "comma list", value: "books,,garden", want: []string{"books", "garden"}},
		{name: "broken json", value: url.QueryEscape(`["x"`), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(&http.Cookie{Name: UserPreferences, Value: tt.value})
			assert.Equal(t, tt.want, Preferences(c))
		})
	}

	c, _ := newContext()
	assert.Nil(t, Preferences(c))
}
