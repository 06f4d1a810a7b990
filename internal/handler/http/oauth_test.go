package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookie {
			return c
		}
	}
	return nil
}

func TestOAuthLogin_RedirectsWithState(t *testing.T) {
	ts := newTestServer(t)
	var gotState string
	ts.oauth.authURLFn = func(provider, state string) (string, error) {
		assert.Equal(t, "github", provider)
		gotState = state
		return "https://github.test/login/oauth/authorize?state=" + url.QueryEscape(state), nil
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/auth/oauth/github", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "https://github.test/login/oauth/authorize")

	cookie := stateCookie(rec)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, gotState)
	assert.Equal(t, gotState, cookie.Value)
	assert.Equal(t, oauthCookiePath, cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

func TestOAuthLogin_UnknownProvider(t *testing.T) {
	ts := newTestServer(t)
	ts.oauth.authURLFn = func(string, string) (string, error) {
		return "", service.ErrUnknownProvider
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/auth/oauth/myspace", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgUnknownProvider, decodeOutcome(t, rec).Message)
	assert.Nil(t, stateCookie(rec))
}

func TestOAuthCallback(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		cookie     string
		wantStatus int
		wantLogin  bool
	}{
		{
			name:       "matching state",
			query:      "?code=c0de&state=s1",
			cookie:     "s1",
			wantStatus: http.StatusOK,
			wantLogin:  true,
		},
		{
			name:       "state mismatch",
			query:      "?code=c0de&state=forged",
			cookie:     "s1",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing state cookie",
			query:      "?code=c0de&state=s1",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "provider denied",
			query:      "?error=access_denied&state=s1",
			cookie:     "s1",
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			loggedIn := false
			ts.oauth.callbackFn = func(sess *models.Session, provider, code string) (models.Outcome, error) {
				loggedIn = true
				assert.Equal(t, "github", provider)
				assert.Equal(t, "c0de", code)
				require.NoError(t, ts.sessions.Start(t.Context(), sess, 9, false))
				return models.Success(app.MsgLoginSuccessful, "/"), nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/auth/oauth/github/callback"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: tt.cookie})
			}
			rec := ts.do(req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLogin, loggedIn)

			state := stateCookie(rec)
			require.NotNil(t, state, "state cookie is always consumed")
			assert.Equal(t, -1, state.MaxAge)

			if tt.wantLogin {
				assert.NotNil(t, sessionCookie(rec))
			} else {
				out := decodeOutcome(t, rec)
				assert.Equal(t, app.MsgExternalLoginFailed, out.Message)
				assert.Equal(t, "/login", out.Redirect)
			}
		})
	}
}
