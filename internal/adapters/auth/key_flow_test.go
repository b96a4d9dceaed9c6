package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPKCEChallengeMatchesVerifier(t *testing.T) {
	t.Parallel()

	pkce, err := NewPKCE()
	require.NoError(t, err)

	assert.NotEmpty(t, pkce.Verifier)
	assert.Equal(t, S256Challenge(pkce.Verifier), pkce.Challenge)
	assert.NotEqual(t, pkce.Verifier, pkce.Challenge)
}

func TestBuildAuthorizationURLIncludesCallbackAndChallenge(t *testing.T) {
	t.Parallel()

	u, err := BuildAuthorizationURL(AuthorizationRequest{
		AuthURL:       DefaultAuthURL,
		CallbackURL:   "http://localhost:3000/callback?state=s1",
		CodeChallenge: "challenge-abc",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(u)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "openrouter.ai", parsed.Host)
	assert.Equal(t, "http://localhost:3000/callback?state=s1", q.Get("callback_url"))
	assert.Equal(t, "challenge-abc", q.Get("code_challenge"))
	assert.Equal(t, PKCEChallengeMethodS256, q.Get("code_challenge_method"))
}

func TestBuildAuthorizationURLRejectsNonHTTPScheme(t *testing.T) {
	t.Parallel()

	_, err := BuildAuthorizationURL(AuthorizationRequest{
		AuthURL:       "ftp://openrouter.ai/auth",
		CallbackURL:   "http://localhost:3000/callback",
		CodeChallenge: "challenge-abc",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}

func TestCallbackServerReturnsCodeOnSuccess(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state")
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	resp, err := http.Get(server.CallbackURL() + "&code=auth-code")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "You can close this window")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	code, err := server.WaitForCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auth-code", code)
}

func TestCallbackServerReturnsErrorOnStateMismatch(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state")
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	callback, err := url.Parse(server.CallbackURL())
	require.NoError(t, err)
	callback.RawQuery = "state=wrong-state&code=auth-code"

	resp, err := http.Get(callback.String())
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err = server.WaitForCode(context.Background())
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestCallbackServerTimesOut(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = server.WaitForCode(ctx)
	assert.ErrorIs(t, err, ErrCallbackTimeout)
}

func TestStartCallbackServerRequiresExpectedState(t *testing.T) {
	t.Parallel()

	_, err := StartCallbackServer("127.0.0.1:0", "")
	assert.ErrorIs(t, err, ErrMissingState)
}

func TestExchangeCodeForKeySuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body keyExchangeBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "code-abc", body.Code)
		assert.Equal(t, "verifier-xyz", body.CodeVerifier)
		assert.Equal(t, PKCEChallengeMethodS256, body.CodeChallengeMethod)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":"sk-or-issued","user_id":"u1"}`))
	}))
	defer server.Close()

	key, err := ExchangeCodeForKey(context.Background(), server.Client(), KeyExchangeRequest{
		KeysURL:      server.URL,
		Code:         "code-abc",
		CodeVerifier: "verifier-xyz",
	})
	require.NoError(t, err)
	assert.Equal(t, "sk-or-issued", key)
}

func TestExchangeCodeForKeyFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "denied", status: http.StatusForbidden, body: "denied", wantErr: "key endpoint returned status 403"},
		{name: "missing key", status: http.StatusOK, body: `{"key":""}`, wantErr: "key response missing key"},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: "decode key response"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := ExchangeCodeForKey(context.Background(), server.Client(), KeyExchangeRequest{
				KeysURL:      server.URL,
				Code:         "code-abc",
				CodeVerifier: "verifier-xyz",
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestExchangeCodeForKeyRequiresCode(t *testing.T) {
	t.Parallel()

	_, err := ExchangeCodeForKey(context.Background(), nil, KeyExchangeRequest{CodeVerifier: "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization code is required")
}
