package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zayo-client/internal/auth"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

func newTokenServer(t *testing.T, status int, body interface{}) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		_, _, hasBasic := r.BasicAuth()
		assert.False(t, hasBasic, "credentials must travel in the form body")

		err := r.ParseForm()
		assert.NoError(t, err)
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "client-id", r.Form.Get("client_id"))
		assert.Equal(t, "client-secret", r.Form.Get("client_secret"))
		assert.Equal(t, "openid", r.Form.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	return server, &calls
}

func testConfig(url string) *auth.OAuth2Config {
	return &auth.OAuth2Config{
		TokenURL:     url + "/oauth/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		server, calls := newTokenServer(t, http.StatusOK, map[string]interface{}{
			"access_token": "zayo-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})

		token, err := auth.Authenticate(context.Background(), testConfig(server.URL))
		require.NoError(t, err)
		assert.Equal(t, "zayo-token", token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
		assert.True(t, token.Valid())
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("rejected credentials are not retried", func(t *testing.T) {
		t.Parallel()

		server, calls := newTokenServer(t, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})

		token, err := auth.Authenticate(context.Background(), testConfig(server.URL))
		require.Error(t, err)
		assert.Nil(t, token)

		authErr := &zayo.AuthError{}
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Contains(t, authErr.Body, "invalid_client")
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("missing access token", func(t *testing.T) {
		t.Parallel()

		server, _ := newTokenServer(t, http.StatusOK, map[string]string{"token_type": "Bearer"})

		_, err := auth.Authenticate(context.Background(), testConfig(server.URL))
		require.Error(t, err)
		assert.True(t, zayo.IsUnauthorized(err))
		assert.ErrorIs(t, err, zayo.ErrMissingAccessToken)
	})

	t.Run("missing credentials fail before network", func(t *testing.T) {
		t.Parallel()

		server, calls := newTokenServer(t, http.StatusOK, map[string]string{"access_token": "x"})

		cfg := testConfig(server.URL)
		cfg.ClientSecret = ""

		_, err := auth.Authenticate(context.Background(), cfg)
		require.Error(t, err)
		assert.True(t, zayo.IsConfigError(err))
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig("http://127.0.0.1:1")
		cfg.Timeout = time.Second

		_, err := auth.Authenticate(context.Background(), cfg)
		require.Error(t, err)

		authErr := &zayo.AuthError{}
		require.ErrorAs(t, err, &authErr)
		assert.Zero(t, authErr.StatusCode)
	})
}
