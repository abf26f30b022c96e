package zayoclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
	"github.com/fivetwenty-io/zayo-client/pkg/zayoclient"
)

func newAuthServer(t *testing.T, status int) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "issued-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(server.Close)

	return server, &calls
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer issued-token", r.Header.Get("Authorization"))

		var req zayo.PageRequest

		_ = json.NewDecoder(r.Body).Decode(&req)

		records := []map[string]string{}
		if req.Paging.Top > 0 {
			records = append(records, map[string]string{"caseNumber": "TTN-0001", "status": "Scheduled"})
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"metadata": map[string]int{"totalRecordCount": 1},
				"records":  records,
			},
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := zayoclient.New(context.Background(), nil)
		require.ErrorIs(t, err, zayo.ErrConfigRequired)
	})

	t.Run("missing credentials fail before any request", func(t *testing.T) {
		t.Parallel()

		authServer, calls := newAuthServer(t, http.StatusOK)

		config := &zayo.Config{AuthURL: authServer.URL, ClientSecret: "secret"}

		_, err := zayoclient.New(context.Background(), config)
		require.Error(t, err)

		cfgErr := &zayo.ConfigError{}
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "ZAYO_CLIENT_ID", cfgErr.Key)
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		authServer, calls := newAuthServer(t, http.StatusUnauthorized)

		config := &zayo.Config{AuthURL: authServer.URL, ClientID: "id", ClientSecret: "bad"}

		_, err := zayoclient.New(context.Background(), config)
		require.Error(t, err)
		assert.True(t, zayo.IsUnauthorized(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("logs in once and lists", func(t *testing.T) {
		t.Parallel()

		authServer, calls := newAuthServer(t, http.StatusOK)
		apiServer := newAPIServer(t)

		config := &zayo.Config{
			AuthURL:      authServer.URL,
			BaseURL:      apiServer.URL,
			ClientID:     "id",
			ClientSecret: "secret",
		}

		client, err := zayoclient.New(context.Background(), config)
		require.NoError(t, err)

		t.Cleanup(func() { _ = client.Close() })

		list, err := client.Cases().List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, list.Records, 1)
		assert.Equal(t, "TTN-0001", list.Records[0].CaseNumber)

		_, err = client.Impacts().List(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("unsupported cache type", func(t *testing.T) {
		t.Parallel()

		authServer, _ := newAuthServer(t, http.StatusOK)

		config := &zayo.Config{
			AuthURL:      authServer.URL,
			ClientID:     "id",
			ClientSecret: "secret",
			Cache:        zayo.CacheConfig{Type: "memcached"},
		}

		_, err := zayoclient.New(context.Background(), config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported cache type")
	})
}

func TestNewFromEnv_MissingCredentials(t *testing.T) {
	t.Setenv("ZAYO_CLIENT_ID", "")
	t.Setenv("ZAYO_CLIENT_SECRET", "")

	_, err := zayoclient.NewFromEnv(context.Background())
	require.Error(t, err)
	assert.True(t, zayo.IsConfigError(err))
}
