package catering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{
		BaseURL: server.URL,
		Token:   "token123",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	// Keep retry backoff out of test time.
	client.http.RetryWaitMin = time.Millisecond
	client.http.RetryWaitMax = 5 * time.Millisecond
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL is required")

	_, err = NewClient(ClientOptions{BaseURL: "ftp://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must use http or https")

	_, err = NewClient(ClientOptions{BaseURL: "http://localhost:8000"})
	assert.NoError(t, err)
}

func TestClientGet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/category-analysis/cost/monthly" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("year"); got != "2025" {
			t.Errorf("year = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	}))

	q := url.Values{}
	q.Set("year", "2025")
	body, err := client.get(context.Background(), pathCostMonthly, q)
	require.NoError(t, err)
	assert.Equal(t, `{"items": []}`, body)
}

func TestClientGetStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "year must be between 2000 and 2100"}`))
	}))

	_, err := client.get(context.Background(), pathCostMonthly, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "year must be between 2000 and 2100")
}

func TestClientGetRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"items": []}`))
	}))

	body, err := client.get(context.Background(), pathCostMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"items": []}`, body)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestClientGetRejectsInvalidJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxy error page</html>"))
	}))

	_, err := client.get(context.Background(), pathCostMonthly, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestServerInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"app": "Catering Analytics API", "version": "1.4.2", "status": "running"}`))
	}))

	info, err := client.ServerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Catering Analytics API", info.App)
	assert.Equal(t, "1.4.2", info.Version)
	assert.Equal(t, "running", info.Status)

	t.Run("missing version fails", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"app": "Catering Analytics API"}`))
		}))
		_, err := client.ServerInfo(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no version field")
	})
}

func TestCheckCompat(t *testing.T) {
	serve := func(version string) *Client {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"app": "Catering Analytics API", "version": "` + version + `", "status": "running"}`))
		}))
		return client
	}

	t.Run("accepts 1.x", func(t *testing.T) {
		info, err := serve("1.4.2").CheckCompat(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.4.2", info.Version)
	})

	t.Run("rejects 2.x", func(t *testing.T) {
		info, err := serve("2.0.1").CheckCompat(context.Background())
		require.ErrorIs(t, err, ErrIncompatibleServer)
		assert.Equal(t, "2.0.1", info.Version, "identity returned for the error message")
	})

	t.Run("rejects non-semver", func(t *testing.T) {
		_, err := serve("release-2025").CheckCompat(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid semver")
	})
}

func preflightHandler(t *testing.T, healthStatus int) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`{"app": "Catering Analytics API", "version": "1.4.2", "status": "running"}`))
		case "/health":
			w.WriteHeader(healthStatus)
			if healthStatus == http.StatusOK {
				w.Write([]byte(`{"status": "healthy"}`))
			}
		case "/api/suppliers/":
			w.Write([]byte(`[{"id": 1, "name": "Fresh Foods Ltd"}, {"id": 2, "name": "Bakery Co"}]`))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestPreflight(t *testing.T) {
	client := newTestClient(t, preflightHandler(t, http.StatusOK))

	result, err := client.Preflight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", result.Server.Version)
	assert.True(t, result.Healthy)
	assert.Equal(t, 2, result.Suppliers)

	t.Run("health probe failure aborts", func(t *testing.T) {
		client := newTestClient(t, preflightHandler(t, http.StatusNotFound))
		_, err := client.Preflight(context.Background())
		require.Error(t, err)
	})
}

func TestSuppliers(t *testing.T) {
	client := newTestClient(t, preflightHandler(t, http.StatusOK))

	suppliers, err := client.Suppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, Supplier{ID: 1, Name: "Fresh Foods Ltd"}, suppliers[0])
	assert.Equal(t, Supplier{ID: 2, Name: "Bakery Co"}, suppliers[1])
}

func TestBodySnippet(t *testing.T) {
	assert.Equal(t, "(empty body)", bodySnippet(nil))
	assert.Equal(t, `{"detail": "boom"}`, bodySnippet([]byte("{\"detail\":\n  \"boom\"}")))

	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	snip := bodySnippet(long)
	assert.Len(t, snip, errSnippetLen+3)
}
