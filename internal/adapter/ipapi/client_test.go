package ipapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/radiooperator-site/internal/observability"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
	}
}

func TestLocateIP_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/198.51.100.1", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","country":"United States","regionName":"Texas","city":"Austin"}`))
	}))
	defer srv.Close()

	loc, err := testClient(srv.URL).LocateIP(context.Background(), "198.51.100.1")
	require.NoError(t, err)
	assert.Equal(t, "Austin, Texas, United States", loc)
}

func TestLocateIP_Fail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	loc, err := testClient(srv.URL).LocateIP(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Empty(t, loc)
}

func TestLocateIP_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LocateIP(context.Background(), "198.51.100.1")
	require.ErrorContains(t, err, "429")
}
