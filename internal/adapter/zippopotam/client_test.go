package zippopotam

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/weather"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestLookupZip_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/us/78701", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"post code": "78701",
			"country": "United States",
			"places": [{
				"place name": "Austin",
				"longitude": "-97.7426",
				"latitude": "30.2713",
				"state": "Texas",
				"state abbreviation": "TX"
			}]
		}`))
	}))
	defer srv.Close()

	place, ok, err := testClient(srv.URL).LookupZip(context.Background(), "us", "78701")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, weather.Place{Lat: 30.2713, Lon: -97.7426, Name: "Austin", State: "TX"}, place)
}

func TestLookupZip_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, ok, err := testClient(srv.URL).LookupZip(context.Background(), "us", "00000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupZip_NoPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"places": []}`))
	}))
	defer srv.Close()

	_, ok, err := testClient(srv.URL).LookupZip(context.Background(), "de", "10115")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupZip_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"bad latitude", http.StatusOK, `{"places":[{"latitude":"north","longitude":"1"}]}`},
		{"bad json", http.StatusOK, `{"places":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, ok, err := testClient(srv.URL).LookupZip(context.Background(), "us", "12345")
			require.Error(t, err)
			assert.False(t, ok)
		})
	}
}
