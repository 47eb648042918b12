package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/stretchr/testify/require"
)

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestFetchReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	f := New(testConfig())
	markup, err := f.Fetch(context.Background(), server.URL+"/spell:fireball")
	require.NoError(t, err)
	require.Contains(t, markup, "hello")
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := New(testConfig())
	_, err := f.Fetch(context.Background(), server.URL+"/spell:not-a-real-spell")

	var httpErr *core.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusNotFound, httpErr.Status)
	require.True(t, httpErr.NotFound())
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := New(testConfig())
	_, err := f.Fetch(context.Background(), server.URL)

	var httpErr *core.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusInternalServerError, httpErr.Status)
	require.False(t, httpErr.NotFound())
}

func TestFetchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := New(testConfig())
	_, err := f.Fetch(context.Background(), url)

	var netErr *core.NetworkError
	require.True(t, errors.As(err, &netErr))
	require.Error(t, netErr.Unwrap())
}

func TestFetchSendsIdentifyingHeaders(t *testing.T) {
	cfg := testConfig()

	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	f := New(cfg)
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, cfg.UserAgent, userAgent)
}
