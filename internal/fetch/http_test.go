package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-crawler/internal/resilience"
)

var testPage = "<html><body>" + strings.Repeat("Welcome to the hotel. ", 20) + "</body></html>"

func TestHTTPFetcher_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	res, err := NewHTTPFetcher(5*time.Second, 100).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, testPage, res.HTML)
	assert.Equal(t, "http", res.Source)
	assert.Equal(t, srv.URL, res.FinalURL)
}

func TestHTTPFetcher_FinalURLAfterRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/en", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/en", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testPage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := NewHTTPFetcher(5*time.Second, 100).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/en", res.FinalURL)
}

func TestHTTPFetcher_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(5*time.Second, 100).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}

func TestHTTPFetcher_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(5*time.Second, 100).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestHTTPFetcher_TinyBodyIsEmptyPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(5*time.Second, 100).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrEmptyPage)
}
