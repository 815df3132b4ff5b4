package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(Options{UserAgent: "test-agent", MaxBodyBytes: 32})

	t.Run("ok", func(t *testing.T) {
		body, err := client.Get(context.Background(), srv.URL+"/ok")
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
		assert.Equal(t, "test-agent", gotUA.Load())
	})

	t.Run("2xx without body", func(t *testing.T) {
		body, err := client.Get(context.Background(), srv.URL+"/empty")
		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.Get(context.Background(), srv.URL+"/missing")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("body too large", func(t *testing.T) {
		_, err := client.Get(context.Background(), srv.URL+"/big")
		require.ErrorIs(t, err, ErrBodyTooLarge)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := client.Get(context.Background(), "http://[::1")
		require.Error(t, err)
	})
}

func TestClient_GetCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(Options{}).Get(ctx, srv.URL)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{})
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Equal(t, int64(DefaultMaxBodyBytes), c.maxBodyBytes)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
