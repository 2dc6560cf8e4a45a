package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_FixedWindow(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	limiter := New(store, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "bot:a")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Check(ctx, "bot:a")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)

	// Other keys have their own window.
	result, err = limiter.Check(ctx, "bot:b")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// The window resets after it elapses.
	now = now.Add(2 * time.Minute)
	result, err = limiter.Check(ctx, "bot:a")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestMiddleware_RejectsOverBudget(t *testing.T) {
	limiter := New(NewMemoryStore(), 1, time.Minute)
	mw := NewMiddleware(limiter, slog.New(slog.NewTextHandler(io.Discard, nil)))

	handler := mw.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/servers/1", nil)
	req.RemoteAddr = "10.0.0.1:5000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different caller is unaffected.
	other := httptest.NewRequest(http.MethodGet, "/servers/1", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis unavailable")
}

func TestMiddleware_FailsOpenOnStoreError(t *testing.T) {
	limiter := New(failingStore{}, 1, time.Minute)
	mw := NewMiddleware(limiter, slog.New(slog.NewTextHandler(io.Discard, nil)))

	handler := mw.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/servers/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	limiter := New(failingStore{}, 0, time.Minute)
	mw := NewMiddleware(limiter, slog.New(slog.NewTextHandler(io.Discard, nil)), WithDisabled(true))

	handler := mw.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/servers/1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
