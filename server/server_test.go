package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linkdex"
	"linkdex/keygen"
	"linkdex/mocks"
	"linkdex/snapshot"
)

func newTestServer(store *mocks.StorageMock) *Server {
	return New(store, nil, Config{},
		WithKeyGenerator(keygen.NewWithNonce(func() string { return "nonce01" })),
	)
}

func TestHandleShorten(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		store := &mocks.StorageMock{
			PutFunc: func(key string, value string) {},
		}
		s := newTestServer(store)

		form := url.Values{"url": {"https://example.com/page"}}
		req := httptest.NewRequest(http.MethodPost, "/api/shorten",
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp shortenResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, nil, err)
		assert.Equal(t, keygen.KeyLength, len(resp.Key))
		assert.Equal(t, "/"+resp.Key, resp.ShortURL)

		calls := store.PutCalls()
		assert.Equal(t, 1, len(calls))
		assert.Equal(t, resp.Key, calls[0].Key)
		assert.Equal(t, "https://example.com/page", calls[0].Value)
	})

	t.Run("adds-scheme", func(t *testing.T) {
		store := &mocks.StorageMock{
			PutFunc: func(key string, value string) {},
		}
		s := newTestServer(store)

		form := url.Values{"url": {"example.com/page"}}
		req := httptest.NewRequest(http.MethodPost, "/api/shorten",
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		calls := store.PutCalls()
		assert.Equal(t, 1, len(calls))
		assert.Equal(t, "https://example.com/page", calls[0].Value)
	})

	t.Run("missing-url", func(t *testing.T) {
		store := &mocks.StorageMock{}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodPost, "/api/shorten", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, len(store.PutCalls()))
	})

	t.Run("wrong-method", func(t *testing.T) {
		store := &mocks.StorageMock{}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/api/shorten", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestHandleRedirect(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store := &mocks.StorageMock{
			GetFunc: func(key string) (string, error) {
				return "https://example.com/page", nil
			},
		}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/abc1234", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://example.com/page", w.Header().Get("Location"))

		calls := store.GetCalls()
		assert.Equal(t, 1, len(calls))
		assert.Equal(t, "abc1234", calls[0].Key)
	})

	t.Run("not-found", func(t *testing.T) {
		store := &mocks.StorageMock{
			GetFunc: func(key string) (string, error) {
				return "", linkdex.ErrKeyNotFound
			},
		}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("root-path", func(t *testing.T) {
		store := &mocks.StorageMock{}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 0, len(store.GetCalls()))
	})
}

func TestHandlePopular(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		store := &mocks.StorageMock{
			TopPopularFunc: func(k int) []linkdex.PopularEntry {
				return []linkdex.PopularEntry{
					{Key: "abc1234", Value: "https://example.com/1", Count: 5},
					{Key: "def5678", Value: "https://example.com/2", Count: 3},
				}
			},
		}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/api/popular?k=2", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp popularResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, nil, err)
		assert.Equal(t, popularResponse{
			PopularURLs: []popularURL{
				{Key: "abc1234", OriginalURL: "https://example.com/1", AccessCount: 5},
				{Key: "def5678", OriginalURL: "https://example.com/2", AccessCount: 3},
			},
		}, resp)

		calls := store.TopPopularCalls()
		assert.Equal(t, 1, len(calls))
		assert.Equal(t, 2, calls[0].K)
	})

	t.Run("default-k", func(t *testing.T) {
		store := &mocks.StorageMock{
			TopPopularFunc: func(k int) []linkdex.PopularEntry {
				return nil
			},
		}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/api/popular", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		calls := store.TopPopularCalls()
		assert.Equal(t, 1, len(calls))
		assert.Equal(t, 10, calls[0].K)
	})

	t.Run("invalid-k", func(t *testing.T) {
		store := &mocks.StorageMock{}
		s := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/api/popular?k=abc", nil)
		w := httptest.NewRecorder()

		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleKeys(t *testing.T) {
	store := &mocks.StorageMock{
		AllFunc: func() []linkdex.Entry {
			return []linkdex.Entry{
				{Key: "abc1234", Value: "https://example.com/1"},
				{Key: "def5678", Value: "https://example.com/2"},
			}
		},
	}
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/keys", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp keysResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, nil, err)
	assert.Equal(t, keysResponse{
		Keys: []keyEntry{
			{Key: "abc1234", OriginalURL: "https://example.com/1"},
			{Key: "def5678", OriginalURL: "https://example.com/2"},
		},
	}, resp)
}

func TestSnapshot_On_Shutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.ldx")

	snap := &mocks.SnapshotterMock{
		AllFunc: func() []linkdex.Entry {
			return []linkdex.Entry{{Key: "abc1234", Value: "https://example.com/1"}}
		},
		CountsFunc: func() map[string]uint64 {
			return map[string]uint64{"abc1234": 7}
		},
	}

	s := New(&mocks.StorageMock{}, snap, Config{
		SnapshotPath: path,
		SaveInterval: time.Hour,
	})

	err := s.Shutdown(context.Background())
	assert.Equal(t, nil, err)

	entries, counts, err := snapshot.Load(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, []linkdex.Entry{{Key: "abc1234", Value: "https://example.com/1"}}, entries)
	assert.Equal(t, map[string]uint64{"abc1234": 7}, counts)
}
