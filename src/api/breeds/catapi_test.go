package breeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCatAPI(url string, observe Observer) *CatAPI {
	return NewCatAPI(CatAPIConfig{
		BaseURL: url,
		APIKey:  "secret",
		Timeout: time.Second,
		Logger:  zerolog.Nop(),
		Observe: observe,
	})
}

func TestCatAPI_Search(t *testing.T) {
	srv := newCatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/breeds/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("q") {
		case "Siamese", "siamese":
			_, _ = w.Write([]byte(`[{"id":"siam","name":"Siamese"}]`))
		case "Sia":
			_, _ = w.Write([]byte(`[{"id":"siam","name":"Siamese"}]`))
		case "Maine Coon":
			_, _ = w.Write([]byte(`[{"id":"mcoo"}]`))
		case "Thai Cat", "Siam":
			_, _ = w.Write([]byte(`[{"id":"siam","name":"Siamese","alt_names":"Siam, Thai Cat"}]`))
		case "Thai":
			_, _ = w.Write([]byte(`[{"id":"siam","name":"Siamese","alt_names":"Siam, Thai Cat"},{"id":"tha","name":"Thai Lilac","alt_names":""}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})

	api := newTestCatAPI(srv.URL, nil)
	tests := []struct {
		breed string
		want  bool
	}{
		{"Siamese", true},
		{"siamese", true},
		{"Sia", false},
		{"Maine Coon", true},
		{"Thai Cat", true},
		{"Siam", true},
		{"Thai", false},
		{"Dragon", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.breed, func(t *testing.T) {
			got, err := api.Search(context.Background(), tt.breed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatAPI_FailClosed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		outcome string
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, OutcomeError},
		{"throttled", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}, OutcomeRateLimited},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"`))
		}, OutcomeError},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(3 * time.Second):
			case <-r.Context().Done():
			}
		}, OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCatServer(t, tt.handler)
			var got []string
			api := newTestCatAPI(srv.URL, func(o string) { got = append(got, o) })

			assert.False(t, api.IsKnownBreed(context.Background(), "Siamese"))
			assert.Equal(t, []string{tt.outcome}, got)
		})
	}
}

func TestCatAPI_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	api := newTestCatAPI(url, nil)
	assert.False(t, api.IsKnownBreed(context.Background(), "Siamese"))
}

type stubSearcher struct {
	calls atomic.Int32
	known bool
	err   error
}

func (s *stubSearcher) Search(context.Context, string) (bool, error) {
	s.calls.Add(1)
	return s.known, s.err
}

type mapRemote struct {
	m      map[string]bool
	stored int
}

func (r *mapRemote) Lookup(_ context.Context, breed string) (bool, bool, error) {
	v, ok := r.m[breed]
	return v, ok, nil
}

func (r *mapRemote) Remember(_ context.Context, breed string, known bool) error {
	r.m[breed] = known
	r.stored++
	return nil
}

func TestCached_LocalHit(t *testing.T) {
	up := &stubSearcher{known: true}
	c := NewCached(up, CacheConfig{Size: 8, TTL: time.Minute, Logger: zerolog.Nop()})

	assert.True(t, c.IsKnownBreed(context.Background(), "Siamese"))
	assert.True(t, c.IsKnownBreed(context.Background(), " siamese "))
	assert.Equal(t, int32(1), up.calls.Load())
}

func TestCached_NegativeIsCached(t *testing.T) {
	up := &stubSearcher{known: false}
	c := NewCached(up, CacheConfig{Logger: zerolog.Nop()})

	assert.False(t, c.IsKnownBreed(context.Background(), "Dragon"))
	assert.False(t, c.IsKnownBreed(context.Background(), "Dragon"))
	assert.Equal(t, int32(1), up.calls.Load())
}

func TestCached_FailuresAreNotCached(t *testing.T) {
	up := &stubSearcher{err: assert.AnError}
	remote := &mapRemote{m: map[string]bool{}}
	c := NewCached(up, CacheConfig{Remote: remote, Logger: zerolog.Nop()})

	assert.False(t, c.IsKnownBreed(context.Background(), "Siamese"))
	assert.False(t, c.IsKnownBreed(context.Background(), "Siamese"))
	assert.Equal(t, int32(2), up.calls.Load())
	assert.Zero(t, remote.stored)

	up.err = nil
	up.known = true
	assert.True(t, c.IsKnownBreed(context.Background(), "Siamese"))
	assert.Equal(t, 1, remote.stored)
	assert.True(t, remote.m["siamese"])
}

func TestCached_RemoteHit(t *testing.T) {
	up := &stubSearcher{}
	remote := &mapRemote{m: map[string]bool{"persian": true}}
	var outcomes []string
	c := NewCached(up, CacheConfig{Remote: remote, Logger: zerolog.Nop(), Observe: func(o string) { outcomes = append(outcomes, o) }})

	assert.True(t, c.IsKnownBreed(context.Background(), "Persian"))
	assert.Zero(t, up.calls.Load())
	assert.Equal(t, []string{OutcomeCacheHit}, outcomes)
}
