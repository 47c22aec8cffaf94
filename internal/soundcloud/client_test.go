package soundcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

func newTestClient(tokenURL, apiBase string) *Client {
	c := NewClient(&core.SoundCloudConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
	}, zap.NewNop())
	c.tokenURL = tokenURL
	c.apiBase = apiBase
	return c
}

func tokenHandler(tokenCalls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") != "test-client-id" ||
			r.PostForm.Get("client_secret") != "test-client-secret" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}

		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "test-token",
			ExpiresIn:   3600,
			TokenType:   "bearer",
		})
	}
}

func TestResolve(t *testing.T) {
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			http.Error(w, "no token", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("url") != "https://soundcloud.com/artist/song" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          123456,
			"title":       "Song",
			"duration":    213000,
			"artwork_url": "https://i1.sndcdn.com/artworks-abc-large.jpg",
			"user":        map[string]string{"username": "Artist"},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL+"/oauth2/token", server.URL)

	track, err := client.Resolve(context.Background(), "https://soundcloud.com/artist/song")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if track.ID != "123456" {
		t.Errorf("ID = %q, want %q", track.ID, "123456")
	}
	if track.Title != "Song" {
		t.Errorf("Title = %q, want %q", track.Title, "Song")
	}
	if track.Artist != "Artist" {
		t.Errorf("Artist = %q, want %q", track.Artist, "Artist")
	}
	if want := 3*time.Minute + 33*time.Second; track.Duration != want {
		t.Errorf("Duration = %v, want %v", track.Duration, want)
	}
	if track.CoverArtURL != "https://i1.sndcdn.com/artworks-abc-large.jpg" {
		t.Errorf("CoverArtURL = %q", track.CoverArtURL)
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1", got)
	}
}

func TestResolveTokenFetchedOnceUnderConcurrency(t *testing.T) {
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		// Slow token endpoint so concurrent callers pile up on the refresh.
		time.Sleep(50 * time.Millisecond)
		tokenHandler(&tokenCalls)(w, r)
	})
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       1,
			"title":    "Song",
			"duration": 1000,
			"user":     map[string]string{"username": "Artist"},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL+"/oauth2/token", server.URL)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Resolve(context.Background(), "https://soundcloud.com/a/b")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Resolve() [%d] error = %v, want nil", i, err)
		}
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1 (refreshes must collapse)", got)
	}
}

func TestResolveErrorMapping(t *testing.T) {
	tests := []struct {
		name          string
		resolveStatus int
		want          error
	}{
		{"track not found", http.StatusNotFound, core.ErrNotFound},
		{"token rejected", http.StatusUnauthorized, core.ErrAuth},
		{"forbidden", http.StatusForbidden, core.ErrAuth},
		{"server error", http.StatusInternalServerError, core.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokenCalls int32
			mux := http.NewServeMux()
			mux.HandleFunc("/oauth2/token", tokenHandler(&tokenCalls))
			mux.HandleFunc("/resolve", func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.resolveStatus)
			})

			server := httptest.NewServer(mux)
			defer server.Close()

			client := newTestClient(server.URL+"/oauth2/token", server.URL)

			_, err := client.Resolve(context.Background(), "https://soundcloud.com/a/b")
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveTokenEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad client", http.StatusUnauthorized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL+"/oauth2/token", server.URL)

	_, err := client.Resolve(context.Background(), "https://soundcloud.com/a/b")
	if !errors.Is(err, core.ErrAuth) {
		t.Errorf("Resolve() error = %v, want ErrAuth", err)
	}
}

func TestAccessTokenReusedUntilExpiry(t *testing.T) {
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       1,
			"title":    "Song",
			"duration": 1000,
			"user":     map[string]string{"username": "Artist"},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL+"/oauth2/token", server.URL)

	for i := 0; i < 3; i++ {
		if _, err := client.Resolve(context.Background(), fmt.Sprintf("https://soundcloud.com/a/b%d", i)); err != nil {
			t.Fatalf("Resolve() [%d] error = %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Errorf("token endpoint hit %d times across 3 resolves, want 1", got)
	}
}
