package spotify

import (
	"errors"
	"net/http"
	"testing"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

func TestExtractTrackID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "plain track URL",
			url:  "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			want: "4uLU6hMCjMI75M1A2tKUQC",
		},
		{
			name: "share link with query",
			url:  "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc123",
			want: "4uLU6hMCjMI75M1A2tKUQC",
		},
		{
			name: "trailing slash",
			url:  "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC/",
			want: "4uLU6hMCjMI75M1A2tKUQC",
		},
		{
			name: "localized path",
			url:  "https://open.spotify.com/intl-de/track/4uLU6hMCjMI75M1A2tKUQC",
			want: "4uLU6hMCjMI75M1A2tKUQC",
		},
		{
			name: "surrounding whitespace",
			url:  "  https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC\n",
			want: "4uLU6hMCjMI75M1A2tKUQC",
		},
		{
			name:    "no path",
			url:     "https://open.spotify.com",
			wantErr: true,
		},
		{
			name:    "unparseable",
			url:     "https://open.spotify.com/track/\x7f",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTrackID(tt.url)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidInput) {
					t.Errorf("ExtractTrackID(%q) error = %v, want ErrInvalidInput", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTrackID(%q) error = %v, want nil", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ExtractTrackID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestMapAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "token rejected",
			err:  &oauth2.RetrieveError{Response: &http.Response{StatusCode: http.StatusBadRequest}},
			want: core.ErrAuth,
		},
		{
			name: "track not found",
			err:  spotify.Error{Status: http.StatusNotFound, Message: "Not found."},
			want: core.ErrNotFound,
		},
		{
			name: "bad track id",
			err:  spotify.Error{Status: http.StatusBadRequest, Message: "invalid id"},
			want: core.ErrNotFound,
		},
		{
			name: "expired session",
			err:  spotify.Error{Status: http.StatusUnauthorized, Message: "The access token expired"},
			want: core.ErrAuth,
		},
		{
			name: "rate limited",
			err:  spotify.Error{Status: http.StatusTooManyRequests, Message: "rate limit exceeded"},
			want: core.ErrTransport,
		},
		{
			name: "connection refused",
			err:  errors.New("dial tcp: connection refused"),
			want: core.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAPIError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("mapAPIError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
