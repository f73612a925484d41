package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(serverURL).
		SetAuthToken("test-token").
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Second)

	return &Client{
		http: httpClient,
		backoff: Backoff{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
			MaxDelay:    5 * time.Millisecond,
		},
	}
}

func TestCurrentProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "user1", "display_name": "Label"})
	}))
	defer srv.Close()

	profile, err := newTestClient(srv.URL).CurrentProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user1", profile.ID)
	assert.Equal(t, "Label", profile.DisplayName)
}

func TestCreatePlaylist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/user1/playlists", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Trap Hour", body["name"])
		assert.Equal(t, false, body["public"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "pl1",
			"name": "Trap Hour",
			"external_urls": map[string]string{
				"spotify": "https://open.spotify.com/playlist/pl1",
			},
		})
	}))
	defer srv.Close()

	playlist, err := newTestClient(srv.URL).CreatePlaylist(context.Background(), "user1", "Trap Hour", "desc", false)
	require.NoError(t, err)

	assert.Equal(t, "pl1", playlist.ID)
	assert.Equal(t, "https://open.spotify.com/playlist/pl1", playlist.ExternalURLs.Spotify)
}

func TestAddTracksBatches(t *testing.T) {
	var batches [][]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists/pl1/tracks", r.URL.Path)

		var body map[string][]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		batches = append(batches, body["uris"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	trackIDs := make([]string, 250)
	for i := range trackIDs {
		trackIDs[i] = "t"
	}

	err := newTestClient(srv.URL).AddTracks(context.Background(), "pl1", trackIDs)
	require.NoError(t, err)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)
	assert.Equal(t, "spotify:track:t", batches[0][0])
}

func TestClientRetriesRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "user1"})
	}))
	defer srv.Close()

	profile, err := newTestClient(srv.URL).CurrentProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, "user1", profile.ID)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":403,"message":"Insufficient scope"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CurrentProfile(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
