package spotify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiBaseURL     = "https://api.spotify.com/v1"
	requestTimeout = 15 * time.Second

	// Spotify caps one add-tracks request at 100 URIs
	addTracksBatchSize = 100
)

// Client talks to the Spotify Web API on behalf of one user access token.
type Client struct {
	http    *resty.Client
	backoff Backoff
}

func NewClient(accessToken string) *Client {
	httpClient := resty.New().
		SetBaseURL(apiBaseURL).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)

	return &Client{
		http:    httpClient,
		backoff: DefaultBackoff(),
	}
}

// Profile is the authenticated user's Spotify profile.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Playlist is a created Spotify playlist.
type Playlist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// CurrentProfile fetches the profile of the token's user.
func (c *Client) CurrentProfile(ctx context.Context) (*Profile, error) {
	var profile Profile

	resp, err := c.execute(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetResult(&profile).Get("/me")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spotify profile: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("fetch profile", resp)
	}

	return &profile, nil
}

// CreatePlaylist creates an empty playlist owned by userID.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (*Playlist, error) {
	var playlist Playlist

	resp, err := c.execute(ctx, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetBody(map[string]any{
				"name":        name,
				"description": description,
				"public":      public,
			}).
			SetResult(&playlist).
			Post(fmt.Sprintf("/users/%s/playlists", userID))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify playlist: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("create playlist", resp)
	}

	log.Printf("✅ Spotify playlist created: %s (%s)", playlist.Name, playlist.ID)
	return &playlist, nil
}

// AddTracks appends tracks to a playlist, batching to the API's limit.
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	for start := 0; start < len(trackIDs); start += addTracksBatchSize {
		end := start + addTracksBatchSize
		if end > len(trackIDs) {
			end = len(trackIDs)
		}

		uris := make([]string, 0, end-start)
		for _, id := range trackIDs[start:end] {
			uris = append(uris, "spotify:track:"+id)
		}

		resp, err := c.execute(ctx, func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetBody(map[string]any{"uris": uris}).
				Post(fmt.Sprintf("/playlists/%s/tracks", playlistID))
		})
		if err != nil {
			return fmt.Errorf("failed to add tracks to spotify playlist: %w", err)
		}
		if resp.IsError() {
			return apiError("add tracks", resp)
		}

		log.Printf("🎵 Added %d tracks to playlist %s", len(uris), playlistID)
	}

	return nil
}

// execute runs one request, retrying on 429 per the backoff policy.
func (c *Client) execute(ctx context.Context, do func() (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response
	var err error

	for attempt := 0; attempt < c.backoff.MaxAttempts; attempt++ {
		resp, err = do()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusTooManyRequests {
			return resp, nil
		}

		delay := c.backoff.Delay(attempt, retryAfter(resp))
		log.Printf("⚠️  Spotify rate limited (attempt %d/%d), waiting %v", attempt+1, c.backoff.MaxAttempts, delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return resp, nil
}

func retryAfter(resp *resty.Response) time.Duration {
	header := resp.Header().Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func apiError(operation string, resp *resty.Response) error {
	return fmt.Errorf("spotify %s failed: %s: %s", operation, resp.Status(), resp.String())
}
