package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daleplay/playlist-api/internal/catalog"
	"github.com/daleplay/playlist-api/internal/config"
	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/llm"
	"github.com/daleplay/playlist-api/internal/metrics"
	"github.com/daleplay/playlist-api/internal/models"
	"github.com/daleplay/playlist-api/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns one canned completion.
type stubProvider struct {
	output string
	err    error
	calls  int
}

func (s *stubProvider) Complete(_ context.Context, _ *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{
		RawOutput: s.output,
		Usage:     llm.TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}, nil
}

func (s *stubProvider) Name() string { return "stub" }

// fakeRecorder captures persistence calls instead of hitting Postgres.
type fakeRecorder struct {
	recorded   []*pipeline.Result
	published  []uint
	playlistID uint
}

func (f *fakeRecorder) RecordGeneration(_ context.Context, result *pipeline.Result, _ string) (uint, error) {
	f.recorded = append(f.recorded, result)
	return f.playlistID, nil
}

func (f *fakeRecorder) MarkPublished(_ context.Context, playlistID uint, _, _ string) error {
	f.published = append(f.published, playlistID)
	return nil
}

func testTracks() []models.CatalogTrack {
	return []models.CatalogTrack{
		{SpotifyID: "sp1", Name: "Noche Larga", ArtistMain: "Duki", BPM: 140, Genres: []string{"trap"}},
		{SpotifyID: "sp2", Name: "Sin Frenos", ArtistMain: "Trueno", BPM: 150, Genres: []string{"trap latino"}},
		{SpotifyID: "sp3", Name: "Ruta 40", ArtistMain: "Eruca Sativa", BPM: 120, Genres: []string{"argentine rock"}},
	}
}

func newTestRouter(t *testing.T, tracks []models.CatalogTrack, provider llm.Provider, recorder GenerationRecorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	activities, err := intent.DefaultActivities()
	require.NoError(t, err)
	extractor := intent.NewExtractor(activities)

	store := catalog.NewMemoryStore(tracks)
	pl := pipeline.New(store, extractor, pipeline.NewSelector(provider, "gpt-4.1-mini"))

	cfg := &config.Config{
		SelectionModel: "gpt-4.1-mini",
		LLMTimeout:     5 * time.Second,
	}
	handler := NewPlaylistHandler(pl, extractor, store, recorder, &metrics.Client{}, cfg)

	router := gin.New()
	router.POST("/api/v1/playlists/generate", handler.Generate)
	router.POST("/api/v1/prompts/validate", handler.ValidatePrompt)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateEndpoint(t *testing.T) {
	selection, err := json.Marshal(models.PlaylistSelection{
		PlaylistName: "Trap Hour",
		Description:  "wall to wall trap",
		Tracks: []models.SelectedTrack{
			{TrackName: "Noche Larga", ArtistName: "Duki", Reason: "opener"},
			{TrackName: "Sin Frenos", ArtistName: "Trueno", Reason: "keeps pace"},
		},
	})
	require.NoError(t, err)

	recorder := &fakeRecorder{playlistID: 42}
	router := newTestRouter(t, testTracks(), &stubProvider{output: string(selection)}, recorder)

	w := postJSON(router, "/api/v1/playlists/generate", `{"prompt": "trap playlist, 1 hour"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["playlist_id"])

	playlist, ok := body["playlist"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Trap Hour", playlist["playlistName"])
	assert.Equal(t, "trap", playlist["detectedGenre"])

	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, "Trap Hour", recorder.recorded[0].PlaylistName)
}

func TestGenerateEndpointRequiresPrompt(t *testing.T) {
	router := newTestRouter(t, testTracks(), &stubProvider{}, &fakeRecorder{})

	w := postJSON(router, "/api/v1/playlists/generate", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpointRejectsBadTrackCount(t *testing.T) {
	router := newTestRouter(t, testTracks(), &stubProvider{}, &fakeRecorder{})

	w := postJSON(router, "/api/v1/playlists/generate", `{"prompt": "trap, 1 hour", "track_count": 0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpointRejectsAmbiguousPrompt(t *testing.T) {
	provider := &stubProvider{}
	router := newTestRouter(t, testTracks(), provider, &fakeRecorder{})

	w := postJSON(router, "/api/v1/playlists/generate", `{"prompt": "some songs please"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, provider.calls)

	var body struct {
		Validation intent.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Validation.Valid)
	assert.NotEmpty(t, body.Validation.Errors)
}

func TestGenerateEndpointEmptyCatalog(t *testing.T) {
	provider := &stubProvider{}
	router := newTestRouter(t, nil, provider, &fakeRecorder{})

	w := postJSON(router, "/api/v1/playlists/generate", `{"prompt": "trap playlist, 1 hour"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Zero(t, provider.calls)
}

func TestGenerateEndpointProviderDown(t *testing.T) {
	provider := &stubProvider{err: context.DeadlineExceeded}
	router := newTestRouter(t, testTracks(), provider, &fakeRecorder{})

	w := postJSON(router, "/api/v1/playlists/generate", `{"prompt": "trap playlist, 1 hour"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	// One relaxed retry, then give up.
	assert.Equal(t, 2, provider.calls)
}

func TestValidatePromptEndpoint(t *testing.T) {
	router := newTestRouter(t, testTracks(), &stubProvider{}, &fakeRecorder{})

	w := postJSON(router, "/api/v1/prompts/validate", `{"prompt": "A playlist for running, 30 minutes"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Request    intent.Request          `json:"request"`
		Validation intent.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Validation.Valid)
	assert.Equal(t, 30, body.Request.DurationMinutes)
	assert.Equal(t, "running", body.Request.Activity)
}

func TestValidatePromptEndpointFlagsMissingSignal(t *testing.T) {
	router := newTestRouter(t, testTracks(), &stubProvider{}, &fakeRecorder{})

	w := postJSON(router, "/api/v1/prompts/validate", `{"prompt": "some songs please"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Validation intent.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.False(t, body.Validation.Valid)
	assert.NotEmpty(t, body.Validation.Errors)
}
