package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/daleplay/playlist-api/internal/api/middleware"
	"github.com/daleplay/playlist-api/internal/catalog"
	"github.com/daleplay/playlist-api/internal/config"
	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/logger"
	"github.com/daleplay/playlist-api/internal/metrics"
	"github.com/daleplay/playlist-api/internal/pipeline"
	"github.com/daleplay/playlist-api/internal/spotify"
	"github.com/gin-gonic/gin"
)

const maxPromptLength = 2000

// GenerationRecorder persists generation outcomes. Satisfied by
// services.ExposureService.
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, result *pipeline.Result, model string) (uint, error)
	MarkPublished(ctx context.Context, playlistID uint, spotifyID, spotifyURL string) error
}

type PlaylistHandler struct {
	pipeline  *pipeline.Pipeline
	extractor *intent.Extractor
	store     catalog.Store
	exposure  GenerationRecorder
	cw        *metrics.Client
	sentry    *metrics.SentryMetrics
	cfg       *config.Config
}

func NewPlaylistHandler(
	pl *pipeline.Pipeline,
	extractor *intent.Extractor,
	store catalog.Store,
	exposure GenerationRecorder,
	cw *metrics.Client,
	cfg *config.Config,
) *PlaylistHandler {
	return &PlaylistHandler{
		pipeline:  pl,
		extractor: extractor,
		store:     store,
		exposure:  exposure,
		cw:        cw,
		sentry:    metrics.NewSentryMetrics(),
		cfg:       cfg,
	}
}

// editDefaultTrackCount applies when an edit request carries no explicit
// track count.
const editDefaultTrackCount = 10

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	// Optional override of the duration-derived track count
	TrackCount *int `json:"track_count"`
	// Edit flows replace an existing playlist and keep counts small
	IsEdit bool `json:"is_edit"`
}

// Generate runs the full prompt-to-playlist pipeline and records the
// result for exposure accounting.
func (h *PlaylistHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Prompt) > maxPromptLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt too long"})
		return
	}
	if req.TrackCount != nil && (*req.TrackCount < 1 || *req.TrackCount > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "track_count must be between 1 and 100"})
		return
	}

	// An ambiguous prompt is the caller's problem, not the pipeline's:
	// reject before spending an LLM call.
	if validation := h.extractor.Validate(req.Prompt); !validation.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Prompt is ambiguous",
			"validation": validation,
			"request_id": c.GetString("request_id"),
		})
		return
	}

	trackCount := req.TrackCount
	if req.IsEdit && trackCount == nil {
		count := editDefaultTrackCount
		trackCount = &count
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.LLMTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := h.pipeline.GeneratePlaylist(ctx, req.Prompt, trackCount)
	duration := time.Since(startTime)

	h.cw.RecordGenerationDuration(duration, err == nil)
	h.sentry.RecordGenerationDuration(c.Request.Context(), duration, err == nil)

	if err != nil {
		status := generationStatus(err)
		logger.Error("Playlist generation failed", err, logger.WithContext(c))
		c.JSON(status, gin.H{
			"error":      err.Error(),
			"request_id": c.GetString("request_id"),
		})
		return
	}

	h.recordGenerationMetrics(c, result)

	playlistID := h.persistGeneration(c, result)

	c.JSON(http.StatusOK, gin.H{
		"request_id":           c.GetString("request_id"),
		"playlist_id":          playlistID,
		"playlist":             result,
		"elapsed_ms":           result.Elapsed.Milliseconds(),
		"used_relaxed_filters": result.UsedRelaxedFilters,
	})
}

// persistGeneration stores the playlist and exposure rows. Failures are
// logged but never fail the request; the caller already has their playlist.
func (h *PlaylistHandler) persistGeneration(c *gin.Context, result *pipeline.Result) uint {
	playlistID, err := h.exposure.RecordGeneration(c.Request.Context(), result, h.cfg.SelectionModel)
	if err != nil {
		logger.Warn("Failed to persist generation", logger.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		})
		return 0
	}
	return playlistID
}

func (h *PlaylistHandler) recordGenerationMetrics(c *gin.Context, result *pipeline.Result) {
	h.cw.RecordReconciliation(result.Report.Requested, result.Report.Matched)
	h.sentry.RecordReconciliation(c.Request.Context(), result.Report.Requested, result.Report.Matched)

	usage := result.Usage
	if usage.TotalTokens > 0 {
		h.cw.RecordTokenUsage(h.cfg.SelectionModel,
			int(usage.TotalTokens), int(usage.InputTokens), int(usage.OutputTokens))
		h.sentry.RecordTokenUsage(c.Request.Context(), h.cfg.SelectionModel,
			int(usage.TotalTokens), int(usage.InputTokens), int(usage.OutputTokens))
	}
}

type PublishRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	TrackIDs    []string `json:"track_ids" binding:"required,min=1"`
	Public      bool     `json:"public"`
	// Links the Spotify playlist back to a stored generation
	PlaylistID uint `json:"playlist_id"`
}

// Publish creates the playlist on Spotify under the caller's account.
func (h *PlaylistHandler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, ok := middleware.GetSpotifyToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Spotify authorization required"})
		return
	}

	ctx := c.Request.Context()
	client := spotify.NewClient(token)

	profile, err := client.CurrentProfile(ctx)
	if err != nil {
		logger.Error("Spotify profile lookup failed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to resolve Spotify account"})
		return
	}

	playlist, err := client.CreatePlaylist(ctx, profile.ID, req.Name, req.Description, req.Public)
	if err != nil {
		logger.Error("Spotify playlist creation failed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create Spotify playlist"})
		return
	}

	if err := client.AddTracks(ctx, playlist.ID, req.TrackIDs); err != nil {
		logger.Error("Adding tracks to Spotify playlist failed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":               "Playlist created but adding tracks failed",
			"spotify_playlist_id": playlist.ID,
		})
		return
	}

	if req.PlaylistID > 0 {
		if err := h.exposure.MarkPublished(ctx, req.PlaylistID, playlist.ID, playlist.ExternalURLs.Spotify); err != nil {
			logger.Warn("Failed to mark playlist as published", logger.Fields{
				"request_id":  c.GetString("request_id"),
				"playlist_id": int(req.PlaylistID),
				"error":       err.Error(),
			})
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"request_id":          c.GetString("request_id"),
		"spotify_playlist_id": playlist.ID,
		"spotify_url":         playlist.ExternalURLs.Spotify,
		"track_count":         len(req.TrackIDs),
	})
}

type ValidatePromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ValidatePrompt extracts intent from a prompt without generating,
// so clients can preview what the pipeline understood.
func (h *PlaylistHandler) ValidatePrompt(c *gin.Context) {
	var req ValidatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artistNames, err := h.store.ArtistNames(c.Request.Context())
	if err != nil {
		// Artist detection degrades gracefully without the catalog
		artistNames = nil
	}

	request := h.extractor.Extract(req.Prompt, artistNames)
	validation := h.extractor.Validate(req.Prompt)

	c.JSON(http.StatusOK, gin.H{
		"request":    request,
		"validation": validation,
	})
}

// generationStatus maps pipeline sentinels to HTTP statuses.
func generationStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrCatalogEmpty):
		return http.StatusServiceUnavailable
	case errors.Is(err, pipeline.ErrProviderUnavailable),
		errors.Is(err, pipeline.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
