package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/daleplay/playlist-api/internal/models"
	"github.com/daleplay/playlist-api/internal/pipeline"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const topTracksLimit = 10

// ExposureService persists generation results and aggregates the label's
// promotion metrics: which tracks and artists are actually getting picked.
type ExposureService struct {
	db *gorm.DB
}

func NewExposureService(db *gorm.DB) *ExposureService {
	return &ExposureService{db: db}
}

// RecordGeneration stores the generated playlist and bumps the exposure
// counter of every reconciled track. Returns the stored playlist ID.
func (s *ExposureService) RecordGeneration(ctx context.Context, result *pipeline.Result, model string) (uint, error) {
	playlist := &models.GeneratedPlaylist{
		Prompt:          result.Request.RawPrompt,
		Name:            result.PlaylistName,
		Description:     result.Description,
		Activity:        result.Request.Activity,
		Genre:           result.Request.Genre,
		TrackCount:      len(result.Tracks),
		DurationMinutes: result.Request.DurationMinutes,
		Model:           model,
	}
	if err := s.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return 0, fmt.Errorf("failed to record generated playlist: %w", err)
	}

	now := time.Now()
	for _, track := range result.Tracks {
		exposure := &models.TrackExposure{
			SpotifyTrackID: track.SpotifyID,
			TrackName:      track.Name,
			ArtistName:     track.ArtistMain,
			Selections:     1,
			LastSelectedAt: now,
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "spotify_track_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"selections":       gorm.Expr("track_exposures.selections + 1"),
				"last_selected_at": now,
				"updated_at":       now,
			}),
		}).Create(exposure).Error
		if err != nil {
			// Exposure accounting must never fail a generation
			log.Printf("⚠️  Failed to record exposure for %s: %v", track.SpotifyID, err)
		}
	}

	return playlist.ID, nil
}

// MarkPublished links a stored playlist to the Spotify playlist it became.
func (s *ExposureService) MarkPublished(ctx context.Context, playlistID uint, spotifyID, spotifyURL string) error {
	err := s.db.WithContext(ctx).
		Model(&models.GeneratedPlaylist{}).
		Where("id = ?", playlistID).
		Updates(map[string]interface{}{
			"spotify_id":  spotifyID,
			"spotify_url": spotifyURL,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark playlist as published: %w", err)
	}
	return nil
}

// ArtistExposure aggregates selections per artist.
type ArtistExposure struct {
	ArtistName      string `json:"artist_name"`
	TrackCount      int64  `json:"track_count"`
	TotalSelections int64  `json:"total_selections"`
}

// ExposureReport returns per-artist selection totals, most exposed first,
// the input to fair-rotation decisions.
func (s *ExposureService) ExposureReport(ctx context.Context) ([]ArtistExposure, error) {
	var report []ArtistExposure
	err := s.db.WithContext(ctx).
		Model(&models.TrackExposure{}).
		Select("artist_name, COUNT(*) AS track_count, SUM(selections) AS total_selections").
		Group("artist_name").
		Order("total_selections DESC").
		Scan(&report).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build exposure report: %w", err)
	}
	return report, nil
}

// CountBucket is a label with its playlist count.
type CountBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// BusinessMetrics summarizes generation activity.
type BusinessMetrics struct {
	TotalPlaylists     int64                  `json:"total_playlists"`
	PublishedPlaylists int64                  `json:"published_playlists"`
	AverageTrackCount  float64                `json:"average_track_count"`
	ByGenre            []CountBucket          `json:"by_genre"`
	ByActivity         []CountBucket          `json:"by_activity"`
	TopTracks          []models.TrackExposure `json:"top_tracks"`
}

// GetBusinessMetrics aggregates playlist and exposure statistics.
func (s *ExposureService) GetBusinessMetrics(ctx context.Context) (*BusinessMetrics, error) {
	db := s.db.WithContext(ctx)
	metrics := &BusinessMetrics{}

	if err := db.Model(&models.GeneratedPlaylist{}).Count(&metrics.TotalPlaylists).Error; err != nil {
		return nil, fmt.Errorf("failed to count playlists: %w", err)
	}
	if err := db.Model(&models.GeneratedPlaylist{}).
		Where("spotify_id <> ''").
		Count(&metrics.PublishedPlaylists).Error; err != nil {
		return nil, fmt.Errorf("failed to count published playlists: %w", err)
	}
	if err := db.Model(&models.GeneratedPlaylist{}).
		Select("COALESCE(AVG(track_count), 0)").
		Scan(&metrics.AverageTrackCount).Error; err != nil {
		return nil, fmt.Errorf("failed to average track counts: %w", err)
	}

	if err := db.Model(&models.GeneratedPlaylist{}).
		Select("genre AS label, COUNT(*) AS count").
		Where("genre <> ''").
		Group("genre").
		Order("count DESC").
		Scan(&metrics.ByGenre).Error; err != nil {
		return nil, fmt.Errorf("failed to group playlists by genre: %w", err)
	}
	if err := db.Model(&models.GeneratedPlaylist{}).
		Select("activity AS label, COUNT(*) AS count").
		Where("activity <> ''").
		Group("activity").
		Order("count DESC").
		Scan(&metrics.ByActivity).Error; err != nil {
		return nil, fmt.Errorf("failed to group playlists by activity: %w", err)
	}

	if err := db.Model(&models.TrackExposure{}).
		Order("selections DESC").
		Limit(topTracksLimit).
		Find(&metrics.TopTracks).Error; err != nil {
		return nil, fmt.Errorf("failed to load top tracks: %w", err)
	}

	return metrics, nil
}
