package models

import (
	"time"

	"gorm.io/gorm"
)

// GeneratedPlaylist records one playlist generation, for auditing and the
// business metrics endpoints.
type GeneratedPlaylist struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Prompt          string         `gorm:"not null" json:"prompt"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	Activity        string         `gorm:"index" json:"activity,omitempty"`
	Genre           string         `gorm:"index" json:"genre,omitempty"`
	TrackCount      int            `gorm:"not null" json:"track_count"`
	DurationMinutes int            `json:"duration_minutes"`
	Model           string         `json:"model"`
	SpotifyID       string         `gorm:"index" json:"spotify_id,omitempty"`
	SpotifyURL      string         `json:"spotify_url,omitempty"`
}

// TrackExposure counts how often each catalog track lands in a generated
// playlist, the input to the fair-rotation exposure report.
type TrackExposure struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	SpotifyTrackID string    `gorm:"uniqueIndex;not null" json:"spotify_track_id"`
	TrackName      string    `gorm:"not null" json:"track_name"`
	ArtistName     string    `gorm:"index" json:"artist_name"`
	Selections     int       `gorm:"default:0;not null" json:"selections"`
	LastSelectedAt time.Time `json:"last_selected_at"`
}
