package models

import (
	"time"

	"gorm.io/gorm"
)

// CatalogTrack is one track of the label's catalog, mirrored from the
// artist_tracks dataset. SpotifyID is the external identifier used when
// publishing playlists.
type CatalogTrack struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	SpotifyID  string         `gorm:"uniqueIndex;not null" json:"spotify_id"`
	Name       string         `gorm:"not null;index" json:"name"`
	ArtistMain string         `gorm:"not null;index" json:"artist_main"`
	Artists    []string       `gorm:"serializer:json" json:"artists"`
	Album      string         `json:"album"`
	ReleaseDate string        `json:"release_date"`
	DurationMs int            `json:"duration_ms"`
	BPM        float64        `json:"bpm"`
	Genres     []string       `gorm:"serializer:json" json:"genres"`
	PreviewURL string         `json:"preview_url,omitempty"`
	CoverURL   string         `json:"cover_url,omitempty"`
}

// AllArtists returns the track's full artist list, falling back to the
// primary artist when the list is empty.
func (t *CatalogTrack) AllArtists() []string {
	if len(t.Artists) > 0 {
		return t.Artists
	}
	if t.ArtistMain != "" {
		return []string{t.ArtistMain}
	}
	return nil
}
