package catalog

import (
	"context"
	"fmt"

	"github.com/daleplay/playlist-api/internal/models"
	"gorm.io/gorm"
)

// Store is the read surface the pipeline needs from the catalog. The
// catalog is small (a few hundred tracks), so filtering happens in memory
// against the full list.
type Store interface {
	ListAllTracks(ctx context.Context) ([]models.CatalogTrack, error)
	ArtistNames(ctx context.Context) ([]string, error)
}

// GormStore reads the catalog from Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListAllTracks(ctx context.Context) ([]models.CatalogTrack, error) {
	var tracks []models.CatalogTrack
	if err := s.db.WithContext(ctx).Order("id").Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog tracks: %w", err)
	}
	return tracks, nil
}

func (s *GormStore) ArtistNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.CatalogTrack{}).
		Distinct("artist_main").
		Order("artist_main").
		Pluck("artist_main", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load artist names: %w", err)
	}
	return names, nil
}

// MemoryStore serves a fixed track list, for tests and local runs without
// a database.
type MemoryStore struct {
	tracks []models.CatalogTrack
}

func NewMemoryStore(tracks []models.CatalogTrack) *MemoryStore {
	return &MemoryStore{tracks: tracks}
}

func (s *MemoryStore) ListAllTracks(_ context.Context) ([]models.CatalogTrack, error) {
	out := make([]models.CatalogTrack, len(s.tracks))
	copy(out, s.tracks)
	return out, nil
}

func (s *MemoryStore) ArtistNames(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range s.tracks {
		if t.ArtistMain == "" {
			continue
		}
		if _, ok := seen[t.ArtistMain]; ok {
			continue
		}
		seen[t.ArtistMain] = struct{}{}
		names = append(names, t.ArtistMain)
	}
	return names, nil
}
