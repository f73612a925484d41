package pipeline

import (
	"fmt"
	"testing"

	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.CatalogTrack {
	return []models.CatalogTrack{
		{SpotifyID: "sp1", Name: "Noche Larga", ArtistMain: "Duki", Genres: []string{"trap", "urban"}},
		{SpotifyID: "sp2", Name: "Sin Frenos", ArtistMain: "Trueno", Genres: []string{"trap latino"}},
		{SpotifyID: "sp3", Name: "Ruta 40", ArtistMain: "Eruca Sativa", Genres: []string{"argentine rock"}},
		{SpotifyID: "sp4", Name: "Canción Bonita", ArtistMain: "Emilia", Genres: []string{"latin pop"}},
		{SpotifyID: "sp5", Name: "Sin Etiquetas", ArtistMain: "Nicki Nicole"},
		{SpotifyID: "sp6", Name: "Vuelta al Sol", ArtistMain: "Conociendo Rusia", Genres: []string{"rock"}},
	}
}

func TestFilterAndRankGenreFilter(t *testing.T) {
	pool := FilterAndRank(testCatalog(), intent.Request{Genre: "trap"}, FilterOptions{})

	require.Len(t, pool, 2)
	assert.Equal(t, "sp1", pool[0].SpotifyID)
	assert.Equal(t, "sp2", pool[1].SpotifyID)
}

func TestFilterAndRankArtistFilter(t *testing.T) {
	pool := FilterAndRank(testCatalog(), intent.Request{PreferredArtists: []string{"nicki nicole"}}, FilterOptions{})

	require.Len(t, pool, 1)
	assert.Equal(t, "sp5", pool[0].SpotifyID)
}

func TestFilterAndRankRelaxesWhenFilterRemovesEverything(t *testing.T) {
	pool := FilterAndRank(testCatalog(), intent.Request{Genre: "cumbia"}, FilterOptions{})

	// Nothing matches cumbia; the filter falls back to the full catalog
	// instead of returning an empty pool.
	assert.Len(t, pool, len(testCatalog()))
}

func TestFilterAndRankDisabledHardFilters(t *testing.T) {
	pool := FilterAndRank(testCatalog(), intent.Request{Genre: "trap"}, FilterOptions{DisableHardFilters: true})

	assert.Len(t, pool, len(testCatalog()))
	// Scoring still prefers the genre matches.
	assert.Equal(t, "sp1", pool[0].SpotifyID)
	assert.Equal(t, "sp2", pool[1].SpotifyID)
}

func TestFilterAndRankScoring(t *testing.T) {
	pool := FilterAndRank(testCatalog(), intent.Request{
		Genre:            "rock",
		PreferredArtists: []string{"Conociendo Rusia"},
	}, FilterOptions{})

	require.Len(t, pool, 2)
	// Genre + artist match outranks genre match alone.
	assert.Equal(t, "sp6", pool[0].SpotifyID)
	assert.Equal(t, "sp3", pool[1].SpotifyID)
}

func TestFilterAndRankTracksWithGenresRankFirst(t *testing.T) {
	pool := FilterAndRank(testCatalog(), intent.Request{}, FilterOptions{})

	require.Len(t, pool, len(testCatalog()))
	// sp5 has no genre tags and sinks to the bottom.
	assert.Equal(t, "sp5", pool[len(pool)-1].SpotifyID)
	// Everything else keeps catalog order (stable sort, equal scores).
	assert.Equal(t, "sp1", pool[0].SpotifyID)
}

func TestFilterAndRankPoolCap(t *testing.T) {
	var catalog []models.CatalogTrack
	for i := 0; i < 500; i++ {
		catalog = append(catalog, models.CatalogTrack{
			SpotifyID:  fmt.Sprintf("sp%d", i),
			Name:       fmt.Sprintf("Track %d", i),
			ArtistMain: "Artist",
			Genres:     []string{"trap"},
		})
	}

	pool := FilterAndRank(catalog, intent.Request{Genre: "trap"}, FilterOptions{})
	assert.Len(t, pool, CandidatePoolSize)

	small := FilterAndRank(catalog, intent.Request{}, FilterOptions{FilterCap: 20, PoolSize: 5})
	assert.Len(t, small, 5)
}

func TestFilterAndRankEmptyCatalog(t *testing.T) {
	assert.Empty(t, FilterAndRank(nil, intent.Request{Genre: "trap"}, FilterOptions{}))
}
