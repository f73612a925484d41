package pipeline

import (
	"log"
	"sort"

	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/models"
	"github.com/daleplay/playlist-api/internal/textmatch"
)

const (
	// CatalogFilterCap bounds the pre-filtered set before scoring; it caps
	// LLM payload size, nothing more.
	CatalogFilterCap = 300

	// CandidatePoolSize is how many scored tracks reach the curator LLM.
	CandidatePoolSize = 250

	scoreGenreMatch  = 10
	scoreArtistMatch = 10
	scoreHasGenres   = 2
)

// FilterOptions tunes FilterAndRank. Zero values fall back to the package
// defaults.
type FilterOptions struct {
	// DisableHardFilters skips the genre/artist pre-filter entirely,
	// used by the orchestrator's relaxed retry.
	DisableHardFilters bool
	FilterCap          int
	PoolSize           int
}

func (o FilterOptions) filterCap() int {
	if o.FilterCap > 0 {
		return o.FilterCap
	}
	return CatalogFilterCap
}

func (o FilterOptions) poolSize() int {
	if o.PoolSize > 0 {
		return o.PoolSize
	}
	return CandidatePoolSize
}

// FilterAndRank narrows the catalog to a scored candidate pool for the
// curator LLM. Hard genre/artist filters apply first; if they remove
// everything the filter re-runs without them rather than returning an
// empty pool. The result is ordered by score, catalog order breaking ties.
func FilterAndRank(catalog []models.CatalogTrack, request intent.Request, opts FilterOptions) []models.CatalogTrack {
	if len(catalog) == 0 {
		return nil
	}

	filtersActive := !opts.DisableHardFilters && (request.Genre != "" || len(request.PreferredArtists) > 0)

	filtered := catalog
	if filtersActive {
		filtered = applyHardFilters(catalog, request)
		if len(filtered) == 0 {
			log.Printf("⚠️  Hard filters removed all %d tracks (genre=%q, artists=%d), retrying unfiltered",
				len(catalog), request.Genre, len(request.PreferredArtists))
			filtered = catalog
		}
	}

	if limit := opts.filterCap(); len(filtered) > limit {
		filtered = filtered[:limit]
	}

	scored := make([]scoredTrack, len(filtered))
	for i, track := range filtered {
		scored[i] = scoredTrack{track: track, score: scoreTrack(track, request)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	size := opts.poolSize()
	if len(scored) < size {
		size = len(scored)
	}

	pool := make([]models.CatalogTrack, size)
	for i := range pool {
		pool[i] = scored[i].track
	}
	return pool
}

type scoredTrack struct {
	track models.CatalogTrack
	score int
}

func applyHardFilters(catalog []models.CatalogTrack, request intent.Request) []models.CatalogTrack {
	var filtered []models.CatalogTrack
	for _, track := range catalog {
		if request.Genre != "" && !textmatch.MatchesGenre(track.Genres, request.Genre) {
			continue
		}
		if len(request.PreferredArtists) > 0 &&
			!textmatch.MatchesArtist(track.ArtistMain, track.AllArtists(), request.PreferredArtists) {
			continue
		}
		filtered = append(filtered, track)
	}
	return filtered
}

func scoreTrack(track models.CatalogTrack, request intent.Request) int {
	score := 0
	if request.Genre != "" && textmatch.MatchesGenre(track.Genres, request.Genre) {
		score += scoreGenreMatch
	}
	if len(request.PreferredArtists) > 0 &&
		textmatch.MatchesArtist(track.ArtistMain, track.AllArtists(), request.PreferredArtists) {
		score += scoreArtistMatch
	}
	if len(track.Genres) > 0 {
		score += scoreHasGenres
	}
	return score
}
