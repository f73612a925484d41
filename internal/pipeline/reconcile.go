package pipeline

import (
	"log"
	"strings"

	"github.com/daleplay/playlist-api/internal/models"
	"github.com/daleplay/playlist-api/internal/textmatch"
)

// ReconciledTrack is a catalog track resolved from an LLM pick, carrying
// the curator's stated reason for including it.
type ReconciledTrack struct {
	models.CatalogTrack
	Reason string `json:"reason,omitempty"`
}

// ReconciliationReport accounts for every pick: matched, invalid (empty
// name or artist), or not found in the catalog. A shortfall is normal,
// the LLM does not always reproduce catalog entries perfectly.
type ReconciliationReport struct {
	Requested int                    `json:"requested"`
	Matched   int                    `json:"matched"`
	Invalid   []models.SelectedTrack `json:"invalid,omitempty"`
	NotFound  []models.SelectedTrack `json:"not_found,omitempty"`
}

// Shortfall is how many picks failed to resolve to a catalog track.
func (r ReconciliationReport) Shortfall() int {
	return r.Requested - r.Matched
}

// Reconcile maps LLM picks back onto real catalog tracks, in pick order,
// deduplicating by external track ID. Exact normalized name+artist match
// is tried first, then a partial match (name containment either direction
// plus tolerant artist match).
func Reconcile(picks []models.SelectedTrack, catalog []models.CatalogTrack) ([]ReconciledTrack, ReconciliationReport) {
	report := ReconciliationReport{Requested: len(picks)}

	var reconciled []ReconciledTrack
	emitted := make(map[string]struct{})

	for _, pick := range picks {
		if strings.TrimSpace(pick.TrackName) == "" || strings.TrimSpace(pick.ArtistName) == "" {
			log.Printf("⚠️  Skipping invalid pick (empty name or artist): %+v", pick)
			report.Invalid = append(report.Invalid, pick)
			continue
		}

		track, found := matchPick(pick, catalog)
		if !found {
			log.Printf("⚠️  Pick not found in catalog: %q by %q", pick.TrackName, pick.ArtistName)
			report.NotFound = append(report.NotFound, pick)
			continue
		}

		if _, dup := emitted[track.SpotifyID]; dup {
			continue
		}
		emitted[track.SpotifyID] = struct{}{}

		reconciled = append(reconciled, ReconciledTrack{CatalogTrack: track, Reason: pick.Reason})
		report.Matched++
	}

	return reconciled, report
}

func matchPick(pick models.SelectedTrack, catalog []models.CatalogTrack) (models.CatalogTrack, bool) {
	pickName := textmatch.Normalize(pick.TrackName)
	pickArtist := textmatch.Normalize(pick.ArtistName)

	// Exact name + exact artist first
	for _, track := range catalog {
		if textmatch.Normalize(track.Name) != pickName {
			continue
		}
		if artistEquals(track, pickArtist) {
			return track, true
		}
	}

	// Partial: name containment either direction, tolerant artist match
	for _, track := range catalog {
		trackName := textmatch.Normalize(track.Name)
		if trackName == "" {
			continue
		}
		if !strings.Contains(trackName, pickName) && !strings.Contains(pickName, trackName) {
			continue
		}
		if artistMatches(track, pickArtist) {
			return track, true
		}
	}

	return models.CatalogTrack{}, false
}

func artistEquals(track models.CatalogTrack, normalizedArtist string) bool {
	if textmatch.Normalize(track.ArtistMain) == normalizedArtist {
		return true
	}
	for _, artist := range track.AllArtists() {
		if textmatch.Normalize(artist) == normalizedArtist {
			return true
		}
	}
	return false
}

func artistMatches(track models.CatalogTrack, normalizedArtist string) bool {
	if textmatch.ArtistNameMatches(textmatch.Normalize(track.ArtistMain), normalizedArtist) {
		return true
	}
	for _, artist := range track.AllArtists() {
		if textmatch.ArtistNameMatches(textmatch.Normalize(artist), normalizedArtist) {
			return true
		}
	}
	return false
}
