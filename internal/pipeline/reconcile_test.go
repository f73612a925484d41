package pipeline

import (
	"testing"

	"github.com/daleplay/playlist-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileExactAndOrder(t *testing.T) {
	picks := []models.SelectedTrack{
		{TrackName: "Ruta 40", ArtistName: "Eruca Sativa", Reason: "opener"},
		{TrackName: "Invented Song", ArtistName: "Nobody", Reason: "bogus"},
		{TrackName: "Noche Larga", ArtistName: "Duki", Reason: "closer"},
	}

	reconciled, report := Reconcile(picks, testCatalog())

	require.Len(t, reconciled, 2)
	assert.Equal(t, "sp3", reconciled[0].SpotifyID)
	assert.Equal(t, "opener", reconciled[0].Reason)
	assert.Equal(t, "sp1", reconciled[1].SpotifyID)

	assert.Equal(t, 3, report.Requested)
	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 1, report.Shortfall())
	require.Len(t, report.NotFound, 1)
	assert.Equal(t, "Invented Song", report.NotFound[0].TrackName)
}

func TestReconcileNormalizesNames(t *testing.T) {
	picks := []models.SelectedTrack{
		{TrackName: "CANCION BONITA", ArtistName: "emilia"},
	}

	reconciled, report := Reconcile(picks, testCatalog())

	require.Len(t, reconciled, 1)
	assert.Equal(t, "sp4", reconciled[0].SpotifyID)
	assert.Equal(t, 1, report.Matched)
}

func TestReconcilePartialMatch(t *testing.T) {
	picks := []models.SelectedTrack{
		// Name containment plus artist substring both directions.
		{TrackName: "Noche", ArtistName: "Duki ft. Emilia"},
		{TrackName: "Sin Frenos (Remix)", ArtistName: "Trueno"},
	}

	reconciled, _ := Reconcile(picks, testCatalog())

	require.Len(t, reconciled, 2)
	assert.Equal(t, "sp1", reconciled[0].SpotifyID)
	assert.Equal(t, "sp2", reconciled[1].SpotifyID)
}

func TestReconcileDedupes(t *testing.T) {
	picks := []models.SelectedTrack{
		{TrackName: "Noche Larga", ArtistName: "Duki"},
		{TrackName: "noche larga", ArtistName: "DUKI"},
		{TrackName: "Noche", ArtistName: "Duki"},
	}

	reconciled, report := Reconcile(picks, testCatalog())

	require.Len(t, reconciled, 1)
	assert.Equal(t, "sp1", reconciled[0].SpotifyID)
	// Dedupe is silent: dropped duplicates count as neither matched nor lost.
	assert.Equal(t, 1, report.Matched)
	assert.Empty(t, report.NotFound)
}

func TestReconcileSkipsInvalidPicks(t *testing.T) {
	picks := []models.SelectedTrack{
		{TrackName: "", ArtistName: "Duki"},
		{TrackName: "Noche Larga", ArtistName: "  "},
		{TrackName: "Noche Larga", ArtistName: "Duki"},
	}

	reconciled, report := Reconcile(picks, testCatalog())

	require.Len(t, reconciled, 1)
	assert.Len(t, report.Invalid, 2)
	assert.Equal(t, 1, report.Matched)
}

func TestReconcileNeverInventsTracks(t *testing.T) {
	catalog := testCatalog()
	ids := make(map[string]struct{}, len(catalog))
	for _, track := range catalog {
		ids[track.SpotifyID] = struct{}{}
	}

	picks := []models.SelectedTrack{
		{TrackName: "Noche Larga", ArtistName: "Duki"},
		{TrackName: "Ghost Track", ArtistName: "Ghost Artist"},
		{TrackName: "Vuelta al Sol", ArtistName: "Conociendo Rusia"},
	}

	reconciled, _ := Reconcile(picks, catalog)

	for _, track := range reconciled {
		_, exists := ids[track.SpotifyID]
		assert.True(t, exists, "reconciled track %q must come from the catalog", track.SpotifyID)
	}
}

func TestReconcileEmptyPicks(t *testing.T) {
	reconciled, report := Reconcile(nil, testCatalog())
	assert.Empty(t, reconciled)
	assert.Equal(t, 0, report.Requested)
}
