package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/daleplay/playlist-api/internal/catalog"
	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/llm"
	"github.com/daleplay/playlist-api/internal/models"
)

// Pipeline runs a playlist generation end to end: extract intent, filter
// and rank the catalog, delegate selection to the curator LLM, reconcile
// the picks. Each request runs independently; the pipeline holds no
// mutable state.
type Pipeline struct {
	store     catalog.Store
	extractor *intent.Extractor
	selector  *Selector

	// Zero values fall back to the package defaults.
	FilterCap int
	PoolSize  int
}

func New(store catalog.Store, extractor *intent.Extractor, selector *Selector) *Pipeline {
	return &Pipeline{
		store:     store,
		extractor: extractor,
		selector:  selector,
	}
}

// Result is the caller-facing outcome of one generation.
type Result struct {
	PlaylistName       string               `json:"playlistName"`
	Description        string               `json:"description"`
	Tracks             []ReconciledTrack    `json:"tracks"`
	DetectedGenre      string               `json:"detectedGenre,omitempty"`
	Request            intent.Request       `json:"request"`
	Report             ReconciliationReport `json:"report"`
	UsedRelaxedFilters bool                 `json:"usedRelaxedFilters,omitempty"`
	Usage              llm.TokenUsage       `json:"usage"`
	Elapsed            time.Duration        `json:"-"`
}

// GeneratePlaylist is the single entry point callers use.
// explicitTrackCount overrides the duration-derived count for edit
// operations; pass nil otherwise.
func (p *Pipeline) GeneratePlaylist(ctx context.Context, promptText string, explicitTrackCount *int) (*Result, error) {
	startTime := time.Now()
	log.Printf("🎵 PLAYLIST GENERATION STARTED: %q", promptText)

	tracks, err := p.store.ListAllTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrCatalogEmpty
	}

	artistNames, err := p.store.ArtistNames(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load artist names, skipping artist detection: %v", err)
		artistNames = nil
	}

	request := p.extractor.Extract(promptText, artistNames)
	if explicitTrackCount != nil && *explicitTrackCount > 0 {
		request.TrackCount = *explicitTrackCount
	}

	log.Printf("📊 INTENT: duration=%dmin tracks=%d activity=%q intensity=%q genre=%q artists=%d",
		request.DurationMinutes, request.TrackCount, request.Activity,
		request.Intensity, request.Genre, len(request.PreferredArtists))

	result, err := p.attempt(ctx, request, tracks, false)
	if err != nil && retriable(err) {
		log.Printf("⚠️  First attempt failed (%v), retrying once with relaxed filters", err)
		result, err = p.attempt(ctx, request, tracks, true)
		if result != nil {
			result.UsedRelaxedFilters = true
		}
	}
	if err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(startTime)
	log.Printf("✅ PLAYLIST GENERATED in %v: %q (%d/%d tracks)",
		result.Elapsed, result.PlaylistName, result.Report.Matched, result.Report.Requested)

	return result, nil
}

// attempt runs filter → select → reconcile once.
func (p *Pipeline) attempt(ctx context.Context, request intent.Request, tracks []models.CatalogTrack, relaxed bool) (*Result, error) {
	pool := FilterAndRank(tracks, request, FilterOptions{
		DisableHardFilters: relaxed,
		FilterCap:          p.FilterCap,
		PoolSize:           p.PoolSize,
	})
	if len(pool) == 0 {
		return nil, ErrCatalogEmpty
	}

	selection, usage, err := p.selector.Select(ctx, pool, request)
	if err != nil {
		return nil, err
	}

	reconciled, report := Reconcile(selection.Tracks, pool)
	if len(reconciled) == 0 {
		return nil, fmt.Errorf("%w: no picks matched the catalog", ErrMalformedResponse)
	}
	if shortfall := report.Shortfall(); shortfall > 0 {
		log.Printf("⚠️  Reconciliation shortfall: %d of %d picks unmatched", shortfall, report.Requested)
	}

	return &Result{
		PlaylistName:  selection.PlaylistName,
		Description:   selection.Description,
		Tracks:        reconciled,
		DetectedGenre: request.Genre,
		Request:       request,
		Report:        report,
		Usage:         usage,
	}, nil
}

// retriable reports whether the orchestrator's single relaxed retry
// applies. Catalog emptiness before filtering is already fatal by the
// time attempt runs, so every attempt-level failure qualifies.
func retriable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrCatalogEmpty)
}
