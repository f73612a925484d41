package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/llm"
	"github.com/daleplay/playlist-api/internal/models"
	"github.com/daleplay/playlist-api/internal/observability"
	"github.com/daleplay/playlist-api/internal/prompt"
)

// SelectionTemperature balances variety between generations against
// staying on-brief.
const SelectionTemperature = 0.7

// Selector delegates track picking to the curator LLM with a forced
// structured-output contract. It performs no retries; the orchestrator
// owns the single relaxed retry.
type Selector struct {
	provider    llm.Provider
	builder     *prompt.CuratorPromptBuilder
	model       string
	temperature float64
}

func NewSelector(provider llm.Provider, model string) *Selector {
	return &Selector{
		provider:    provider,
		builder:     prompt.NewCuratorPromptBuilder(),
		model:       model,
		temperature: SelectionTemperature,
	}
}

// Select asks the LLM to pick tracks from the candidate pool. Picks beyond
// request.TrackCount are truncated; under-delivery passes through, the
// reconciler and caller tolerate short lists.
func (s *Selector) Select(ctx context.Context, candidates []models.CatalogTrack, request intent.Request) (*models.PlaylistSelection, llm.TokenUsage, error) {
	systemPrompt, err := s.builder.BuildSystemPrompt()
	if err != nil {
		return nil, llm.TokenUsage{}, fmt.Errorf("failed to load curator prompt: %w", err)
	}
	userPrompt := s.builder.BuildUserPrompt(request, candidates)

	trace := observability.GetClient().StartTrace(ctx, "playlist.selection", map[string]any{
		"model":      s.model,
		"candidates": len(candidates),
		"trackCount": request.TrackCount,
	})
	defer trace.Finish()

	generation := trace.Generation("curator.completion", map[string]any{
		"model":       s.model,
		"temperature": s.temperature,
	})
	generation.Input(userPrompt)

	resp, err := s.provider.Complete(ctx, &llm.CompletionRequest{
		Model:        s.model,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  s.temperature,
		OutputSchema: llm.PlaylistSelectionSchema(),
	})
	if err != nil {
		generation.SetLevel("ERROR")
		generation.Finish()
		return nil, llm.TokenUsage{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	generation.Output(resp.RawOutput)
	generation.Usage(s.model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	generation.Finish()

	var selection models.PlaylistSelection
	if err := json.Unmarshal([]byte(resp.RawOutput), &selection); err != nil {
		return nil, resp.Usage, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if selection.PlaylistName == "" || len(selection.Tracks) == 0 {
		return nil, resp.Usage, fmt.Errorf("%w: missing playlistName or tracks", ErrMalformedResponse)
	}

	if request.TrackCount > 0 && len(selection.Tracks) > request.TrackCount {
		log.Printf("⚠️  Curator over-delivered (%d picks, wanted %d), truncating", len(selection.Tracks), request.TrackCount)
		selection.Tracks = selection.Tracks[:request.TrackCount]
	}

	return &selection, resp.Usage, nil
}
