package prompt

import (
	"fmt"
	"strings"

	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/models"
)

// CuratorPromptBuilder builds prompts for the curator LLM
type CuratorPromptBuilder struct {
	loader *Loader
}

// NewCuratorPromptBuilder creates a new curator prompt builder
func NewCuratorPromptBuilder() *CuratorPromptBuilder {
	return &CuratorPromptBuilder{loader: NewPromptLoader()}
}

// BuildSystemPrompt returns the curator system instructions
func (b *CuratorPromptBuilder) BuildSystemPrompt() (string, error) {
	return b.loader.GetCuratorSystemPrompt()
}

// BuildUserPrompt renders the candidate pool and the structured request into
// the curator's user message. Each catalog line uses the exact
// "TrackName|ArtistName|genres" format the system prompt tells the model to
// copy from.
func (b *CuratorPromptBuilder) BuildUserPrompt(request intent.Request, candidates []models.CatalogTrack) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "CATALOG (%d tracks available):\n", len(candidates))
	for _, track := range candidates {
		sb.WriteString(FormatCatalogLine(track))
		sb.WriteString("\n")
	}

	sb.WriteString("\nREQUEST:\n")
	fmt.Fprintf(&sb, "- User prompt: %q\n", request.RawPrompt)
	fmt.Fprintf(&sb, "- Pick exactly %d tracks\n", request.TrackCount)
	fmt.Fprintf(&sb, "- Target duration: about %d minutes\n", request.DurationMinutes)

	if request.Activity != "" {
		fmt.Fprintf(&sb, "- Activity: %s\n", request.Activity)
	}
	if request.Intensity != "" {
		fmt.Fprintf(&sb, "- Intensity: %s\n", request.Intensity)
	}
	if request.Genre != "" {
		fmt.Fprintf(&sb, "- Genre: %s\n", request.Genre)
	}
	if len(request.PreferredArtists) > 0 {
		fmt.Fprintf(&sb, "- Preferred artists: %s\n", strings.Join(request.PreferredArtists, ", "))
		sb.WriteString("- Favor the preferred artists, but keep several picks from other artists so the playlist stays varied\n")
	}
	if request.BPMRange != nil {
		fmt.Fprintf(&sb, "- Suggested tempo: %d-%d BPM\n", request.BPMRange.Min, request.BPMRange.Max)
	}

	fmt.Fprintf(&sb, "\nPick exactly %d tracks from the catalog above, copying names verbatim.", request.TrackCount)

	return sb.String()
}

// FormatCatalogLine renders one candidate as "TrackName|ArtistName|genres".
func FormatCatalogLine(track models.CatalogTrack) string {
	genres := strings.Join(track.Genres, ", ")
	if genres == "" {
		genres = "unknown"
	}
	return fmt.Sprintf("%s|%s|%s", track.Name, track.ArtistMain, genres)
}
