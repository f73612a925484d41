package intent

import (
	"regexp"

	"github.com/daleplay/playlist-api/internal/textmatch"
)

// ValidationResult reports whether a prompt carries enough signal to
// generate a playlist. Warnings do not block generation.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

var timeSpecPattern = regexp.MustCompile(`\d+\s*(?:minutes?|mins?|hours?|hrs?|h\b)`)

// Validate is an optional gate callers apply before generation: a usable
// prompt needs a duration plus either an activity or a genre. Extraction
// itself never rejects a prompt.
func (e *Extractor) Validate(prompt string) ValidationResult {
	var result ValidationResult

	normalized := textmatch.Normalize(prompt)

	hasDuration := timeSpecPattern.MatchString(normalized)
	hasActivity := len(e.matchingActivities(normalized, promptKeywords(prompt))) > 0
	hasGenre := DetectGenre(prompt) != ""

	if !hasDuration {
		result.Errors = append(result.Errors, `specify how long the playlist should be, e.g. "30 minutes" or "1 hour"`)
	}
	if !hasActivity && !hasGenre {
		result.Errors = append(result.Errors, `mention an activity (running, studying, ...) or a genre (trap, rock, pop)`)
	}
	if hasActivity && detectIntensity(normalized) == "" {
		result.Warnings = append(result.Warnings, `add an intensity (chill, moderate, intense) for a better tempo match`)
	}

	result.Valid = len(result.Errors) == 0
	return result
}
