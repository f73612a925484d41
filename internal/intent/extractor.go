package intent

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/daleplay/playlist-api/internal/textmatch"
)

// Defaults for deriving track counts from a requested duration.
const (
	DefaultDurationMinutes = 20
	AvgTrackLengthMinutes  = 3.5
	MinTrackCount          = 10
	MaxTrackCount          = 20
)

// Catalog genres recognized in prompts.
const (
	GenreTrap = "trap"
	GenreRock = "rock"
	GenrePop  = "pop"
)

// Request is the structured form of a free-text playlist prompt. Empty
// string / nil means the corresponding field was not detected.
type Request struct {
	RawPrompt        string    `json:"rawPrompt"`
	DurationMinutes  int       `json:"durationMinutes"`
	TrackCount       int       `json:"trackCount"`
	Activity         string    `json:"activity,omitempty"`
	Intensity        string    `json:"intensity,omitempty"`
	Genre            string    `json:"genre,omitempty"`
	PreferredArtists []string  `json:"preferredArtists,omitempty"`
	BPMRange         *BPMRange `json:"bpmRange,omitempty"`
}

// Extractor turns free-text prompts into Requests using the static activity
// reference table. Extraction is pure and deterministic; a field that finds
// no match stays at its zero value, it never fails.
type Extractor struct {
	activities []Activity

	// Tunables, preset from the package defaults.
	DefaultDuration int
	AvgTrackMinutes float64
	MinTracks       int
	MaxTracks       int
}

func NewExtractor(activities []Activity) *Extractor {
	return &Extractor{
		activities:      activities,
		DefaultDuration: DefaultDurationMinutes,
		AvgTrackMinutes: AvgTrackLengthMinutes,
		MinTracks:       MinTrackCount,
		MaxTracks:       MaxTrackCount,
	}
}

// Extract parses a prompt into a Request. knownArtists is the catalog's
// artist name list, used for preferred-artist detection; pass nil to skip.
func (e *Extractor) Extract(prompt string, knownArtists []string) Request {
	normalized := textmatch.Normalize(prompt)

	minutes, ok := ParseDuration(prompt)
	if !ok {
		minutes = e.DefaultDuration
	}

	req := Request{
		RawPrompt:       prompt,
		DurationMinutes: minutes,
		TrackCount:      e.TrackCountFor(minutes),
		Intensity:       detectIntensity(normalized),
	}

	if matches := e.matchingActivities(normalized, promptKeywords(prompt)); len(matches) > 0 {
		selected := selectByIntensity(matches, req.Intensity)
		req.Activity = selected.Name
		req.BPMRange = e.ResolveBPM(selected.Name, req.Intensity)
	}

	// Genre and activity are detected independently and may coexist.
	req.Genre = DetectGenre(prompt)
	req.PreferredArtists = DetectArtists(prompt, knownArtists)

	return req
}

// TrackCountFor derives a track count from a duration in minutes, clamped
// to the configured bounds.
func (e *Extractor) TrackCountFor(durationMinutes int) int {
	count := int(math.Ceil(float64(durationMinutes) / e.AvgTrackMinutes))
	if count < e.MinTracks {
		return e.MinTracks
	}
	if count > e.MaxTracks {
		return e.MaxTracks
	}
	return count
}

// durationPattern is one entry of the ordered duration-parsing table. The
// first pattern that matches the lower-cased prompt wins.
type durationPattern struct {
	re               *regexp.Regexp
	hasHours         bool
	hasMinutes       bool
	rejectNearApprox bool
}

var durationPatterns = []durationPattern{
	// "1 hour 30 minutes", "1 hour, 30 minutes", "2h and 15 min"
	{re: regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?|h)\b[\s,]*(?:and\s+)?(\d+)\s*(?:minutes?|mins?)\b`), hasHours: true, hasMinutes: true},
	// "1 hour", "2 hrs", "3h"
	{re: regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?|h)\b`), hasHours: true},
	// "approximately 45 minutes", "approx. 45 min"
	{re: regexp.MustCompile(`approx[a-z]*\.?\s*(\d+)\s*(?:minutes?|mins?)\b`), hasMinutes: true},
	// "30 minutes" — rejected if preceded by approx text, so the pattern
	// above keeps precedence over this one
	{re: regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?)\b`), hasMinutes: true, rejectNearApprox: true},
}

// approxLookback is how far before a bare-minutes match we scan for
// "approx" text before rejecting the match.
const approxLookback = 20

// ParseDuration extracts a duration in minutes from a prompt. The boolean
// reports whether any pattern matched; callers fall back to a default.
func ParseDuration(prompt string) (int, bool) {
	lower := strings.ToLower(prompt)

	for _, p := range durationPatterns {
		m := p.re.FindStringSubmatchIndex(lower)
		if m == nil {
			continue
		}
		if p.rejectNearApprox && precededByApprox(lower, m[0]) {
			continue
		}

		minutes := 0
		group := 1
		if p.hasHours {
			hours, _ := strconv.Atoi(lower[m[2*group]:m[2*group+1]])
			minutes += hours * 60
			group++
		}
		if p.hasMinutes {
			mins, _ := strconv.Atoi(lower[m[2*group]:m[2*group+1]])
			minutes += mins
		}
		if minutes <= 0 {
			continue
		}
		return minutes, true
	}

	return 0, false
}

func precededByApprox(lower string, matchStart int) bool {
	start := matchStart - approxLookback
	if start < 0 {
		start = 0
	}
	return strings.Contains(lower[start:matchStart], "approx")
}

// stopWords are filler words ignored when extracting activity keywords.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "about": {}, "some": {}, "please": {}, "want": {},
	"need": {}, "like": {}, "make": {}, "create": {}, "give": {},
	"playlist": {}, "playlists": {}, "music": {}, "song": {}, "songs": {},
	"track": {}, "tracks": {}, "minute": {}, "minutes": {}, "mins": {},
	"hour": {}, "hours": {}, "hrs": {}, "time": {}, "long": {},
	"duration": {}, "list": {}, "mix": {}, "session": {},
}

// promptKeywords returns the prompt's significant words: normalized,
// at least 3 characters, and not in the stop-word set.
func promptKeywords(prompt string) []string {
	words := textmatch.Words(prompt)
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// matchingActivities scans the reference table for every activity matched
// by the prompt, via (a) the full activity name appearing in the prompt,
// (b) a prompt keyword contained in the activity name, or (c) a word of
// the activity name appearing in the prompt.
func (e *Extractor) matchingActivities(normalizedPrompt string, keywords []string) []Activity {
	var matches []Activity

	for _, a := range e.activities {
		name := textmatch.Normalize(a.Name)
		if name == "" {
			continue
		}

		matched := strings.Contains(normalizedPrompt, name)

		if !matched {
			for _, kw := range keywords {
				if strings.Contains(name, kw) {
					matched = true
					break
				}
			}
		}

		if !matched {
			for _, nameWord := range strings.Fields(name) {
				if len(nameWord) >= 3 && textmatch.ContainsWord(normalizedPrompt, nameWord) {
					matched = true
					break
				}
			}
		}

		if matched {
			matches = append(matches, a)
		}
	}

	return matches
}

// selectByIntensity picks the table entry whose stored intensity matches
// the user's requested intensity; falls back to the first match.
func selectByIntensity(matches []Activity, intensity string) Activity {
	if targets, ok := intensityTargets[intensity]; ok {
		for _, m := range matches {
			for _, t := range targets {
				if strings.EqualFold(m.Intensity, t) {
					return m
				}
			}
		}
	}
	return matches[0]
}

func detectIntensity(normalizedPrompt string) string {
	for _, kw := range intensityKeywords {
		if strings.Contains(normalizedPrompt, kw.phrase) {
			return kw.canonical
		}
	}
	return ""
}

// genreKeywords maps each catalog genre to the prompt phrases that select
// it, ordered most specific genre first; the first hit wins.
var genreKeywords = []struct {
	genre    string
	keywords []string
}{
	{GenreTrap, []string{"trap", "latin trap", "rap", "hip hop", "urban", "reggaeton", "freestyle"}},
	{GenreRock, []string{"rock", "rock and roll", "punk", "metal", "grunge", "indie", "alternative"}},
	{GenrePop, []string{"pop", "dance pop", "synth pop", "electropop"}},
}

// DetectGenre returns the first catalog genre whose keyword list has a
// whole-phrase hit in the prompt, or "" when none match.
func DetectGenre(prompt string) string {
	padded := " " + strings.Join(textmatch.Words(prompt), " ") + " "

	for _, entry := range genreKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return entry.genre
			}
		}
	}

	return ""
}

// DetectArtists returns every known artist mentioned in the prompt, by
// exact match, word-boundary match, or (for names of 3+ chars) substring
// containment. Order follows knownArtists; duplicates are dropped.
func DetectArtists(prompt string, knownArtists []string) []string {
	if len(knownArtists) == 0 {
		return nil
	}

	normalizedPrompt := textmatch.Normalize(prompt)
	padded := " " + strings.Join(textmatch.Words(prompt), " ") + " "

	var found []string
	seen := make(map[string]struct{})

	for _, artist := range knownArtists {
		name := textmatch.Normalize(artist)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}

		wordForm := " " + strings.Join(textmatch.Words(artist), " ") + " "
		matched := normalizedPrompt == name ||
			strings.Contains(padded, wordForm) ||
			(len(name) >= 3 && strings.Contains(normalizedPrompt, name))

		if matched {
			seen[name] = struct{}{}
			found = append(found, artist)
		}
	}

	return found
}
