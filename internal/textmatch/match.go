package textmatch

import "strings"

const (
	// Minimum normalized length before substring containment counts as a
	// match. Shorter strings produce too many false positives.
	minSubstringLen = 3
)

// MatchesGenre reports whether any of a track's genre tags matches the
// requested genre. Three tiers, most to least strict:
//  1. exact normalized equality
//  2. shared whole word between the two genre phrases, tolerant of
//     prefix/suffix variants ("argentine rock" matches "rock")
//  3. substring containment in either direction, when the requested genre
//     is significant (>= 3 chars)
func MatchesGenre(trackGenres []string, genre string) bool {
	if genre == "" {
		return true
	}

	normalizedGenre := Normalize(genre)
	genreWords := Words(genre)

	for _, g := range trackGenres {
		normalizedTrackGenre := Normalize(g)

		if normalizedTrackGenre == normalizedGenre {
			return true
		}

		if hasMatchingWord(genreWords, Words(g)) {
			return true
		}

		if len(normalizedGenre) >= minSubstringLen {
			if strings.Contains(normalizedTrackGenre, normalizedGenre) ||
				strings.Contains(normalizedGenre, normalizedTrackGenre) {
				return true
			}
		}
	}

	return false
}

// hasMatchingWord checks whether any word pair across the two phrases
// matches exactly or by prefix/suffix containment.
func hasMatchingWord(requestWords, trackWords []string) bool {
	for _, word := range requestWords {
		for _, trackWord := range trackWords {
			if trackWord == word ||
				strings.HasPrefix(trackWord, word) ||
				strings.HasSuffix(trackWord, word) ||
				strings.HasPrefix(word, trackWord) ||
				strings.HasSuffix(word, trackWord) {
				return true
			}
		}
	}
	return false
}

// MatchesArtist reports whether a track (primary artist plus any listed
// artists) matches one of the requested artist names, by normalized
// equality or substring containment in either direction.
func MatchesArtist(primaryArtist string, allArtists []string, requested []string) bool {
	if len(requested) == 0 {
		return true
	}

	normalizedRequested := make([]string, 0, len(requested))
	for _, a := range requested {
		normalizedRequested = append(normalizedRequested, Normalize(a))
	}

	if primary := Normalize(primaryArtist); primary != "" {
		for _, want := range normalizedRequested {
			if artistNamesMatch(primary, want) {
				return true
			}
		}
	}

	for _, artist := range allArtists {
		trackArtist := Normalize(artist)
		for _, want := range normalizedRequested {
			if artistNamesMatch(trackArtist, want) {
				return true
			}
		}
	}

	return false
}

// artistNamesMatch is the shared equality/substring rule used for artist
// comparison throughout the pipeline (filtering and reconciliation).
func artistNamesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// ArtistNameMatches exposes artistNamesMatch for single pre-normalized
// name pairs; callers must pass already-normalized strings.
func ArtistNameMatches(normalizedA, normalizedB string) bool {
	return artistNamesMatch(normalizedA, normalizedB)
}
