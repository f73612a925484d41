package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Rock Nacional", expected: "rock nacional"},
		{name: "strips accents", input: "Canción Bonita", expected: "cancion bonita"},
		{name: "trims whitespace", input: "  trap  ", expected: "trap"},
		{name: "handles enye", input: "Años Luz", expected: "anos luz"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Canción", "TRAP LATINO", "Müller & Söhne", "  mixed Case Ágüita ", "already normal"}

	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", s)
	}
}

func TestMatchesGenre(t *testing.T) {
	tests := []struct {
		name        string
		trackGenres []string
		genre       string
		expected    bool
	}{
		{name: "exact match", trackGenres: []string{"trap"}, genre: "trap", expected: true},
		{name: "exact match with accents", trackGenres: []string{"música pop"}, genre: "Musica Pop", expected: true},
		{name: "word match in phrase", trackGenres: []string{"argentine rock"}, genre: "rock", expected: true},
		{name: "word match reversed phrase", trackGenres: []string{"rock"}, genre: "argentine rock", expected: true},
		{name: "substring containment", trackGenres: []string{"trap latino"}, genre: "trap", expected: true},
		{name: "prefix tolerant word", trackGenres: []string{"rockabilly"}, genre: "rock", expected: true},
		{name: "no match", trackGenres: []string{"cumbia"}, genre: "rock", expected: false},
		{name: "empty genre accepts all", trackGenres: []string{"cumbia"}, genre: "", expected: true},
		{name: "no genre tags", trackGenres: nil, genre: "rock", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesGenre(tt.trackGenres, tt.genre))
		})
	}
}

func TestMatchesArtist(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		all       []string
		requested []string
		expected  bool
	}{
		{name: "primary exact", primary: "Nicki Nicole", requested: []string{"nicki nicole"}, expected: true},
		{name: "primary substring", primary: "Bizarrap", requested: []string{"bizarrap ft quevedo"}, expected: true},
		{name: "featured artist", primary: "Duki", all: []string{"Duki", "Emilia"}, requested: []string{"Emilia"}, expected: true},
		{name: "accented request", primary: "Andrés Calamaro", requested: []string{"andres calamaro"}, expected: true},
		{name: "no requested accepts all", primary: "Duki", requested: nil, expected: true},
		{name: "no match", primary: "Duki", all: []string{"Duki"}, requested: []string{"Trueno"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesArtist(tt.primary, tt.all, tt.requested))
		})
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("a playlist for running, 30 minutes", "running"))
	assert.True(t, ContainsWord("TRAP playlist", "trap"))
	assert.False(t, ContainsWord("traptastic playlist", "trap"))
	assert.False(t, ContainsWord("", "trap"))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"a", "playlist", "for", "running", "30", "minutes"},
		Words("A playlist for running, 30 minutes"))
	assert.Empty(t, Words("  ,. !"))
}
