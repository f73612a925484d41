package models

// PlaylistSelection represents the structured output from the curator LLM
type PlaylistSelection struct {
	PlaylistName string          `json:"playlistName"`
	Description  string          `json:"description"`
	Tracks       []SelectedTrack `json:"tracks"`
}

// SelectedTrack is one LLM pick, referencing a candidate pool entry by name
type SelectedTrack struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	Reason     string `json:"reason"`
}
