package llm

const (
	// Track pick constraints
	maxReasonLength = 200

	selectionSchemaName = "playlist_selection"
)

// GetPlaylistSelectionSchema returns the JSON schema the curator LLM must
// follow when picking tracks. Every pick names a track and artist copied
// verbatim from the candidate pool.
func GetPlaylistSelectionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"playlistName": map[string]any{"type": "string"},
			"description":  map[string]any{"type": "string"},
			"tracks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"trackName":  map[string]any{"type": "string"},
						"artistName": map[string]any{"type": "string"},
						"reason":     map[string]any{"type": "string", "maxLength": maxReasonLength},
					},
					"required":             []string{"trackName", "artistName", "reason"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"playlistName", "description", "tracks"},
		"additionalProperties": false,
	}
}

// PlaylistSelectionSchema wraps the selection schema in the provider-neutral
// OutputSchema envelope.
func PlaylistSelectionSchema() *OutputSchema {
	return &OutputSchema{
		Name:        selectionSchemaName,
		Description: "Track selection for a generated playlist",
		Schema:      GetPlaylistSelectionSchema(),
	}
}
