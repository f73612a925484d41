package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFactoryByModel(t *testing.T) {
	factory := NewProviderFactory("test-openai-key", "test-gemini-key")
	ctx := context.Background()

	tests := []struct {
		name     string
		model    string
		expected string
	}{
		{name: "gpt model", model: "gpt-4.1-mini", expected: "openai"},
		{name: "gemini model", model: "gemini-2.0-flash", expected: "gemini"},
		{name: "unknown defaults to openai", model: "mystery-model", expected: "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := factory.GetProvider(ctx, tt.model, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, provider.Name())
		})
	}
}

func TestProviderFactoryByName(t *testing.T) {
	factory := NewProviderFactory("test-openai-key", "test-gemini-key")
	ctx := context.Background()

	provider, err := factory.GetProvider(ctx, "gpt-4.1-mini", "gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini", provider.Name())

	_, err = factory.GetProvider(ctx, "gpt-4.1-mini", "anthropic")
	assert.Error(t, err)
}

func TestProviderFactoryMissingKeys(t *testing.T) {
	factory := NewProviderFactory("", "")
	ctx := context.Background()

	_, err := factory.GetProvider(ctx, "gpt-4.1-mini", "")
	assert.Error(t, err)

	_, err = factory.GetProvider(ctx, "gemini-2.0-flash", "")
	assert.Error(t, err)
}

func TestPlaylistSelectionSchema(t *testing.T) {
	schema := PlaylistSelectionSchema()

	require.NotNil(t, schema)
	assert.Equal(t, "playlist_selection", schema.Name)

	root, ok := schema.Schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, root, "playlistName")
	assert.Contains(t, root, "description")
	assert.Contains(t, root, "tracks")

	// Strict mode requires every property listed and no extras
	assert.Equal(t, []string{"playlistName", "description", "tracks"}, schema.Schema["required"])
	assert.Equal(t, false, schema.Schema["additionalProperties"])
}
