package prompt

import (
	"strings"

	"github.com/daleplay/playlist-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetCuratorSystemPrompt loads the curator system prompt
func (l *Loader) GetCuratorSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.CuratorSystemPromptTxt)), nil
}
