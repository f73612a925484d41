package embedded

import (
	_ "embed"
)

// Embed static reference data
//
//go:embed data/activities.json
var ActivitiesJSON []byte

//go:embed data/curator_system_prompt.txt
var CuratorSystemPromptTxt []byte
