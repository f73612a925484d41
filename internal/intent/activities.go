package intent

import (
	"encoding/json"
	"fmt"

	"github.com/daleplay/playlist-api/pkg/embedded"
)

// Activity is one row of the static activity reference table: an activity
// name, a stored intensity label, and the tempo range that suits the pair.
type Activity struct {
	Name      string `json:"activity"`
	Intensity string `json:"intensity"`
	BPMMin    int    `json:"bpm_min"`
	BPMMax    int    `json:"bpm_max"`
}

// BPMRange is a resolved tempo range, advisory context for track selection.
type BPMRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultActivities parses the embedded activity reference table. The table
// is immutable process-wide data; load it once at startup and share it.
func DefaultActivities() ([]Activity, error) {
	var activities []Activity
	if err := json.Unmarshal(embedded.ActivitiesJSON, &activities); err != nil {
		return nil, fmt.Errorf("failed to parse embedded activities table: %w", err)
	}
	if len(activities) == 0 {
		return nil, fmt.Errorf("embedded activities table is empty")
	}
	return activities, nil
}

// Intensity labels stored in the activity table.
const (
	intensityVeryLow      = "very low"
	intensityLow          = "low"
	intensityLowModerate  = "low-moderate"
	intensityModerate     = "moderate"
	intensityModerateHigh = "moderate-high"
	intensityHigh         = "high"
	intensityVeryHigh     = "very high"
)

// intensityKeyword maps a phrase users write to a canonical intensity label.
// Ordered most-specific first; the first phrase found in the prompt wins.
type intensityKeyword struct {
	phrase    string
	canonical string
}

var intensityKeywords = []intensityKeyword{
	{"very high", "very high"},
	{"high energy", "high energy"},
	{"hard workout", "hard workout"},
	{"more chill", "chill"},
	{"chill", "chill"},
	{"relaxed", "relaxed"},
	{"soft", "soft"},
	{"moderate", "moderate"},
	{"medium", "medium"},
	{"intense", "intense"},
	{"hard", "hard"},
	{"high", "high"},
}

// intensityTargets maps a canonical user intensity to the stored intensity
// labels it should select from the activity table.
var intensityTargets = map[string][]string{
	"chill":        {intensityLow, intensityVeryLow},
	"relaxed":      {intensityLow, intensityVeryLow},
	"soft":         {intensityLow, intensityLowModerate},
	"medium":       {intensityModerate},
	"moderate":     {intensityModerate},
	"high":         {intensityHigh, intensityModerateHigh},
	"hard":         {intensityHigh, intensityVeryHigh},
	"hard workout": {intensityHigh, intensityVeryHigh},
	"intense":      {intensityHigh, intensityVeryHigh},
	"high energy":  {intensityHigh, intensityVeryHigh},
	"very high":    {intensityVeryHigh},
}
