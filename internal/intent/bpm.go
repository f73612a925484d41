package intent

import (
	"strings"

	"github.com/daleplay/playlist-api/internal/textmatch"
)

// ResolveBPM looks up the tempo range for an activity, optionally narrowed
// by a requested intensity. Activity names match by substring containment
// in either direction ("gym" finds "gym workout"). Returns nil when the
// activity is unknown.
func (e *Extractor) ResolveBPM(activity, intensity string) *BPMRange {
	name := textmatch.Normalize(activity)
	if name == "" {
		return nil
	}

	var candidates []Activity
	for _, a := range e.activities {
		stored := textmatch.Normalize(a.Name)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, name) || strings.Contains(name, stored) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	if targets, ok := intensityTargets[intensity]; ok {
		for _, c := range candidates {
			for _, t := range targets {
				if strings.EqualFold(c.Intensity, t) {
					return &BPMRange{Min: c.BPMMin, Max: c.BPMMax}
				}
			}
		}
	}

	return &BPMRange{Min: candidates[0].BPMMin, Max: candidates[0].BPMMax}
}
