package narration

import (
	"fmt"

	"github.com/dora-travel/dora-planner/internal/api/catalog"
	"github.com/dora-travel/dora-planner/internal/types"
)

// Fallback assembles a briefing from the curated catalog. Its output has
// the same shape guarantees as parsed model output: a non-empty
// introduction plus five packing tips and five cultural notes.
func Fallback(destinations []string, theme types.Theme) types.DestinationInfo {
	content := catalog.Narration(theme)
	return types.DestinationInfo{
		Introduction:  fmt.Sprintf(content.IntroTemplate, catalog.DisplayName(destinations)),
		PackingTips:   append([]string(nil), content.PackingTips...),
		CulturalNotes: append([]string(nil), content.CulturalNotes...),
	}
}
