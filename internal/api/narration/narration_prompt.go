package narration

import (
	"fmt"
	"strings"

	"github.com/dora-travel/dora-planner/internal/api/catalog"
	"github.com/dora-travel/dora-planner/internal/types"
)

func destinationInfoPrompt(destinations []string, theme types.Theme, durationDays, partySize int) string {
	return fmt.Sprintf(`
        Write a short destination briefing for a %d-day %s trip to %s for a party of %d.
        Return the response STRICTLY as a JSON object with:
        {
        "introduction": "A warm 2-3 sentence introduction to the destination, tailored to the trip theme.",
        "packing_tips": ["Exactly 5 short packing tips relevant to the destination and theme."],
        "cultural_notes": ["Exactly 5 short cultural or etiquette notes travelers should know."]
        }`, durationDays, strings.ToLower(string(theme)), catalog.DisplayName(destinations), partySize)
}
