package narration

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dora-travel/dora-planner/internal/types"
)

func parseDestinationInfo(txt string) (types.DestinationInfo, error) {
	jsonStr := strings.TrimPrefix(strings.TrimSuffix(strings.TrimSpace(txt), "```"), "```json")

	var info types.DestinationInfo
	if err := json.Unmarshal([]byte(jsonStr), &info); err != nil {
		return types.DestinationInfo{}, fmt.Errorf("failed to parse destination info JSON: %w", err)
	}
	if strings.TrimSpace(info.Introduction) == "" {
		return types.DestinationInfo{}, fmt.Errorf("destination info is missing an introduction")
	}
	if len(info.PackingTips) != 5 {
		return types.DestinationInfo{}, fmt.Errorf("expected 5 packing tips, got %d", len(info.PackingTips))
	}
	if len(info.CulturalNotes) != 5 {
		return types.DestinationInfo{}, fmt.Errorf("expected 5 cultural notes, got %d", len(info.CulturalNotes))
	}
	return info, nil
}
