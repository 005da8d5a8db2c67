// Package planner partitions a trip's date range across its ordered
// destinations and emits one structured day record per calendar date.
package planner

import (
	"fmt"
	"time"

	"github.com/dora-travel/dora-planner/internal/api/catalog"
	"github.com/dora-travel/dora-planner/internal/types"
)

// Plan walks the inclusive [start, end] range day by day and assigns each
// date a role: arrival on the first day, departure on the last, a transition
// day whenever the current destination's day budget is spent and another
// destination follows, and a full day otherwise.
//
// Days per destination use truncating division (max 1); the last destination
// absorbs any remainder. That uneven split is intentional and must not be
// replaced with a fairer rounding rule.
func Plan(start, end time.Time, destinations []string, theme types.Theme) []types.DayPlan {
	if len(destinations) == 0 {
		destinations = []string{catalog.PlaceholderDestination}
	}

	totalDays := types.DurationDays(start, end)
	daysPerDestination := totalDays / len(destinations)
	if daysPerDestination < 1 {
		daysPerDestination = 1
	}

	phrases := catalog.Activities(theme)

	plans := make([]types.DayPlan, 0, totalDays)
	destIdx := 0
	daysAtCurrent := 0
	phraseIdx := 0

	for i := 0; i < totalDays; i++ {
		date := start.AddDate(0, 0, i)
		day := types.DayPlan{
			Day:  i + 1,
			Date: date.Format(types.DateLayout),
		}

		switch {
		case i == 0:
			day.Summary = fmt.Sprintf("Arrival in %s", destinations[destIdx])
			day.Activities = arrivalActivities(destinations[destIdx])
			daysAtCurrent++
		case i == totalDays-1:
			day.Summary = "Departure day"
			day.Activities = departureActivities()
		case daysAtCurrent >= daysPerDestination && destIdx < len(destinations)-1:
			current := destinations[destIdx]
			destIdx++
			next := destinations[destIdx]
			day.Summary = fmt.Sprintf("Travel to %s", next)
			day.Activities = transitionActivities(current, next)
			daysAtCurrent = 1
		default:
			current := destinations[destIdx]
			day.Summary = fmt.Sprintf("Exploring %s", current)
			day.Activities = fullDayActivities(current, phrases, &phraseIdx)
			daysAtCurrent++
		}

		plans = append(plans, day)
	}
	return plans
}

func arrivalActivities(destination string) []types.Activity {
	return []types.Activity{
		{
			Type:        types.ActivityTravel,
			Description: fmt.Sprintf("Arrive in %s", destination),
			Time:        "Morning",
			Details:     "Flight arrival and hotel check-in",
		},
		{
			Type:        types.ActivityLeisure,
			Description: "Settle in and take a first stroll around the neighborhood",
			Time:        "Afternoon",
		},
	}
}

func departureActivities() []types.Activity {
	return []types.Activity{
		{
			Type:        types.ActivityTravel,
			Description: "Hotel check-out and transfer to the airport",
			Time:        "Morning",
		},
		{
			Type:        types.ActivityTravel,
			Description: "Departure flight home",
			Time:        "Afternoon",
		},
	}
}

func transitionActivities(current, next string) []types.Activity {
	return []types.Activity{
		{
			Type:        types.ActivityTravel,
			Description: fmt.Sprintf("Travel from %s to %s", current, next),
			Time:        "Morning",
			Details:     "Check out and make your way to the next stop",
		},
		{
			Type:        types.ActivitySightseeing,
			Description: fmt.Sprintf("First look around %s", next),
			Time:        "Afternoon",
		},
	}
}

// fullDayActivities emits the Sightseeing/Dining/Culture trio for an
// interior day, drawing phrases from the theme list by a shared index so
// repetition only starts once the list is exhausted.
func fullDayActivities(destination string, phrases []string, phraseIdx *int) []types.Activity {
	roles := []struct {
		activityType types.ActivityType
		timeOfDay    string
	}{
		{types.ActivitySightseeing, "Morning"},
		{types.ActivityDining, "Afternoon"},
		{types.ActivityCulture, "Evening"},
	}

	activities := make([]types.Activity, 0, len(roles))
	for _, role := range roles {
		activities = append(activities, types.Activity{
			Type:        role.activityType,
			Description: phrases[*phraseIdx%len(phrases)],
			Time:        role.timeOfDay,
			Details:     fmt.Sprintf("In %s", destination),
		})
		*phraseIdx++
	}
	return activities
}
