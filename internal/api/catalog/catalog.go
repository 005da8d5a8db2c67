// Package catalog holds the static theme-keyed content tables feeding the
// option generators, the day planner and the narration fallback. All tables
// are immutable; lookups for unrecognized themes resolve to generic entries.
package catalog

import (
	"strings"

	"github.com/dora-travel/dora-planner/internal/types"
)

// PlaceholderDestination stands in when a request somehow carries no
// destinations, so generators still produce well-shaped output.
const PlaceholderDestination = "Your Destination"

// UniversalAmenities are included in every hotel option, ahead of the
// theme-specific ones.
var UniversalAmenities = []string{"Free WiFi", "24h Front Desk", "Air Conditioning"}

// genericAmenities backs hotels for themes without a dedicated entry.
var genericAmenities = []string{"Restaurant", "Room Service"}

var themeAmenities = map[types.Theme][]string{
	types.ThemeFamily:    {"Kids Club", "Family Rooms", "Playground", "Childcare Service", "Game Room"},
	types.ThemeBusiness:  {"Business Center", "Meeting Rooms", "Express Check-in", "Workspace Desk"},
	types.ThemeLuxury:    {"Spa & Wellness", "Fine Dining Restaurant", "Concierge Service", "Rooftop Pool", "Valet Parking"},
	types.ThemeAdventure: {"Gear Storage", "Guided Tour Desk", "Bike Rental", "Laundry Service"},
	types.ThemeBudget:    {"Shared Kitchen", "Luggage Storage", "Vending Machines"},
	types.ThemeHoneymoon: {"Couples Spa", "Private Balcony", "Champagne Service", "Candlelight Dining"},
}

// genericActivities is the fixed 4-item list used for unknown themes.
var genericActivities = []string{
	"Explore the historic city center",
	"Sample the local cuisine at a popular spot",
	"Visit the most famous landmark in town",
	"Browse a local market or shopping street",
}

var themeActivities = map[types.Theme][]string{
	types.ThemeFamily: {
		"Spend the morning at the city zoo or aquarium",
		"Join a family-friendly walking tour",
		"Picnic and playground time at the central park",
		"Hands-on exhibits at the science museum",
		"Ice cream stop at a beloved local parlor",
	},
	types.ThemeBusiness: {
		"Coffee and coworking at a well-connected cafe",
		"Lunch at a restaurant popular with locals for meetings",
		"Quick visit to the city's signature landmark",
		"Evening networking at a rooftop bar",
	},
	types.ThemeLuxury: {
		"Private guided tour of the city's highlights",
		"Tasting menu at an acclaimed restaurant",
		"Afternoon at an exclusive spa",
		"Champagne at sunset with skyline views",
		"Personal shopping in the designer district",
	},
	types.ThemeAdventure: {
		"Sunrise hike on a nearby trail",
		"Bike ride through the city's outskirts",
		"Kayaking or rafting on the local river",
		"Street food crawl through the old quarter",
		"Climb the highest viewpoint around",
	},
	types.ThemeBudget: {
		"Free walking tour with a local guide",
		"Lunch from the best-rated street food stalls",
		"Visit the museums on their free-entry hours",
		"People-watching at the liveliest public square",
	},
	types.ThemeHoneymoon: {
		"Slow morning stroll through the most romantic quarter",
		"Candlelit dinner for two",
		"Couples massage and spa afternoon",
		"Sunset cruise or viewpoint visit",
		"Wine tasting at an intimate cellar",
	},
}

// Amenities returns the theme-specific amenity list, or a generic pair
// when the theme has no dedicated entry.
func Amenities(theme types.Theme) []string {
	if list, ok := themeAmenities[theme]; ok {
		return list
	}
	return genericAmenities
}

// Activities returns the theme's activity phrases for full days.
func Activities(theme types.Theme) []string {
	if list, ok := themeActivities[theme]; ok {
		return list
	}
	return genericActivities
}

// NarrationContent is one entry of the curated fallback narration table.
// IntroTemplate carries a single %s verb for the destination display string.
type NarrationContent struct {
	IntroTemplate string
	PackingTips   []string
	CulturalNotes []string
}

var genericNarration = NarrationContent{
	IntroTemplate: "Get ready for %s! This trip brings together iconic sights, memorable food and plenty of room to wander, whether it is your first visit or a long-awaited return.",
	PackingTips: []string{
		"Comfortable walking shoes for long days out",
		"A light layer for cool evenings",
		"Universal power adapter and charger",
		"Copies of travel documents, digital and paper",
		"Reusable water bottle for day trips",
	},
	CulturalNotes: []string{
		"Learn a few greetings in the local language",
		"Check typical tipping customs before dining out",
		"Dress modestly when visiting religious sites",
		"Observe local queueing and transit etiquette",
		"Carry some local cash for small vendors",
	},
}

var themeNarration = map[types.Theme]NarrationContent{
	types.ThemeFamily: {
		IntroTemplate: "%s is a wonderful pick for a family escape. Expect welcoming locals, kid-approved attractions and enough variety to keep every generation smiling from arrival to departure.",
		PackingTips: []string{
			"Snacks and entertainment for travel days",
			"A compact stroller or carrier for little ones",
			"Sunscreen and hats for the whole family",
			"A small first-aid kit with children's basics",
			"Swimwear, because hotel pools always happen",
		},
		CulturalNotes: []string{
			"Families are warmly received at most restaurants",
			"Ask about child discounts at attractions and transit",
			"Plan around nap times, big sights get busy by noon",
			"Many museums run dedicated kids' programs",
			"Playgrounds are great places to meet local families",
		},
	},
	types.ThemeBusiness: {
		IntroTemplate: "%s pairs productive days with rewarding evenings. Reliable transit, strong coffee and a dense city core make it easy to move between meetings and still see the highlights.",
		PackingTips: []string{
			"Wrinkle-resistant business attire",
			"Laptop, chargers and a universal adapter",
			"Business cards, still expected in many markets",
			"Comfortable shoes for between-meeting walks",
			"A slim day bag that works in the office and out",
		},
		CulturalNotes: []string{
			"Punctuality is read as respect, arrive early",
			"Check local greeting customs before first meetings",
			"Business dinners often run long, pace yourself",
			"Formal titles matter more than back home",
			"Confirm meeting etiquette around phones and notes",
		},
	},
	types.ThemeLuxury: {
		IntroTemplate: "%s rewards travelers who like things done properly. Think polished service, destination dining and experiences that are easier to book with a concierge on your side.",
		PackingTips: []string{
			"Evening wear for fine dining reservations",
			"Comfortable yet elegant daytime outfits",
			"Quality sunglasses and sun protection",
			"A refined day bag for excursions",
			"Leave suitcase space for inevitable purchases",
		},
		CulturalNotes: []string{
			"Book signature restaurants well in advance",
			"Engage the concierge early for hard-to-get tickets",
			"Dress codes are enforced at top venues",
			"Tipping expectations rise with service level",
			"Private guides unlock after-hours access at major sights",
		},
	},
}

// Narration returns the curated fallback narration content for the theme,
// or the generic template when no curated entry exists.
func Narration(theme types.Theme) NarrationContent {
	if content, ok := themeNarration[theme]; ok {
		return content
	}
	return genericNarration
}

// DisplayName joins the ordered destination list into the human-readable
// label used in summaries and narration.
func DisplayName(destinations []string) string {
	if len(destinations) == 0 {
		return PlaceholderDestination
	}
	return strings.Join(destinations, " & ")
}

// Links returns the constant utility links block.
func Links() types.UtilityLinks {
	return types.UtilityLinks{
		VisaInfo:         "https://www.ivisa.com",
		CurrencyExchange: "https://www.xe.com/currencyconverter",
		SimCards:         "https://www.airalo.com",
		Transportation:   "https://www.rome2rio.com",
	}
}
