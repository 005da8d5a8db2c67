package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

// Theme is a closed travel-style category driving content selection.
// Values outside the known set are kept verbatim for echoing back to the
// client but resolve to generic catalog content.
type Theme string

const (
	ThemeFamily    Theme = "Family"
	ThemeBusiness  Theme = "Business"
	ThemeLuxury    Theme = "Luxury"
	ThemeAdventure Theme = "Adventure"
	ThemeBudget    Theme = "Budget"
	ThemeHoneymoon Theme = "Honeymoon"
)

// KnownThemes lists every theme with dedicated catalog content.
var KnownThemes = []Theme{ThemeFamily, ThemeBusiness, ThemeLuxury, ThemeAdventure, ThemeBudget, ThemeHoneymoon}

// IsKnown reports whether the theme has dedicated catalog content.
func (t Theme) IsKnown() bool {
	for _, known := range KnownThemes {
		if t == known {
			return true
		}
	}
	return false
}

// TripRequest carries the trip preferences submitted by the client.
// It is validated at the HTTP boundary and never mutated afterwards.
type TripRequest struct {
	UserName        string   `json:"user_name"`
	OriginCity      string   `json:"origin_city"`
	Destinations    []string `json:"destinations"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	TravelTheme     Theme    `json:"travel_theme"`
	PartySize       int      `json:"party_size"`
	BudgetPerPerson float64  `json:"budget_per_person"`
	Currency        string   `json:"currency"`
}

// Validate enforces the boundary contract: non-empty destinations,
// parsable dates with end >= start, positive budget and party size.
// Invalid requests must never reach the assembler.
func (r *TripRequest) Validate() error {
	if strings.TrimSpace(r.UserName) == "" {
		return fmt.Errorf("user_name is required")
	}
	if strings.TrimSpace(r.OriginCity) == "" {
		return fmt.Errorf("origin_city is required")
	}
	if len(r.Destinations) == 0 {
		return fmt.Errorf("at least one destination is required")
	}
	for i, d := range r.Destinations {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("destination at position %d is empty", i)
		}
	}
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("start_date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("end_date must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	if r.PartySize < 1 {
		return fmt.Errorf("party_size must be at least 1")
	}
	if r.BudgetPerPerson <= 0 {
		return fmt.Errorf("budget_per_person must be positive")
	}
	return nil
}

// Dates returns the parsed start and end dates. Callers must have
// validated the request first.
func (r *TripRequest) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse end_date: %w", err)
	}
	return start, end, nil
}

// CurrencyOrDefault returns the request currency, defaulting to USD.
func (r *TripRequest) CurrencyOrDefault() string {
	if strings.TrimSpace(r.Currency) == "" {
		return "USD"
	}
	return r.Currency
}

// DurationDays computes the inclusive trip length in days.
func DurationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
