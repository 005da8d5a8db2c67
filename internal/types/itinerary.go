package types

// ActivityType classifies a single itinerary activity.
type ActivityType string

const (
	ActivityTravel      ActivityType = "Travel"
	ActivityLeisure     ActivityType = "Leisure"
	ActivitySightseeing ActivityType = "Sightseeing"
	ActivityDining      ActivityType = "Dining"
	ActivityCulture     ActivityType = "Culture"
)

// FlightOption is one synthesized flight offer. Three are produced per
// itinerary; they have no identity beyond their position in the list.
type FlightOption struct {
	Airline       string  `json:"airline"`
	Price         float64 `json:"price"`
	BookingLink   string  `json:"booking_link"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Duration      string  `json:"duration"`
	Stops         int     `json:"stops"`
}

// HotelOption is one synthesized accommodation offer.
type HotelOption struct {
	Name          string   `json:"name"`
	PricePerNight float64  `json:"price_per_night"`
	BookingLink   string   `json:"booking_link"`
	StarRating    int      `json:"star_rating"`
	Amenities     []string `json:"amenities"`
	Image         string   `json:"image"`
}

// Activity is a single entry in a day plan.
type Activity struct {
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Time        string       `json:"time,omitempty"`
	Details     string       `json:"details,omitempty"`
}

// DayPlan covers exactly one calendar date of the trip. Day indices are
// 1-based and contiguous across the whole itinerary.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Summary    string     `json:"summary"`
	Activities []Activity `json:"activities"`
}

// DestinationInfo is the narrative guide portion of an itinerary.
// Both the AI path and the fallback path must produce a non-empty
// introduction, exactly 5 packing tips and exactly 5 cultural notes.
type DestinationInfo struct {
	Introduction  string   `json:"introduction"`
	PackingTips   []string `json:"packing_tips"`
	CulturalNotes []string `json:"cultural_notes"`
}

// UtilityLinks holds reference URLs surfaced alongside the itinerary.
// Currently constant regardless of input, but modeled as data so a later
// revision can vary them per destination.
type UtilityLinks struct {
	VisaInfo         string `json:"visa_info,omitempty"`
	CurrencyExchange string `json:"currency_exchange,omitempty"`
	SimCards         string `json:"sim_cards,omitempty"`
	Transportation   string `json:"transportation,omitempty"`
}

// UserSummary echoes the requester's preferences back in the itinerary.
type UserSummary struct {
	Name            string  `json:"name"`
	BudgetPerPerson float64 `json:"budget"`
	Currency        string  `json:"currency"`
	Theme           Theme   `json:"theme"`
	PartySize       int     `json:"party_size"`
}

// TripSummary describes the route and dates of the generated trip.
type TripSummary struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	Destinations []string `json:"destinations"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	DurationDays int      `json:"duration_days"`
}

// Itinerary is the full generated travel plan. It is assembled once per
// accepted TripRequest and never mutated afterwards.
type Itinerary struct {
	User            UserSummary     `json:"user"`
	Trip            TripSummary     `json:"trip"`
	Flights         []FlightOption  `json:"flights"`
	Accommodations  []HotelOption   `json:"accommodations"`
	ItineraryDays   []DayPlan       `json:"itinerary_days"`
	DestinationInfo DestinationInfo `json:"destination_info"`
	UtilityLinks    UtilityLinks    `json:"utility_links"`
}
