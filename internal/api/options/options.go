// Package options synthesizes the fixed-size flight and hotel option sets.
// All functions are pure and deterministic: prices derive from budget and
// party size by simple arithmetic, profiles are fixed, and inputs are
// pre-validated at the boundary so nothing here can fail.
package options

import (
	"fmt"
	"math"
	"net/url"

	"github.com/dora-travel/dora-planner/internal/api/catalog"
	"github.com/dora-travel/dora-planner/internal/types"
)

const (
	flightBudgetShare = 0.4
	flightPriceCap    = 800
	multiCityFactor   = 1.2

	hotelBudgetShare = 0.3
	hotelPriceCap    = 300
)

// flightProfile pairs a price offset with a fixed airline/time/stop shape.
// The spread is deliberate: one cheaper but slower, one pricier but direct.
type flightProfile struct {
	airline     string
	priceOffset float64
	departure   string
	arrival     string
	duration    string
	stops       int
}

var flightProfiles = []flightProfile{
	{airline: "SkyWings Airlines", priceOffset: 0, departure: "08:30 AM", arrival: "02:45 PM", duration: "6h 15m", stops: 1},
	{airline: "Pacific Express", priceOffset: -50, departure: "11:00 PM", arrival: "07:30 AM", duration: "8h 30m", stops: 2},
	{airline: "Global Airways", priceOffset: 100, departure: "10:15 AM", arrival: "03:20 PM", duration: "5h 05m", stops: 0},
}

// hotelProfile fixes the good/better/best accommodation ladder. Amenity
// budgets shrink with the star rating: the 3-star keeps the fewest
// theme-specific amenities, the 5-star keeps them all.
type hotelProfile struct {
	nameFormat  string
	priceOffset float64
	stars       int
	amenityCap  int // -1 keeps the full theme list
	image       string
}

var hotelProfiles = []hotelProfile{
	{nameFormat: "Grand %s Hotel", priceOffset: 0, stars: 4, amenityCap: 3, image: "https://images.unsplash.com/photo-1566073771259-6a8506099945"},
	{nameFormat: "%s City Inn", priceOffset: -30, stars: 3, amenityCap: 2, image: "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa"},
	{nameFormat: "The Royal %s", priceOffset: 80, stars: 5, amenityCap: -1, image: "https://images.unsplash.com/photo-1542314831-068cd1dbfeeb"},
}

// Flights produces the three synthetic flight offers for the route.
// Base price is a capped share of the per-person budget, with a flat
// multi-city surcharge applied before the ladder offsets.
func Flights(originCity string, destinations []string, theme types.Theme, budgetPerPerson float64) []types.FlightOption {
	base := math.Min(flightBudgetShare*budgetPerPerson, flightPriceCap)
	if len(destinations) > 1 {
		base *= multiCityFactor
	}

	dest := catalog.PlaceholderDestination
	if len(destinations) > 0 {
		dest = destinations[0]
	}

	flights := make([]types.FlightOption, 0, len(flightProfiles))
	for _, p := range flightProfiles {
		flights = append(flights, types.FlightOption{
			Airline:       p.airline,
			Price:         roundPrice(base + p.priceOffset),
			BookingLink:   flightLink(originCity, dest),
			DepartureTime: p.departure,
			ArrivalTime:   p.arrival,
			Duration:      p.duration,
			Stops:         p.stops,
		})
	}
	return flights
}

// Hotels produces the three synthetic accommodation offers for the first
// destination. Nightly price is a capped per-person share of the budget.
func Hotels(destinations []string, theme types.Theme, budgetPerPerson float64, partySize int) []types.HotelOption {
	nightly := math.Min(hotelBudgetShare*budgetPerPerson/float64(partySize), hotelPriceCap)

	dest := catalog.PlaceholderDestination
	if len(destinations) > 0 {
		dest = destinations[0]
	}
	city := cityLabel(dest)

	hotels := make([]types.HotelOption, 0, len(hotelProfiles))
	for _, p := range hotelProfiles {
		themed := catalog.Amenities(theme)
		if p.amenityCap >= 0 && p.amenityCap < len(themed) {
			themed = themed[:p.amenityCap]
		}
		hotels = append(hotels, types.HotelOption{
			Name:          fmt.Sprintf(p.nameFormat, city),
			PricePerNight: roundPrice(nightly + p.priceOffset),
			BookingLink:   hotelLink(dest),
			StarRating:    p.stars,
			Amenities:     dedupe(append(append([]string{}, catalog.UniversalAmenities...), themed...)),
			Image:         p.image,
		})
	}
	return hotels
}

func flightLink(origin, destination string) string {
	return fmt.Sprintf("https://www.kayak.com/flights?origin=%s&destination=%s",
		url.QueryEscape(origin), url.QueryEscape(destination))
}

func hotelLink(destination string) string {
	return fmt.Sprintf("https://www.booking.com/searchresults.html?ss=%s", url.QueryEscape(destination))
}

// cityLabel strips a trailing country part from "City, Country" labels so
// hotel names read naturally.
func cityLabel(destination string) string {
	for i, r := range destination {
		if r == ',' {
			return destination[:i]
		}
	}
	return destination
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
