// Package itinerary assembles complete travel plans from validated trip
// requests and serves them over HTTP behind short-lived sessions.
package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/app/observability/metrics"
	"github.com/dora-travel/dora-planner/internal/api/catalog"
	"github.com/dora-travel/dora-planner/internal/api/narration"
	"github.com/dora-travel/dora-planner/internal/api/options"
	"github.com/dora-travel/dora-planner/internal/api/planner"
	"github.com/dora-travel/dora-planner/internal/types"
)

// Service turns a validated trip request into a full itinerary.
type Service interface {
	Generate(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl provides the concrete implementation of Service.
type ServiceImpl struct {
	logger    *slog.Logger
	narration narration.Service
}

// NewServiceImpl creates the itinerary assembler.
func NewServiceImpl(narrationService narration.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		narration: narrationService,
	}
}

// Generate implements Service.Generate. The deterministic parts (flights,
// hotels, day plan) run on the calling goroutine while the narration call
// runs concurrently; both must land before the itinerary is composed.
// Callers must have validated the request at the boundary.
func (s *ServiceImpl) Generate(ctx context.Context, req types.TripRequest) (it *types.Itinerary, err error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("trip.theme", string(req.TravelTheme)),
		attribute.Int("trip.destinations", len(req.Destinations)),
		attribute.Int("trip.party_size", req.PartySize),
	))
	defer span.End()

	startedAt := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Panic during itinerary assembly", slog.Any("panic", r))
			span.SetStatus(codes.Error, "Assembly panic")
			it = nil
			err = fmt.Errorf("%w: %v", types.ErrGenerationFailed, r)
		}
	}()

	start, end, err := req.Dates()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unparsable trip dates")
		return nil, fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}
	durationDays := types.DurationDays(start, end)

	resultCh := make(chan types.DestinationInfo, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.ErrorContext(ctx, "Panic during narration, serving curated content", slog.Any("panic", r))
				resultCh <- narration.Fallback(req.Destinations, req.TravelTheme)
			}
		}()
		resultCh <- s.narration.Narrate(ctx, req.Destinations, req.TravelTheme, durationDays, req.PartySize)
	}()

	flights := options.Flights(req.OriginCity, req.Destinations, req.TravelTheme, req.BudgetPerPerson)
	hotels := options.Hotels(req.Destinations, req.TravelTheme, req.BudgetPerPerson, req.PartySize)
	days := planner.Plan(start, end, req.Destinations, req.TravelTheme)

	var info types.DestinationInfo
	select {
	case info = <-resultCh:
	case <-ctx.Done():
		span.SetStatus(codes.Error, "Context cancelled")
		return nil, ctx.Err()
	}
	wg.Wait()

	it = &types.Itinerary{
		User: types.UserSummary{
			Name:            req.UserName,
			BudgetPerPerson: req.BudgetPerPerson,
			Currency:        req.CurrencyOrDefault(),
			Theme:           req.TravelTheme,
			PartySize:       req.PartySize,
		},
		Trip: types.TripSummary{
			Origin:       req.OriginCity,
			Destination:  catalog.DisplayName(req.Destinations),
			Destinations: req.Destinations,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			DurationDays: durationDays,
		},
		Flights:         flights,
		Accommodations:  hotels,
		ItineraryDays:   days,
		DestinationInfo: info,
		UtilityLinks:    catalog.Links(),
	}

	m := metrics.Get()
	m.ItinerariesGeneratedTotal.Add(ctx, 1)
	m.GenerationDurationSeconds.Record(ctx, time.Since(startedAt).Seconds())

	span.SetAttributes(attribute.Int("itinerary.days", len(days)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	s.logger.InfoContext(ctx, "Itinerary generated",
		slog.String("origin", req.OriginCity),
		slog.Int("duration_days", durationDays),
		slog.Int("destinations", len(req.Destinations)))
	return it, nil
}
