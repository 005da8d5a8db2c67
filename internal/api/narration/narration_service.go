// Package narration produces the destination briefing block of an
// itinerary. Generation goes through the AI model when one is configured
// and falls back to curated catalog content on any failure, so callers
// always receive a complete briefing.
package narration

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"github.com/dora-travel/dora-planner/app/observability/metrics"
	"github.com/dora-travel/dora-planner/internal/types"
)

const (
	defaultTemperature = 0.6
	defaultTimeout     = 15 * time.Second
)

// Generator produces raw model output for a single prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Service narrates a trip. Narrate never fails: any model or parsing
// problem resolves to curated fallback content.
type Service interface {
	Narrate(ctx context.Context, destinations []string, theme types.Theme, durationDays, partySize int) types.DestinationInfo
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl provides the concrete implementation of Service.
type ServiceImpl struct {
	logger    *slog.Logger
	generator Generator
	cache     *cache.Cache
	group     singleflight.Group
	timeout   time.Duration
}

// NewServiceImpl creates a narration service. A nil generator is valid
// and routes every request straight to the curated fallback.
func NewServiceImpl(generator Generator, timeout, cacheTTL time.Duration, logger *slog.Logger) *ServiceImpl {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		cache:     cache.New(cacheTTL, 10*time.Minute),
		timeout:   timeout,
	}
}

// Narrate returns the destination briefing for the trip. Identical
// concurrent requests are collapsed into a single model call and
// successful results are cached per destination/theme/duration/party.
func (s *ServiceImpl) Narrate(ctx context.Context, destinations []string, theme types.Theme, durationDays, partySize int) types.DestinationInfo {
	ctx, span := otel.Tracer("NarrationService").Start(ctx, "Narrate", trace.WithAttributes(
		attribute.String("narration.theme", string(theme)),
		attribute.Int("narration.destinations", len(destinations)),
	))
	defer span.End()

	key := cacheKey(destinations, theme, durationDays, partySize)
	if cached, found := s.cache.Get(key); found {
		if info, ok := cached.(types.DestinationInfo); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			span.SetStatus(codes.Ok, "Narration served from cache")
			return info
		}
	}

	// The callback outlives the first caller: other collapsed callers may
	// still be waiting on the result after that caller cancels, so the
	// model call is detached from caller cancellation and bounded only by
	// the service timeout.
	result, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(context.WithoutCancel(ctx), key, destinations, theme, durationDays, partySize), nil
	})

	span.SetStatus(codes.Ok, "Narration produced")
	return result.(types.DestinationInfo)
}

func (s *ServiceImpl) generate(ctx context.Context, key string, destinations []string, theme types.Theme, durationDays, partySize int) types.DestinationInfo {
	if s.generator == nil {
		s.logger.InfoContext(ctx, "No narration generator configured, serving curated content")
		return Fallback(destinations, theme)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := destinationInfoPrompt(destinations, theme, durationDays, partySize)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](defaultTemperature)}

	txt, err := s.generator.GenerateContent(genCtx, prompt, config)
	if err != nil {
		s.logger.WarnContext(ctx, "Narration generation failed, serving curated content", slog.Any("error", err))
		metrics.Get().NarrationFallbacksTotal.Add(ctx, 1)
		return Fallback(destinations, theme)
	}

	info, err := parseDestinationInfo(txt)
	if err != nil {
		s.logger.WarnContext(ctx, "Narration response rejected, serving curated content", slog.Any("error", err))
		metrics.Get().NarrationFallbacksTotal.Add(ctx, 1)
		return Fallback(destinations, theme)
	}

	s.cache.Set(key, info, cache.DefaultExpiration)
	return info
}

func cacheKey(destinations []string, theme types.Theme, durationDays, partySize int) string {
	return strings.Join(destinations, "|") + "|" + string(theme) + "|" +
		strconv.Itoa(durationDays) + "|" + strconv.Itoa(partySize)
}
