package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// SLAService administers SLAs, computes per-ticket metrics and runs the
// breach sweep. SLA lookups read through a Redis cache keyed by
// area+priority; breach notifications are deduplicated there too.
type SLAService struct {
	slas       repository.SLARepository
	tickets    repository.TicketRepository
	areas      repository.AreaRepository
	calculator *domain.SLACalculator
	bus        events.Bus
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// SLADependencies bundles collaborators for the SLA service.
type SLADependencies struct {
	SLARepo    repository.SLARepository
	TicketRepo repository.TicketRepository
	AreaRepo   repository.AreaRepository
	Bus        events.Bus
	Cache      *redis.Client
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// NewSLAService constructs the service.
func NewSLAService(deps SLADependencies) *SLAService {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SLAService{
		slas:       deps.SLARepo,
		tickets:    deps.TicketRepo,
		areas:      deps.AreaRepo,
		calculator: domain.NewSLACalculator(),
		bus:        deps.Bus,
		cache:      deps.Cache,
		cacheTTL:   ttl,
		logger:     deps.Logger,
	}
}

// SLACreateInput describes SLA creation payload.
type SLACreateInput struct {
	AreaID                string
	Priority              string
	ResponseTimeMinutes   int
	ResolutionTimeMinutes int
}

// SLAUpdateInput carries optional budget changes.
type SLAUpdateInput struct {
	ResponseTimeMinutes   *int
	ResolutionTimeMinutes *int
	IsActive              *bool
}

// Create registers the time budget for one (area, priority) pair.
func (s *SLAService) Create(ctx context.Context, input SLACreateInput) (*domain.SLA, error) {
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	if _, err := s.areas.GetByID(ctx, input.AreaID); err != nil {
		return nil, notFound(err, "area")
	}

	sla, err := domain.NewSLA(input.AreaID, priority, input.ResponseTimeMinutes, input.ResolutionTimeMinutes)
	if err != nil {
		return nil, err
	}
	if err := s.slas.Create(ctx, sla); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, sla)
	return sla, nil
}

// Update changes budgets or the active flag, revalidating the
// response < resolution invariant.
func (s *SLAService) Update(ctx context.Context, id string, input SLAUpdateInput) (*domain.SLA, error) {
	sla, err := s.slas.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "sla")
	}

	switch {
	case input.ResponseTimeMinutes != nil && input.ResolutionTimeMinutes != nil:
		err = sla.UpdateBudgets(*input.ResponseTimeMinutes, *input.ResolutionTimeMinutes)
	case input.ResponseTimeMinutes != nil:
		err = sla.UpdateResponseTime(*input.ResponseTimeMinutes)
	case input.ResolutionTimeMinutes != nil:
		err = sla.UpdateResolutionTime(*input.ResolutionTimeMinutes)
	}
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		if *input.IsActive {
			sla.Activate()
		} else {
			sla.Deactivate()
		}
	}

	if err := s.slas.Update(ctx, sla); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, sla)
	return sla, nil
}

// Get fetches a single SLA.
func (s *SLAService) Get(ctx context.Context, id string) (*domain.SLA, error) {
	sla, err := s.slas.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "sla")
	}
	return sla, nil
}

// ListByArea returns all SLAs configured for an area.
func (s *SLAService) ListByArea(ctx context.Context, areaID string) ([]*domain.SLA, error) {
	return s.slas.ListByArea(ctx, areaID)
}

// ListAll returns every configured SLA.
func (s *SLAService) ListAll(ctx context.Context) ([]*domain.SLA, error) {
	return s.slas.ListAll(ctx)
}

// Delete removes an SLA permanently.
func (s *SLAService) Delete(ctx context.Context, id string) error {
	sla, err := s.slas.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "sla")
	}
	if err := s.slas.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, sla)
	return nil
}

// TicketMetrics computes SLA metrics for one ticket against the active SLA
// of its area and priority.
func (s *SLAService) TicketMetrics(ctx context.Context, ticketID string) (*domain.SLAMetrics, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	sla, err := s.lookup(ctx, ticket.AreaID, ticket.Priority)
	if err != nil {
		return nil, err
	}
	metrics := s.calculator.Metrics(ticket, sla)
	return &metrics, nil
}

// RemainingTime reports minutes left to the resolution deadline for a ticket.
func (s *SLAService) RemainingTime(ctx context.Context, ticketID string) (float64, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return 0, notFound(err, "ticket")
	}
	sla, err := s.lookup(ctx, ticket.AreaID, ticket.Priority)
	if err != nil {
		return 0, err
	}
	return s.calculator.RemainingTime(ticket, sla), nil
}

// Compliance reports the resolution-deadline compliance percentage for an
// area and priority over resolved tickets.
func (s *SLAService) Compliance(ctx context.Context, areaID, priorityStr string) (float64, error) {
	priority, err := domain.ParsePriority(priorityStr)
	if err != nil {
		return 0, err
	}
	sla, err := s.lookup(ctx, areaID, priority)
	if err != nil {
		return 0, err
	}
	tickets, err := s.tickets.ListResolvedByAreaAndPriority(ctx, areaID, priority)
	if err != nil {
		return 0, err
	}
	return s.calculator.CompliancePercentage(tickets, sla), nil
}

// CheckBreaches sweeps open tickets area by area and publishes an
// sla_breached event for each newly detected response or resolution breach.
// Dedup keys in Redis keep a breach from being announced more than once.
func (s *SLAService) CheckBreaches(ctx context.Context) error {
	areas, err := s.areas.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, area := range areas {
		tickets, err := s.tickets.ListOpenByArea(ctx, area.ID)
		if err != nil {
			return err
		}
		for _, ticket := range tickets {
			sla, err := s.lookup(ctx, ticket.AreaID, ticket.Priority)
			if err != nil {
				// No SLA configured for this pair; nothing to enforce.
				if apperrors.IsCode(err, "NOT_FOUND") {
					continue
				}
				return err
			}
			s.checkTicketBreach(ctx, ticket, sla)
		}
	}
	return nil
}

func (s *SLAService) checkTicketBreach(ctx context.Context, ticket *domain.Ticket, sla *domain.SLA) {
	now := time.Now()

	if ticket.ResponseTime == nil && sla.IsResponseBreached(ticket.CreatedAt, nil) {
		deadline := sla.ResponseDeadline(ticket.CreatedAt)
		s.announceBreach(ctx, ticket, events.SLABreachedPayload{
			BreachType:    events.SLABreachResponse,
			ExpectedTime:  deadline,
			ActualTime:    now,
			BreachMinutes: now.Sub(deadline).Minutes(),
		})
	}

	if s.calculator.IsTicketOverdue(ticket, sla) {
		deadline := sla.ResolutionDeadline(ticket.CreatedAt)
		s.announceBreach(ctx, ticket, events.SLABreachedPayload{
			BreachType:    events.SLABreachResolution,
			ExpectedTime:  deadline,
			ActualTime:    now,
			BreachMinutes: now.Sub(deadline).Minutes(),
		})
	}
}

func (s *SLAService) announceBreach(ctx context.Context, ticket *domain.Ticket, payload events.SLABreachedPayload) {
	if s.cache != nil {
		key := fmt.Sprintf("sla:breach:%s:%s", ticket.ID, payload.BreachType)
		set, err := s.cache.SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err != nil {
			s.logger.Warn("breach dedup unavailable", zap.Error(err))
		} else if !set {
			return
		}
	}
	s.bus.Publish(ctx, events.New(events.EventSLABreached, ticket.ID, payload))
}

// lookup resolves the active SLA for an (area, priority) pair through the
// Redis cache, falling back to the repository on miss or cache trouble.
func (s *SLAService) lookup(ctx context.Context, areaID string, priority domain.Priority) (*domain.SLA, error) {
	key := slaCacheKey(areaID, priority)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var sla domain.SLA
			if err := json.Unmarshal(raw, &sla); err == nil {
				return &sla, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("sla cache read failed", zap.Error(err))
		}
	}

	sla, err := s.slas.GetByAreaAndPriority(ctx, areaID, priority)
	if err != nil {
		return nil, notFound(err, "sla")
	}

	if s.cache != nil {
		if raw, err := json.Marshal(sla); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("sla cache write failed", zap.Error(err))
			}
		}
	}
	return sla, nil
}

func (s *SLAService) invalidateCache(ctx context.Context, sla *domain.SLA) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, slaCacheKey(sla.AreaID, sla.Priority)).Err(); err != nil {
		s.logger.Warn("sla cache invalidation failed", zap.Error(err))
	}
}

func slaCacheKey(areaID string, priority domain.Priority) string {
	return fmt.Sprintf("sla:%s:%s", areaID, priority)
}
