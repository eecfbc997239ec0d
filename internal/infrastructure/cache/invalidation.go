package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// DashboardStatsKey returns the cache key for a tenant's dashboard stats
func DashboardStatsKey(tenantID string) string {
	return fmt.Sprintf("dashboard:stats:%s", tenantID)
}

// Invalidator drops a tenant's cached dashboard read models whenever a
// lifecycle event changes the numbers behind them
type Invalidator struct {
	cache  Cache
	logger *zap.Logger
}

// NewInvalidator creates a cache invalidator
func NewInvalidator(cache Cache, logger *zap.Logger) *Invalidator {
	return &Invalidator{cache: cache, logger: logger}
}

// EventTypes lists the lifecycle events that move dashboard figures
func (i *Invalidator) EventTypes() []string {
	return []string{
		pipeline.EventTypeLeadCreated,
		pipeline.EventTypeLeadAssigned,
		pipeline.EventTypeLeadStatusChanged,
		pipeline.EventTypeInteractionLogged,
		booking.EventTypeBookingConfirmed,
		booking.EventTypeBookingCancelled,
	}
}

// Handle drops the affected tenant's cached stats
func (i *Invalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	key := DashboardStatsKey(event.TenantID().String())
	if err := i.cache.Delete(ctx, key); err != nil {
		// Stale stats are tolerable; the TTL bounds the damage
		i.logger.Warn("failed to invalidate dashboard cache",
			zap.String("key", key),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return nil
	}
	return nil
}

var _ shared.EventHandler = (*Invalidator)(nil)
