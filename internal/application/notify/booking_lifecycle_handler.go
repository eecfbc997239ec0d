package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// BookingLifecycleHandler pushes booking and assignment milestones to the
// notification sink. Delivery failures are logged, never propagated; the
// triggering operation has already committed.
type BookingLifecycleHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewBookingLifecycleHandler creates a new BookingLifecycleHandler
func NewBookingLifecycleHandler(notifier Notifier, logger *zap.Logger) *BookingLifecycleHandler {
	return &BookingLifecycleHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *BookingLifecycleHandler) EventTypes() []string {
	return []string{
		booking.EventTypeBookingConfirmed,
		booking.EventTypeBookingCancelled,
		booking.EventTypeMilestonePaid,
		pipeline.EventTypeLeadAssigned,
	}
}

// Handle converts a lifecycle event into a notification
func (h *BookingLifecycleHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var n Notification
	n.TenantID = event.TenantID()

	switch e := event.(type) {
	case *booking.BookingConfirmedEvent:
		n.Severity = SeveritySuccess
		n.Title = "Booking confirmed"
		n.Message = fmt.Sprintf("Deal closed at %s", e.DealAmount)
	case *booking.BookingCancelledEvent:
		n.Severity = SeverityError
		n.Title = "Booking cancelled"
		n.Message = e.Reason
	case *booking.MilestonePaidEvent:
		n.Severity = SeveritySuccess
		n.Title = "Payment received"
		n.Message = fmt.Sprintf("%s: %s", e.MilestoneName, e.Amount)
	case *pipeline.LeadAssignedEvent:
		n.Severity = SeveritySuccess
		n.Title = "Lead assigned"
		n.Message = fmt.Sprintf("Lead %s assigned to agent %s", e.LeadID, e.AgentID)
	default:
		return nil
	}

	if err := h.notifier.Notify(ctx, n); err != nil {
		h.logger.Warn("notification delivery failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
	return nil
}

var _ shared.EventHandler = (*BookingLifecycleHandler)(nil)
