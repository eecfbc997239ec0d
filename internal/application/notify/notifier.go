package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity classifies a notification for the presentation layer
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a one-way message to the presentation layer. The engine
// never reads a response.
type Notification struct {
	TenantID uuid.UUID
	Severity Severity
	Title    string
	Message  string
}

// Notifier is the one-way notification sink port
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ZapNotifier writes notifications to the structured log. It stands in for
// the toast channel of the original UI.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a new ZapNotifier
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

// Notify logs the notification at a level matching its severity
func (n *ZapNotifier) Notify(_ context.Context, notification Notification) error {
	fields := []zap.Field{
		zap.String("tenant_id", notification.TenantID.String()),
		zap.String("severity", string(notification.Severity)),
		zap.String("title", notification.Title),
	}
	if notification.Message != "" {
		fields = append(fields, zap.String("message", notification.Message))
	}

	if notification.Severity == SeverityError {
		n.logger.Warn("notification", fields...)
	} else {
		n.logger.Info("notification", fields...)
	}
	return nil
}

var _ Notifier = (*ZapNotifier)(nil)
