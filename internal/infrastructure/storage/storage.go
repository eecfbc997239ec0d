// Package storage provides object storage implementations for booking
// documents and payment receipts. Contents are opaque to the engine.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentStore is the port the booking service writes documents through
type DocumentStore interface {
	// Upload stores a document under the given key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// DownloadURL returns a time-limited URL for fetching a document
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// Delete removes a document
	Delete(ctx context.Context, key string) error

	// Exists checks whether a document is present
	Exists(ctx context.Context, key string) (bool, error)
}

// BookingDocumentKey builds the canonical storage key for a booking document
func BookingDocumentKey(tenantID, bookingID uuid.UUID, filename string) string {
	return fmt.Sprintf("tenants/%s/bookings/%s/%s", tenantID, bookingID, filename)
}
