package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// UnitStatus is the availability state of an inventory unit
type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "AVAILABLE"
	UnitStatusHeld      UnitStatus = "HELD"
	UnitStatusSold      UnitStatus = "SOLD"
)

// IsValid checks if the status is a valid UnitStatus
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusHeld, UnitStatusSold:
		return true
	}
	return false
}

// Unit is one sellable inventory unit within a project. A pending booking
// holds the unit; confirmation sells it; cancellation releases the hold.
type Unit struct {
	shared.TenantAggregateRoot
	ProjectID uuid.UUID
	Number    string // e.g. "A-1204"
	Tower     string
	Floor     int
	AreaSqft  int
	BasePrice valueobject.Money
	Status    UnitStatus
}

// NewUnit creates a new available unit
func NewUnit(tenantID, projectID uuid.UUID, number, tower string, floor, areaSqft int, basePrice valueobject.Money) (*Unit, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project ID cannot be empty")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit number cannot be empty")
	}
	if !basePrice.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit base price must be positive")
	}

	return &Unit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		Number:              number,
		Tower:               tower,
		Floor:               floor,
		AreaSqft:            areaSqft,
		BasePrice:           basePrice.RoundMinor(),
		Status:              UnitStatusAvailable,
	}, nil
}

// Hold reserves the unit for a pending booking
func (u *Unit) Hold() error {
	if u.Status != UnitStatusAvailable {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot hold a %s unit", u.Status))
	}
	u.Status = UnitStatusHeld
	u.Touch()
	return nil
}

// MarkSold finalizes the sale when the booking is confirmed
func (u *Unit) MarkSold() error {
	if u.Status == UnitStatusSold {
		return shared.NewDomainError("STATE_CONFLICT", "Unit is already sold")
	}
	u.Status = UnitStatusSold
	u.Touch()
	return nil
}

// Release puts a held unit back on the market after a cancellation
func (u *Unit) Release() error {
	if u.Status != UnitStatusHeld {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot release a %s unit", u.Status))
	}
	u.Status = UnitStatusAvailable
	u.Touch()
	return nil
}

// IsAvailable returns true when the unit can be booked
func (u *Unit) IsAvailable() bool {
	return u.Status == UnitStatusAvailable
}
