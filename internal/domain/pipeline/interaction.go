package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// InteractionKind distinguishes the two kinds of lead touchpoints
type InteractionKind string

const (
	InteractionKindNote      InteractionKind = "note"
	InteractionKindSiteVisit InteractionKind = "site_visit"
)

// IsValid checks if the kind is a known interaction kind
func (k InteractionKind) IsValid() bool {
	return k == InteractionKindNote || k == InteractionKindSiteVisit
}

// Interaction is an append-only record of a touchpoint with a lead.
// Interactions are never mutated after creation; the timeline lists them
// most recent first.
type Interaction struct {
	shared.BaseEntity
	LeadID         uuid.UUID
	Kind           InteractionKind
	Body           string
	NextFollowUpAt *time.Time
	CreatedBy      uuid.UUID
}

// NewInteraction records a touchpoint against a lead
func NewInteraction(leadID, createdBy uuid.UUID, kind InteractionKind, body string) (*Interaction, error) {
	if leadID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lead ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown interaction kind")
	}
	if kind == InteractionKindNote && strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Note body cannot be empty")
	}

	return &Interaction{
		BaseEntity: shared.NewBaseEntity(),
		LeadID:     leadID,
		Kind:       kind,
		Body:       body,
		CreatedBy:  createdBy,
	}, nil
}

// ScheduleFollowUp sets the next follow-up time. Allowed only before the
// interaction is persisted; the record itself is append-only.
func (i *Interaction) ScheduleFollowUp(at time.Time) error {
	if at.Before(time.Now()) {
		return shared.NewDomainError("VALIDATION_ERROR", "Follow-up time must be in the future")
	}
	i.NextFollowUpAt = &at
	return nil
}
