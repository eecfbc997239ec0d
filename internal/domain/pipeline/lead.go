package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// LeadStatus represents the stage of a lead in the sales pipeline
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusInProgress  LeadStatus = "IN_PROGRESS"
	LeadStatusSiteVisit   LeadStatus = "SITE_VISIT"
	LeadStatusNegotiation LeadStatus = "NEGOTIATION"
	LeadStatusBooked      LeadStatus = "BOOKED"
	LeadStatusLost        LeadStatus = "LOST"
)

// IsValid checks if the status is a valid LeadStatus
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusSiteVisit,
		LeadStatusNegotiation, LeadStatusBooked, LeadStatusLost:
		return true
	}
	return false
}

// String returns the string representation of LeadStatus
func (s LeadStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that end the pipeline
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusBooked || s == LeadStatusLost
}

// CanTransitionTo checks if the status can transition to the target status.
// The pipeline is deliberately permissive: any non-terminal status may move
// to any other non-terminal status or to LOST. BOOKED is never reachable
// through a direct status change; it is set only as a side effect of
// confirming a booking (see Lead.MarkBooked).
func (s LeadStatus) CanTransitionTo(target LeadStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if !target.IsValid() || target == LeadStatusBooked {
		return false
	}
	return target != s
}

// LeadSource represents the acquisition channel of a lead
type LeadSource string

const (
	LeadSourceWalkIn   LeadSource = "Walk-in"
	LeadSourceWebsite  LeadSource = "Website"
	LeadSourceReferral LeadSource = "Referral"
	LeadSourceBroker   LeadSource = "Broker"
	LeadSourceGoogle   LeadSource = "Google"
	LeadSourceMeta     LeadSource = "Meta"
	LeadSourcePortal   LeadSource = "Portal"
)

// IsValid checks if the source is a known acquisition channel
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWalkIn, LeadSourceWebsite, LeadSourceReferral,
		LeadSourceBroker, LeadSourceGoogle, LeadSourceMeta, LeadSourcePortal:
		return true
	}
	return false
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{6,19}$`)

// Lead represents a prospective customer tracked through the sales pipeline.
// It is the aggregate root for pipeline operations.
type Lead struct {
	shared.TenantAggregateRoot
	Name      string
	Phone     string
	Email     string
	Budget    string // Free-text estimate, e.g. "1.2 Cr", "65 L"
	Source    LeadSource
	Status    LeadStatus
	OwnerID   *uuid.UUID // Owning agent; nil means unassigned
	ProjectID *uuid.UUID // Project of interest, optional
}

// NewLead creates a new lead in status NEW
func NewLead(tenantID uuid.UUID, name, phone string, source LeadSource) (*Lead, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lead name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lead name cannot exceed 200 characters")
	}
	if !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phone number is malformed")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown lead source %q", source))
	}

	lead := &Lead{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
		Source:              source,
		Status:              LeadStatusNew,
	}

	lead.AddDomainEvent(NewLeadCreatedEvent(lead))

	return lead, nil
}

// SetEmail sets the optional email address
func (l *Lead) SetEmail(email string) error {
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("VALIDATION_ERROR", "Email address is malformed")
	}
	l.Email = email
	l.Touch()
	return nil
}

// SetBudget sets the free-text budget estimate
func (l *Lead) SetBudget(budget string) {
	l.Budget = budget
	l.Touch()
}

// SetProject sets the project the lead is interested in
func (l *Lead) SetProject(projectID uuid.UUID) {
	l.ProjectID = &projectID
	l.Touch()
}

// Assign sets the owning agent of an unassigned lead.
// A NEW lead advances to IN_PROGRESS as a side effect.
// Fails with ALREADY_ASSIGNED when an owner is already set; callers
// must use Reassign to move a lead between agents explicitly.
func (l *Lead) Assign(agentID uuid.UUID) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("STATE_CONFLICT", fmt.Sprintf("Cannot assign a %s lead", l.Status))
	}
	if agentID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Agent ID cannot be empty")
	}
	if l.OwnerID != nil {
		return shared.ErrAlreadyAssigned
	}

	l.OwnerID = &agentID
	if l.Status == LeadStatusNew {
		l.Status = LeadStatusInProgress
	}
	l.Touch()

	l.AddDomainEvent(NewLeadAssignedEvent(l, agentID))

	return nil
}

// Reassign moves the lead to a different agent, replacing any current owner
func (l *Lead) Reassign(agentID uuid.UUID) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("STATE_CONFLICT", fmt.Sprintf("Cannot reassign a %s lead", l.Status))
	}
	if agentID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Agent ID cannot be empty")
	}

	l.OwnerID = &agentID
	l.Touch()

	l.AddDomainEvent(NewLeadAssignedEvent(l, agentID))

	return nil
}

// SetStatus moves the lead to the target pipeline status.
// BOOKED cannot be reached here; it is set only by MarkBooked as a side
// effect of confirming a booking.
func (l *Lead) SetStatus(target LeadStatus) error {
	if target == l.Status {
		return nil
	}
	if !l.Status.CanTransitionTo(target) {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot move lead from %s to %s", l.Status, target))
	}

	previous := l.Status
	l.Status = target
	l.Touch()

	l.AddDomainEvent(NewLeadStatusChangedEvent(l, previous))

	return nil
}

// MarkBooked transitions the lead to BOOKED. Only the booking confirmation
// flow calls this, after verifying the lead has exactly one confirmed booking.
func (l *Lead) MarkBooked() error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot book a lead in %s status", l.Status))
	}

	previous := l.Status
	l.Status = LeadStatusBooked
	l.Touch()

	l.AddDomainEvent(NewLeadStatusChangedEvent(l, previous))

	return nil
}

// IsUnassigned returns true when the lead has no owning agent
func (l *Lead) IsUnassigned() bool {
	return l.OwnerID == nil
}

// IsActive returns true for leads still moving through the pipeline
func (l *Lead) IsActive() bool {
	return !l.Status.IsTerminal()
}
