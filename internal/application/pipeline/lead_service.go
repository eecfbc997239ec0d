package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// LeadService handles lead lifecycle operations: capture, assignment,
// pipeline transitions and the interaction timeline.
type LeadService struct {
	leadRepo        pipeline.LeadRepository
	interactionRepo pipeline.InteractionRepository
	agentRepo       pipeline.AgentRepository
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewLeadService creates a new LeadService
func NewLeadService(
	leadRepo pipeline.LeadRepository,
	interactionRepo pipeline.InteractionRepository,
	agentRepo pipeline.AgentRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:        leadRepo,
		interactionRepo: interactionRepo,
		agentRepo:       agentRepo,
		eventPublisher:  eventPublisher,
		logger:          logger,
	}
}

// Capture creates a new lead. The phone number must be unique per tenant;
// a duplicate fails with ALREADY_EXISTS and the existing lead untouched.
func (s *LeadService) Capture(ctx context.Context, tenantID uuid.UUID, req CaptureLeadRequest) (*LeadResponse, error) {
	exists, err := s.leadRepo.ExistsByPhone(ctx, tenantID, req.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A lead with this phone number already exists")
	}

	lead, err := pipeline.NewLead(tenantID, req.Name, req.Phone, pipeline.LeadSource(req.Source))
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := lead.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Budget != "" {
		lead.SetBudget(req.Budget)
	}
	if req.ProjectID != nil {
		lead.SetProject(*req.ProjectID)
	}

	if req.OwnerID != nil {
		if err := s.checkAssignable(ctx, tenantID, *req.OwnerID); err != nil {
			return nil, err
		}
		if err := lead.Assign(*req.OwnerID); err != nil {
			return nil, err
		}
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// List retrieves leads with filtering and pagination
func (s *LeadService) List(ctx context.Context, tenantID uuid.UUID, filter LeadListFilter) ([]LeadResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		status := pipeline.LeadStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown lead status %q", filter.Status))
		}
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}
	if filter.OwnerID != nil {
		domainFilter.Filters["owner_id"] = *filter.OwnerID
	}
	if filter.ProjectID != nil {
		domainFilter.Filters["project_id"] = *filter.ProjectID
	}

	leads, err := s.leadRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.leadRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLeadResponses(leads), total, nil
}

// Assign attaches an owning agent to an unassigned lead. A NEW lead
// advances to IN_PROGRESS as a side effect. An already-owned lead fails
// with ALREADY_ASSIGNED; use Reassign to move it.
func (s *LeadService) Assign(ctx context.Context, tenantID, leadID uuid.UUID, req AssignLeadRequest) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAssignable(ctx, tenantID, req.AgentID); err != nil {
		return nil, err
	}

	if err := lead.Assign(req.AgentID); err != nil {
		return nil, err
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}

	s.warnIfOverloaded(ctx, tenantID, req.AgentID)
	s.publishEvents(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// Reassign moves a lead to a different agent, replacing any current owner
func (s *LeadService) Reassign(ctx context.Context, tenantID, leadID uuid.UUID, req AssignLeadRequest) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAssignable(ctx, tenantID, req.AgentID); err != nil {
		return nil, err
	}

	if err := lead.Reassign(req.AgentID); err != nil {
		return nil, err
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}

	s.warnIfOverloaded(ctx, tenantID, req.AgentID)
	s.publishEvents(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// SetStatus moves a lead to the target pipeline status. BOOKED is never
// reachable here; it is set only when a booking is confirmed.
func (s *LeadService) SetStatus(ctx context.Context, tenantID, leadID uuid.UUID, req UpdateLeadStatusRequest) (*LeadResponse, error) {
	target := pipeline.LeadStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown lead status %q", req.Status))
	}

	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	if err := lead.SetStatus(target); err != nil {
		return nil, err
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	return s.leadRepo.DeleteForTenant(ctx, tenantID, leadID)
}

// LogInteraction appends a note or site visit to a lead's timeline.
// A site visit also moves an earlier-stage lead to SITE_VISIT.
func (s *LeadService) LogInteraction(ctx context.Context, tenantID, leadID uuid.UUID, req LogInteractionRequest) (*InteractionResponse, error) {
	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	interaction, err := pipeline.NewInteraction(lead.ID, req.CreatedBy, pipeline.InteractionKind(req.Kind), req.Body)
	if err != nil {
		return nil, err
	}

	if req.NextFollowUpAt != nil {
		if err := interaction.ScheduleFollowUp(*req.NextFollowUpAt); err != nil {
			return nil, err
		}
	}

	if err := s.interactionRepo.Save(ctx, interaction); err != nil {
		return nil, err
	}

	if interaction.Kind == pipeline.InteractionKindSiteVisit &&
		(lead.Status == pipeline.LeadStatusNew || lead.Status == pipeline.LeadStatusInProgress) {
		if err := lead.SetStatus(pipeline.LeadStatusSiteVisit); err == nil {
			if err := s.leadRepo.Save(ctx, lead); err != nil {
				return nil, err
			}
		}
	}

	lead.AddDomainEvent(pipeline.NewInteractionLoggedEvent(tenantID, interaction))
	s.publishEvents(ctx, lead)

	response := ToInteractionResponse(interaction)
	return &response, nil
}

// ListInteractions lists a lead's timeline, most recent first
func (s *LeadService) ListInteractions(ctx context.Context, tenantID, leadID uuid.UUID, filter shared.Filter) ([]InteractionResponse, int64, error) {
	if _, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID); err != nil {
		return nil, 0, err
	}

	interactions, err := s.interactionRepo.ListByLead(ctx, tenantID, leadID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.interactionRepo.CountByLead(ctx, tenantID, leadID)
	if err != nil {
		return nil, 0, err
	}

	return ToInteractionResponses(interactions), total, nil
}

// checkAssignable verifies the agent exists and is active
func (s *LeadService) checkAssignable(ctx context.Context, tenantID, agentID uuid.UUID) error {
	agent, err := s.agentRepo.FindByIDForTenant(ctx, tenantID, agentID)
	if err != nil {
		return err
	}
	if !agent.Active {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot assign leads to an inactive agent")
	}
	return nil
}

// warnIfOverloaded logs when an assignment pushes an agent past its cap.
// Capacity is a signal, never a hard limit.
func (s *LeadService) warnIfOverloaded(ctx context.Context, tenantID, agentID uuid.UUID) {
	agent, err := s.agentRepo.FindByIDForTenant(ctx, tenantID, agentID)
	if err != nil {
		return
	}
	active, err := s.leadRepo.CountActiveByOwner(ctx, tenantID, agentID)
	if err != nil {
		return
	}
	if agent.IsOverloaded(active) {
		s.logger.Warn("agent assigned beyond capacity cap",
			zap.String("agent_id", agentID.String()),
			zap.Int64("active_leads", active),
			zap.Int("capacity_cap", agent.CapacityCap),
		)
	}
}

func (s *LeadService) publishEvents(ctx context.Context, lead *pipeline.Lead) {
	if s.eventPublisher == nil {
		return
	}
	events := lead.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish lead events",
			zap.String("lead_id", lead.ID.String()),
			zap.Error(err),
		)
	}
	lead.ClearDomainEvents()
}
