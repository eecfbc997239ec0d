package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/application/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// LeadHandler handles lead pipeline endpoints
type LeadHandler struct {
	BaseHandler
	leadService *pipeline.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *pipeline.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// AssignLeadBody is the HTTP-layer assign request. Reassign moves the lead
// from its current owner instead of failing on ALREADY_ASSIGNED.
type AssignLeadBody struct {
	AgentID  uuid.UUID `json:"agent_id" binding:"required"`
	Reassign bool      `json:"reassign"`
}

// List godoc
//
//	@Summary		List leads
//	@Description	Get a paginated list of leads with optional filters
//	@Tags			leads
//	@Produce		json
//	@Param			search		query		string	false	"Search by name or phone"
//	@Param			status		query		string	false	"Filter by pipeline status"
//	@Param			source		query		string	false	"Filter by source"
//	@Param			owner_id	query		string	false	"Filter by owning agent"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]pipeline.LeadResponse}
//	@Failure		400			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter pipeline.LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	leads, total, err := h.leadService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, leads, total, filter.Page, filter.PageSize)
}

// Get godoc
//
//	@Summary		Get a lead
//	@Description	Get a single lead by ID
//	@Tags			leads
//	@Produce		json
//	@Param			id	path		string	true	"Lead ID"
//	@Success		200	{object}	dto.Response{data=pipeline.LeadResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), tenantID, leadID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lead)
}

// Capture godoc
//
//	@Summary		Capture a lead
//	@Description	Register a new lead from any source; duplicate phone numbers are rejected
//	@Tags			leads
//	@Accept			json
//	@Produce		json
//	@Param			lead	body		pipeline.CaptureLeadRequest	true	"Lead data"
//	@Success		201		{object}	dto.Response{data=pipeline.LeadResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads [post]
func (h *LeadHandler) Capture(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req pipeline.CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lead, err := h.leadService.Capture(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, lead)
}

// Assign godoc
//
//	@Summary		Assign a lead to an agent
//	@Description	Assign an unowned lead, or move it with reassign=true
//	@Tags			leads
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Lead ID"
//	@Param			body	body		AssignLeadBody	true	"Assignment"
//	@Success		200		{object}	dto.Response{data=pipeline.LeadResponse}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads/{id}/assign [post]
func (h *LeadHandler) Assign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var body AssignLeadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	req := pipeline.AssignLeadRequest{AgentID: body.AgentID}
	var lead *pipeline.LeadResponse
	if body.Reassign {
		lead, err = h.leadService.Reassign(c.Request.Context(), tenantID, leadID, req)
	} else {
		lead, err = h.leadService.Assign(c.Request.Context(), tenantID, leadID, req)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lead)
}

// SetStatus godoc
//
//	@Summary		Move a lead through the pipeline
//	@Description	Update the lead's pipeline status
//	@Tags			leads
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Lead ID"
//	@Param			body	body		pipeline.UpdateLeadStatusRequest	true	"New status"
//	@Success		200		{object}	dto.Response{data=pipeline.LeadResponse}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads/{id}/status [patch]
func (h *LeadHandler) SetStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req pipeline.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lead, err := h.leadService.SetStatus(c.Request.Context(), tenantID, leadID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lead)
}

// Delete godoc
//
//	@Summary		Delete a lead
//	@Description	Remove a lead and its interactions
//	@Tags			leads
//	@Param			id	path	string	true	"Lead ID"
//	@Success		204
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), tenantID, leadID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// LogInteraction godoc
//
//	@Summary		Log an interaction
//	@Description	Record a note or site visit against a lead
//	@Tags			leads
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Lead ID"
//	@Param			body	body		pipeline.LogInteractionRequest	true	"Interaction"
//	@Success		201		{object}	dto.Response{data=pipeline.InteractionResponse}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads/{id}/interactions [post]
func (h *LeadHandler) LogInteraction(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req pipeline.LogInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.CreatedBy = userID

	interaction, err := h.leadService.LogInteraction(c.Request.Context(), tenantID, leadID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, interaction)
}

// ListInteractions godoc
//
//	@Summary		List a lead's interactions
//	@Description	Get the interaction history for a lead, newest first
//	@Tags			leads
//	@Produce		json
//	@Param			id			path		string	true	"Lead ID"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]pipeline.InteractionResponse}
//	@Failure		404			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/leads/{id}/interactions [get]
func (h *LeadHandler) ListInteractions(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var list struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if list.Page == 0 {
		list.Page = 1
	}
	if list.PageSize == 0 {
		list.PageSize = 20
	}

	filter := shared.Filter{Page: list.Page, PageSize: list.PageSize}
	interactions, total, err := h.leadService.ListInteractions(c.Request.Context(), tenantID, leadID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, interactions, total, list.Page, list.PageSize)
}
