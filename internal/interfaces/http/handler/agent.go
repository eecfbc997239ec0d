package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/application/pipeline"
)

// AgentHandler handles sales team roster and capacity endpoints
type AgentHandler struct {
	BaseHandler
	agentService        *pipeline.AgentService
	distributionService *pipeline.DistributionService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *pipeline.AgentService, distributionService *pipeline.DistributionService) *AgentHandler {
	return &AgentHandler{
		agentService:        agentService,
		distributionService: distributionService,
	}
}

// List godoc
//
//	@Summary		List agents
//	@Description	Get a paginated list of the sales team
//	@Tags			agents
//	@Produce		json
//	@Param			page		query		int	false	"Page number"	default(1)
//	@Param			page_size	query		int	false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]pipeline.AgentResponse}
//	@Security		BearerAuth
//	@Router			/agents [get]
func (h *AgentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter pipeline.AgentListFilter
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

	agents, total, err := h.agentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, agents, total, filter.Page, filter.PageSize)
}

// Create godoc
//
//	@Summary		Register an agent
//	@Description	Add a new agent to the sales team
//	@Tags			agents
//	@Accept			json
//	@Produce		json
//	@Param			agent	body		pipeline.CreateAgentRequest	true	"Agent data"
//	@Success		201		{object}	dto.Response{data=pipeline.AgentResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/agents [post]
func (h *AgentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req pipeline.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agent, err := h.agentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, agent)
}

// Update godoc
//
//	@Summary		Update an agent
//	@Description	Adjust an agent's capacity cap or availability
//	@Tags			agents
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Agent ID"
//	@Param			body	body		pipeline.UpdateAgentRequest	true	"Changes"
//	@Success		200		{object}	dto.Response{data=pipeline.AgentResponse}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/agents/{id} [patch]
func (h *AgentHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID")
		return
	}

	var req pipeline.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agent, err := h.agentService.Update(c.Request.Context(), tenantID, agentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, agent)
}

// Load godoc
//
//	@Summary		Get an agent's pipeline load
//	@Description	Report one agent's active lead count against its capacity cap
//	@Tags			agents
//	@Produce		json
//	@Param			id	path		string	true	"Agent ID"
//	@Success		200	{object}	dto.Response{data=pipeline.AgentLoadResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/agents/{id}/load [get]
func (h *AgentHandler) Load(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID")
		return
	}

	load, err := h.distributionService.AgentLoad(c.Request.Context(), tenantID, agentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, load)
}

// TeamLoad godoc
//
//	@Summary		Get the team's pipeline load
//	@Description	Report every active agent's load, least loaded first
//	@Tags			agents
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=[]pipeline.AgentLoadResponse}
//	@Security		BearerAuth
//	@Router			/agents/load [get]
func (h *AgentHandler) TeamLoad(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	loads, err := h.distributionService.TeamLoad(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, loads)
}

// SuggestAssignee godoc
//
//	@Summary		Suggest the next assignee
//	@Description	Pick the active agent with the lowest load for the next lead
//	@Tags			agents
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=pipeline.AgentLoadResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/agents/suggest [get]
func (h *AgentHandler) SuggestAssignee(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	suggestion, err := h.distributionService.SuggestAssignee(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, suggestion)
}
