package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/application/catalog"
)

// ProjectHandler handles project and unit inventory endpoints
type ProjectHandler struct {
	BaseHandler
	inventoryService *catalog.InventoryService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(inventoryService *catalog.InventoryService) *ProjectHandler {
	return &ProjectHandler{inventoryService: inventoryService}
}

// List godoc
//
//	@Summary		List projects
//	@Description	Get a paginated list of projects
//	@Tags			projects
//	@Produce		json
//	@Param			search		query		string	false	"Search by name"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]catalog.ProjectResponse}
//	@Security		BearerAuth
//	@Router			/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter catalog.ProjectListFilter
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

	projects, total, err := h.inventoryService.ListProjects(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, projects, total, filter.Page, filter.PageSize)
}

// Get godoc
//
//	@Summary		Get a project
//	@Description	Get a single project by ID
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	dto.Response{data=catalog.ProjectResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.inventoryService.GetProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, project)
}

// Create godoc
//
//	@Summary		Create a project
//	@Description	Register a new project without units
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			project	body		catalog.CreateProjectRequest	true	"Project data"
//	@Success		201		{object}	dto.Response{data=catalog.ProjectResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req catalog.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.inventoryService.CreateProject(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, project)
}

// QuickSetupResult is the HTTP-layer response for a quick project setup
type QuickSetupResult struct {
	Project        catalog.ProjectResponse `json:"project"`
	UnitsGenerated int                     `json:"units_generated"`
}

// QuickSetup godoc
//
//	@Summary		Quick project setup
//	@Description	Create a project together with its full unit grid in one call
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			setup	body		catalog.QuickSetupRequest	true	"Setup data"
//	@Success		201		{object}	dto.Response{data=QuickSetupResult}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects/quick [post]
func (h *ProjectHandler) QuickSetup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req catalog.QuickSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, count, err := h.inventoryService.QuickSetup(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, QuickSetupResult{Project: *project, UnitsGenerated: count})
}

// Deactivate godoc
//
//	@Summary		Deactivate a project
//	@Description	Hide a project from new lead and booking flows
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	dto.Response{data=catalog.ProjectResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects/{id}/deactivate [post]
func (h *ProjectHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.inventoryService.DeactivateProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, project)
}

// AddUnit godoc
//
//	@Summary		Add a unit
//	@Description	Add a single unit to an active project
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"
//	@Param			unit	body		catalog.CreateUnitRequest	true	"Unit data"
//	@Success		201		{object}	dto.Response{data=catalog.UnitResponse}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects/{id}/units [post]
func (h *ProjectHandler) AddUnit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req catalog.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	unit, err := h.inventoryService.AddUnit(c.Request.Context(), tenantID, projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, unit)
}

// ListUnits godoc
//
//	@Summary		List a project's units
//	@Description	Get a project's units with optional status and tower filters
//	@Tags			projects
//	@Produce		json
//	@Param			id		path		string	true	"Project ID"
//	@Param			status	query		string	false	"Filter by status"	Enums(AVAILABLE, HELD, SOLD)
//	@Param			tower	query		string	false	"Filter by tower"
//	@Success		200		{object}	dto.Response{data=[]catalog.UnitResponse}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects/{id}/units [get]
func (h *ProjectHandler) ListUnits(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var filter catalog.UnitListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 100
	}

	units, err := h.inventoryService.ListUnits(c.Request.Context(), tenantID, projectID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, units)
}

// Inventory godoc
//
//	@Summary		Project inventory counts
//	@Description	Report a project's unit counts by status
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	dto.Response{data=catalog.ProjectInventoryResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/projects/{id}/inventory [get]
func (h *ProjectHandler) Inventory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	inventory, err := h.inventoryService.ProjectInventory(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, inventory)
}
