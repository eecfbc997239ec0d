package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/catalog"
)

// CreateProjectRequest represents a request to register a project
type CreateProjectRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Location string `json:"location" binding:"max=200"`
	Towers   int    `json:"towers" binding:"required,min=1,max=26"`
	Floors   int    `json:"floors" binding:"required,min=1,max=200"`
}

// QuickSetupRequest creates a project together with its full unit grid in
// one call. Every generated unit starts AVAILABLE at the same base price.
type QuickSetupRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Location      string          `json:"location" binding:"max=200"`
	Towers        int             `json:"towers" binding:"required,min=1,max=26"`
	Floors        int             `json:"floors" binding:"required,min=1,max=200"`
	UnitsPerFloor int             `json:"units_per_floor" binding:"required,min=1,max=20"`
	AreaSqft      int             `json:"area_sqft" binding:"required,min=1"`
	BasePrice     decimal.Decimal `json:"base_price" binding:"required"`
}

// CreateUnitRequest adds a single unit to an existing project
type CreateUnitRequest struct {
	Number    string          `json:"number" binding:"required,min=1,max=20"`
	Tower     string          `json:"tower" binding:"max=10"`
	Floor     int             `json:"floor" binding:"min=0"`
	AreaSqft  int             `json:"area_sqft" binding:"min=0"`
	BasePrice decimal.Decimal `json:"base_price" binding:"required"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Towers    int       `json:"towers"`
	Floors    int       `json:"floors"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitResponse represents an inventory unit in API responses
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Number    string    `json:"number"`
	Tower     string    `json:"tower,omitempty"`
	Floor     int       `json:"floor"`
	AreaSqft  int       `json:"area_sqft"`
	BasePrice string    `json:"base_price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectInventoryResponse reports a project's unit counts by status
type ProjectInventoryResponse struct {
	ProjectID uuid.UUID `json:"project_id"`
	Available int64     `json:"available"`
	Held      int64     `json:"held"`
	Sold      int64     `json:"sold"`
	Total     int64     `json:"total"`
}

// ProjectListFilter represents filter options for the project list
type ProjectListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UnitListFilter represents filter options for a project's unit list
type UnitListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=AVAILABLE HELD SOLD"`
	Tower    string `form:"tower"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *catalog.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		Location:  p.Location,
		Towers:    p.Towers,
		Floors:    p.Floors,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProjectResponses converts a slice of domain Projects to responses
func ToProjectResponses(projects []catalog.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *catalog.Unit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		ProjectID: u.ProjectID,
		Number:    u.Number,
		Tower:     u.Tower,
		Floor:     u.Floor,
		AreaSqft:  u.AreaSqft,
		BasePrice: u.BasePrice.Amount().StringFixed(2),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUnitResponses converts a slice of domain Units to responses
func ToUnitResponses(units []catalog.Unit) []UnitResponse {
	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = ToUnitResponse(&units[i])
	}
	return responses
}
