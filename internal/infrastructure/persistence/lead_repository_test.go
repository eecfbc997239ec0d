package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

func setupLeadRepo(t *testing.T) (*GormLeadRepository, uuid.UUID) {
	t.Helper()
	db, err := NewSimulatedDatabase()
	require.NoError(t, err)
	return NewGormLeadRepository(db.DB), uuid.New()
}

func mustCreateLead(t *testing.T, repo *GormLeadRepository, tenantID uuid.UUID, name, phone string) *pipeline.Lead {
	t.Helper()
	lead, err := pipeline.NewLead(tenantID, name, phone, pipeline.LeadSourceWebsite)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), lead))
	return lead
}

func TestGormLeadRepository_SaveAndFind(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	lead := mustCreateLead(t, repo, tenantID, "Ravi Sharma", "9876500001")

	found, err := repo.FindByIDForTenant(ctx, tenantID, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, found.ID)
	assert.Equal(t, "Ravi Sharma", found.Name)
	assert.Equal(t, pipeline.LeadStatusNew, found.Status)
	assert.Nil(t, found.OwnerID)
}

func TestGormLeadRepository_PhoneUniquePerTenantNotGlobally(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	mustCreateLead(t, repo, tenantID, "Ravi Sharma", "9876512345")

	// Another tenant may hold the same phone
	mustCreateLead(t, repo, uuid.New(), "Ravi Sharma", "9876512345")

	// The same tenant may not
	dup, err := pipeline.NewLead(tenantID, "Someone Else", "9876512345", pipeline.LeadSourceReferral)
	require.NoError(t, err)
	assert.Error(t, repo.Save(ctx, dup))
}

func TestGormLeadRepository_FindByIDForTenant_WrongTenant(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	lead := mustCreateLead(t, repo, tenantID, "Priya Mehta", "9876500002")

	_, err := repo.FindByIDForTenant(ctx, uuid.New(), lead.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormLeadRepository_FindByPhone(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	mustCreateLead(t, repo, tenantID, "Amit Patel", "9876500003")

	found, err := repo.FindByPhone(ctx, tenantID, "9876500003")
	require.NoError(t, err)
	assert.Equal(t, "Amit Patel", found.Name)

	_, err = repo.FindByPhone(ctx, tenantID, "0000000000")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormLeadRepository_ExistsByPhone(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	mustCreateLead(t, repo, tenantID, "Sneha Rao", "9876500004")

	exists, err := repo.ExistsByPhone(ctx, tenantID, "9876500004")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same phone under a different tenant is a different lead
	exists, err = repo.ExistsByPhone(ctx, uuid.New(), "9876500004")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormLeadRepository_SaveUpdatesStatusAndOwner(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	lead := mustCreateLead(t, repo, tenantID, "Vikram Singh", "9876500005")
	agentID := uuid.New()
	require.NoError(t, lead.Assign(agentID))
	require.NoError(t, repo.Save(ctx, lead))

	found, err := repo.FindByIDForTenant(ctx, tenantID, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, found.OwnerID)
	assert.Equal(t, agentID, *found.OwnerID)
	assert.Equal(t, pipeline.LeadStatusInProgress, found.Status)
}

func TestGormLeadRepository_FindUnassigned(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	unassigned := mustCreateLead(t, repo, tenantID, "Kiran Joshi", "9876500006")
	assigned := mustCreateLead(t, repo, tenantID, "Meera Nair", "9876500007")
	require.NoError(t, assigned.Assign(uuid.New()))
	require.NoError(t, repo.Save(ctx, assigned))

	leads, err := repo.FindUnassigned(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, unassigned.ID, leads[0].ID)
}

func TestGormLeadRepository_FindByStatus(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	mustCreateLead(t, repo, tenantID, "Lead One", "9876500008")
	lost := mustCreateLead(t, repo, tenantID, "Lead Two", "9876500009")
	require.NoError(t, lost.SetStatus(pipeline.LeadStatusLost))
	require.NoError(t, repo.Save(ctx, lost))

	leads, err := repo.FindByStatus(ctx, tenantID, pipeline.LeadStatusLost, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, lost.ID, leads[0].ID)
}

func TestGormLeadRepository_CountActiveByOwner(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()
	agentID := uuid.New()

	active := mustCreateLead(t, repo, tenantID, "Active Lead", "9876500010")
	require.NoError(t, active.Assign(agentID))
	require.NoError(t, repo.Save(ctx, active))

	lost := mustCreateLead(t, repo, tenantID, "Lost Lead", "9876500011")
	require.NoError(t, lost.Assign(agentID))
	require.NoError(t, lost.SetStatus(pipeline.LeadStatusLost))
	require.NoError(t, repo.Save(ctx, lost))

	// Terminal leads do not count against the agent's workload
	count, err := repo.CountActiveByOwner(ctx, tenantID, agentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormLeadRepository_CountCreatedSince(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	mustCreateLead(t, repo, tenantID, "Fresh Lead", "9876500012")

	count, err := repo.CountCreatedSince(ctx, tenantID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountCreatedSince(ctx, tenantID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGormLeadRepository_SearchAndPagination(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	mustCreateLead(t, repo, tenantID, "Rahul Verma", "9876500013")
	mustCreateLead(t, repo, tenantID, "Rohit Verma", "9876500014")
	mustCreateLead(t, repo, tenantID, "Anita Desai", "9876500015")

	filter := shared.DefaultFilter()
	filter.Search = "verma"
	leads, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	filter = shared.DefaultFilter()
	filter.Page = 1
	filter.PageSize = 2
	leads, err = repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	total, err := repo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGormLeadRepository_DeleteForTenant(t *testing.T) {
	repo, tenantID := setupLeadRepo(t)
	ctx := context.Background()

	lead := mustCreateLead(t, repo, tenantID, "To Remove", "9876500016")

	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, lead.ID))
	_, err := repo.FindByIDForTenant(ctx, tenantID, lead.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteForTenant(ctx, tenantID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInteractionRepository_TimelineAndFollowUps(t *testing.T) {
	db, err := NewSimulatedDatabase()
	require.NoError(t, err)
	leadRepo := NewGormLeadRepository(db.DB)
	repo := NewGormInteractionRepository(db.DB)
	ctx := context.Background()
	tenantID := uuid.New()

	lead := mustCreateLead(t, leadRepo, tenantID, "Timeline Lead", "9876500017")
	agentID := uuid.New()

	first, err := pipeline.NewInteraction(lead.ID, agentID, pipeline.InteractionKindNote, "Discussed budget")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := pipeline.NewInteraction(lead.ID, agentID, pipeline.InteractionKindSiteVisit, "Visited tower A")
	require.NoError(t, err)
	due := time.Now().Add(-time.Minute)
	second.NextFollowUpAt = &due
	require.NoError(t, repo.Save(ctx, second))

	count, err := repo.CountByLead(ctx, tenantID, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	timeline, err := repo.ListByLead(ctx, tenantID, lead.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, timeline, 2)

	// Tenant scoping goes through the lead
	timeline, err = repo.ListByLead(ctx, uuid.New(), lead.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, timeline)

	dueNow, err := repo.FindDueFollowUps(ctx, tenantID, time.Now(), shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, dueNow, 1)
	assert.Equal(t, second.ID, dueNow[0].ID)
}

func TestGormAgentRepository_ActiveAndRole(t *testing.T) {
	db, err := NewSimulatedDatabase()
	require.NoError(t, err)
	repo := NewGormAgentRepository(db.DB)
	ctx := context.Background()
	tenantID := uuid.New()

	seller, err := pipeline.NewAgent(tenantID, "Sunita Kulkarni", pipeline.AgentRoleSalesExec, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, seller))

	inactive, err := pipeline.NewAgent(tenantID, "Retired Agent", pipeline.AgentRoleSalesExec, 5)
	require.NoError(t, err)
	inactive.Active = false
	require.NoError(t, repo.Save(ctx, inactive))

	active, err := repo.FindActive(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, seller.ID, active[0].ID)

	byRole, err := repo.FindActiveByRole(ctx, tenantID, pipeline.AgentRoleSalesExec)
	require.NoError(t, err)
	assert.Len(t, byRole, 1)

	found, err := repo.FindByIDForTenant(ctx, tenantID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.CapacityCap)
}
