package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/pipeline"
)

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))
	val, found, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v1"), val)

	require.NoError(t, c.Delete(ctx, "k1", "never-existed"))
	_, found, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Nanosecond))
	time.Sleep(time.Millisecond)

	_, found, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, c.Len(), "expired entry removed on read")
}

func TestInvalidator_DropsTenantStats(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()
	tenantID := uuid.New()

	key := DashboardStatsKey(tenantID.String())
	require.NoError(t, c.Set(ctx, key, []byte(`{"total_leads":5}`), time.Minute))

	inv := NewInvalidator(c, zap.NewNop())
	assert.Contains(t, inv.EventTypes(), pipeline.EventTypeLeadCreated)

	lead, err := pipeline.NewLead(tenantID, "Ravi Sharma", "9876700001", pipeline.LeadSourceWebsite)
	require.NoError(t, err)
	events := lead.GetDomainEvents()
	require.NotEmpty(t, events)

	require.NoError(t, inv.Handle(ctx, events[0]))

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}
