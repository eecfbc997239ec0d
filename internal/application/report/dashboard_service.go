package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
	"github.com/jdcrm/backend/internal/infrastructure/cache"
)

// statsTTL bounds dashboard staleness when event-driven invalidation is
// missed (e.g. a failed cache delete)
const statsTTL = 5 * time.Minute

// revenuePageSize is the page size used when summing confirmed bookings
const revenuePageSize = 200

// LeadSummary is one row of the recent-leads widget
type LeadSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStatsResponse is the aggregated dashboard payload
type DashboardStatsResponse struct {
	TotalLeads        int64            `json:"total_leads"`
	NewLeadsThisWeek  int64            `json:"new_leads_this_week"`
	VisitsCount       int64            `json:"visits_count"`
	ConvertedCount    int64            `json:"converted_count"`
	LostCount         int64            `json:"lost_count"`
	Revenue           string           `json:"revenue"`
	FormattedRevenue  string           `json:"formatted_revenue"`
	PipelineBreakdown map[string]int64 `json:"pipeline_breakdown"`
	UnitsAvailable    int64            `json:"units_available"`
	UnitsHeld         int64            `json:"units_held"`
	UnitsSold         int64            `json:"units_sold"`
	RecentLeads       []LeadSummary    `json:"recent_leads"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// DashboardService aggregates the dashboard figures. Results are cached per
// tenant; the cache entry is invalidated by pipeline and booking events and
// expires on its own as a backstop.
type DashboardService struct {
	leadRepo    pipeline.LeadRepository
	bookingRepo booking.BookingRepository
	unitRepo    catalog.UnitRepository
	statsCache  cache.Cache
	logger      *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	leadRepo pipeline.LeadRepository,
	bookingRepo booking.BookingRepository,
	unitRepo catalog.UnitRepository,
	statsCache cache.Cache,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		leadRepo:    leadRepo,
		bookingRepo: bookingRepo,
		unitRepo:    unitRepo,
		statsCache:  statsCache,
		logger:      logger,
	}
}

// GetStats returns the dashboard figures for a tenant, from cache when fresh
func (s *DashboardService) GetStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStatsResponse, error) {
	key := cache.DashboardStatsKey(tenantID.String())

	if s.statsCache != nil {
		if data, ok, err := s.statsCache.Get(ctx, key); err == nil && ok {
			var cached DashboardStatsResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.computeStats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.statsCache.Set(ctx, key, data, statsTTL); err != nil {
				s.logger.Warn("failed to cache dashboard stats",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err),
				)
			}
		}
	}

	return stats, nil
}

func (s *DashboardService) computeStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStatsResponse, error) {
	stats := &DashboardStatsResponse{
		PipelineBreakdown: make(map[string]int64),
		RecentLeads:       make([]LeadSummary, 0),
		GeneratedAt:       time.Now(),
	}

	statuses := []pipeline.LeadStatus{
		pipeline.LeadStatusNew,
		pipeline.LeadStatusInProgress,
		pipeline.LeadStatusSiteVisit,
		pipeline.LeadStatusNegotiation,
		pipeline.LeadStatusBooked,
		pipeline.LeadStatusLost,
	}
	for _, status := range statuses {
		count, err := s.leadRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return nil, err
		}
		stats.PipelineBreakdown[string(status)] = count
		stats.TotalLeads += count
	}
	stats.VisitsCount = stats.PipelineBreakdown[string(pipeline.LeadStatusSiteVisit)]
	stats.ConvertedCount = stats.PipelineBreakdown[string(pipeline.LeadStatusBooked)]
	stats.LostCount = stats.PipelineBreakdown[string(pipeline.LeadStatusLost)]

	weekAgo := time.Now().AddDate(0, 0, -7)
	newThisWeek, err := s.leadRepo.CountCreatedSince(ctx, tenantID, weekAgo)
	if err != nil {
		return nil, err
	}
	stats.NewLeadsThisWeek = newThisWeek

	revenue, err := s.confirmedRevenue(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stats.Revenue = revenue.Amount().StringFixed(2)
	stats.FormattedRevenue = FormatINR(revenue)

	for status, target := range map[catalog.UnitStatus]*int64{
		catalog.UnitStatusAvailable: &stats.UnitsAvailable,
		catalog.UnitStatusHeld:      &stats.UnitsHeld,
		catalog.UnitStatusSold:      &stats.UnitsSold,
	} {
		count, err := s.unitRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return nil, err
		}
		*target = count
	}

	recent, err := s.leadRepo.FindAllForTenant(ctx, tenantID, shared.Filter{
		Page:     1,
		PageSize: 5,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}
	for i := range recent {
		stats.RecentLeads = append(stats.RecentLeads, LeadSummary{
			ID:        recent[i].ID,
			Name:      recent[i].Name,
			Phone:     recent[i].Phone,
			Source:    string(recent[i].Source),
			Status:    string(recent[i].Status),
			CreatedAt: recent[i].CreatedAt,
		})
	}

	return stats, nil
}

// confirmedRevenue sums the deal amounts of all confirmed bookings
func (s *DashboardService) confirmedRevenue(ctx context.Context, tenantID uuid.UUID) (valueobject.Money, error) {
	total := valueobject.ZeroINR()
	for page := 1; ; page++ {
		bookings, err := s.bookingRepo.FindByStatus(ctx, tenantID, booking.BookingStatusConfirmed, shared.Filter{
			Page:     page,
			PageSize: revenuePageSize,
		})
		if err != nil {
			return valueobject.ZeroINR(), err
		}
		for i := range bookings {
			total = total.MustAdd(bookings[i].DealAmount)
		}
		if len(bookings) < revenuePageSize {
			return total, nil
		}
	}
}

var (
	oneCrore = decimal.NewFromInt(10_000_000)
	oneLakh  = decimal.NewFromInt(100_000)
)

// FormatINR renders an amount the way the dashboard displays it: crores
// past 1 Cr, lakhs past 1 L, plain rupees below that.
func FormatINR(m valueobject.Money) string {
	amount := m.Amount()
	switch {
	case amount.GreaterThanOrEqual(oneCrore):
		return fmt.Sprintf("₹%s Cr", amount.Div(oneCrore).Round(2).String())
	case amount.GreaterThanOrEqual(oneLakh):
		return fmt.Sprintf("₹%s L", amount.Div(oneLakh).Round(2).String())
	default:
		return fmt.Sprintf("₹%s", amount.StringFixed(0))
	}
}
