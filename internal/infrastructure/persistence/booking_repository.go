package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/persistence/models"
)

// GormBookingRepository implements booking.BookingRepository using GORM.
// Bookings load and save as full aggregates: charge and milestone rows
// are replaced wholesale on every save so the stored schedule always
// matches the aggregate that produced it.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by ID with its charges and milestones
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.preloaded(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a booking by ID within a tenant
func (r *GormBookingRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLead finds the bookings associated with a lead
func (r *GormBookingRepository) FindByLead(ctx context.Context, tenantID, leadID uuid.UUID) ([]booking.Booking, error) {
	query := r.preloaded(ctx).
		Where("tenant_id = ? AND lead_id = ?", tenantID, leadID).
		Order("created_at DESC")
	return r.findBookings(query)
}

// FindConfirmedByLead finds a lead's confirmed booking, if any
func (r *GormBookingRepository) FindConfirmedByLead(ctx context.Context, tenantID, leadID uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND lead_id = ? AND status = ?", tenantID, leadID, booking.BookingStatusConfirmed).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all bookings for a tenant
func (r *GormBookingRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	query := r.applyFilter(r.preloaded(ctx).Where("tenant_id = ?", tenantID), filter)
	return r.findBookings(query)
}

// FindByStatus finds bookings by status for a tenant
func (r *GormBookingRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status booking.BookingStatus, filter shared.Filter) ([]booking.Booking, error) {
	query := r.applyFilter(
		r.preloaded(ctx).Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)
	return r.findBookings(query)
}

// Save creates or updates a booking together with its charges and milestones
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	var model models.BookingModel
	model.FromDomain(b)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Child rows are replaced, not merged; removed charges and
		// milestones must not survive a save.
		if err := tx.Where("booking_id = ?", model.ID).Delete(&models.ChargeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", model.ID).Delete(&models.MilestoneModel{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Charges", "Milestones").Save(&model).Error; err != nil {
			return err
		}
		if len(model.Charges) > 0 {
			if err := tx.Create(&model.Charges).Error; err != nil {
				return err
			}
		}
		if len(model.Milestones) > 0 {
			if err := tx.Create(&model.Milestones).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountForTenant counts bookings for a tenant
func (r *GormBookingRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("tenant_id = ?", tenantID)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// CountByStatus counts bookings by status for a tenant
func (r *GormBookingRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status booking.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error
	return count, err
}

// CountByLeadAndStatus counts a lead's bookings in the given status
func (r *GormBookingRepository) CountByLeadAndStatus(ctx context.Context, tenantID, leadID uuid.UUID, status booking.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("tenant_id = ? AND lead_id = ? AND status = ?", tenantID, leadID, status).
		Count(&count).Error
	return count, err
}

func (r *GormBookingRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Preload("Charges", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_charges.created_at ASC")
		}).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_milestones.position ASC")
		})
}

func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("lower(applicant) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "lead_id":
			query = query.Where("lead_id = ?", value)
		case "unit_id":
			query = query.Where("unit_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormBookingRepository) findBookings(query *gorm.DB) ([]booking.Booking, error) {
	var bookingModels []models.BookingModel
	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}
	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

var _ booking.BookingRepository = (*GormBookingRepository)(nil)
