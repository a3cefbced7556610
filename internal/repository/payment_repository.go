package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentDomain "github.com/Selam-Hotels/service-reservation/internal/domain/payment"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// PaymentModel is the GORM persistence model for the payments table.
type PaymentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BookingID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents int64     `gorm:"not null"`
	Method      string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(10);not null"`
	Description string    `gorm:"type:varchar(300)"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentRepositoryImpl is the GORM-based implementation of PaymentRepository.
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new GORM-based payment repository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepositoryImpl {
	return &PaymentRepositoryImpl{db: db}
}

// FindByID retrieves a payment by its unique ID.
func (r *PaymentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("payment", id.String())
		}
		return nil, err
	}
	return paymentToDomain(&model), nil
}

// FindByBookingID retrieves the most recent payment for a booking.
func (r *PaymentRepositoryImpl) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("payment for booking", bookingID.String())
		}
		return nil, err
	}
	return paymentToDomain(&model), nil
}

// FindActiveByBookingID retrieves the booking's active settlement record.
func (r *PaymentRepositoryImpl) FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status IN ?", bookingID, []string{
			string(paymentDomain.StatusPaid),
			string(paymentDomain.StatusUnpaid),
		}).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("active payment for booking", bookingID.String())
		}
		return nil, err
	}
	return paymentToDomain(&model), nil
}

// ListAll retrieves payments with pagination, newest first (admin).
func (r *PaymentRepositoryImpl) ListAll(ctx context.Context, page, limit int) ([]*paymentDomain.Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []PaymentModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*paymentDomain.Payment, len(models))
	for i := range models {
		payments[i] = paymentToDomain(&models[i])
	}
	return payments, total, nil
}

// GetRevenueStats returns the total of paid settlements and counts by status.
func (r *PaymentRepositoryImpl) GetRevenueStats(ctx context.Context) (int64, map[string]int64, error) {
	var totalPaid int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Where("status = ?", string(paymentDomain.StatusPaid)).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totalPaid).Error; err != nil {
		return 0, nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return 0, nil, err
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return totalPaid, counts, nil
}

// Save persists a new payment record. A unique violation on the partial
// active-payment index is the storage-level guard behind the in-process
// booking lock and surfaces as a conflict.
func (r *PaymentRepositoryImpl) Save(ctx context.Context, payment *paymentDomain.Payment) error {
	model := paymentToModel(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isPgViolation(err, pgUniqueViolation) {
			return domain.NewConflictError("booking already has an active payment")
		}
		return err
	}
	return nil
}

func paymentToDomain(model *PaymentModel) *paymentDomain.Payment {
	return paymentDomain.Reconstitute(
		model.ID,
		model.BookingID,
		model.AmountCents,
		paymentDomain.Method(model.Method),
		paymentDomain.Status(model.Status),
		model.Description,
		model.CreatedAt,
	)
}

func paymentToModel(p *paymentDomain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:          p.ID(),
		BookingID:   p.BookingID(),
		AmountCents: p.AmountCents(),
		Method:      string(p.Method()),
		Status:      string(p.Status()),
		Description: p.Description(),
		CreatedAt:   p.CreatedAt(),
	}
}
