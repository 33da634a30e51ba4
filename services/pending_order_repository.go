package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// PendingOrderRepository is the local ledger of orders awaiting payment.
// Lookups return (nil, nil) when no row matches.
type PendingOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PendingOrder, error)
	FindByCartID(ctx context.Context, cartID string) (*models.PendingOrder, error)
	Create(ctx context.Context, order *models.PendingOrder) error
	// UpdateStatus moves an order from one status to another and reports
	// whether a row was changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]models.PendingOrder, error)
}

type GormPendingOrderRepository struct {
	db *gorm.DB
}

func NewGormPendingOrderRepository(db *gorm.DB) *GormPendingOrderRepository {
	return &GormPendingOrderRepository{db: db}
}

func (r *GormPendingOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PendingOrder, error) {
	var order models.PendingOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormPendingOrderRepository) FindByCartID(ctx context.Context, cartID string) (*models.PendingOrder, error) {
	var order models.PendingOrder
	err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormPendingOrderRepository) Create(ctx context.Context, order *models.PendingOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormPendingOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PendingOrder{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormPendingOrderRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]models.PendingOrder, error) {
	var orders []models.PendingOrder
	err := r.db.WithContext(ctx).
		Where("status = ? AND hold_expires_at <= ?", models.PendingStatusPending, now).
		Order("hold_expires_at ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
