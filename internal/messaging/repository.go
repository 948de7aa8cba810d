package messaging

import (
	"context"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// Repository owns messaging action, message and buyer attribute persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// OrderExists reports whether the order id names a known order.
func (r *Repository) OrderExists(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListAvailableActions(ctx context.Context, orderID string, marketplaceIDs []string) ([]models.MessagingAction, error) {
	tx := r.DB(ctx).
		Where("order_id = ?", orderID).
		Where("is_available = ?", true)
	if len(marketplaceIDs) > 0 {
		tx = tx.Where("marketplace_id IN ?", marketplaceIDs)
	}

	var rows []models.MessagingAction
	if err := tx.Order("action_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindAvailableAction(ctx context.Context, orderID, actionName string, marketplaceIDs []string) (*models.MessagingAction, error) {
	tx := r.DB(ctx).
		Where("order_id = ?", orderID).
		Where("action_name = ?", actionName).
		Where("is_available = ?", true)
	if len(marketplaceIDs) > 0 {
		tx = tx.Where("marketplace_id IN ?", marketplaceIDs)
	}

	var row models.MessagingAction
	if err := tx.First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) FindBuyerAttributes(ctx context.Context, orderID string) (*models.BuyerAttribute, error) {
	var row models.BuyerAttribute
	if err := r.DB(ctx).First(&row, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.DB(ctx).Create(message).Error
}
