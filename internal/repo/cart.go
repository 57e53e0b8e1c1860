package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// UpdateCartItemQuantity reports whether the line existed.
func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Update("quantity", quantity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, sessionID string, itemID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, sessionID string) error {
	return r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).Error
}
