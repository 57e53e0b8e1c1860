package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/events"
	"github.com/masalakitchen/storefront/internal/metrics"
	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/repo"
	"github.com/masalakitchen/storefront/pkg/logging"
)

// CartService owns the session-scoped cart. Every operation takes the
// session id explicitly and returns the full updated cart. Two adds of the
// same dish and size stay two separate lines; the storefront never merges.
type CartService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

type AddCartItemInput struct {
	DishID   uuid.UUID
	Name     string
	Price    float64
	Quantity int
	ImageSrc string
	Size     string
}

func (s *CartService) Get(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	items, err := s.Repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (s *CartService) Add(ctx context.Context, sessionID string, in AddCartItemInput) ([]models.CartItem, error) {
	if in.DishID == uuid.Nil {
		return nil, apperr.Validation("dish id required")
	}
	if in.Name == "" {
		return nil, apperr.Validation("name required")
	}
	if in.Price < 0 {
		return nil, apperr.Validation("price must be >= 0")
	}
	if in.Quantity < 1 {
		return nil, apperr.Validation("quantity must be a positive integer")
	}

	item := models.CartItem{
		SessionID: sessionID,
		DishID:    in.DishID,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  uint(in.Quantity),
		ImageSrc:  in.ImageSrc,
		Size:      in.Size,
	}
	if err := s.Repo.AddCartItem(ctx, &item); err != nil {
		return nil, apperr.Classify(err)
	}

	metrics.CartOperations.WithLabelValues("add").Inc()
	s.publish(ctx, sessionID, map[string]any{
		"type":       "cart_item_added",
		"session_id": sessionID,
		"item_id":    item.ID,
		"dish_id":    item.DishID,
		"quantity":   item.Quantity,
	})

	return s.Get(ctx, sessionID)
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, itemID)
	}

	found, err := s.Repo.UpdateCartItemQuantity(ctx, sessionID, itemID, uint(quantity))
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if !found {
		return nil, apperr.NotFound("cart item")
	}

	metrics.CartOperations.WithLabelValues("update").Inc()
	s.publish(ctx, sessionID, map[string]any{
		"type":       "cart_item_updated",
		"session_id": sessionID,
		"item_id":    itemID,
		"quantity":   quantity,
	})

	return s.Get(ctx, sessionID)
}

// Remove is idempotent: deleting an id that is not in the cart is a no-op.
func (s *CartService) Remove(ctx context.Context, sessionID string, itemID uuid.UUID) ([]models.CartItem, error) {
	if err := s.Repo.RemoveCartItem(ctx, sessionID, itemID); err != nil {
		return nil, apperr.Classify(err)
	}

	metrics.CartOperations.WithLabelValues("remove").Inc()
	s.publish(ctx, sessionID, map[string]any{
		"type":       "cart_item_removed",
		"session_id": sessionID,
		"item_id":    itemID,
	})

	return s.Get(ctx, sessionID)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.Repo.ClearCart(ctx, sessionID); err != nil {
		return apperr.Classify(err)
	}

	metrics.CartOperations.WithLabelValues("clear").Inc()
	s.publish(ctx, sessionID, map[string]any{
		"type":       "cart_cleared",
		"session_id": sessionID,
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.Publish(ctx, events.TopicCartEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("cart_event_publish_failed", "error", err)
	}
}
