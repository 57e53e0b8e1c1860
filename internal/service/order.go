package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/events"
	"github.com/masalakitchen/storefront/internal/metrics"
	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/qr"
	"github.com/masalakitchen/storefront/internal/repo"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

// totalTolerance is half a cent: totals are two-decimal EUR amounts, so any
// honest client-side sum lands within this of ours.
const totalTolerance = 0.005

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	QR       *qr.Generator
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Create persists a new PENDING order with all of its items in one
// transaction. The submitted total must match the computed one; the stored
// total is always the computed value and is never recomputed afterwards.
func (s *OrderService) Create(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("items required")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		it := req.Items[i]
		if it.DishID == uuid.Nil {
			return nil, apperr.Validation("dish id required")
		}
		if it.Quantity < 1 {
			return nil, apperr.Validation("quantity must be a positive integer")
		}
		if it.Price < 0 {
			return nil, apperr.Validation("price must be >= 0")
		}

		total += it.Price * float64(it.Quantity)
		items = append(items, models.OrderItem{
			DishID:    it.DishID,
			VariantID: it.VariantID,
			Quantity:  uint(it.Quantity),
			Price:     it.Price,
			Size:      it.Size,
		})
	}

	total = round2(total)
	if math.Abs(total-req.TotalAmount) > totalTolerance {
		return nil, apperr.Validation("total amount mismatch: computed %.2f, got %.2f", total, req.TotalAmount)
	}

	order := &models.Order{
		Email:       req.Email,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		Items:       items,
	}
	if req.DeliveryInfo != nil {
		order.FirstName = req.DeliveryInfo.FirstName
		order.LastName = req.DeliveryInfo.LastName
		order.Phone = req.DeliveryInfo.Phone
		order.Address = req.DeliveryInfo.Address
		order.City = req.DeliveryInfo.City
		order.PostalCode = req.DeliveryInfo.PostalCode
		order.Country = req.DeliveryInfo.Country
		order.DeliveryInstructions = req.DeliveryInfo.DeliveryInstructions
		if req.DeliveryInfo.Email != "" {
			order.Email = req.DeliveryInfo.Email
		}
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, apperr.Classify(err)
	}

	metrics.OrdersCreated.Inc()
	s.publish(ctx, order.ID.String(), map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"email":    order.Email,
		"total":    order.TotalAmount,
	})

	return order, nil
}

// UpdateStatus enforces the lifecycle graph strictly: a write outside it is
// a validation error, including backward moves like DELIVERED to PENDING.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, paymentRef string) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown status %q", status)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, apperr.Validation("illegal status transition %s -> %s", order.Status, status)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, orderID, status, paymentRef); err != nil {
		return nil, apperr.Classify(err)
	}
	order.Status = status
	if paymentRef != "" {
		order.PaymentRef = paymentRef
	}

	if status == models.OrderStatusPaid {
		s.attachQRCode(ctx, order)
	}

	metrics.OrderStatusChanges.WithLabelValues(string(status)).Inc()
	s.publish(ctx, order.ID.String(), map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"status":   status,
	})

	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return order, nil
}

func (s *OrderService) GetByPaymentRef(ctx context.Context, ref string) (*models.Order, error) {
	if ref == "" {
		return nil, apperr.Validation("payment reference required")
	}
	order, err := s.Repo.GetOrderByPaymentRef(ctx, ref)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return order, nil
}

// GetByEmail matches the stored contact email exactly, newest order first.
// An unknown email is an empty result, not an error.
func (s *OrderService) GetByEmail(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, apperr.Validation("email required")
	}
	orders, err := s.Repo.ListOrdersByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) attachQRCode(ctx context.Context, order *models.Order) {
	if s.QR == nil {
		return
	}
	png, err := s.QR.Generate(order.ID)
	if err != nil {
		logging.FromContext(ctx).Warn("order_qr_generate_failed", "order_id", order.ID, "error", err)
		return
	}
	if err := s.Repo.SetOrderQRCode(ctx, order.ID, png); err != nil {
		logging.FromContext(ctx).Warn("order_qr_store_failed", "order_id", order.ID, "error", err)
		return
	}
	order.QRCode = png
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.Publish(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "error", err)
	}
}
