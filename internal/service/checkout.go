package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/payments"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

// CheckoutService turns the session cart into a PENDING order and hands the
// shopper to the payment provider. The cart is cleared once the order is
// safely persisted; a payment-session failure after that point leaves a
// PENDING order that can be retried or cancelled, never a half-written one.
type CheckoutService struct {
	Cart     *CartService
	Orders   *OrderService
	Payments *payments.Client
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req transport.CheckoutRequest) (*models.Order, string, error) {
	if req.Email == "" {
		return nil, "", apperr.Validation("email required")
	}

	cart, err := s.Cart.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if len(cart) == 0 {
		return nil, "", apperr.Validation("cart is empty")
	}

	items := make([]transport.CreateOrderItem, 0, len(cart))
	var total float64
	for i := range cart {
		line := &cart[i]
		items = append(items, transport.CreateOrderItem{
			DishID:   line.DishID,
			Quantity: int(line.Quantity),
			Price:    line.Price,
			Size:     line.Size,
		})
		total += line.Price * float64(line.Quantity)
	}

	order, err := s.Orders.Create(ctx, transport.CreateOrderRequest{
		Email:        req.Email,
		Items:        items,
		TotalAmount:  round2(total),
		DeliveryInfo: req.DeliveryInfo,
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.Cart.Clear(ctx, sessionID); err != nil {
		logging.FromContext(ctx).Warn("checkout_cart_clear_failed", "session_id", sessionID, "error", err)
	}

	session, err := s.Payments.CreateSession(ctx, order.ID, order.TotalAmount, order.Email)
	if err != nil {
		return nil, "", err
	}

	if session.PaymentRef != "" {
		if err := s.Orders.Repo.SetOrderPaymentRef(ctx, order.ID, session.PaymentRef); err != nil {
			logging.FromContext(ctx).Warn("checkout_payment_ref_store_failed", "order_id", order.ID, "error", err)
		} else {
			order.PaymentRef = session.PaymentRef
		}
	}

	return order, session.URL, nil
}

// ConfirmPayment is the webhook path: it resolves the order by id or
// payment reference and flips PENDING to PAID.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, req transport.PaymentWebhookRequest) (*models.Order, error) {
	order, err := s.resolveOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.Orders.UpdateStatus(ctx, order.ID, models.OrderStatusPaid, req.PaymentRef)
}

func (s *CheckoutService) resolveOrder(ctx context.Context, req transport.PaymentWebhookRequest) (*models.Order, error) {
	if req.OrderID != uuid.Nil {
		return s.Orders.GetByID(ctx, req.OrderID)
	}
	if req.PaymentRef != "" {
		return s.Orders.GetByPaymentRef(ctx, req.PaymentRef)
	}
	return nil, apperr.Validation("orderId or paymentRef required")
}
