package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/payments"
	"github.com/masalakitchen/storefront/internal/qr"
	"github.com/masalakitchen/storefront/internal/transport"
)

func newCheckout(env *testEnv) *CheckoutService {
	env.Orders.QR = &qr.Generator{BaseURL: "http://localhost:3000"}
	return &CheckoutService{
		Cart:     env.Cart,
		Orders:   env.Orders,
		Payments: payments.NewClient("", "http://localhost:3000/checkout/success"),
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	checkout := newCheckout(env)

	samosas := env.seedDish("Samosas", 8.50)
	curry := env.seedDish("Chicken Curry", 22.50)

	_, err := env.Cart.Add(ctx, "s1", addInput(samosas.ID, "Samosas", 8.50, 2))
	require.NoError(t, err)
	_, err = env.Cart.Add(ctx, "s1", addInput(curry.ID, "Chicken Curry", 22.50, 1))
	require.NoError(t, err)

	order, url, err := checkout.Checkout(ctx, "s1", transport.CheckoutRequest{
		Email:        "a@b.com",
		DeliveryInfo: &transport.DeliveryInfo{City: "Brussels", Country: "BE"},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, 39.50, order.TotalAmount)
	require.Equal(t, "Brussels", order.City)
	require.Contains(t, url, "checkout/success")
	require.True(t, strings.HasPrefix(order.PaymentRef, "mock_"))

	cart, err := env.Cart.Get(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, cart)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	checkout := newCheckout(env)

	_, _, err := checkout.Checkout(ctx, "s1", transport.CheckoutRequest{Email: "a@b.com"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, _, err = checkout.Checkout(ctx, "s1", transport.CheckoutRequest{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestConfirmPaymentFlipsToPaid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	checkout := newCheckout(env)

	dish := env.seedDish("Kebab", 6.00)
	_, err := env.Cart.Add(ctx, "s1", addInput(dish.ID, "Kebab", 6.00, 1))
	require.NoError(t, err)

	order, _, err := checkout.Checkout(ctx, "s1", transport.CheckoutRequest{Email: "a@b.com"})
	require.NoError(t, err)

	paid, err := checkout.ConfirmPayment(ctx, transport.PaymentWebhookRequest{
		PaymentRef: order.PaymentRef,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPaid, paid.Status)

	// Payment confirmation attaches the pickup QR code.
	stored, err := env.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.QRCode)

	// A second confirmation is an illegal PAID -> PAID transition.
	_, err = checkout.ConfirmPayment(ctx, transport.PaymentWebhookRequest{
		PaymentRef: order.PaymentRef,
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestConfirmPaymentNeedsReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	checkout := newCheckout(env)

	_, err := checkout.ConfirmPayment(ctx, transport.PaymentWebhookRequest{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}
