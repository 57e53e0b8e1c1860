package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	order, url, err := h.Svc.Checkout(ctx, sessionID(c), req)
	if err != nil {
		return respondError(c, "checkout.create", err)
	}

	l.Info("checkout_started", "order_id", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusOK, transport.CheckoutResponse{OrderID: order.ID, URL: url, Success: true})
}

// PaymentWebhook is the provider callback confirming payment.
func (h *CheckoutHTTP) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.webhook")

	var req transport.PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("webhook_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	order, err := h.Svc.ConfirmPayment(ctx, req)
	if err != nil {
		return respondError(c, "checkout.webhook", err)
	}

	l.Info("payment_confirmed", "order_id", order.ID, "payment_ref", order.PaymentRef)
	return c.JSON(http.StatusOK, echo.Map{"received": true, "orderId": order.ID})
}
