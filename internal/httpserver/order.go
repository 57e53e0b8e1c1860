package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	order, err := h.Svc.Create(ctx, req)
	if err != nil {
		return respondError(c, "order.create", err)
	}

	l.Info("order_created", "order_id", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.QueryParam("email")
	orders, err := h.Svc.GetByEmail(ctx, email)
	if err != nil {
		return respondError(c, "order.list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid order id"})
	}

	order, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		return respondError(c, "order.get", err)
	}
	return c.JSON(http.StatusOK, order)
}

// GetOrderQR serves the pickup code PNG attached on payment confirmation.
func (h *OrderHTTP) GetOrderQR(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid order id"})
	}

	order, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		return respondError(c, "order.qr", err)
	}
	if len(order.QRCode) == 0 {
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "no pickup code for this order"})
	}
	return c.Blob(http.StatusOK, "image/png", order.QRCode)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid order id"})
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status, req.PaymentRef)
	if err != nil {
		return respondError(c, "order.update_status", err)
	}

	l.Info("order_status_updated", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
