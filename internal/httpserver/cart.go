package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

// GetCart never fails with a domain error; an unknown session is an empty cart.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.Svc.Get(ctx, sessionID(c))
	if err != nil {
		return respondError(c, "cart.get", err)
	}
	return c.JSON(http.StatusOK, transport.CartResponse{Cart: cart})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}
	if req.DishID == uuid.Nil || req.Name == "" || req.Price == "" || req.Quantity == "" {
		l.Warn("add_to_cart_error", "status", 400, "reason", "missing fields")
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "missing required fields"})
	}

	price, err := strconv.ParseFloat(req.Price.String(), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "price must be a number"})
	}
	quantity, err := strconv.Atoi(req.Quantity.String())
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "quantity must be an integer"})
	}

	cart, err := h.Svc.Add(ctx, sessionID(c), service.AddCartItemInput{
		DishID:   req.DishID,
		Name:     req.Name,
		Price:    price,
		Quantity: quantity,
		ImageSrc: req.ImageSrc,
		Size:     req.Size,
	})
	if err != nil {
		return respondError(c, "cart.add", err)
	}

	l.Info("cart_item_added", "items", len(cart))
	return c.JSON(http.StatusOK, transport.CartResponse{Cart: cart, Success: true})
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}
	if req.ItemID == uuid.Nil || req.Quantity == "" {
		l.Warn("update_cart_error", "status", 400, "reason", "missing fields")
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "missing required fields"})
	}

	quantity, err := strconv.Atoi(req.Quantity.String())
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "quantity must be an integer"})
	}

	cart, err := h.Svc.UpdateQuantity(ctx, sessionID(c), req.ItemID, quantity)
	if err != nil {
		return respondError(c, "cart.update", err)
	}
	return c.JSON(http.StatusOK, transport.CartResponse{Cart: cart, Success: true})
}

// DeleteFromCart removes one line (?itemId=) or everything (?clear=true).
func (h *CartHTTP) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete")

	if c.QueryParam("clear") == "true" {
		if err := h.Svc.Clear(ctx, sessionID(c)); err != nil {
			return respondError(c, "cart.delete", err)
		}
		return c.JSON(http.StatusOK, transport.CartResponse{Cart: []models.CartItem{}, Success: true})
	}

	rawID := c.QueryParam("itemId")
	if rawID == "" {
		l.Warn("delete_cart_error", "status", 400, "reason", "missing itemId")
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "missing itemId parameter"})
	}
	itemID, err := uuid.Parse(rawID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid itemId"})
	}

	cart, err := h.Svc.Remove(ctx, sessionID(c), itemID)
	if err != nil {
		return respondError(c, "cart.delete", err)
	}
	return c.JSON(http.StatusOK, transport.CartResponse{Cart: cart, Success: true})
}
