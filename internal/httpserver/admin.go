package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

type AdminHTTP struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	token, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, "admin.login", err)
	}

	l.Info("admin_login_success", "email", req.Email)
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: token})
}

// Admin catalog reads include inactive records; localization still applies
// for display names.
func (h *AdminHTTP) ListDishes(c echo.Context) error {
	ctx := c.Request().Context()

	dishes, err := h.Catalog.ListDishes(ctx, locale(c), c.QueryParam("category"), false)
	if err != nil {
		return respondError(c, "admin.dishes.list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"dishes": dishes})
}

func (h *AdminHTTP) CreateDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dishes.create")

	var req transport.DishInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_dish_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	dish, err := h.Catalog.CreateDish(ctx, req)
	if err != nil {
		return respondError(c, "admin.dishes.create", err)
	}

	l.Info("dish_created", "dish_id", dish.ID, "slug", dish.Slug)
	return c.JSON(http.StatusCreated, dish)
}

func (h *AdminHTTP) UpdateDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dishes.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid dish id"})
	}

	var req transport.DishInput
	if err := c.Bind(&req); err != nil {
		l.Warn("update_dish_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	dish, err := h.Catalog.UpdateDish(ctx, id, req)
	if err != nil {
		return respondError(c, "admin.dishes.update", err)
	}
	return c.JSON(http.StatusOK, dish)
}

func (h *AdminHTTP) DeleteDish(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid dish id"})
	}

	if err := h.Catalog.DeleteDish(ctx, id); err != nil {
		return respondError(c, "admin.dishes.delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.categories.create")

	var req transport.CategoryInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	category, err := h.Catalog.CreateCategory(ctx, req)
	if err != nil {
		return respondError(c, "admin.categories.create", err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *AdminHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid category id"})
	}

	var req transport.CategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	category, err := h.Catalog.UpdateCategory(ctx, id, req)
	if err != nil {
		return respondError(c, "admin.categories.update", err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *AdminHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid category id"})
	}

	if err := h.Catalog.DeleteCategory(ctx, id); err != nil {
		return respondError(c, "admin.categories.delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
