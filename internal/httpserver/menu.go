package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/masalakitchen/storefront/internal/i18n"
	"github.com/masalakitchen/storefront/internal/search"
	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/internal/transport"
)

type MenuHTTP struct {
	Svc   *service.CatalogService
	Index *search.Index
}

// locale resolves the request locale from ?locale= first, then the
// Accept-Language header.
func locale(c echo.Context) i18n.Locale {
	if q := c.QueryParam("locale"); q != "" {
		return i18n.Negotiate(q)
	}
	return i18n.Negotiate(c.Request().Header.Get("Accept-Language"))
}

func (h *MenuHTTP) ListDishes(c echo.Context) error {
	ctx := c.Request().Context()

	dishes, err := h.Svc.ListDishes(ctx, locale(c), c.QueryParam("category"), true)
	if err != nil {
		return respondError(c, "menu.list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"dishes": dishes})
}

func (h *MenuHTTP) GetDish(c echo.Context) error {
	ctx := c.Request().Context()

	dish, err := h.Svc.GetDishBySlug(ctx, c.Param("slug"), locale(c))
	if err != nil {
		return respondError(c, "menu.get", err)
	}
	return c.JSON(http.StatusOK, dish)
}

func (h *MenuHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.Svc.ListCategories(ctx, locale(c))
	if err != nil {
		return respondError(c, "menu.categories", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

func (h *MenuHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "q parameter required"})
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 || size > 50 {
		size = 20
	}

	total, docs, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, transport.ErrorResponse{Error: "search unavailable"})
	}

	loc := locale(c)
	results := make([]echo.Map, 0, len(docs))
	for _, d := range docs {
		results = append(results, echo.Map{
			"id":    d.ID,
			"slug":  d.Slug,
			"name":  i18n.Pick(d.NameEn, d.NameNl, d.NameFr, loc),
			"price": d.Price,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "results": results})
}
