package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/i18n"
	"github.com/masalakitchen/storefront/internal/transport"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "chicken-malai-tikka", slugify("Chicken Malai Tikka"))
	require.Equal(t, "aloo-tikki", slugify("  Aloo  Tikki "))
	require.Equal(t, "samosas", slugify("Samosas!"))
}

func TestCreateAndLocalizeDish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dish, err := env.Catalog.CreateDish(ctx, transport.DishInput{
		NameEn:        "Patties",
		NameNl:        "Pasteitjes",
		NameFr:        "Chaussons",
		DescriptionEn: "Flaky pastry",
		Price:         2.50,
		Variants: []transport.VariantInput{
			{NameEn: "Chicken", NameNl: "Kip", NameFr: "Poulet", SortOrder: 1},
			{NameEn: "Cheese", NameNl: "Kaas", NameFr: "Fromage", SortOrder: 0},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "patties", dish.Slug)

	view, err := env.Catalog.GetDishBySlug(ctx, "patties", i18n.LocaleNL)
	require.NoError(t, err)
	require.Equal(t, "Pasteitjes", view.Name)
	// Missing NL description falls back to English.
	require.Equal(t, "Flaky pastry", view.Description)
	// Variants come back in sort order, localized.
	require.Len(t, view.Variants, 2)
	require.Equal(t, "Kaas", view.Variants[0].Name)
	require.Equal(t, "Kip", view.Variants[1].Name)
}

func TestListDishesFiltersByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	starters, err := env.Catalog.CreateCategory(ctx, transport.CategoryInput{NameEn: "Starters"})
	require.NoError(t, err)
	_, err = env.Catalog.CreateCategory(ctx, transport.CategoryInput{NameEn: "Mains"})
	require.NoError(t, err)

	_, err = env.Catalog.CreateDish(ctx, transport.DishInput{
		NameEn: "Samosas", Price: 8.50, CategoryID: &starters.ID,
	})
	require.NoError(t, err)
	_, err = env.Catalog.CreateDish(ctx, transport.DishInput{
		NameEn: "Kebab", Price: 6.00,
	})
	require.NoError(t, err)

	all, err := env.Catalog.ListDishes(ctx, i18n.LocaleEN, "", true)
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyStarters, err := env.Catalog.ListDishes(ctx, i18n.LocaleEN, "starters", true)
	require.NoError(t, err)
	require.Len(t, onlyStarters, 1)
	require.Equal(t, "Samosas", onlyStarters[0].Name)
}

func TestInactiveDishesHiddenFromMenu(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inactive := false
	_, err := env.Catalog.CreateDish(ctx, transport.DishInput{
		NameEn: "Old Special", Price: 9.00, IsActive: &inactive,
	})
	require.NoError(t, err)

	public, err := env.Catalog.ListDishes(ctx, i18n.LocaleEN, "", true)
	require.NoError(t, err)
	require.Empty(t, public)

	admin, err := env.Catalog.ListDishes(ctx, i18n.LocaleEN, "", false)
	require.NoError(t, err)
	require.Len(t, admin, 1)
}

func TestUpdateDishReplacesVariants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dish, err := env.Catalog.CreateDish(ctx, transport.DishInput{
		NameEn: "Kebab",
		Price:  6.00,
		Variants: []transport.VariantInput{
			{NameEn: "Shami"}, {NameEn: "Chapli", SortOrder: 1},
		},
	})
	require.NoError(t, err)

	override := 7.50
	updated, err := env.Catalog.UpdateDish(ctx, dish.ID, transport.DishInput{
		NameEn: "Kebab",
		Price:  6.50,
		Variants: []transport.VariantInput{
			{NameEn: "Seekh", Price: &override},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6.50, updated.Price)

	view, err := env.Catalog.GetDishBySlug(ctx, dish.Slug, i18n.LocaleEN)
	require.NoError(t, err)
	require.Len(t, view.Variants, 1)
	require.Equal(t, "Seekh", view.Variants[0].Name)
	require.NotNil(t, view.Variants[0].Price)
	require.Equal(t, 7.50, *view.Variants[0].Price)
}

func TestDishValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Catalog.CreateDish(ctx, transport.DishInput{NameEn: "", Price: 1})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.Catalog.CreateDish(ctx, transport.DishInput{NameEn: "X", Price: -1})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteDish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dish, err := env.Catalog.CreateDish(ctx, transport.DishInput{NameEn: "Samosas", Price: 8.50})
	require.NoError(t, err)

	require.NoError(t, env.Catalog.DeleteDish(ctx, dish.ID))
	require.ErrorIs(t, env.Catalog.DeleteDish(ctx, uuid.New()), apperr.ErrNotFound)

	_, err = env.Catalog.GetDishBySlug(ctx, dish.Slug, i18n.LocaleEN)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDuplicateSlugRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Catalog.CreateDish(ctx, transport.DishInput{NameEn: "Samosas", Price: 8.50})
	require.NoError(t, err)

	_, err = env.Catalog.CreateDish(ctx, transport.DishInput{NameEn: "Samosas", Price: 9.00})
	require.ErrorIs(t, err, apperr.ErrConflict)
}
