package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/cache"
	"github.com/masalakitchen/storefront/internal/i18n"
	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/repo"
	"github.com/masalakitchen/storefront/internal/search"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

// CatalogService serves the public menu and the admin dish/category CRUD.
// Postgres is the source of truth; redis caches public menu reads and
// elasticsearch mirrors dishes for search. Both are best effort.
type CatalogService struct {
	Repo  *repo.GormRepo
	Cache *cache.MenuCache
	Index *search.Index
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func variantView(v *models.DishVariant, loc i18n.Locale) transport.VariantView {
	return transport.VariantView{
		ID:       v.ID,
		Name:     i18n.Pick(v.NameEn, v.NameNl, v.NameFr, loc),
		NameEn:   v.NameEn,
		NameNl:   v.NameNl,
		NameFr:   v.NameFr,
		Price:    v.Price,
		IsActive: v.IsActive,
	}
}

func dishView(d *models.Dish, loc i18n.Locale) transport.DishView {
	view := transport.DishView{
		ID:          d.ID,
		Slug:        d.Slug,
		Name:        i18n.Pick(d.NameEn, d.NameNl, d.NameFr, loc),
		Description: i18n.Pick(d.DescriptionEn, d.DescriptionNl, d.DescriptionFr, loc),
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		IsActive:    d.IsActive,
		Variants:    make([]transport.VariantView, 0, len(d.Variants)),
		CreatedAt:   d.CreatedAt,
	}
	for i := range d.Variants {
		view.Variants = append(view.Variants, variantView(&d.Variants[i], loc))
	}
	if d.Category != nil {
		view.Category = &transport.CategoryView{
			ID:       d.Category.ID,
			Name:     i18n.Pick(d.Category.NameEn, d.Category.NameNl, d.Category.NameFr, loc),
			Slug:     d.Category.Slug,
			ImageURL: d.Category.ImageURL,
		}
	}
	return view
}

func (s *CatalogService) ListDishes(ctx context.Context, loc i18n.Locale, categorySlug string, activeOnly bool) ([]transport.DishView, error) {
	if activeOnly && s.Cache != nil {
		var cached []transport.DishView
		hit, err := s.Cache.Get(ctx, string(loc), categorySlug, &cached)
		if err != nil {
			logging.FromContext(ctx).Warn("menu_cache_read_failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	dishes, err := s.Repo.ListDishes(ctx, repo.DishFilter{CategorySlug: categorySlug, ActiveOnly: activeOnly})
	if err != nil {
		return nil, apperr.Classify(err)
	}

	views := make([]transport.DishView, 0, len(dishes))
	for i := range dishes {
		views = append(views, dishView(&dishes[i], loc))
	}

	if activeOnly && s.Cache != nil {
		if err := s.Cache.Set(ctx, string(loc), categorySlug, views); err != nil {
			logging.FromContext(ctx).Warn("menu_cache_write_failed", "error", err)
		}
	}
	return views, nil
}

func (s *CatalogService) GetDishBySlug(ctx context.Context, slug string, loc i18n.Locale) (*transport.DishView, error) {
	dish, err := s.Repo.GetDishBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	view := dishView(dish, loc)
	return &view, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, loc i18n.Locale) ([]transport.CategoryView, error) {
	categories, err := s.Repo.ListCategories(ctx, true)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	views := make([]transport.CategoryView, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		views = append(views, transport.CategoryView{
			ID:       c.ID,
			Name:     i18n.Pick(c.NameEn, c.NameNl, c.NameFr, loc),
			Slug:     c.Slug,
			ImageURL: c.ImageURL,
		})
	}
	return views, nil
}

func applyDishInput(dish *models.Dish, in transport.DishInput) {
	dish.NameEn = in.NameEn
	dish.NameNl = in.NameNl
	dish.NameFr = in.NameFr
	dish.DescriptionEn = in.DescriptionEn
	dish.DescriptionNl = in.DescriptionNl
	dish.DescriptionFr = in.DescriptionFr
	dish.Price = in.Price
	dish.ImageURL = in.ImageURL
	dish.CategoryID = in.CategoryID
	if in.IsActive != nil {
		dish.IsActive = *in.IsActive
	}

	dish.Variants = dish.Variants[:0]
	for _, v := range in.Variants {
		variant := models.DishVariant{
			DishID:    dish.ID,
			NameEn:    v.NameEn,
			NameNl:    v.NameNl,
			NameFr:    v.NameFr,
			Price:     v.Price,
			SortOrder: v.SortOrder,
			IsActive:  true,
		}
		if v.IsActive != nil {
			variant.IsActive = *v.IsActive
		}
		dish.Variants = append(dish.Variants, variant)
	}
}

func (s *CatalogService) validateDishInput(in transport.DishInput) error {
	if in.NameEn == "" {
		return apperr.Validation("english name required")
	}
	if in.Price < 0 {
		return apperr.Validation("price must be >= 0")
	}
	for _, v := range in.Variants {
		if v.NameEn == "" {
			return apperr.Validation("variant english name required")
		}
		if v.Price != nil && *v.Price < 0 {
			return apperr.Validation("variant price must be >= 0")
		}
	}
	return nil
}

func (s *CatalogService) CreateDish(ctx context.Context, in transport.DishInput) (*models.Dish, error) {
	if err := s.validateDishInput(in); err != nil {
		return nil, err
	}

	dish := &models.Dish{IsActive: true, Slug: slugify(in.NameEn)}
	applyDishInput(dish, in)

	if err := s.Repo.CreateDish(ctx, dish); err != nil {
		return nil, apperr.Classify(err)
	}
	s.afterCatalogWrite(ctx, dish)
	return dish, nil
}

func (s *CatalogService) UpdateDish(ctx context.Context, id uuid.UUID, in transport.DishInput) (*models.Dish, error) {
	if err := s.validateDishInput(in); err != nil {
		return nil, err
	}

	dish, err := s.Repo.GetDish(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	applyDishInput(dish, in)

	if err := s.Repo.SaveDish(ctx, dish); err != nil {
		return nil, apperr.Classify(err)
	}
	s.afterCatalogWrite(ctx, dish)
	return dish, nil
}

func (s *CatalogService) DeleteDish(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Repo.GetDish(ctx, id); err != nil {
		return apperr.Classify(err)
	}
	if err := s.Repo.DeleteDish(ctx, id); err != nil {
		return apperr.Classify(err)
	}

	s.invalidateCache(ctx)
	if err := s.Index.DeleteDish(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "dish_id", id, "error", err)
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in transport.CategoryInput) (*models.Category, error) {
	if in.NameEn == "" {
		return nil, apperr.Validation("english name required")
	}

	category := &models.Category{
		Slug:        slugify(in.NameEn),
		NameEn:      in.NameEn,
		NameNl:      in.NameNl,
		NameFr:      in.NameFr,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, apperr.Classify(err)
	}
	s.invalidateCache(ctx)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, in transport.CategoryInput) (*models.Category, error) {
	if in.NameEn == "" {
		return nil, apperr.Validation("english name required")
	}

	var category models.Category
	if err := s.Repo.DB.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, apperr.Classify(err)
	}

	category.NameEn = in.NameEn
	category.NameNl = in.NameNl
	category.NameFr = in.NameFr
	category.Description = in.Description
	category.ImageURL = in.ImageURL
	category.SortOrder = in.SortOrder
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.Repo.SaveCategory(ctx, &category); err != nil {
		return nil, apperr.Classify(err)
	}
	s.invalidateCache(ctx)
	return &category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return apperr.Classify(err)
	}
	s.invalidateCache(ctx)
	return nil
}

// ReindexAll rebuilds the search index from postgres. Called at startup.
func (s *CatalogService) ReindexAll(ctx context.Context) error {
	dishes, err := s.Repo.ListDishes(ctx, repo.DishFilter{})
	if err != nil {
		return apperr.Classify(err)
	}
	return s.Index.Reindex(ctx, dishes)
}

func (s *CatalogService) afterCatalogWrite(ctx context.Context, dish *models.Dish) {
	s.invalidateCache(ctx)
	if err := s.Index.IndexDish(ctx, dish); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "dish_id", dish.ID, "error", err)
	}
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		logging.FromContext(ctx).Warn("menu_cache_invalidate_failed", "error", err)
	}
}
