package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masalakitchen/storefront/internal/models"
)

type DishFilter struct {
	CategorySlug string
	ActiveOnly   bool
}

func activeVariants(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("sort_order ASC")
}

func (r *GormRepo) ListDishes(ctx context.Context, f DishFilter) ([]models.Dish, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.Dish{}).
		Preload("Category").
		Preload("Variants", activeVariants)

	if f.ActiveOnly {
		q = q.Where("dishes.is_active = ?", true)
	}
	if f.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = dishes.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}

	var dishes []models.Dish
	if err := q.Order("dishes.created_at DESC").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *GormRepo) GetDish(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Variants", activeVariants).
		First(&dish, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *GormRepo) GetDishBySlug(ctx context.Context, slug string) (*models.Dish, error) {
	var dish models.Dish
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Variants", activeVariants).
		First(&dish, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *GormRepo) CreateDish(ctx context.Context, dish *models.Dish) error {
	return r.DB.WithContext(ctx).Create(dish).Error
}

// SaveDish replaces the dish row and its variant set in one transaction.
func (r *GormRepo) SaveDish(ctx context.Context, dish *models.Dish) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.DishVariant{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(dish).Error
	})
}

func (r *GormRepo) DeleteDish(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", id).Delete(&models.DishVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Dish{}, "id = ?", id).Error
	})
}

func (r *GormRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := q.Order("sort_order ASC, name_en ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *GormRepo) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.DB.WithContext(ctx).First(&admin, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, admin *models.AdminUser) error {
	return r.DB.WithContext(ctx).Create(admin).Error
}
