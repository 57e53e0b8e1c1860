package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/repo"
)

type testEnv struct {
	T       *testing.T
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Cart    *CartService
	Orders  *OrderService
	Catalog *CatalogService
	Auth    *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))

	r := &repo.GormRepo{DB: db}
	return &testEnv{
		T:       t,
		DB:      db,
		Repo:    r,
		Cart:    &CartService{Repo: r},
		Orders:  &OrderService{Repo: r},
		Catalog: &CatalogService{Repo: r},
		Auth:    &AuthService{Repo: r, JWTSecret: []byte("test-secret")},
	}
}

func (env *testEnv) seedDish(name string, price float64) *models.Dish {
	env.T.Helper()
	dish := &models.Dish{
		Slug:     slugify(name) + "-" + uuid.NewString()[:8],
		NameEn:   name,
		Price:    price,
		IsActive: true,
	}
	require.NoError(env.T, env.DB.Create(dish).Error)
	return dish
}
