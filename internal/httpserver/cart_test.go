package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/repo"
	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/internal/transport"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Cart *CartHTTP
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
		T:    t,
		E:    echo.New(),
		DB:   db,
		Cart: &CartHTTP{Svc: &service.CartService{Repo: r}},
	}
}

func (env *testEnv) doJSON(method, target string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func sessionCookieFor(id string) *http.Cookie {
	return &http.Cookie{Name: sessionCookie, Value: id, Path: "/"}
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) transport.CartResponse {
	t.Helper()
	var resp transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetCartIssuesSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSON(http.MethodGet, "/api/cart", nil)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Empty(t, resp.Cart)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, sessionCookie, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	payload := map[string]any{
		"dishId":   uuid.NewString(),
		"name":     "Samosas",
		"price":    8.50,
		"quantity": 2,
	}
	rec, c := env.doJSON(http.MethodPost, "/api/cart", payload, ck)
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.True(t, resp.Success)
	require.Len(t, resp.Cart, 1)
	require.Equal(t, uint(2), resp.Cart[0].Quantity)
	require.Equal(t, 8.50, resp.Cart[0].Price)
}

// The storefront client sometimes sends price and quantity as strings.
func TestAddToCartStringNumbers(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	payload := map[string]any{
		"dishId":   uuid.NewString(),
		"name":     "Patties",
		"price":    "2.50",
		"quantity": "3",
	}
	rec, c := env.doJSON(http.MethodPost, "/api/cart", payload, ck)
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Equal(t, 2.50, resp.Cart[0].Price)
	require.Equal(t, uint(3), resp.Cart[0].Quantity)
}

func TestAddToCartMissingFields(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	payload := map[string]any{"name": "Samosas", "price": 8.50}
	rec, c := env.doJSON(http.MethodPost, "/api/cart", payload, ck)
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Error)
}

func TestUpdateCartItem(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	item := models.CartItem{SessionID: "s1", DishID: uuid.New(), Name: "Kebab", Price: 6.00, Quantity: 1}
	require.NoError(t, env.DB.Create(&item).Error)

	rec, c := env.doJSON(http.MethodPut, "/api/cart", map[string]any{
		"itemId": item.ID, "quantity": 4,
	}, ck)
	require.NoError(t, env.Cart.UpdateCartItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Cart, 1)
	require.Equal(t, uint(4), resp.Cart[0].Quantity)
}

func TestUpdateCartItemToZeroRemoves(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	item := models.CartItem{SessionID: "s1", DishID: uuid.New(), Name: "Kebab", Price: 6.00, Quantity: 2}
	require.NoError(t, env.DB.Create(&item).Error)

	rec, c := env.doJSON(http.MethodPut, "/api/cart", map[string]any{
		"itemId": item.ID, "quantity": 0,
	}, ck)
	require.NoError(t, env.Cart.UpdateCartItem(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeCart(t, rec).Cart)
}

func TestUpdateUnknownCartItem(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	rec, c := env.doJSON(http.MethodPut, "/api/cart", map[string]any{
		"itemId": uuid.NewString(), "quantity": 2,
	}, ck)
	require.NoError(t, env.Cart.UpdateCartItem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCartItem(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	item := models.CartItem{SessionID: "s1", DishID: uuid.New(), Name: "Kebab", Price: 6.00, Quantity: 1}
	require.NoError(t, env.DB.Create(&item).Error)

	rec, c := env.doJSON(http.MethodDelete, "/api/cart?itemId="+item.ID.String(), nil, ck)
	require.NoError(t, env.Cart.DeleteFromCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeCart(t, rec).Cart)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	for i := 0; i < 3; i++ {
		item := models.CartItem{SessionID: "s1", DishID: uuid.New(), Name: "Kebab", Price: 6.00, Quantity: 1}
		require.NoError(t, env.DB.Create(&item).Error)
	}

	rec, c := env.doJSON(http.MethodDelete, "/api/cart?clear=true", nil, ck)
	require.NoError(t, env.Cart.DeleteFromCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.True(t, resp.Success)
	require.Empty(t, resp.Cart)

	var count int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteWithoutParams(t *testing.T) {
	env := newTestEnv(t)
	ck := sessionCookieFor("s1")

	rec, c := env.doJSON(http.MethodDelete, "/api/cart", nil, ck)
	require.NoError(t, env.Cart.DeleteFromCart(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
