package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// envelope mirrors dto.Response with the payload left raw for typed decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// testAPI is the storefront API over an in-memory SQLite database
type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	log := zap.NewNop()
	bus := event.NewInMemoryEventBus(log)

	categoryRepo := persistence.NewGormProductCategoryRepository(db)
	customerRepo := persistence.NewGormCustomerDetailsRepository(db)
	cartRepo := persistence.NewGormShoppingCartRepository(db)
	orderRepo := persistence.NewGormProductOrderRepository(db)

	categories := NewProductCategoryHandler(catalogapp.NewProductCategoryService(
		categoryRepo, cache.Noop[catalog.ProductCategory]{}, bus, log))
	customers := NewCustomerDetailsHandler(customerapp.NewCustomerDetailsService(
		customerRepo, cartRepo, cache.Noop[customer.CustomerDetails]{}, cache.Noop[cart.ShoppingCart]{}, bus, log))
	carts := NewShoppingCartHandler(cartapp.NewShoppingCartService(
		cartRepo, customerRepo, orderRepo, cache.Noop[cart.ShoppingCart]{}, cache.Noop[order.ProductOrder]{}, bus, log))
	orders := NewProductOrderHandler(orderapp.NewProductOrderService(
		orderRepo, cartRepo, categoryRepo, cache.Noop[order.ProductOrder]{}, bus, log))

	router := gin.New()
	router.Use(middleware.RequestID())
	api := router.Group("/api/v1")
	mount(api.Group("/product-categories"), categories.Create, categories.Update, categories.PartialUpdate, categories.List, categories.GetByID, categories.Delete)
	mount(api.Group("/customer-details"), customers.Create, customers.Update, customers.PartialUpdate, customers.List, customers.GetByID, customers.Delete)
	mount(api.Group("/shopping-carts"), carts.Create, carts.Update, carts.PartialUpdate, carts.List, carts.GetByID, carts.Delete)
	mount(api.Group("/product-orders"), orders.Create, orders.Update, orders.PartialUpdate, orders.List, orders.GetByID, orders.Delete)

	return &testAPI{router: router, db: db}
}

func mount(g *gin.RouterGroup, create, update, patch, list, get, del gin.HandlerFunc) {
	g.POST("", create)
	g.PUT("/:id", update)
	g.PATCH("/:id", patch)
	g.GET("", list)
	g.GET("/:id", get)
	g.DELETE("/:id", del)
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return a.doWithType(t, method, path, "application/json", body)
}

func (a *testAPI) doWithType(t *testing.T, method, path, contentType string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decode(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}

func ptr[T any](v T) *T { return &v }
