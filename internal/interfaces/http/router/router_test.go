package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubHandler answers every operation with its own name
type stubHandler struct{}

func (stubHandler) Create(c *gin.Context)        { c.String(http.StatusCreated, "create") }
func (stubHandler) Update(c *gin.Context)        { c.String(http.StatusOK, "update "+c.Param("id")) }
func (stubHandler) PartialUpdate(c *gin.Context) { c.String(http.StatusOK, "patch "+c.Param("id")) }
func (stubHandler) List(c *gin.Context)          { c.String(http.StatusOK, "list") }
func (stubHandler) GetByID(c *gin.Context)       { c.String(http.StatusOK, "get "+c.Param("id")) }
func (stubHandler) Delete(c *gin.Context)        { c.Status(http.StatusNoContent) }

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_BasePath(t *testing.T) {
	assert.Equal(t, "/api/v1", NewRouter(gin.New()).BasePath())
	assert.Equal(t, "/api/v2", NewRouter(gin.New(), WithAPIVersion("v2")).BasePath())
}

func TestResource(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(Resource("/product-orders", stubHandler{})).Setup()

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{http.MethodPost, "/api/v1/product-orders", http.StatusCreated, "create"},
		{http.MethodGet, "/api/v1/product-orders", http.StatusOK, "list"},
		{http.MethodGet, "/api/v1/product-orders/9", http.StatusOK, "get 9"},
		{http.MethodPut, "/api/v1/product-orders/9", http.StatusOK, "update 9"},
		{http.MethodPatch, "/api/v1/product-orders/9", http.StatusOK, "patch 9"},
		{http.MethodDelete, "/api/v1/product-orders/9", http.StatusNoContent, ""},
		{http.MethodGet, "/product-orders/9", http.StatusNotFound, "404 page not found"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestGroup_Routes(t *testing.T) {
	assert.Equal(t, []string{
		"POST /product-categories",
		"GET /product-categories",
		"GET /product-categories/:id",
		"PUT /product-categories/:id",
		"PATCH /product-categories/:id",
		"DELETE /product-categories/:id",
	}, Resource("/product-categories", stubHandler{}).Routes())

	assert.Equal(t, []string{"GET /system/info"}, NewGroup("/system").GET("/info", func(*gin.Context) {}).Routes())
}

func TestGroup_MiddlewareIsScoped(t *testing.T) {
	engine := gin.New()
	tagged := NewGroup("/shopping-carts").
		Use(func(c *gin.Context) {
			c.Header("X-Group", "carts")
			c.Next()
		}).
		GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
	plain := NewGroup("/customer-details").
		GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
	NewRouter(engine).Register(tagged, plain).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/shopping-carts/5")
	assert.Equal(t, "5", w.Body.String())
	assert.Equal(t, "carts", w.Header().Get("X-Group"))

	w = serve(engine, http.MethodGet, "/api/v1/customer-details/6")
	assert.Equal(t, "6", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Group"))
}
