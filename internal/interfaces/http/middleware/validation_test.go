package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartInput struct {
	Name       string           `json:"name" binding:"required,max=10"`
	TotalPrice decimal.Decimal  `json:"total_price" binding:"decimal_gte0"`
	Discount   *decimal.Decimal `json:"discount" binding:"omitempty,decimal_gte0"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req cartInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError_Details(t *testing.T) {
	router := newValidationRouter()

	w := postJSON(router, `{"name": "far too long a name", "total_price": -1, "discount": "-0.5"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	assert.NotEmpty(t, resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 10 characters", fields["name"])
	assert.Equal(t, "Must be zero or greater", fields["total_price"])
	assert.Equal(t, "Must be zero or greater", fields["discount"])
}

func TestDecimalGTE0(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "zero", body: `{"name": "a", "total_price": 0}`, want: http.StatusOK},
		{name: "positive string", body: `{"name": "a", "total_price": "19.99"}`, want: http.StatusOK},
		{name: "nil pointer skipped", body: `{"name": "a", "total_price": 1, "discount": null}`, want: http.StatusOK},
		{name: "negative", body: `{"name": "a", "total_price": -0.01}`, want: http.StatusBadRequest},
		{name: "negative pointer", body: `{"name": "a", "total_price": 1, "discount": -3}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postJSON(router, tt.body).Code)
		})
	}
}

func TestIsValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(struct {
		Name string `validate:"required"`
	}{})

	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(assert.AnError))
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Required string `validate:"required"`
		Min      string `validate:"min=5"`
		MaxInt   int    `validate:"max=10"`
		Len      string `validate:"len=5"`
		OneOf    string `validate:"oneof=a b c"`
		GTE      int    `validate:"gte=10"`
	}

	v := validator.New()
	err := v.Struct(input{Min: "ab", MaxInt: 11, Len: "ab", OneOf: "d", GTE: 1})
	require.Error(t, err)

	got := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		got[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Must be at least 5 characters", got["Min"])
	assert.Equal(t, "Must be at most 10", got["MaxInt"])
	assert.Equal(t, "Must be exactly 5 characters", got["Len"])
	assert.Equal(t, "Must be one of: a b c", got["OneOf"])
	assert.Equal(t, "Must be greater than or equal to 10", got["GTE"])
}
