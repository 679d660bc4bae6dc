package handler

import (
	"fmt"
	"net/http"
	"testing"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoriesPath = "/api/v1/product-categories"

func createCategory(t *testing.T, api *testAPI, name string) catalogapp.ProductCategoryResponse {
	t.Helper()
	w := api.do(t, http.MethodPost, categoriesPath, map[string]any{"name": name, "description": name + " shelf"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[catalogapp.ProductCategoryResponse](t, w)
}

func TestProductCategoryHandler_Create(t *testing.T) {
	api := newTestAPI(t)

	t.Run("created", func(t *testing.T) {
		category := createCategory(t, api, "Books")
		assert.Positive(t, category.ID)
		assert.Equal(t, "Books", category.Name)
		require.NotNil(t, category.Description)
		assert.Equal(t, "Books shelf", *category.Description)
	})

	t.Run("body with id is rejected", func(t *testing.T) {
		w := api.do(t, http.MethodPost, categoriesPath, map[string]any{"id": 5, "name": "Games"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeIDExists, errorCode(t, w))
	})

	t.Run("missing name reports the field", func(t *testing.T) {
		w := api.do(t, http.MethodPost, categoriesPath, map[string]any{"description": "nameless"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "name", env.Error.Details[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := api.do(t, http.MethodPost, categoriesPath, `{"name": "Books"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, errorCode(t, w))
	})
}

func TestProductCategoryHandler_GetByID(t *testing.T) {
	api := newTestAPI(t)
	category := createCategory(t, api, "Music")

	w := api.do(t, http.MethodGet, fmt.Sprintf("%s/%d", categoriesPath, category.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, category.Name, decodeData[catalogapp.ProductCategoryResponse](t, w).Name)

	w = api.do(t, http.MethodGet, categoriesPath+"/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, w))

	for _, bad := range []string{"abc", "0", "-4", "1.5"} {
		w = api.do(t, http.MethodGet, categoriesPath+"/"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Equal(t, dto.ErrCodeIDInvalid, errorCode(t, w), bad)
	}
}

func TestProductCategoryHandler_Update(t *testing.T) {
	api := newTestAPI(t)
	category := createCategory(t, api, "Garden")
	path := fmt.Sprintf("%s/%d", categoriesPath, category.ID)

	tests := []struct {
		name     string
		path     string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{name: "missing body id", path: path, body: map[string]any{"name": "Yard"}, wantCode: http.StatusBadRequest, wantErr: dto.ErrCodeIDNull},
		{name: "mismatched id", path: path, body: map[string]any{"id": category.ID + 1, "name": "Yard"}, wantCode: http.StatusBadRequest, wantErr: dto.ErrCodeIDInvalid},
		{name: "unknown id", path: categoriesPath + "/999", body: map[string]any{"id": 999, "name": "Yard"}, wantCode: http.StatusNotFound, wantErr: dto.ErrCodeNotFound},
		{name: "replaced", path: path, body: map[string]any{"id": category.ID, "name": "Yard"}, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPut, tt.path, tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, w))
				return
			}
			updated := decodeData[catalogapp.ProductCategoryResponse](t, w)
			assert.Equal(t, "Yard", updated.Name)
			assert.Nil(t, updated.Description, "full update clears omitted fields")
		})
	}
}

func TestProductCategoryHandler_PartialUpdate(t *testing.T) {
	api := newTestAPI(t)
	category := createCategory(t, api, "Toys")
	path := fmt.Sprintf("%s/%d", categoriesPath, category.ID)

	t.Run("merge patch keeps omitted fields", func(t *testing.T) {
		w := api.doWithType(t, http.MethodPatch, path, MergePatchContentType, map[string]any{"id": category.ID, "name": "Games"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		patched := decodeData[catalogapp.ProductCategoryResponse](t, w)
		assert.Equal(t, "Games", patched.Name)
		require.NotNil(t, patched.Description)
		assert.Equal(t, "Toys shelf", *patched.Description)
	})

	t.Run("identifier only patch changes nothing", func(t *testing.T) {
		before := decodeData[catalogapp.ProductCategoryResponse](t, api.do(t, http.MethodGet, path, nil))

		w := api.do(t, http.MethodPatch, path, map[string]any{"id": category.ID})
		require.Equal(t, http.StatusOK, w.Code)
		after := decodeData[catalogapp.ProductCategoryResponse](t, w)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Version, after.Version)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		w := api.doWithType(t, http.MethodPatch, path, "text/plain", `{"id": 1}`)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Equal(t, dto.ErrCodeUnsupportedMediaType, errorCode(t, w))
	})

	t.Run("mismatched id fails before merging", func(t *testing.T) {
		w := api.do(t, http.MethodPatch, path, map[string]any{"id": category.ID + 10, "name": "Other"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeIDInvalid, errorCode(t, w))
	})

	t.Run("unknown id", func(t *testing.T) {
		w := api.do(t, http.MethodPatch, categoriesPath+"/404", map[string]any{"id": 404, "name": "Other"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductCategoryHandler_List(t *testing.T) {
	api := newTestAPI(t)
	for i := range 3 {
		createCategory(t, api, fmt.Sprintf("Category %d", i))
	}

	w := api.do(t, http.MethodGet, categoriesPath+"?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.PageSize)
	assert.Equal(t, 2, env.Meta.TotalPages)

	items := decodeData[[]catalogapp.ProductCategoryResponse](t, w)
	require.Len(t, items, 2)
	assert.Less(t, items[0].ID, items[1].ID)

	w = api.do(t, http.MethodGet, categoriesPath, nil)
	env = decode(t, w)
	assert.Equal(t, 20, env.Meta.PageSize)

	w = api.do(t, http.MethodGet, categoriesPath+"?page_size=101", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}

func TestProductCategoryHandler_Delete(t *testing.T) {
	api := newTestAPI(t)
	category := createCategory(t, api, "Outlet")
	path := fmt.Sprintf("%s/%d", categoriesPath, category.ID)

	w := api.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = api.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
