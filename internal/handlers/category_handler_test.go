package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

func TestCreateCategoryShortName(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	w := e.do(t, http.MethodPost, "/categories", []byte(`{"name":"ab"}`), token)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	e.db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateCategoryMissingName(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	w := e.do(t, http.MethodPost, "/categories", []byte(`{}`), token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	w := e.do(t, http.MethodPost, "/categories", []byte(`{"name":"Shoes"}`), token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/categories", []byte(`{"name":"Shoes"}`), token)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	e.db.Model(&models.Category{}).Where("name = ?", "Shoes").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCategoryRequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/categories", []byte(`{"name":"Shoes"}`), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateCategory(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	category := models.Category{Name: "Shoes"}
	require.NoError(t, e.db.Create(&category).Error)

	w := e.do(t, http.MethodPut, "/categories/1", []byte(`{"name":"Sneakers"}`), token)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Category
	require.NoError(t, e.db.First(&updated, category.ID).Error)
	assert.Equal(t, "Sneakers", updated.Name)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	w := e.do(t, http.MethodPut, "/categories/99", []byte(`{"name":"Sneakers"}`), token)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCategoryMissingName(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	require.NoError(t, e.db.Create(&models.Category{Name: "Shoes"}).Error)

	w := e.do(t, http.MethodPut, "/categories/1", []byte(`{}`), token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryNoBody(t *testing.T) {
	e := newTestEnv(t)
	token := e.token(t, 1)

	require.NoError(t, e.db.Create(&models.Category{Name: "Shoes"}).Error)

	w := e.do(t, http.MethodDelete, "/categories/1", nil, token)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	var count int64
	e.db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetCategoryByIDNotFound(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/categories/42", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCategories(t *testing.T) {
	e := newTestEnv(t)

	require.NoError(t, e.db.Create(&models.Category{Name: "Shoes"}).Error)
	require.NoError(t, e.db.Create(&models.Category{Name: "Shirts"}).Error)

	w := e.do(t, http.MethodGet, "/categories", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "Shoes", resp[0].Name)
}
