package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	dbpkg "github.com/BruksfildServices01/shop-api/internal/db"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type CategoryHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCategoryHandler(db *gorm.DB, cc *cache.Cache) *CategoryHandler {
	return &CategoryHandler{db: db, cache: cc}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name string `json:"name"`
}

// --------- Handlers ---------

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_required"})
		return
	}
	if len(req.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_too_short"})
		return
	}

	category := models.Category{Name: req.Name}

	if err := h.db.Create(&category).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "category_name_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_category"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.KeyCategories)

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_required"})
		return
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_category"})
		return
	}

	category.Name = req.Name

	if err := h.db.Save(&category).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "category_name_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_category"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.KeyCategories)

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	// Unconditional delete. A 204 carries no body.
	if err := h.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_category"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.KeyCategories)

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var categories []models.Category
	if h.cache.GetJSON(ctx, cache.KeyCategories, &categories) {
		c.JSON(http.StatusOK, categories)
		return
	}

	if err := h.db.Order("id ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_categories"})
		return
	}

	h.cache.SetJSON(ctx, cache.KeyCategories, categories)

	c.JSON(http.StatusOK, categories)
}
