package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/config"
	"github.com/BruksfildServices01/shop-api/internal/models"
	"github.com/BruksfildServices01/shop-api/internal/storage"
	"github.com/BruksfildServices01/shop-api/internal/validators"
)

type ProductHandler struct {
	db      *gorm.DB
	config  *config.Config
	storage storage.Storage
	cleaner *storage.Cleaner
	cache   *cache.Cache
}

func NewProductHandler(db *gorm.DB, cfg *config.Config, st storage.Storage, cl *storage.Cleaner, cc *cache.Cache) *ProductHandler {
	return &ProductHandler{db: db, config: cfg, storage: st, cleaner: cl, cache: cc}
}

// --------- Handlers ---------

func (h *ProductHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")
	stockStr := c.PostForm("stock")
	files := form.File["images"]
	categoryValues := form.Value["categories"]

	if name == "" || description == "" || priceStr == "" || stockStr == "" ||
		len(categoryValues) == 0 || len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_required_fields"})
		return
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil || !price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_must_be_positive"})
		return
	}

	stock, err := strconv.Atoi(stockStr)
	if err != nil || stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock_must_not_be_negative"})
		return
	}

	ids, err := validators.ParseIDList(categoryValues)
	if err != nil || len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_categories"})
		return
	}

	ctx := c.Request.Context()

	categories, found, err := h.findCategories(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_check_categories"})
		return
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_does_not_exist"})
		return
	}

	// Files land in storage before the transaction opens. If the
	// transaction rolls back, the cleaner reclaims them; a row pointing
	// at a missing file is never committed.
	urls, err := h.saveUploads(ctx, files)
	if err != nil {
		log.Println("image upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_store_images"})
		return
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Discount:    c.PostForm("discount") == "true",
		Hit:         c.PostForm("hit") == "true",
		Categories:  categories,
	}
	for _, url := range urls {
		product.Images = append(product.Images, models.Image{URL: url})
	}

	if err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&product).Error
	}); err != nil {
		h.cleaner.RemoveAll(urls)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_product"})
		return
	}

	h.cache.Invalidate(ctx, cache.KeyProducts)

	c.JSON(http.StatusCreated, gin.H{"product": product, "images": product.Images})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var product models.Product
	if err := h.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	// Every field is independently optional; an absent field keeps its
	// stored value.
	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		product.Description = description
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil || !price.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_must_be_positive"})
			return
		}
		product.Price = price
	}
	if stockStr := c.PostForm("stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock_must_not_be_negative"})
			return
		}
		product.Stock = stock
	}
	if v := c.PostForm("discount"); v != "" {
		product.Discount = v == "true"
	}
	if v := c.PostForm("hit"); v != "" {
		product.Hit = v == "true"
	}

	var categories []models.Category
	replaceCategories := false
	if values := c.PostFormArray("categories"); len(values) > 0 {
		ids, err := validators.ParseIDList(values)
		if err != nil || len(ids) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_categories"})
			return
		}

		var found bool
		categories, found, err = h.findCategories(ctx, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_check_categories"})
			return
		}
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_does_not_exist"})
			return
		}
		replaceCategories = true
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}

	var newURLs []string
	if len(files) > 0 {
		var err error
		newURLs, err = h.saveUploads(ctx, files)
		if err != nil {
			log.Println("image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_store_images"})
			return
		}
	}

	oldURLs := imageURLs(product.Images)

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return err
		}

		if replaceCategories {
			if err := tx.Model(&product).Association("Categories").Replace(&categories); err != nil {
				return err
			}
		}

		if len(newURLs) > 0 {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Image{}).Error; err != nil {
				return err
			}

			images := make([]models.Image, 0, len(newURLs))
			for _, url := range newURLs {
				images = append(images, models.Image{URL: url, ProductID: product.ID})
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
			product.Images = images
		}

		return nil
	})
	if err != nil {
		h.cleaner.RemoveAll(newURLs)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_product"})
		return
	}

	// Old files go after commit, best-effort. The rows are gone either
	// way, the database stays authoritative.
	if len(newURLs) > 0 {
		h.cleaner.RemoveAll(oldURLs)
	}
	if replaceCategories {
		product.Categories = categories
	}

	h.cache.Invalidate(ctx, cache.KeyProducts)

	c.JSON(http.StatusOK, gin.H{"product": product, "images": product.Images})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var product models.Product
	if err := h.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	urls := imageURLs(product.Images)

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_product"})
		return
	}

	// A file that is already missing must not abort anything.
	h.cleaner.RemoveAll(urls)

	h.cache.Invalidate(ctx, cache.KeyProducts)

	c.JSON(http.StatusOK, gin.H{"message": "Product and associated images deleted successfully"})
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Preload("Categories").
		Preload("Images").
		First(&product, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var products []models.Product
	if h.cache.GetJSON(ctx, cache.KeyProducts, &products) {
		c.JSON(http.StatusOK, products)
		return
	}

	if err := h.db.
		Preload("Categories").
		Preload("Images").
		Order("id ASC").
		Find(&products).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_products"})
		return
	}

	h.cache.SetJSON(ctx, cache.KeyProducts, products)

	c.JSON(http.StatusOK, products)
}

// --------- Helpers ---------

func (h *ProductHandler) findCategories(ctx context.Context, ids []uint) ([]models.Category, bool, error) {
	var categories []models.Category
	if err := h.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, false, err
	}

	// Count equality over the deduplicated id list is the existence
	// check: anything less means a dangling reference.
	return categories, len(categories) == len(ids), nil
}

func (h *ProductHandler) saveUploads(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	var urls []string

	fail := func(err error) ([]string, error) {
		h.cleaner.RemoveAll(urls)
		return nil, err
	}

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return fail(err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fail(err)
		}

		name := fh.Filename
		if h.config.ConvertWebP {
			name, data = storage.NormalizeImage(name, data)
		}

		url, err := h.storage.Save(ctx, storage.NewFilename(name), data)
		if err != nil {
			return fail(err)
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func imageURLs(images []models.Image) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls
}
