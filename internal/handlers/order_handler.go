package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/models"
	"github.com/BruksfildServices01/shop-api/internal/payments"
	ucOrder "github.com/BruksfildServices01/shop-api/internal/usecase/order"
)

// CheckoutClient is satisfied by payments.Checkout; a nil client means
// payments are not configured.
type CheckoutClient interface {
	CreatePreference(ctx context.Context, orderID uint, items []payments.Item) (*payments.Preference, error)
}

type OrderHandler struct {
	db       *gorm.DB
	createUC *ucOrder.CreateOrder
	updateUC *ucOrder.UpdateOrder
	checkout CheckoutClient
}

func NewOrderHandler(db *gorm.DB, createUC *ucOrder.CreateOrder, updateUC *ucOrder.UpdateOrder, checkout CheckoutClient) *OrderHandler {
	return &OrderHandler{db: db, createUC: createUC, updateUC: updateUC, checkout: checkout}
}

// --------- Requests ---------

type CreateOrderRequest struct {
	UserID   uint            `json:"userId" binding:"required"`
	Total    decimal.Decimal `json:"total"`
	Products []domain.Line   `json:"products" binding:"required,dive"`
}

type UpdateOrderRequest struct {
	Total    decimal.Decimal `json:"total"`
	Products []domain.Line   `json:"products" binding:"required,dive"`
}

// --------- Handlers ---------

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	order, err := h.createUC.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		UserID: req.UserID,
		Total:  req.Total,
		Lines:  req.Products,
	})
	if err != nil {
		writeOrderError(c, err, "failed_to_create_order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_order_id"})
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	order, err := h.updateUC.Execute(c.Request.Context(), ucOrder.UpdateOrderInput{
		OrderID: uint(id),
		Total:   req.Total,
		Lines:   req.Products,
	})
	if err != nil {
		writeOrderError(c, err, "failed_to_update_order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := h.db.Preload("Products").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_order"})
		return
	}

	// Lines go with the order via the relational constraint, the
	// controller deletes only the parent row.
	if err := h.db.Delete(&models.Order{}, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := h.db.
		Preload("Products.Product").
		First(&order, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListByUser serves GET /orders/users/:userId. The route is registered
// as /orders/:id/:userId because of the router's wildcard rules, so the
// first segment is checked here.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	if c.Param("id") != "users" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	userID := c.Param("userId")

	var orders []models.Order
	if err := h.db.
		Where("user_id = ?", userID).
		Preload("Products.Product").
		Order("id ASC").
		Find(&orders).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) List(c *gin.Context) {
	var orders []models.Order
	if err := h.db.
		Preload("Products.Product").
		Order("id ASC").
		Find(&orders).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	if h.checkout == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments_not_configured"})
		return
	}

	id := c.Param("id")

	var order models.Order
	if err := h.db.
		Preload("Products.Product").
		First(&order, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_order"})
		return
	}

	items := make([]payments.Item, 0, len(order.Products))
	for _, line := range order.Products {
		items = append(items, payments.Item{
			Title:     line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
		})
	}

	pref, err := h.checkout.CreatePreference(c.Request.Context(), order.ID, items)
	if err != nil {
		log.Println("checkout preference failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment_provider_error"})
		return
	}

	c.JSON(http.StatusOK, pref)
}

// --------- Helpers ---------

func writeOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case httperr.IsBusiness(err, "order_not_found"):
		httperr.NotFound(c, "order_not_found", "order does not exist")
	case httperr.IsBusiness(err, "user_not_found"):
		httperr.BadRequest(c, "user_does_not_exist", "referenced user does not exist")
	case httperr.IsBusiness(err, "product_not_found"):
		httperr.BadRequest(c, "product_does_not_exist", "referenced product does not exist")
	case httperr.IsBusiness(err, "invalid_quantity"):
		httperr.BadRequest(c, "quantity_must_be_positive", "every line quantity must be positive")
	case httperr.IsBusiness(err, "empty_order"):
		httperr.BadRequest(c, "products_must_not_be_empty", "an order needs at least one line")
	case httperr.IsBusiness(err, "total_mismatch"):
		httperr.BadRequest(c, "total_does_not_match_line_items", "total must equal the priced line items")
	default:
		log.Println("order mutation failed:", err)
		httperr.Internal(c, fallback, "internal error")
	}
}
