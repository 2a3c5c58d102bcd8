package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error

	return count > 0, err
}

func (r *OrderGormRepository) ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error

	return products, err
}

func (r *OrderGormRepository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lines ride along, their product rows never do.
		return tx.Omit("Products.Product").Create(o).Error
	})
}

func (r *OrderGormRepository) ReplaceLines(ctx context.Context, o *models.Order, lines []models.OrderLine, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}

		o.Total = total
		if err := tx.Model(o).Update("total", total).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = o.ID
		}
		if err := tx.Omit("Product").Create(&lines).Error; err != nil {
			return err
		}

		o.Products = lines
		return nil
	})
}

func (r *OrderGormRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Products.Product").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}

	return &o, nil
}
