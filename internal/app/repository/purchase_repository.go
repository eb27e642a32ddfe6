package repository

import (
	"errors"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	WithTx(tx *gorm.DB) PurchaseRepository
	FindOpenByUser(userID uint) (*model.Purchase, error)
	Create(purchase *model.Purchase) error
	Finalize(purchase *model.Purchase, at time.Time, total int64) error
	AddOrder(order *model.Order) error
	RemoveFirstOrder(purchaseID, productID uint) (bool, error)
	GroupLines(purchaseIDs ...uint) (map[uint][]model.LineItem, error)
	ListFinalizedByUser(userID uint) ([]model.Purchase, error)
	FindFinalizedByID(userID, purchaseID uint) (*model.Purchase, error)
	DeleteOpenOrdersForProduct(productID uint) (int64, error)
	DeleteOpenOrdersForDeletedProducts() (int64, error)
	CountFinalizedByUser(userID uint) (int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: tx}
}

// FindOpenByUser returns the user's most recently created open purchase
// or gorm.ErrRecordNotFound.
func (r *purchaseRepository) FindOpenByUser(userID uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Where("user_id = ? AND purchased_at IS NULL", userID).
		Order("id DESC").
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) Create(purchase *model.Purchase) error {
	if err := r.db.Omit("User", "Orders").Create(purchase).Error; err != nil {
		logger.Error("Failed to create purchase in database", err, map[string]interface{}{
			"user_id": purchase.UserID,
		})
		return err
	}

	logger.Debug("Purchase created in database", map[string]interface{}{
		"purchase_id": purchase.ID,
		"user_id":     purchase.UserID,
	})
	return nil
}

func (r *purchaseRepository) Finalize(purchase *model.Purchase, at time.Time, total int64) error {
	err := r.db.Model(&model.Purchase{}).
		Where("id = ? AND purchased_at IS NULL", purchase.ID).
		Updates(map[string]interface{}{
			"purchased_at":   at,
			"purchase_total": total,
		}).Error
	if err != nil {
		logger.Error("Failed to finalize purchase", err, map[string]interface{}{
			"purchase_id": purchase.ID,
		})
		return err
	}

	purchase.PurchasedAt = &at
	purchase.PurchaseTotal = &total
	return nil
}

func (r *purchaseRepository) AddOrder(order *model.Order) error {
	if err := r.db.Omit("Purchase", "Product").Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"purchase_id": order.PurchaseID,
			"product_id":  order.ProductID,
		})
		return err
	}
	return nil
}

// RemoveFirstOrder deletes the lowest-id order of productID in the
// purchase. It reports false when there was none.
func (r *purchaseRepository) RemoveFirstOrder(purchaseID, productID uint) (bool, error) {
	var order model.Order
	err := r.db.Where("purchase_id = ? AND product_id = ?", purchaseID, productID).
		Order("id ASC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := r.db.Delete(&model.Order{}, order.ID).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return false, err
	}
	return true, nil
}

type lineRow struct {
	PurchaseID   uint
	ProductID    uint
	Quantity     int64
	FirstOrderID uint
}

// GroupLines aggregates the orders of each purchase by product, in the
// order each product was first added. Soft-deleted products still resolve.
func (r *purchaseRepository) GroupLines(purchaseIDs ...uint) (map[uint][]model.LineItem, error) {
	lines := make(map[uint][]model.LineItem, len(purchaseIDs))
	if len(purchaseIDs) == 0 {
		return lines, nil
	}

	var rows []lineRow
	err := r.db.Model(&model.Order{}).
		Select("purchase_id, product_id, COUNT(*) AS quantity, MIN(id) AS first_order_id").
		Where("purchase_id IN ?", purchaseIDs).
		Group("purchase_id, product_id").
		Order("purchase_id ASC, first_order_id ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to group orders by product", err, map[string]interface{}{
			"purchase_ids": purchaseIDs,
		})
		return nil, err
	}
	if len(rows) == 0 {
		return lines, nil
	}

	productIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if !seen[row.ProductID] {
			seen[row.ProductID] = true
			productIDs = append(productIDs, row.ProductID)
		}
	}

	var products []model.Product
	if err := r.db.Unscoped().Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, row := range rows {
		product, ok := byID[row.ProductID]
		if !ok {
			logger.Warn("Order references a missing product", map[string]interface{}{
				"purchase_id": row.PurchaseID,
				"product_id":  row.ProductID,
			})
			continue
		}
		lines[row.PurchaseID] = append(lines[row.PurchaseID], model.LineItem{
			Product:  product,
			Quantity: row.Quantity,
			Subtotal: product.Price * row.Quantity,
		})
	}
	return lines, nil
}

// ListFinalizedByUser returns completed purchases, newest first
func (r *purchaseRepository) ListFinalizedByUser(userID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("user_id = ? AND purchased_at IS NOT NULL", userID).
		Order("purchased_at DESC, id DESC").
		Find(&purchases).Error
	if err != nil {
		logger.Error("Failed to list purchases", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) FindFinalizedByID(userID, purchaseID uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Where("id = ? AND user_id = ? AND purchased_at IS NOT NULL", purchaseID, userID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) openPurchaseIDs() *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Purchase{}).
		Select("id").
		Where("purchased_at IS NULL")
}

// DeleteOpenOrdersForProduct drops the product from every open cart.
func (r *purchaseRepository) DeleteOpenOrdersForProduct(productID uint) (int64, error) {
	result := r.db.Where("product_id = ? AND purchase_id IN (?)", productID, r.openPurchaseIDs()).
		Delete(&model.Order{})
	if result.Error != nil {
		logger.Error("Failed to remove product from open carts", result.Error, map[string]interface{}{
			"product_id": productID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOpenOrdersForDeletedProducts drops every soft-deleted product
// from open carts.
func (r *purchaseRepository) DeleteOpenOrdersForDeletedProducts() (int64, error) {
	deleted := r.db.Session(&gorm.Session{NewDB: true}).
		Unscoped().
		Model(&model.Product{}).
		Select("id").
		Where("deleted_at IS NOT NULL")

	result := r.db.Where("product_id IN (?) AND purchase_id IN (?)", deleted, r.openPurchaseIDs()).
		Delete(&model.Order{})
	if result.Error != nil {
		logger.Error("Failed to sweep deleted products from open carts", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *purchaseRepository) CountFinalizedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Purchase{}).
		Where("user_id = ? AND purchased_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}
