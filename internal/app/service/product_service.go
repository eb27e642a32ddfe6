package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name     string
	Brand    string
	Price    int64
	ImageURL string
}

// ProductUpdate changes only the non-nil fields.
type ProductUpdate struct {
	Name     *string
	Brand    *string
	Price    *int64
	ImageURL *string
}

type ProductService interface {
	ListProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	ImportProducts(inputs []ProductInput) (int, error)
	EditProduct(id uint, update ProductUpdate) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

func validateProduct(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return fmt.Errorf("%w: image url is required", ErrInvalidInput)
	}
	return nil
}

func (in ProductInput) toModel() model.Product {
	return model.Product{
		Name:     strings.TrimSpace(in.Name),
		Brand:    strings.TrimSpace(in.Brand),
		Price:    in.Price,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
}

func (s *productService) ListProducts() ([]model.Product, error) {
	return s.productRepo.List()
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	product := input.toModel()
	if err := validateProduct(&product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(&product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

// ImportProducts validates every row before inserting any of them.
func (s *productService) ImportProducts(inputs []ProductInput) (int, error) {
	products := make([]model.Product, 0, len(inputs))
	for i, input := range inputs {
		product := input.toModel()
		if err := validateProduct(&product); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		products = append(products, product)
	}

	err := inTx(s.db, "import_products", func(tx *gorm.DB) error {
		return s.productRepo.WithTx(tx).CreateBatch(products)
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Products imported", map[string]interface{}{
		"count": len(products),
	})
	return len(products), nil
}

func (s *productService) EditProduct(id uint, update ProductUpdate) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = strings.TrimSpace(*update.Name)
	}
	if update.Brand != nil {
		product.Brand = strings.TrimSpace(*update.Brand)
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*update.ImageURL)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

// DeleteProduct soft-deletes the product and takes it out of every open
// cart. Deleting an absent product is not an error.
func (s *productService) DeleteProduct(id uint) error {
	var deleted, removedOrders int64

	err := inTx(s.db, "delete_product", func(tx *gorm.DB) error {
		var err error
		deleted, err = s.productRepo.WithTx(tx).Delete(id)
		if err != nil {
			return err
		}
		removedOrders, err = s.purchaseRepo.WithTx(tx).DeleteOpenOrdersForProduct(id)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id":     id,
		"deleted":        deleted > 0,
		"removed_orders": removedOrders,
	})
	return nil
}
