package service

import (
	"errors"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartContents is the open purchase grouped by product.
type CartContents struct {
	Items []model.LineItem `json:"items"`
	Total int64            `json:"total"`
}

type CartService interface {
	AddToCart(userID, productID uint) error
	RemoveFromCart(userID, productID uint) error
	GetCartContents(userID uint) (*CartContents, error)
	Checkout(userID uint) (*model.PurchaseSummary, error)
	ListPastPurchases(userID uint) ([]model.PurchaseSummary, error)
	GetPurchase(userID, purchaseID uint) (*model.PurchaseSummary, error)
}

type cartService struct {
	db                 *gorm.DB
	userRepo           repository.UserRepository
	productRepo        repository.ProductRepository
	purchaseRepo       repository.PurchaseRepository
	allowEmptyCheckout bool
	now                func() time.Time
}

func NewCartService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	allowEmptyCheckout bool,
) CartService {
	return &cartService{
		db:                 db,
		userRepo:           userRepo,
		productRepo:        productRepo,
		purchaseRepo:       purchaseRepo,
		allowEmptyCheckout: allowEmptyCheckout,
		now:                time.Now,
	}
}

func (s *cartService) lockUser(tx *gorm.DB, userID uint) error {
	if _, err := s.userRepo.WithTx(tx).LockByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// openCart returns the user's open purchase, creating it when absent.
func openCart(purchases repository.PurchaseRepository, userID uint) (*model.Purchase, error) {
	cart, err := purchases.FindOpenByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &model.Purchase{UserID: userID}
	if err := purchases.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) AddToCart(userID, productID uint) error {
	err := inTx(s.db, "add_to_cart", func(tx *gorm.DB) error {
		if err := s.lockUser(tx, userID); err != nil {
			return err
		}

		if _, err := s.productRepo.WithTx(tx).FindByID(productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		purchases := s.purchaseRepo.WithTx(tx)
		cart, err := openCart(purchases, userID)
		if err != nil {
			return err
		}

		return purchases.AddOrder(&model.Order{PurchaseID: cart.ID, ProductID: productID})
	})
	if err != nil {
		logger.Warn("Add to cart failed", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"error":      err.Error(),
		})
		return err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID, productID uint) error {
	err := inTx(s.db, "remove_from_cart", func(tx *gorm.DB) error {
		if err := s.lockUser(tx, userID); err != nil {
			return err
		}

		purchases := s.purchaseRepo.WithTx(tx)
		cart, err := purchases.FindOpenByUser(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNothingToRemove
			}
			return err
		}

		removed, err := purchases.RemoveFirstOrder(cart.ID, productID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNothingToRemove
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Product removed from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

func (s *cartService) GetCartContents(userID uint) (*CartContents, error) {
	contents := &CartContents{Items: []model.LineItem{}}

	cart, err := s.purchaseRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contents, nil
		}
		return nil, err
	}

	lines, err := s.purchaseRepo.GroupLines(cart.ID)
	if err != nil {
		return nil, err
	}
	if items := lines[cart.ID]; items != nil {
		contents.Items = items
	}
	contents.Total = model.TotalOf(contents.Items)
	return contents, nil
}

// Checkout stamps date and total on the open purchase and opens a fresh
// cart in the same transaction.
func (s *cartService) Checkout(userID uint) (*model.PurchaseSummary, error) {
	var summary *model.PurchaseSummary

	err := inTx(s.db, "checkout", func(tx *gorm.DB) error {
		if err := s.lockUser(tx, userID); err != nil {
			return err
		}

		purchases := s.purchaseRepo.WithTx(tx)
		cart, err := purchases.FindOpenByUser(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !s.allowEmptyCheckout {
				return ErrEmptyCart
			}
			cart, err = openCart(purchases, userID)
		}
		if err != nil {
			return err
		}

		lines, err := purchases.GroupLines(cart.ID)
		if err != nil {
			return err
		}
		items := lines[cart.ID]
		if len(items) == 0 && !s.allowEmptyCheckout {
			return ErrEmptyCart
		}

		total := model.TotalOf(items)
		if err := purchases.Finalize(cart, s.now(), total); err != nil {
			return err
		}
		if err := purchases.Create(&model.Purchase{UserID: userID}); err != nil {
			return err
		}

		summary = summarize(cart, items)
		return nil
	})
	if err != nil {
		logger.Warn("Checkout failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Purchase completed", map[string]interface{}{
		"user_id":        userID,
		"purchase_id":    summary.ID,
		"purchase_total": summary.PurchaseTotal,
	})
	return summary, nil
}

func (s *cartService) ListPastPurchases(userID uint) ([]model.PurchaseSummary, error) {
	purchases, err := s.purchaseRepo.ListFinalizedByUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
	}
	lines, err := s.purchaseRepo.GroupLines(ids...)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.PurchaseSummary, 0, len(purchases))
	for i := range purchases {
		summaries = append(summaries, *summarize(&purchases[i], lines[purchases[i].ID]))
	}
	return summaries, nil
}

func (s *cartService) GetPurchase(userID, purchaseID uint) (*model.PurchaseSummary, error) {
	purchase, err := s.purchaseRepo.FindFinalizedByID(userID, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	lines, err := s.purchaseRepo.GroupLines(purchase.ID)
	if err != nil {
		return nil, err
	}
	return summarize(purchase, lines[purchase.ID]), nil
}

func summarize(purchase *model.Purchase, items []model.LineItem) *model.PurchaseSummary {
	if items == nil {
		items = []model.LineItem{}
	}
	summary := &model.PurchaseSummary{
		ID:          purchase.ID,
		PurchasedAt: purchase.PurchasedAt,
		Items:       items,
	}
	if purchase.PurchaseTotal != nil {
		summary.PurchaseTotal = *purchase.PurchaseTotal
	}
	return summary
}
