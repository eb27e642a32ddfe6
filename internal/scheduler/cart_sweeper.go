package scheduler

import (
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartSweeper periodically drops soft-deleted products from open carts.
// Product deletion already does this in its own transaction; the sweep
// covers rows that slipped in concurrently.
type CartSweeper struct {
	cron         *cron.Cron
	spec         string
	purchaseRepo repository.PurchaseRepository
}

func NewCartSweeper(spec string, purchaseRepo repository.PurchaseRepository) *CartSweeper {
	return &CartSweeper{
		cron:         cron.New(),
		spec:         spec,
		purchaseRepo: purchaseRepo,
	}
}

// Sweep runs one pass and returns the number of removed orders.
func (s *CartSweeper) Sweep() (int64, error) {
	removed, err := s.purchaseRepo.DeleteOpenOrdersForDeletedProducts()
	if err != nil {
		logger.Error("Cart sweep failed", err)
		return 0, err
	}
	if removed > 0 {
		logger.Info("Cart sweep removed orders of deleted products", map[string]interface{}{
			"removed_orders": removed,
		})
	}
	return removed, nil
}

// Start schedules the sweep. An empty spec disables it.
func (s *CartSweeper) Start() error {
	if s.spec == "" {
		logger.Info("Cart sweeper disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		_, _ = s.Sweep()
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart sweep", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Cart sweeper started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// Stop waits for a running sweep to finish.
func (s *CartSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cart sweeper stopped")
}
