package service

import (
	"fmt"

	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// inTx runs fn as one unit of work. Any error or panic rolls back.
func inTx(db *gorm.DB, op string, fn func(tx *gorm.DB) error) (err error) {
	tx := db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction", tx.Error, map[string]interface{}{
			"operation": op,
		})
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Transaction panicked, rolled back", fmt.Errorf("%v", r), map[string]interface{}{
				"operation": op,
			})
			panic(r)
		}
	}()

	if err = fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err = tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction", err, map[string]interface{}{
			"operation": op,
		})
		return err
	}
	return nil
}
