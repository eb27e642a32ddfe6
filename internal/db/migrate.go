package db

import (
	"errors"
	"strings"

	"github.com/deviceshop/deviceshop-backend/config"
	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"github.com/deviceshop/deviceshop-backend/pkg/util"
	"gorm.io/gorm"
)

// openCartIndexSQL allows at most one open purchase (cart) per user.
// Partial indexes are supported by both sqlite and postgres.
const openCartIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_purchases_open_cart ON purchases (user_id) WHERE purchased_at IS NULL`

func models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.BlogPost{},
		&model.Comment{},
		&model.Product{},
		&model.Purchase{},
		&model.Order{},
	}
}

// Migrate creates the schema if absent
func Migrate(gdb *gorm.DB) error {
	logger.Info("Running database migrations...")

	all := models()
	if err := gdb.AutoMigrate(all...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := gdb.Exec(openCartIndexSQL).Error; err != nil {
		logger.Error("Failed to create open cart index", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(all),
	})
	return nil
}

// SeedAdmin makes sure the configured administrator exists and holds the
// admin role. Without a configured password only promotion happens.
func SeedAdmin(gdb *gorm.DB, cfg *config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		return nil
	}

	var user model.User
	err := gdb.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if user.Role == model.RoleAdmin {
			logger.Debug("Admin account already present", map[string]interface{}{
				"user_id": user.ID,
			})
			return nil
		}
		logger.Info("Promoting configured admin account", map[string]interface{}{
			"user_id": user.ID,
		})
		return gdb.Model(&user).Update("role", model.RoleAdmin).Error

	case errors.Is(err, gorm.ErrRecordNotFound):
		if cfg.Password == "" {
			logger.Info("ADMIN_PASSWORD not set, admin account will be created at registration", map[string]interface{}{
				"email": email,
			})
			return nil
		}
		hash, err := util.HashPassword(cfg.Password)
		if err != nil {
			return err
		}
		admin := &model.User{
			Username:     cfg.Username,
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}
		if err := gdb.Create(admin).Error; err != nil {
			logger.Error("Failed to seed admin account", err)
			return err
		}
		logger.Info("Admin account seeded", map[string]interface{}{
			"user_id": admin.ID,
			"email":   email,
		})
		return nil

	default:
		return err
	}
}
