package repository

import (
	"testing"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createUser(t *testing.T, gdb *gorm.DB, email string) *model.User {
	user := &model.User{Username: "user", Email: email, PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func createProduct(t *testing.T, gdb *gorm.DB, name string, price int64) *model.Product {
	product := &model.Product{Name: name, Brand: "Acme", Price: price, ImageURL: "https://img.test/" + name}
	require.NoError(t, gdb.Create(product).Error)
	return product
}
