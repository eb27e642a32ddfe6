package repository

import (
	"testing"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductRepository_CRUD(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))

	product := &model.Product{Name: "Phone", Brand: "Acme", Price: 100, ImageURL: "https://img.test/phone"}
	require.NoError(t, repo.Create(product))
	require.NotZero(t, product.ID)

	product.Price = 120
	require.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), found.Price)

	rows, err := repo.Delete(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductRepository_CreateBatch(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))

	err := repo.CreateBatch([]model.Product{
		{Name: "A", Price: 1, ImageURL: "a"},
		{Name: "B", Price: 2, ImageURL: "b"},
	})
	require.NoError(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, repo.CreateBatch(nil))
}
