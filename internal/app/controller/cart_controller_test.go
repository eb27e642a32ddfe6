package controller

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/deviceshop/deviceshop-backend/internal/errors"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartController_Flow(t *testing.T) {
	app := setupControllerTest(t)
	token := app.register(t, "Ann", "ann@example.com")

	a, err := app.products.CreateProduct(service.ProductInput{Name: "a", Price: 100, ImageURL: "x"})
	require.NoError(t, err)
	b, err := app.products.CreateProduct(service.ProductInput{Name: "b", Price: 50, ImageURL: "y"})
	require.NoError(t, err)

	w := app.do(http.MethodGet, fmt.Sprintf("/add-to-cart?product_id=%d", a.ID), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for _, id := range []uint{a.ID, a.ID, b.ID} {
		w = app.do(http.MethodGet, fmt.Sprintf("/add-to-cart?product_id=%d", id), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, float64(250), decode(t, w)["total"])

	w = app.do(http.MethodGet, "/add-to-cart?product_id=abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/add-to-cart?product_id=999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ProductNotFound, decode(t, w)["error"])

	w = app.do(http.MethodGet, "/purchase", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	purchase := decode(t, w)["purchase"].(map[string]interface{})
	assert.Equal(t, float64(250), purchase["purchase_total"])

	w = app.do(http.MethodGet, "/cart", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["total"])

	w = app.do(http.MethodGet, "/purchase", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CartEmpty, decode(t, w)["error"])
}
