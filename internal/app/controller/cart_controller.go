package controller

import (
	"net/http"

	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCart adds one unit of a product
// GET /add-to-cart?product_id=
func (ctrl *CartController) AddToCart(c *gin.Context) {
	userID, ok := requireUserID(c, "You need to login or register to shop.")
	if !ok {
		return
	}
	productID, ok := parseIDQuery(c, "product_id")
	if !ok {
		return
	}

	if err := ctrl.cartService.AddToCart(userID, productID); err != nil {
		respondError(c, err, "add to cart")
		return
	}
	ctrl.respondCart(c, userID, "Added to cart.")
}

// RemoveFromCart removes one unit of a product
// GET /remove-from-cart?product_id=
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, ok := requireUserID(c, "")
	if !ok {
		return
	}
	productID, ok := parseIDQuery(c, "product_id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, productID); err != nil {
		respondError(c, err, "remove from cart")
		return
	}
	ctrl.respondCart(c, userID, "Removed from cart.")
}

// GetCart
// GET /cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := requireUserID(c, "")
	if !ok {
		return
	}
	ctrl.respondCart(c, userID, "")
}

func (ctrl *CartController) respondCart(c *gin.Context, userID uint, message string) {
	contents, err := ctrl.cartService.GetCartContents(userID)
	if err != nil {
		respondError(c, err, "get cart")
		return
	}

	body := gin.H{
		"items": contents.Items,
		"total": contents.Total,
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

// Checkout finalizes the open cart
// GET /purchase
func (ctrl *CartController) Checkout(c *gin.Context) {
	userID, ok := requireUserID(c, "")
	if !ok {
		return
	}

	summary, err := ctrl.cartService.Checkout(userID)
	if err != nil {
		respondError(c, err, "checkout")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Thank you for your purchase!",
		"purchase": summary,
	})
}

// ListPurchases
// GET /my-shopping
func (ctrl *CartController) ListPurchases(c *gin.Context) {
	userID, ok := requireUserID(c, "")
	if !ok {
		return
	}

	purchases, err := ctrl.cartService.ListPastPurchases(userID)
	if err != nil {
		respondError(c, err, "list purchases")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// GetPurchase
// GET /my-shopping/:purchase_id
func (ctrl *CartController) GetPurchase(c *gin.Context) {
	userID, ok := requireUserID(c, "")
	if !ok {
		return
	}
	purchaseID, ok := parseIDParam(c, "purchase_id")
	if !ok {
		return
	}

	summary, err := ctrl.cartService.GetPurchase(userID, purchaseID)
	if err != nil {
		respondError(c, err, "get purchase")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"purchase": summary,
	})
}
