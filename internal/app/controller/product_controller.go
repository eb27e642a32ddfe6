package controller

import (
	"net/http"

	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Brand    string `json:"brand" form:"brand"`
	Price    int64  `json:"price" form:"price"`
	ImageURL string `json:"img_url" form:"img_url" binding:"required"`
}

type ProductEditRequest struct {
	Name     *string `json:"name" form:"name"`
	Brand    *string `json:"brand" form:"brand"`
	Price    *int64  `json:"price" form:"price"`
	ImageURL *string `json:"img_url" form:"img_url"`
}

// ListProducts
// GET /products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	products, err := ctrl.productService.ListProducts()
	if err != nil {
		respondError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct
// POST /products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		respondBindError(c, err, "Please fill in name and image.")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.ProductInput{
		Name:     req.Name,
		Brand:    req.Brand,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err, "create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created.",
		"product": product,
	})
}

// EditProduct
// POST /products/EDIT/:id
func (ctrl *ProductController) EditProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductEditRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "Invalid product fields.")
		return
	}

	product, err := ctrl.productService.EditProduct(id, service.ProductUpdate{
		Name:     req.Name,
		Brand:    req.Brand,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err, "edit product")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated.",
		"product": product,
	})
}

// DeleteProduct
// POST /products/DELETE/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondError(c, err, "delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted.",
	})
}
