package controller

import (
	"net/http"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type HomeController struct {
	blogService    service.BlogService
	productService service.ProductService
}

func NewHomeController(blogService service.BlogService, productService service.ProductService) *HomeController {
	return &HomeController{
		blogService:    blogService,
		productService: productService,
	}
}

// Home lists posts and products
// GET /
func (ctrl *HomeController) Home(c *gin.Context) {
	posts, err := ctrl.blogService.ListPosts()
	if err != nil {
		respondError(c, err, "list posts")
		return
	}
	products, err := ctrl.productService.ListProducts()
	if err != nil {
		respondError(c, err, "list products")
		return
	}

	_, loggedIn := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	c.JSON(http.StatusOK, gin.H{
		"posts":     posts,
		"products":  products,
		"logged_in": loggedIn,
		"is_admin":  role == model.RoleAdmin,
	})
}
