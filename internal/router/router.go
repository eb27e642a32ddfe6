package router

import (
	"net/http"

	"github.com/deviceshop/deviceshop-backend/config"
	"github.com/deviceshop/deviceshop-backend/internal/app/controller"
	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	homeController    *controller.HomeController
	authController    *controller.AuthController
	blogController    *controller.BlogController
	cartController    *controller.CartController
	productController *controller.ProductController
	userController    *controller.UserController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	homeController *controller.HomeController,
	authController *controller.AuthController,
	blogController *controller.BlogController,
	cartController *controller.CartController,
	productController *controller.ProductController,
	userController *controller.UserController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		homeController:    homeController,
		authController:    authController,
		blogController:    blogController,
		cartController:    cartController,
		productController: productController,
		userController:    userController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "DeviceShop API is running",
		})
	})

	optional := r.authMiddleware.OptionalAuthenticate()
	required := r.authMiddleware.Authenticate()

	router.GET("/", optional, r.homeController.Home)

	router.POST("/register", r.authController.Register)
	router.POST("/login", r.authController.Login)
	router.GET("/logout", optional, r.authController.Logout)

	router.GET("/blog-post/:post_id", optional, r.blogController.GetPost)
	router.POST("/blog-post/:post_id", optional, r.blogController.PostComment)
	router.POST("/blog-post/:post_id/:comment_id", optional, r.blogController.PostComment)
	router.GET("/live/blog-post/:post_id", optional, r.blogController.LiveComments)

	router.GET("/add-to-cart", optional, r.cartController.AddToCart)
	shop := router.Group("", required)
	{
		shop.GET("/remove-from-cart", r.cartController.RemoveFromCart)
		shop.GET("/cart", r.cartController.GetCart)
		shop.GET("/purchase", r.cartController.Checkout)
		shop.GET("/my-shopping", r.cartController.ListPurchases)
		shop.GET("/my-shopping/:purchase_id", r.cartController.GetPurchase)
	}

	admin := router.Group("", required, r.authMiddleware.RequireRole(model.RoleAdmin))
	{
		products := admin.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.POST("", r.productController.CreateProduct)
			products.POST("/EDIT/:id", r.productController.EditProduct)
			products.POST("/DELETE/:id", r.productController.DeleteProduct)
		}

		users := admin.Group("/users")
		{
			users.GET("", r.userController.ListUsers)
			users.POST("", r.userController.CreateUser)
			users.POST("/EDIT/:id", r.userController.EditUser)
			users.POST("/DELETE/:id", r.userController.DeleteUser)
		}

		posts := admin.Group("/posts")
		{
			posts.GET("", r.blogController.ListPosts)
			posts.POST("", r.blogController.CreatePost)
			posts.POST("/EDIT/:id", r.blogController.EditPost)
			posts.POST("/DELETE/:id", r.blogController.DeletePost)
		}

		admin.POST("/upload/image", r.uploadController.PresignImage)
	}

	return router
}
