package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/db"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/deviceshop/deviceshop-backend/internal/websocket"
	"github.com/deviceshop/deviceshop-backend/pkg/redis"
	"github.com/deviceshop/deviceshop-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	util.UseMinimumCost()
}

type testApp struct {
	router   *gin.Engine
	auth     service.AuthService
	products service.ProductService
	blog     service.BlogService
}

func setupControllerTest(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	purchaseRepo := repository.NewPurchaseRepository(testDB)
	blacklist := redis.NewMemoryBlacklist()

	authService := service.NewAuthService(userRepo, blacklist, testSecret, 15*time.Minute, time.Hour, "admin@example.com")
	productService := service.NewProductService(testDB, productRepo, purchaseRepo)
	cartService := service.NewCartService(testDB, userRepo, productRepo, purchaseRepo, false)
	hub := websocket.NewHub()
	blogService := service.NewBlogService(testDB,
		repository.NewBlogPostRepository(testDB),
		repository.NewCommentRepository(testDB),
		userRepo,
		hub,
	)

	authMiddleware := middleware.NewAuthMiddleware(testSecret, blacklist, userRepo)
	authCtrl := NewAuthController(authService, false)
	blogCtrl := NewBlogController(blogService, hub, websocket.NewUpgrader(nil))
	cartCtrl := NewCartController(cartService)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	optional := authMiddleware.OptionalAuthenticate()
	router.POST("/register", authCtrl.Register)
	router.POST("/login", authCtrl.Login)
	router.GET("/logout", optional, authCtrl.Logout)
	router.GET("/me", authMiddleware.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/blog-post/:post_id", optional, blogCtrl.GetPost)
	router.POST("/blog-post/:post_id", optional, blogCtrl.PostComment)
	router.POST("/blog-post/:post_id/:comment_id", optional, blogCtrl.PostComment)
	router.GET("/add-to-cart", optional, cartCtrl.AddToCart)
	router.GET("/cart", authMiddleware.Authenticate(), cartCtrl.GetCart)
	router.GET("/purchase", authMiddleware.Authenticate(), cartCtrl.Checkout)

	return &testApp{
		router:   router,
		auth:     authService,
		products: productService,
		blog:     blogService,
	}
}

func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) doForm(path string, form url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) register(t *testing.T, name, email string) string {
	_, tokens, err := a.auth.Register(name, email, "secret1")
	require.NoError(t, err)
	return tokens.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
