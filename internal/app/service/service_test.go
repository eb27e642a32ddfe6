package service

import (
	"sync"
	"testing"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/internal/db"
	"github.com/deviceshop/deviceshop-backend/pkg/redis"
	"github.com/deviceshop/deviceshop-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	util.UseMinimumCost()
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*model.Comment
}

func (p *recordingPublisher) PublishComment(_ uint, comment *model.Comment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, comment)
}

type testEnv struct {
	db        *gorm.DB
	users     repository.UserRepository
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	posts     repository.BlogPostRepository
	comments  repository.CommentRepository
	blacklist redis.TokenBlacklist
	publisher *recordingPublisher
}

func setupEnv(t *testing.T) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return &testEnv{
		db:        testDB,
		users:     repository.NewUserRepository(testDB),
		products:  repository.NewProductRepository(testDB),
		purchases: repository.NewPurchaseRepository(testDB),
		posts:     repository.NewBlogPostRepository(testDB),
		comments:  repository.NewCommentRepository(testDB),
		blacklist: redis.NewMemoryBlacklist(),
		publisher: &recordingPublisher{},
	}
}

func (e *testEnv) cartService(allowEmpty bool) CartService {
	return NewCartService(e.db, e.users, e.products, e.purchases, allowEmpty)
}

func (e *testEnv) productService() ProductService {
	return NewProductService(e.db, e.products, e.purchases)
}

func (e *testEnv) blogService() BlogService {
	return NewBlogService(e.db, e.posts, e.comments, e.users, e.publisher)
}

func (e *testEnv) user(t *testing.T, email string) *model.User {
	u := &model.User{Username: "user", Email: email, PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *testEnv) product(t *testing.T, name string, price int64) *model.Product {
	p := &model.Product{Name: name, Brand: "Acme", Price: price, ImageURL: "https://img.test/" + name}
	require.NoError(t, e.products.Create(p))
	return p
}

func (e *testEnv) openPurchaseCount(t *testing.T, userID uint) int64 {
	var count int64
	require.NoError(t, e.db.Model(&model.Purchase{}).
		Where("user_id = ? AND purchased_at IS NULL", userID).
		Count(&count).Error)
	return count
}
