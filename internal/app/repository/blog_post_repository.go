package repository

import (
	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type BlogPostRepository interface {
	WithTx(tx *gorm.DB) BlogPostRepository
	Create(post *model.BlogPost) error
	FindByID(id uint) (*model.BlogPost, error)
	List() ([]model.BlogPost, error)
	Update(post *model.BlogPost) error
	Delete(id uint) (int64, error)
	Count() (int64, error)
}

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

func (r *blogPostRepository) WithTx(tx *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: tx}
}

func (r *blogPostRepository) Create(post *model.BlogPost) error {
	logger.Debug("Creating blog post in database", map[string]interface{}{
		"title":     post.Title,
		"author_id": post.AuthorID,
	})

	if err := r.db.Create(post).Error; err != nil {
		logger.Error("Failed to create blog post in database", err, map[string]interface{}{
			"title": post.Title,
		})
		return err
	}

	logger.Debug("Blog post created in database", map[string]interface{}{
		"post_id": post.ID,
	})
	return nil
}

// FindByID loads the post with its author. Authors removed by an admin
// still resolve.
func (r *blogPostRepository) FindByID(id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) List() ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).Order("id ASC").Find(&posts).Error
	if err != nil {
		logger.Error("Failed to list blog posts", err)
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepository) Update(post *model.BlogPost) error {
	if err := r.db.Omit("Author", "Comments").Save(post).Error; err != nil {
		logger.Error("Failed to update blog post in database", err, map[string]interface{}{
			"post_id": post.ID,
		})
		return err
	}
	return nil
}

// Delete removes the post row. Comments must be removed first or by the
// cascading foreign key.
func (r *blogPostRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&model.BlogPost{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete blog post from database", result.Error, map[string]interface{}{
			"post_id": id,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *blogPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.BlogPost{}).Count(&count).Error
	return count, err
}
