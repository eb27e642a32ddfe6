package repository

import (
	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
	ListByPost(postID uint) ([]model.Comment, error)
	DeleteByPost(postID uint) (int64, error)
	CountByPost(postID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	logger.Debug("Creating comment in database", map[string]interface{}{
		"post_id":   comment.PostID,
		"author_id": comment.AuthorID,
		"parent_id": comment.ParentID,
	})

	if err := r.db.Omit("Author", "Post", "Parent", "Answers").Create(comment).Error; err != nil {
		logger.Error("Failed to create comment in database", err, map[string]interface{}{
			"post_id": comment.PostID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns every comment of the post in id order, authors included.
func (r *commentRepository) ListByPost(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("post_id = ?", postID).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		logger.Error("Failed to list comments", err, map[string]interface{}{
			"post_id": postID,
		})
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) DeleteByPost(postID uint) (int64, error) {
	result := r.db.Where("post_id = ?", postID).Delete(&model.Comment{})
	if result.Error != nil {
		logger.Error("Failed to delete comments of post", result.Error, map[string]interface{}{
			"post_id": postID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *commentRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
