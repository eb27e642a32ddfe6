package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/internal/app/thread"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// CommentPublisher pushes a freshly stored comment to live readers of its post.
type CommentPublisher interface {
	PublishComment(postID uint, comment *model.Comment)
}

type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type PostUpdate struct {
	Title    *string
	Subtitle *string
	Body     *string
	ImageURL *string
}

// PostThread is a post with its comments nested by reply.
type PostThread struct {
	Post         *model.BlogPost `json:"post"`
	Comments     []*thread.Node  `json:"comments"`
	CommentCount int             `json:"comment_count"`
}

type BlogService interface {
	ListPosts() ([]model.BlogPost, error)
	GetPost(postID uint) (*model.BlogPost, error)
	GetPostWithThread(postID uint) (*PostThread, error)
	CreatePost(authorID uint, input PostInput) (*model.BlogPost, error)
	EditPost(postID uint, update PostUpdate) (*model.BlogPost, error)
	DeletePost(postID uint) error
	PostComment(userID, postID uint, text string, parentID *uint) (*model.Comment, error)
}

type blogService struct {
	db          *gorm.DB
	postRepo    repository.BlogPostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	publisher   CommentPublisher
	now         func() time.Time
}

// NewBlogService wires the blog. publisher may be nil.
func NewBlogService(
	db *gorm.DB,
	postRepo repository.BlogPostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	publisher CommentPublisher,
) BlogService {
	return &blogService{
		db:          db,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func validatePost(p *model.BlogPost) error {
	switch {
	case p.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case p.Subtitle == "":
		return fmt.Errorf("%w: subtitle is required", ErrInvalidInput)
	case p.Body == "":
		return fmt.Errorf("%w: body is required", ErrInvalidInput)
	case p.ImageURL == "":
		return fmt.Errorf("%w: image url is required", ErrInvalidInput)
	}
	return nil
}

func (s *blogService) findPost(postID uint) (*model.BlogPost, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *blogService) ListPosts() ([]model.BlogPost, error) {
	return s.postRepo.List()
}

func (s *blogService) GetPost(postID uint) (*model.BlogPost, error) {
	return s.findPost(postID)
}

func (s *blogService) GetPostWithThread(postID uint) (*PostThread, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, err
	}

	return &PostThread{
		Post:         post,
		Comments:     thread.Build(comments),
		CommentCount: len(comments),
	}, nil
}

func (s *blogService) CreatePost(authorID uint, input PostInput) (*model.BlogPost, error) {
	post := &model.BlogPost{
		Title:    strings.TrimSpace(input.Title),
		Subtitle: strings.TrimSpace(input.Subtitle),
		Body:     input.Body,
		ImageURL: strings.TrimSpace(input.ImageURL),
		AuthorID: authorID,
		Date:     s.now().Format(model.PostDateLayout),
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	logger.Info("Blog post created", map[string]interface{}{
		"post_id":   post.ID,
		"author_id": authorID,
	})
	return s.findPost(post.ID)
}

func (s *blogService) EditPost(postID uint, update PostUpdate) (*model.BlogPost, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		post.Title = strings.TrimSpace(*update.Title)
	}
	if update.Subtitle != nil {
		post.Subtitle = strings.TrimSpace(*update.Subtitle)
	}
	if update.Body != nil {
		post.Body = *update.Body
	}
	if update.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*update.ImageURL)
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	logger.Info("Blog post updated", map[string]interface{}{
		"post_id": post.ID,
	})
	return post, nil
}

// DeletePost removes the post and its whole comment thread. Deleting an
// absent post is not an error.
func (s *blogService) DeletePost(postID uint) error {
	var removedComments int64

	err := inTx(s.db, "delete_post", func(tx *gorm.DB) error {
		var err error
		removedComments, err = s.commentRepo.WithTx(tx).DeleteByPost(postID)
		if err != nil {
			return err
		}
		_, err = s.postRepo.WithTx(tx).Delete(postID)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("Blog post deleted", map[string]interface{}{
		"post_id":          postID,
		"removed_comments": removedComments,
	})
	return nil
}

// PostComment stores a comment or a reply. A reply must answer a comment
// of the same post.
func (s *blogService) PostComment(userID, postID uint, text string, parentID *uint) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	comment := &model.Comment{
		Text:     text,
		AuthorID: userID,
		PostID:   postID,
		ParentID: parentID,
	}

	err := inTx(s.db, "post_comment", func(tx *gorm.DB) error {
		author, err := s.userRepo.WithTx(tx).FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if _, err := s.postRepo.WithTx(tx).FindByID(postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		comments := s.commentRepo.WithTx(tx)
		if parentID != nil {
			parent, err := comments.FindByID(*parentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCommentNotFound
				}
				return err
			}
			if parent.PostID != postID {
				return ErrInvalidThread
			}
		}

		if err := comments.Create(comment); err != nil {
			return err
		}
		comment.Author = *author
		return nil
	})
	if err != nil {
		logger.Warn("Posting comment failed", map[string]interface{}{
			"user_id": userID,
			"post_id": postID,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Comment posted", map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    postID,
		"reply":      parentID != nil,
	})

	if s.publisher != nil {
		s.publisher.PublishComment(postID, comment)
	}
	return comment, nil
}
