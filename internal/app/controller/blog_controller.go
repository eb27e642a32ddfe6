package controller

import (
	"net/http"

	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/deviceshop/deviceshop-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
)

type BlogController struct {
	blogService service.BlogService
	hub         *websocket.Hub
	upgrader    *gorilla.Upgrader
}

func NewBlogController(blogService service.BlogService, hub *websocket.Hub, upgrader *gorilla.Upgrader) *BlogController {
	return &BlogController{
		blogService: blogService,
		hub:         hub,
		upgrader:    upgrader,
	}
}

type CommentRequest struct {
	Text string `json:"text" form:"text"`
}

type PostRequest struct {
	Title    string `json:"title" form:"title" binding:"required"`
	Subtitle string `json:"subtitle" form:"subtitle" binding:"required"`
	Body     string `json:"body" form:"body" binding:"required"`
	ImageURL string `json:"img_url" form:"img_url" binding:"required"`
}

type PostEditRequest struct {
	Title    *string `json:"title" form:"title"`
	Subtitle *string `json:"subtitle" form:"subtitle"`
	Body     *string `json:"body" form:"body"`
	ImageURL *string `json:"img_url" form:"img_url"`
}

// GetPost returns a post with its comment thread
// GET /blog-post/:post_id
func (ctrl *BlogController) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	result, err := ctrl.blogService.GetPostWithThread(postID)
	if err != nil {
		respondError(c, err, "get post")
		return
	}
	c.JSON(http.StatusOK, result)
}

// PostComment comments on a post, or replies to a comment when
// comment_id is present
// POST /blog-post/:post_id
// POST /blog-post/:post_id/:comment_id
func (ctrl *BlogController) PostComment(c *gin.Context) {
	userID, ok := requireUserID(c, "You need to login or register to comment.")
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var parentID *uint
	if c.Param("comment_id") != "" {
		id, ok := parseIDParam(c, "comment_id")
		if !ok {
			return
		}
		parentID = &id
	}

	var req CommentRequest
	_ = c.ShouldBind(&req)

	comment, err := ctrl.blogService.PostComment(userID, postID, req.Text, parentID)
	if err != nil {
		respondError(c, err, "post comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment posted.",
		"comment": comment,
	})
}

// LiveComments streams new comments of a post over a websocket
// GET /live/blog-post/:post_id
func (ctrl *BlogController) LiveComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	if _, err := ctrl.blogService.GetPost(postID); err != nil {
		respondError(c, err, "get post")
		return
	}

	userID, _ := middleware.GetUserID(c)
	// Serve answers the handshake itself, including failures
	_ = ctrl.hub.Serve(ctrl.upgrader, c.Writer, c.Request, postID, userID)
}

// ListPosts lists posts for the admin table
// GET /posts
func (ctrl *BlogController) ListPosts(c *gin.Context) {
	posts, err := ctrl.blogService.ListPosts()
	if err != nil {
		respondError(c, err, "list posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

// CreatePost
// POST /posts
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, ok := requireUserID(c, "")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid post request", map[string]interface{}{
			"error": err.Error(),
		})
		respondBindError(c, err, "Please fill in title, subtitle, body and image.")
		return
	}

	post, err := ctrl.blogService.CreatePost(userID, service.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err, "create post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created.",
		"post":    post,
	})
}

// EditPost
// POST /posts/EDIT/:id
func (ctrl *BlogController) EditPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PostEditRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "Invalid post fields.")
		return
	}

	post, err := ctrl.blogService.EditPost(id, service.PostUpdate{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err, "edit post")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated.",
		"post":    post,
	})
}

// DeletePost
// POST /posts/DELETE/:id
func (ctrl *BlogController) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.blogService.DeletePost(id); err != nil {
		respondError(c, err, "delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted.",
	})
}
