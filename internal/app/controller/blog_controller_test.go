package controller

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/deviceshop/deviceshop-backend/internal/errors"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogController_Comments(t *testing.T) {
	app := setupControllerTest(t)
	adminToken := app.register(t, "Admin", "admin@example.com")
	readerToken := app.register(t, "Reader", "reader@example.com")

	admin, _, err := app.auth.Login("admin@example.com", "secret1")
	require.NoError(t, err)
	post, err := app.blog.CreatePost(admin.ID, service.PostInput{Title: "One", Subtitle: "s", Body: "b", ImageURL: "i"})
	require.NoError(t, err)
	other, err := app.blog.CreatePost(admin.ID, service.PostInput{Title: "Two", Subtitle: "s", Body: "b", ImageURL: "i"})
	require.NoError(t, err)

	path := fmt.Sprintf("/blog-post/%d", post.ID)

	w := app.do(http.MethodPost, path, CommentRequest{Text: "hi"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "You need to login or register to comment.", decode(t, w)["message"])

	w = app.do(http.MethodPost, path, CommentRequest{Text: "  "}, readerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, path, CommentRequest{Text: "first!"}, readerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := uint(decode(t, w)["comment"].(map[string]interface{})["id"].(float64))

	w = app.do(http.MethodPost, fmt.Sprintf("%s/%d", path, commentID), CommentRequest{Text: "thanks"}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, fmt.Sprintf("/blog-post/%d/%d", other.ID, commentID), CommentRequest{Text: "wrong post"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CommentInvalidReply, decode(t, w)["error"])

	w = app.do(http.MethodPost, fmt.Sprintf("%s/%d", path, 999), CommentRequest{Text: "ghost"}, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["comment_count"])
	comments := body["comments"].([]interface{})
	require.Len(t, comments, 1)
	answers := comments[0].(map[string]interface{})["answers"].([]interface{})
	require.Len(t, answers, 1)
	assert.Equal(t, "thanks", answers[0].(map[string]interface{})["text"])

	w = app.do(http.MethodGet, "/blog-post/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.PostNotFound, decode(t, w)["error"])

	w = app.do(http.MethodGet, "/blog-post/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
