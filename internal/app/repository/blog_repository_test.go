package repository

import (
	"testing"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepositories_DeletePostWithThread(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewBlogPostRepository(gdb)
	comments := NewCommentRepository(gdb)
	author := createUser(t, gdb, "admin@example.com")

	post := &model.BlogPost{Title: "Hello", Subtitle: "world", Date: "March 1, 2026", Body: "body", ImageURL: "img", AuthorID: author.ID}
	require.NoError(t, posts.Create(post))

	root := &model.Comment{Text: "root", AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, comments.Create(root))
	reply := &model.Comment{Text: "reply", AuthorID: author.ID, PostID: post.ID, ParentID: &root.ID}
	require.NoError(t, comments.Create(reply))

	loaded, err := posts.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, author.Email, loaded.Author.Email)

	list, err := comments.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, root.ID, list[0].ID)
	assert.Equal(t, author.ID, list[1].Author.ID)

	removed, err := comments.DeleteByPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	rows, err := posts.Delete(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	count, err := posts.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
