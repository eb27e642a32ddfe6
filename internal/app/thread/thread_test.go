package thread

import (
	"testing"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id uint) *uint { return &id }

func comment(id uint, parent *uint) model.Comment {
	return model.Comment{ID: id, Text: "c", PostID: 1, ParentID: parent}
}

func collect(comments []model.Comment) ([]uint, []int) {
	var ids []uint
	var depths []int
	for e := range Walk(comments) {
		ids = append(ids, e.Comment.ID)
		depths = append(depths, e.Depth)
	}
	return ids, depths
}

func TestWalk_DepthFirstSiblingsByID(t *testing.T) {
	comments := []model.Comment{
		comment(5, ptr(1)),
		comment(1, nil),
		comment(2, nil),
		comment(3, ptr(1)),
		comment(4, ptr(3)),
	}

	ids, depths := collect(comments)
	assert.Equal(t, []uint{1, 3, 4, 5, 2}, ids)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
}

func TestWalk_CycleEmitsEachCommentOnce(t *testing.T) {
	comments := []model.Comment{
		comment(1, nil),
		comment(2, ptr(3)),
		comment(3, ptr(2)),
		comment(4, ptr(4)),
	}

	ids, _ := collect(comments)
	assert.ElementsMatch(t, []uint{1, 2, 3, 4}, ids)
	assert.Len(t, ids, 4)
	assert.Equal(t, uint(1), ids[0])
}

func TestWalk_OrphanBecomesRoot(t *testing.T) {
	ids, depths := collect([]model.Comment{comment(7, ptr(99)), comment(8, ptr(7))})
	assert.Equal(t, []uint{7, 8}, ids)
	assert.Equal(t, []int{0, 1}, depths)
}

func TestWalk_StopsEarly(t *testing.T) {
	comments := []model.Comment{comment(1, nil), comment(2, ptr(1)), comment(3, nil)}

	var seen []uint
	for e := range Walk(comments) {
		seen = append(seen, e.Comment.ID)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []uint{1, 2}, seen)
}

func TestBuild_Nesting(t *testing.T) {
	comments := []model.Comment{
		comment(1, nil),
		comment(2, ptr(1)),
		comment(3, ptr(2)),
		comment(4, ptr(1)),
		comment(5, nil),
	}

	tree := Build(comments)
	require.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].ID)
	require.Len(t, tree[0].Answers, 2)
	assert.Equal(t, uint(2), tree[0].Answers[0].ID)
	require.Len(t, tree[0].Answers[0].Answers, 1)
	assert.Equal(t, uint(3), tree[0].Answers[0].Answers[0].ID)
	assert.Equal(t, uint(4), tree[0].Answers[1].ID)
	assert.Equal(t, uint(5), tree[1].ID)
	assert.Empty(t, tree[1].Answers)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.NotNil(t, Build(nil))
}
