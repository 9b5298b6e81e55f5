package comments

import (
	"testing"

	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func comment(id, postID int64, parent *int64) models.Comment {
	return models.Comment{ID: id, PostID: postID, ParentID: parent, Content: "c"}
}

func TestBuildTree(t *testing.T) {
	list := []models.Comment{
		comment(1, 7, nil),
		comment(2, 7, ptr(1)),
		comment(3, 7, ptr(2)),
		comment(4, 7, nil),
		comment(5, 7, ptr(1)),
		comment(6, 7, ptr(99)),
	}

	tree, err := BuildTree(7, list)
	require.NoError(t, err)
	assert.Equal(t, 6, tree.Len())

	var roots []int64
	for _, r := range tree.Roots {
		roots = append(roots, r.Comment.ID)
	}
	assert.Equal(t, []int64{1, 4, 6}, roots)

	one, ok := tree.Find(1)
	require.True(t, ok)
	require.Len(t, one.Replies, 2)
	assert.Equal(t, int64(2), one.Replies[0].Comment.ID)
	assert.Equal(t, int64(5), one.Replies[1].Comment.ID)

	var order []int64
	var depths []int
	tree.Walk(func(n *Node, depth int) {
		order = append(order, n.Comment.ID)
		depths = append(depths, depth)
	})
	assert.Equal(t, []int64{1, 2, 3, 5, 4, 6}, order)
	assert.Equal(t, []int{0, 1, 2, 1, 0, 0}, depths)
}

func TestBuildTreeRejectsBadInput(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		_, err := BuildTree(7, []models.Comment{
			comment(1, 7, ptr(3)),
			comment(2, 7, ptr(1)),
			comment(3, 7, ptr(2)),
		})
		assert.ErrorIs(t, err, errs.ErrCommentCycle)
	})

	t.Run("self parent", func(t *testing.T) {
		_, err := BuildTree(7, []models.Comment{comment(1, 7, ptr(1))})
		assert.ErrorIs(t, err, errs.ErrCommentCycle)
	})

	t.Run("other post", func(t *testing.T) {
		_, err := BuildTree(7, []models.Comment{comment(1, 8, nil)})
		assert.ErrorIs(t, err, errs.ErrCrossPostReply)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := BuildTree(7, []models.Comment{comment(1, 7, nil), comment(1, 7, nil)})
		assert.Error(t, err)
	})
}

func TestValidateReply(t *testing.T) {
	tree, err := BuildTree(7, []models.Comment{
		comment(1, 7, nil),
		comment(2, 7, ptr(1)),
	})
	require.NoError(t, err)

	assert.NoError(t, tree.ValidateReply(7, nil))
	assert.NoError(t, tree.ValidateReply(7, ptr(1)))
	assert.NoError(t, tree.ValidateReply(7, ptr(2)))
	assert.ErrorIs(t, tree.ValidateReply(7, ptr(42)), errs.ErrParentNotFound)
	assert.ErrorIs(t, tree.ValidateReply(8, ptr(1)), errs.ErrCrossPostReply)
}

func TestEmptyTree(t *testing.T) {
	tree, err := BuildTree(1, nil)
	require.NoError(t, err)
	assert.Zero(t, tree.Len())
	assert.Empty(t, tree.Roots)
}
