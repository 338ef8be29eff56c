package service

import (
	"context"
	"testing"

	"teamup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagAssembler_GroupsInRequestOrder(t *testing.T) {
	calls := 0
	stack := noopTechStackRepo()
	stack.getAllByPostIDsFn = func(_ context.Context, postIDs []uint) ([]*models.PostTechStack, error) {
		calls++
		// Rows come back grouped by post but not in the caller's post order.
		return []*models.PostTechStack{
			{ID: 5, PostID: 3, Tag: models.Tag{Name: "Go"}},
			{ID: 1, PostID: 1, Tag: models.Tag{Name: "React"}},
			{ID: 2, PostID: 1, Tag: models.Tag{Name: "TypeScript"}},
		}, nil
	}
	assembler := NewTagAssembler(stack)

	posts := []*models.Post{{ID: 2}, {ID: 1}, {ID: 3}}
	grouped, err := assembler.TagsForPosts(context.Background(), posts)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "one batched query regardless of batch size")
	assert.Equal(t, []uint{2, 1, 3}, grouped.PostIDs(), "caller's post order preserved")
	assert.Equal(t, []string{"React", "TypeScript"}, grouped.Get(1), "attachment order preserved")
	assert.Equal(t, []string{"Go"}, grouped.Get(3))
}

func TestTagAssembler_TaglessPostGetsEmptySlice(t *testing.T) {
	stack := noopTechStackRepo()
	assembler := NewTagAssembler(stack)

	grouped, err := assembler.TagsForPostIDs(context.Background(), []uint{7})
	require.NoError(t, err)

	tags := grouped.Get(7)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestTagAssembler_EmptyBatchSkipsQuery(t *testing.T) {
	calls := 0
	stack := noopTechStackRepo()
	stack.getAllByPostIDsFn = func(_ context.Context, _ []uint) ([]*models.PostTechStack, error) {
		calls++
		return nil, nil
	}
	assembler := NewTagAssembler(stack)

	grouped, err := assembler.TagsForPosts(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, grouped.Len())
	assert.Zero(t, calls)
}

func TestTagAssembler_DuplicatePostIDsCollapse(t *testing.T) {
	stack := noopTechStackRepo()
	stack.getAllByPostIDsFn = func(_ context.Context, _ []uint) ([]*models.PostTechStack, error) {
		return []*models.PostTechStack{
			{ID: 1, PostID: 4, Tag: models.Tag{Name: "Go"}},
		}, nil
	}
	assembler := NewTagAssembler(stack)

	grouped, err := assembler.TagsForPostIDs(context.Background(), []uint{4, 4})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, grouped.PostIDs())
	assert.Equal(t, []string{"Go"}, grouped.Get(4))
}
