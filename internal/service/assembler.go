// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"

	"teamup/internal/models"
	"teamup/internal/repository"
)

// OrderedPostTags holds tag names grouped per post, preserving both the
// caller's post order and each post's tag attachment order. Every requested
// post has an entry, so tagless posts read as an empty slice rather than a
// missing key.
type OrderedPostTags struct {
	order []uint
	tags  map[uint][]string
}

func newOrderedPostTags(postIDs []uint) *OrderedPostTags {
	o := &OrderedPostTags{
		order: make([]uint, 0, len(postIDs)),
		tags:  make(map[uint][]string, len(postIDs)),
	}
	for _, id := range postIDs {
		if _, seen := o.tags[id]; seen {
			continue
		}
		o.order = append(o.order, id)
		o.tags[id] = []string{}
	}
	return o
}

func (o *OrderedPostTags) add(postID uint, name string) {
	if _, ok := o.tags[postID]; !ok {
		return
	}
	o.tags[postID] = append(o.tags[postID], name)
}

// Get returns the tag names for a post, in attachment order. The slice is
// never nil for a post that was part of the request.
func (o *OrderedPostTags) Get(postID uint) []string {
	if names, ok := o.tags[postID]; ok {
		return names
	}
	return []string{}
}

// PostIDs returns the requested post ids in their original order.
func (o *OrderedPostTags) PostIDs() []uint {
	return o.order
}

// Len returns the number of posts covered.
func (o *OrderedPostTags) Len() int {
	return len(o.order)
}

// TagAssembler resolves the tag names for batches of posts with a single
// query per batch, whatever the batch size.
type TagAssembler struct {
	techStackRepo repository.TechStackRepository
}

// NewTagAssembler creates a new tag assembler.
func NewTagAssembler(techStackRepo repository.TechStackRepository) *TagAssembler {
	return &TagAssembler{techStackRepo: techStackRepo}
}

// TagsForPosts loads and groups tags for the given posts.
func (a *TagAssembler) TagsForPosts(ctx context.Context, posts []*models.Post) (*OrderedPostTags, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return a.TagsForPostIDs(ctx, ids)
}

// TagsForPostIDs loads and groups tags for the given post ids.
func (a *TagAssembler) TagsForPostIDs(ctx context.Context, postIDs []uint) (*OrderedPostTags, error) {
	grouped := newOrderedPostTags(postIDs)
	if len(postIDs) == 0 {
		return grouped, nil
	}

	rows, err := a.techStackRepo.GetAllByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		grouped.add(row.PostID, row.Tag.Name)
	}
	return grouped, nil
}

// TagsForPost is the single-post convenience wrapper.
func (a *TagAssembler) TagsForPost(ctx context.Context, postID uint) ([]string, error) {
	grouped, err := a.TagsForPostIDs(ctx, []uint{postID})
	if err != nil {
		return nil, err
	}
	return grouped.Get(postID), nil
}
