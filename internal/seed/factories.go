// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"teamup/internal/models"
	"teamup/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db       *gorm.DB
	tagRepo  repository.TagRepository
	likeRepo repository.LikePostRepository
	rng      *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:       db,
		tagRepo:  repository.NewTagRepository(db),
		likeRepo: repository.NewLikePostRepository(db),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a fake identity. All seeded users share
// the same password so local logins are easy.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SeedPassword12!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rng.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a recruitment post by the given user with a random
// subset of catalog tags, spread over the last 90 days.
func (f *Factory) CreatePost(ctx context.Context, user *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:   fmt.Sprintf("Looking for %s for %s", gofakeit.JobTitle(), gofakeit.AppName()),
		Content: gofakeit.Paragraph(2, 4, 8, "\n"),
		UserID:  user.ID,
		Status:  models.PostStatusRecruiting,
	}
	if f.rng.Intn(4) == 0 {
		post.Status = models.PostStatusComplete
	}
	daysBack := f.rng.Intn(90)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(f.rng.Intn(24))*time.Hour)

	if err := f.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}

	if err := f.attachTags(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// attachTags links the post to 0-4 random catalog tags.
func (f *Factory) attachTags(ctx context.Context, post *models.Post) error {
	tags, err := f.tagRepo.GetAll(ctx)
	if err != nil || len(tags) == 0 {
		return err
	}

	n := f.rng.Intn(5)
	picked := f.rng.Perm(len(tags))[:min(n, len(tags))]
	rows := make([]*models.PostTechStack, 0, len(picked))
	for _, idx := range picked {
		rows = append(rows, &models.PostTechStack{PostID: post.ID, TagID: tags[idx].ID})
	}
	if len(rows) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).Create(&rows).Error
}

// CreateComment persists a comment on the post by the given user.
func (f *Factory) CreateComment(ctx context.Context, user *models.User, post *models.Post) error {
	comment := &models.Comment{
		Content: gofakeit.Sentence(10),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	return f.db.WithContext(ctx).Create(comment).Error
}

// CreateEngagement records a view, and sometimes a like, through the same
// code path the API uses so the counters stay consistent with the tracker
// rows.
func (f *Factory) CreateEngagement(ctx context.Context, user *models.User, post *models.Post) error {
	if _, _, err := f.likeRepo.RecordView(ctx, user.ID, post.ID); err != nil {
		return err
	}
	if f.rng.Intn(3) == 0 {
		if _, _, err := f.likeRepo.ToggleLike(ctx, user.ID, post.ID); err != nil {
			return err
		}
	}
	return nil
}
