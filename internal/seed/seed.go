package seed

import (
	"context"
	"log"

	"teamup/internal/models"
	"teamup/internal/repository"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run seeds the database: the tag catalog first, then fake users, posts,
// comments, and engagement.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	if err := Tags(ctx, repository.NewTagRepository(db)); err != nil {
		return err
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser(ctx)
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rng.Intn(len(users))]
		post, err := factory.CreatePost(ctx, author)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	comments, views := 0, 0
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if factory.rng.Intn(5) == 0 {
				if err := factory.CreateEngagement(ctx, user, post); err != nil {
					return err
				}
				views++
			}
			if factory.rng.Intn(20) == 0 {
				if err := factory.CreateComment(ctx, user, post); err != nil {
					return err
				}
				comments++
			}
		}
	}
	log.Printf("Seeded %d views and %d comments", views, comments)

	return nil
}

// Clean truncates all seeded tables.
func Clean(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE post_tech_stacks, like_posts, comments, posts, tags, users RESTART IDENTITY CASCADE").Error
}
