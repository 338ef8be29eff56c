package seed

import (
	"context"

	"teamup/internal/models"
	"teamup/internal/repository"
)

// catalog is the fixed set of technology tags. Seeding is the only pathway
// that creates Tag rows; post saves merely reference them.
var catalog = []string{
	"Go", "Java", "Kotlin", "Python", "Rust", "TypeScript", "JavaScript",
	"React", "Vue", "Svelte", "Next.js", "Node.js", "Spring", "Django",
	"PostgreSQL", "MySQL", "Redis", "MongoDB", "Kafka", "gRPC",
	"Docker", "Kubernetes", "AWS", "GCP", "Terraform",
	"Flutter", "Swift", "Android", "iOS", "GraphQL",
}

// Tags inserts the tag catalog if it is not already present.
func Tags(ctx context.Context, tagRepo repository.TagRepository) error {
	count, err := tagRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tags := make([]*models.Tag, 0, len(catalog))
	for _, name := range catalog {
		tags = append(tags, &models.Tag{Name: name})
	}
	return tagRepo.SaveAll(ctx, tags)
}
