package server

import (
	"teamup/internal/models"
	"teamup/internal/service"

	"github.com/gofiber/fiber/v2"
)

type savePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// GetPosts handles the board listing: optional status and tag filters,
// newest first, paginated.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.SearchPosts(c.Context(), service.SearchPostsInput{
		Status: c.Query("status"),
		Tags:   parseTagsParam(c.Query("tags")),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns the detail view. A signed-in requester gets their view
// recorded; anonymous requesters are served the cached copy.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	detail, err := s.postService.GetPostDetail(c.Context(), viewerID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost creates a post owned by the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req savePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.SavePostInput{
		UserID:  currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits a post's title, content, and tags (owner only).
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req savePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), postID, service.SavePostInput{
		UserID:  currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post and its dependents (owner only).
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike flips the authenticated user's like on a post.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.engagementSvc.ToggleLike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// TogglePostStatus flips a post between RECRUITING and COMPLETE (owner only).
func (s *Server) TogglePostStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.postService.ToggleStatus(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// GetRecommendations returns the related-posts panel for a post.
func (s *Server) GetRecommendations(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	recs, err := s.recommendService.Recommend(c.Context(), viewerID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recs)
}

// GetMyPosts returns the authenticated user's posts.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	posts, err := s.postService.MyPosts(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetMyLikes returns the posts the authenticated user currently likes.
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	posts, err := s.engagementSvc.LikedPosts(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
