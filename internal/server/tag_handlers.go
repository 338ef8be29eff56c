package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTags returns the whole tag catalog.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}
