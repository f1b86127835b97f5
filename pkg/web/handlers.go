package web

import "github.com/gofiber/fiber/v2"

// handleFrame returns the latest frame, or 503 before the loop has run.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	f, ok := s.Latest()
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no frame yet",
		})
	}
	return c.JSON(f)
}

// handleConfig returns the behavior configuration the page draws with.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.cfg)
}
