package server

import (
	"prompthub/internal/models"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id. The route is public, so the
// returned document is sanitized.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	user.Sanitize()
	return c.JSON(user)
}

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// FollowUser handles PUT /api/users/follow/:id and toggles the follow,
// returning the caller's following set and the target's followers.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.userService.ToggleFollow(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// SavePrompt handles PUT /api/users/save/:promptId and toggles the bookmark,
// returning the caller's saved set.
func (s *Server) SavePrompt(c *fiber.Ctx) error {
	promptID, err := s.parseID(c, "promptId")
	if err != nil {
		return nil
	}

	saved, err := s.userService.ToggleSave(c.Context(), currentUserID(c), promptID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"savedPrompts": saved,
	})
}

// GetSavedPrompts handles GET /api/users/saved/prompts
func (s *Server) GetSavedPrompts(c *fiber.Ctx) error {
	prompts, err := s.promptService.ListSaved(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(prompts)
}

// GetFollowingPrompts handles GET /api/users/following/prompts
func (s *Server) GetFollowingPrompts(c *fiber.Ctx) error {
	prompts, err := s.promptService.ListFollowing(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(prompts)
}
