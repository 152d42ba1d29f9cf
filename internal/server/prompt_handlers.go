package server

import (
	"prompthub/internal/models"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPrompts handles GET /api/prompts with optional category, purpose,
// search, sort, limit, and showDeleted query parameters.
func (s *Server) GetPrompts(c *fiber.Ctx) error {
	input := service.ListPromptsInput{
		Category:    c.Query("category"),
		Purpose:     c.Query("purpose"),
		Search:      c.Query("search"),
		Sort:        c.Query("sort"),
		Limit:       c.QueryInt("limit", 0),
		ShowDeleted: c.QueryBool("showDeleted", false),
	}

	prompts, err := s.promptService.List(c.Context(), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(prompts)
}

// GetPrompt handles GET /api/prompts/:id. Soft-deleted prompts read as 404
// unless showDeleted is passed for the owner's trash view.
func (s *Server) GetPrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	prompt, err := s.promptService.Get(c.Context(), id, c.QueryBool("showDeleted", false))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(prompt)
}

// CreatePrompt handles POST /api/prompts
func (s *Server) CreatePrompt(c *fiber.Ctx) error {
	var input service.CreatePromptInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, err := s.promptService.Create(c.Context(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(prompt)
}

// UpdatePrompt handles PUT /api/prompts/:id
func (s *Server) UpdatePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.UpdatePromptInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, err := s.promptService.Update(c.Context(), currentUserID(c), id, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(prompt)
}

// DeletePrompt handles DELETE /api/prompts/:id. The prompt is soft-deleted
// and can be restored later.
func (s *Server) DeletePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	prompt, err := s.promptService.SoftDelete(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Prompt deleted",
		"isDeleted": prompt.IsDeleted,
		"deletedAt": prompt.DeletedAt,
	})
}

// RestorePrompt handles PUT /api/prompts/restore/:id
func (s *Server) RestorePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	prompt, err := s.promptService.Restore(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Prompt restored",
		"isDeleted": prompt.IsDeleted,
	})
}

// LikePrompt handles PUT /api/prompts/like/:id and toggles the caller's
// like, returning the updated like set.
func (s *Server) LikePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.promptService.ToggleLike(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"likes": likes,
	})
}

// UsePrompt handles PUT /api/prompts/use/:id. The route is public; counting
// a use requires no account.
func (s *Server) UsePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.promptService.IncrementUsage(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"usageCount": count,
	})
}

// AddComment handles POST /api/prompts/comment/:id and returns the prompt's
// full comment thread.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comments, err := s.commentService.Add(c.Context(), currentUserID(c), id, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// DeleteComment handles DELETE /api/prompts/comment/:promptId/:commentId
// and returns the remaining comments.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	promptID, err := s.parseID(c, "promptId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.Delete(c.Context(), currentUserID(c), promptID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}
