package contentapi

import (
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment attaches a comment to a post.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		PostID:   postID,
		AuthorID: actorID(c),
		Text:     req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondSuccess(c, fiber.StatusCreated, comment)
}

// GetComments lists a post's comments oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	page, pageSize := s.parsePage(c)
	comments, total, err := s.commentService.ListComments(c.UserContext(), postID,
		pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondPage(c, pagination.NewPage(comments, page, pageSize, total))
}
