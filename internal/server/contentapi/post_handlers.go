package contentapi

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreatePost creates a post authored by the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: actorID(c),
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondSuccess(c, fiber.StatusCreated, post)
}

// GetPosts serves three timelines from one route:
//
//	?user=<username>    the viewer's home feed (requires a matching token)
//	?author=<username>  one author's posts
//	(neither)           the global timeline
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, pageSize := s.parsePage(c)

	if user := c.Query("user"); user != "" {
		return s.getFeed(c, user, page, pageSize)
	}

	if author := c.Query("author"); author != "" {
		posts, total, err := s.postService.ListPostsByAuthor(c.UserContext(), author,
			pageSize, pagination.Offset(page, pageSize))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return respondPage(c, pagination.NewPage(posts, page, pageSize, total))
	}

	posts, total, err := s.postService.ListPosts(c.UserContext(), pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondPage(c, pagination.NewPage(posts, page, pageSize, total))
}

// getFeed serves the home feed. Feeds are private: the named user must match
// the token's subject. The resolved viewer identity is echoed as user_data.
func (s *Server) getFeed(c *fiber.Ctx, username string, page, pageSize int) error {
	tokenUserID, ok := middleware.OptionalUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	viewer, err := s.resolver.ResolveByUsername(c.UserContext(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if viewer.ID != tokenUserID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewPermissionError("you can only view your own feed"))
	}

	feed, err := s.feedService.GetFeed(c.UserContext(), viewer.ID, page, pageSize)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"status":    "success",
		"data":      feed.Items,
		"user_data": viewer,
		"pagination_meta": fiber.Map{
			"page":          feed.Meta.Page,
			"pages":         feed.Meta.Pages,
			"total":         feed.Meta.Total,
			"visible_pages": pagination.VisiblePages(feed.Meta.Pages, feed.Meta.Page, pagesWindowEdge, pagesWindowAround),
		},
	})
}

// GetPost returns a single post by ID with its comments attached.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	comments, err := s.commentService.AllComments(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	post.Comments = comments

	return respondSuccess(c, fiber.StatusOK, post)
}

// UpdatePost updates the authenticated author's own post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		ActorID: actorID(c),
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondSuccess(c, fiber.StatusOK, post)
}

// DeletePost deletes the authenticated author's own post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		ActorID: actorID(c),
		PostID:  id,
	}); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost bumps the post's like counter and returns the refreshed post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Like(c.UserContext(), actorID(c), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	return respondSuccess(c, fiber.StatusCreated, post)
}
