package identityapi

import (
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// FollowUser adds a follow edge from the authenticated user to :username.
// Repeating an existing follow answers 201 with the unchanged target.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	target, err := s.followService.Follow(c.UserContext(), actorID(c), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondSuccess(c, fiber.StatusCreated, target)
}

// UnfollowUser removes the follow edge. Removing an absent edge is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	if _, err := s.followService.Unfollow(c.UserContext(), actorID(c), c.Params("username")); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowing lists the users :id follows, most recent first.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	page, pageSize := s.parsePage(c)
	users, total, err := s.followService.Following(c.UserContext(), id, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondPage(c, users, page, pageSize, total)
}

// GetFollowers lists the users following :id, most recent first.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	page, pageSize := s.parsePage(c)
	users, total, err := s.followService.Followers(c.UserContext(), id, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondPage(c, users, page, pageSize, total)
}

// GetFollowingIDs returns the raw followed-user IDs for :id. The content
// service calls this to expand a feed.
func (s *Server) GetFollowingIDs(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ids, err := s.followService.FollowingIDs(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondSuccess(c, fiber.StatusOK, ids)
}

// GetFollowStatus reports whether :id follows :targetId.
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := parseID(c, "targetId")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(c.UserContext(), id, targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondSuccess(c, fiber.StatusOK, fiber.Map{"following": following})
}
