package identityapi

import (
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	ImageFile string `json:"image_file"`
}

// CreateUser registers a new account.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	return respondSuccess(c, fiber.StatusCreated, user)
}

// GetUsers lists users. With a ?username= or ?email= query it performs an
// exact lookup instead; the content service resolves authors this way.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	if username := c.Query("username"); username != "" {
		user, err := s.userService.GetUserByUsername(c.UserContext(), username)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return respondSuccess(c, fiber.StatusOK, user)
	}
	if email := c.Query("email"); email != "" {
		user, err := s.userService.GetUserByEmail(c.UserContext(), email)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return respondSuccess(c, fiber.StatusOK, user)
	}

	page, pageSize := s.parsePage(c)
	users, total, err := s.userService.ListUsers(c.UserContext(), pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return respondPage(c, users, page, pageSize, total)
}

// GetUser returns a single user by numeric ID.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	return respondSuccess(c, fiber.StatusOK, user)
}

// UpdateUser updates the authenticated user's own profile.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ActorID:   actorID(c),
		TargetID:  id,
		Username:  req.Username,
		Email:     req.Email,
		ImageFile: req.ImageFile,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondSuccess(c, fiber.StatusOK, user)
}
