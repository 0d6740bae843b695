package api

import (
	"github.com/gofiber/fiber/v2"
	"walle.finance/internal/domain"
)

// UserHandler exposes the account lifecycle over HTTP.
type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates an inactive account and emails an activation link.
// POST /user/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	user, err := h.users.Register(c.Context(), domain.RegisterInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusCreated, true, "USER_CREATED_SUCCESS",
		"User created successfully. Check your email for activation link.", fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"username":  user.Username,
			"email":     user.Email,
		})
}

// Activate flips the account to active. Idempotent.
// GET /user/activate-account?token=...
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	result, err := h.users.Activate(c.Context(), c.Query("token"))
	if err != nil {
		return handleError(c, err)
	}

	if result.AlreadyActive {
		return send(c, fiber.StatusOK, true, "ALREADY_ACTIVE", "Account is already active.", nil)
	}
	return send(c, fiber.StatusOK, true, "ACCOUNT_ACTIVATED", "Account activated successfully.", nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a session token.
// POST /user/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	result, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "LOGIN_SUCCESS", "Logged in successfully.", fiber.Map{
		"id":        result.User.ID,
		"full_name": result.User.FullName,
		"username":  result.User.Username,
		"email":     result.User.Email,
		"token":     result.Token,
	})
}

// ForgotPassword emails a reset link.
// POST /user/forgot-password
func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	if err := h.users.ForgotPassword(c.Context(), req.Email); err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "RESET_LINK_SENT", "Password reset link sent to your email.", nil)
}

// ResetPassword replaces the password named by a valid reset token.
// POST /user/reset-password
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token           string `json:"token"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	if err := h.users.ResetPassword(c.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "PASSWORD_UPDATED", "Password updated successfully.", nil)
}

// PUT /user/update/fullname
func (h *UserHandler) UpdateFullName(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	token, err := h.users.UpdateFullName(c.Context(), requesterID(c), req.FullName)
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "NAME_UPDATED", "Full name updated successfully.", fiber.Map{"token": token})
}

// PUT /user/update/email
func (h *UserHandler) UpdateEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	token, err := h.users.UpdateEmail(c.Context(), requesterID(c), req.Email)
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "EMAIL_UPDATED", "Email updated successfully.", fiber.Map{"token": token})
}

// PUT /user/update/username
func (h *UserHandler) UpdateUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	token, err := h.users.UpdateUsername(c.Context(), requesterID(c), req.Username)
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "USERNAME_UPDATED", "Username updated successfully.", fiber.Map{"token": token})
}

// PUT /user/update/password
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	token, err := h.users.UpdatePassword(c.Context(), requesterID(c), req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "PASSWORD_UPDATED", "Password updated successfully.", fiber.Map{"token": token})
}

// requesterID reads the identity the JWT middleware stored in Locals.
func requesterID(c *fiber.Ctx) string {
	id, _ := c.Locals("id").(string)
	return id
}
