package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/presenter"
	"github.com/fibear/portal/pkg/auth"
)

type AuthHandler struct {
	flow     auth.FlowUseCase
	sessions auth.SessionStore
}

func NewAuthHandler(flow auth.FlowUseCase, sessions auth.SessionStore) *AuthHandler {
	return &AuthHandler{flow: flow, sessions: sessions}
}

type credentialsRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
}

type resetRequest struct {
	Email string `json:"email"`
}

// Login handles email/password sign-in.
// @Summary Sign in
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	res, err := h.flow.SubmitLogin(c.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return flowError(c, res, err)
	}
	return presenter.JSON(c, http.StatusOK, flowBody(res))
}

// SignUp handles account creation.
// @Summary Sign up
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "sign-up payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	res, err := h.flow.SubmitSignUp(c.Context(), auth.Credentials{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
	})
	if err != nil {
		return flowError(c, res, err)
	}
	return presenter.JSON(c, http.StatusCreated, flowBody(res))
}

// PasswordReset sends a reset link to the given address.
// @Summary Request password reset
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body resetRequest true "reset payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/password-reset [post]
func (h *AuthHandler) PasswordReset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	res, err := h.flow.SubmitPasswordReset(c.Context(), req.Email)
	if err != nil {
		return flowError(c, res, err)
	}
	return presenter.JSON(c, http.StatusOK, flowBody(res))
}

// Logout clears the active session.
// @Summary Sign out
// @Tags    auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	res, err := h.flow.Logout(c.Context())
	if err != nil {
		return flowError(c, res, err)
	}
	return presenter.JSON(c, http.StatusOK, flowBody(res))
}

// Session reports the current signed-in identity, if any.
// @Summary Current session
// @Tags    auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router  /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	ident, err := h.sessions.Current(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to read session")
	}
	if ident == nil {
		return presenter.JSON(c, http.StatusOK, fiber.Map{"authenticated": false})
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"authenticated": true,
		"identity":      identityBody(*ident),
	})
}

func flowBody(res auth.FlowResult) fiber.Map {
	body := fiber.Map{
		"message": res.Message,
		"intent":  string(res.Intent),
	}
	if res.Identity != nil {
		body["identity"] = identityBody(*res.Identity)
	}
	if res.Warning != nil {
		body["warning"] = res.Warning.Error()
	}
	return body
}

func identityBody(ident auth.Identity) fiber.Map {
	return fiber.Map{
		"id":              ident.ID,
		"email":           ident.Email,
		"displayName":     ident.DisplayName,
		"profileImageRef": ident.ProfileImageRef,
	}
}

// flowError maps flow sentinels onto HTTP statuses while keeping the
// user-facing message from the flow result.
func flowError(c *fiber.Ctx, res auth.FlowResult, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrMissingField), errors.Is(err, auth.ErrPasswordMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrNoActiveSession):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailInUse):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrNetwork):
		status = http.StatusBadGateway
	}
	return presenter.Error(c, status, res.Message)
}
