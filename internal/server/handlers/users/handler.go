package users

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/server/middleware"
	"github.com/quillcms/quill/internal/server/validation"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	authSvc        *auth.Service
	authMiddleware fiber.Handler

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(authSvc *auth.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		authSvc:        authSvc,
		authMiddleware: middleware.NewAuth(authSvc),

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/users")

	r.Use(h.errorsHandler)
	r.Post("/register", validation.DecorateWithBodyEx(h.validator, h.register))
	r.Post("/login", validation.DecorateWithBodyEx(h.validator, h.login))
	r.Put("/password", h.authMiddleware, validation.DecorateWithBodyEx(h.validator, h.changePassword))
	r.Get("/profile", h.authMiddleware, h.profile)
	r.Put("/profile", h.authMiddleware, validation.DecorateWithBodyEx(h.validator, h.updateProfile))
	r.Put("/username", h.authMiddleware, validation.DecorateWithBodyEx(h.validator, h.rename))
	r.Delete("/profile", h.authMiddleware, h.delete)
	r.Get("/permissions", h.authMiddleware, h.listPermissions)
	r.Put("/permissions", h.authMiddleware, validation.DecorateWithBodyEx(h.validator, h.changePermission))
}

func (h *Handler) register(c *fiber.Ctx, req *CredentialsRequest) error {
	if _, err := h.authSvc.Register(c.Context(), req.Username, req.Password); err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) login(c *fiber.Ctx, req *CredentialsRequest) error {
	token, err := h.authSvc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}

	return c.JSON(TokenResponse{Token: token})
}

func (h *Handler) changePassword(c *fiber.Ctx, req *PasswordRequest) error {
	actor := middleware.Account(c)

	if err := h.authSvc.ChangePassword(c.Context(), actor, req.Password); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) profile(c *fiber.Ctx) error {
	return c.JSON(newProfileResponse(middleware.Account(c)))
}

func (h *Handler) updateProfile(c *fiber.Ctx, req *ProfileRequest) error {
	actor := middleware.Account(c)

	account, err := h.authSvc.UpdateProfile(c.Context(), actor, auth.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(newProfileResponse(account))
}

func (h *Handler) rename(c *fiber.Ctx, req *RenameRequest) error {
	actor := middleware.Account(c)

	account, err := h.authSvc.Rename(c.Context(), actor, req.Username)
	if err != nil {
		return fmt.Errorf("failed to rename account: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(newProfileResponse(account))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor := middleware.Account(c)

	if err := h.authSvc.DeleteAccount(c.Context(), actor); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listPermissions(c *fiber.Ctx) error {
	actor := middleware.Account(c)

	entries, err := h.authSvc.ListPermissions(c.Context(), actor)
	if err != nil {
		return fmt.Errorf("failed to list permissions: %w", err)
	}

	return c.JSON(lo.Map(entries, func(entry auth.PermissionEntry, _ int) PermissionResponse {
		return newPermissionResponse(entry)
	}))
}

func (h *Handler) changePermission(c *fiber.Ctx, req *PermissionRequest) error {
	actor := middleware.Account(c)

	level, err := auth.ParsePermission(req.Permission)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	account, err := h.authSvc.ChangePermission(c.Context(), actor, req.ID, level)
	if err != nil {
		return fmt.Errorf("failed to change permission: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(PermissionResponse{
		ID:         account.ID,
		Username:   account.Username,
		Permission: string(account.Permission),
	})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrTokenInvalid):
		return fiber.NewError(fiber.StatusUnauthorized, "could not validate credentials")
	case errors.Is(err, auth.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
