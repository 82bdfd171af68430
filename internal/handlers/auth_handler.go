package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	res, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.SignupResponse{
		Status: dto.StatusSuccess,
		Token:  res.Token,
		Data:   dto.UserData{User: res.User},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	res, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.TokenResponse{
		Status: dto.StatusSuccess,
		Token:  res.Token,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.UserResponse{
		Status: dto.StatusSuccess,
		Data:   dto.UserData{User: middleware.CurrentUser(c)},
	})
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	user := middleware.CurrentUser(c)
	res, err := h.authService.UpdatePassword(c.UserContext(), user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(dto.TokenResponse{
		Status: dto.StatusSuccess,
		Token:  res.Token,
	})
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	users, err := h.authService.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(dto.UserListResponse{
		Status:  dto.StatusSuccess,
		Results: len(users),
		Data:    dto.UserListData{Users: users},
	})
}
