package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("Invalid tour ID")
	}

	reviews, err := h.reviewService.ListForTour(c.UserContext(), tourID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(dto.ReviewListResponse{
		Status:  dto.StatusSuccess,
		Results: len(reviews),
		Data:    dto.ReviewListData{Reviews: reviews},
	})
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("Invalid tour ID")
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	user := middleware.CurrentUser(c)
	review, err := h.reviewService.Create(c.UserContext(), tourID, user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ReviewResponse{
		Status: dto.StatusSuccess,
		Data:   dto.ReviewData{Review: review},
	})
}
