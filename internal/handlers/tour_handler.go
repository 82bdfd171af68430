package handlers

import (
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TourHandler struct {
	tourService *services.TourService
}

func NewTourHandler(tourService *services.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// List serves GET /tours?difficulty=&sort=price,-ratingsAverage&limit=&offset=&include=guides,reviews
func (h *TourHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	withGuides, withReviews := parseInclude(c.Query("include"))

	q := &dto.TourQuery{
		Difficulty:  c.Query("difficulty"),
		Sort:        splitList(c.Query("sort")),
		Limit:       limit,
		Offset:      offset,
		WithGuides:  withGuides,
		WithReviews: withReviews,
	}

	tours, total, err := h.tourService.List(c.UserContext(), q)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(dto.TourListResponse{
		Status:  dto.StatusSuccess,
		Results: len(tours),
		Total:   total,
		Data:    dto.TourListData{Tours: tours},
	})
}

// Get populates guides and reviews unless ?include= narrows it.
func (h *TourHandler) Get(c *fiber.Ctx) error {
	withGuides, withReviews := true, true
	if raw := c.Query("include", "*"); raw != "*" {
		withGuides, withReviews = parseInclude(raw)
	}

	tour, err := h.tourService.Get(c.UserContext(), c.Params("id"), withGuides, withReviews)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(dto.TourResponse{
		Status: dto.StatusSuccess,
		Data:   dto.TourData{Tour: tour},
	})
}

func (h *TourHandler) Create(c *fiber.Ctx) error {
	var req dto.TourRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	tour, err := h.tourService.Create(c.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TourResponse{
		Status: dto.StatusSuccess,
		Data:   dto.TourData{Tour: tour},
	})
}

func (h *TourHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("Invalid tour ID")
	}

	var req dto.TourRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	tour, err := h.tourService.Update(c.UserContext(), id, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(dto.TourResponse{
		Status: dto.StatusSuccess,
		Data:   dto.TourData{Tour: tour},
	})
}

func (h *TourHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("Invalid tour ID")
	}

	if err := h.tourService.Delete(c.UserContext(), id); err != nil {
		return toHTTPError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseInclude(raw string) (withGuides, withReviews bool) {
	for _, part := range splitList(raw) {
		switch part {
		case "guides":
			withGuides = true
		case "reviews":
			withReviews = true
		}
	}
	return withGuides, withReviews
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
