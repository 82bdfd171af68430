package dto

import "github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"

type CreateReviewRequest struct {
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
}

type ReviewResponse struct {
	Status string     `json:"status"`
	Data   ReviewData `json:"data"`
}

type ReviewData struct {
	Review *models.Review `json:"review"`
}

type ReviewListResponse struct {
	Status  string         `json:"status"`
	Results int            `json:"results"`
	Data    ReviewListData `json:"data"`
}

type ReviewListData struct {
	Reviews []models.Review `json:"reviews"`
}
