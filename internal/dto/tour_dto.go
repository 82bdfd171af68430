package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TourRequest is used for both create and partial update: nil fields are
// left untouched.
type TourRequest struct {
	Name          *string            `json:"name"`
	Summary       *string            `json:"summary"`
	Description   *string            `json:"description"`
	Duration      *int               `json:"duration"`
	MaxGroupSize  *int               `json:"maxGroupSize"`
	Difficulty    *string            `json:"difficulty"`
	Price         *float64           `json:"price"`
	Discount      *float64           `json:"discount"`
	ImageCover    *string            `json:"imageCover"`
	Images        *[]string          `json:"images"`
	StartDates    *[]time.Time       `json:"startDates"`
	SecretTour    *bool              `json:"secretTour"`
	StartLocation *models.Location   `json:"startLocation"`
	Locations     *[]models.Location `json:"locations"`
	Guides        *[]uuid.UUID       `json:"guides"`
}

// ApplyTo copies the set fields onto t. Guides are resolved by the service.
func (r *TourRequest) ApplyTo(t *models.Tour) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Summary != nil {
		t.Summary = *r.Summary
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Duration != nil {
		t.Duration = *r.Duration
	}
	if r.MaxGroupSize != nil {
		t.MaxGroupSize = *r.MaxGroupSize
	}
	if r.Difficulty != nil {
		t.Difficulty = *r.Difficulty
	}
	if r.Price != nil {
		t.Price = *r.Price
	}
	if r.Discount != nil {
		d := *r.Discount
		t.Discount = &d
	}
	if r.ImageCover != nil {
		t.ImageCover = *r.ImageCover
	}
	if r.Images != nil {
		t.Images = datatypes.NewJSONSlice(*r.Images)
	}
	if r.StartDates != nil {
		t.StartDates = datatypes.NewJSONSlice(*r.StartDates)
	}
	if r.SecretTour != nil {
		t.SecretTour = *r.SecretTour
	}
	if r.StartLocation != nil {
		t.StartLocation = datatypes.NewJSONType(*r.StartLocation)
	}
	if r.Locations != nil {
		t.Locations = datatypes.NewJSONSlice(*r.Locations)
	}
}

// TourQuery selects and shapes a tour listing.
type TourQuery struct {
	Difficulty  string
	Sort        []string
	Limit       int
	Offset      int
	WithGuides  bool
	WithReviews bool
}

type TourResponse struct {
	Status string   `json:"status"`
	Data   TourData `json:"data"`
}

type TourData struct {
	Tour *models.Tour `json:"tour"`
}

type TourListResponse struct {
	Status  string       `json:"status"`
	Results int          `json:"results"`
	Total   int64        `json:"total"`
	Data    TourListData `json:"data"`
}

type TourListData struct {
	Tours []models.Tour `json:"tours"`
}
