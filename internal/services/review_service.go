package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create stores a review and refreshes the tour's rating aggregates in the
// same transaction.
func (s *ReviewService) Create(ctx context.Context, tourID, userID uuid.UUID, req *dto.CreateReviewRequest) (*models.Review, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	review := models.Review{
		ID:     uuid.New(),
		Review: req.Review,
		Rating: req.Rating,
		TourID: tourID,
		UserID: userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tour{}).Where("id = ?", tourID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTourNotFound
		}

		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return refreshRatings(tx, tourID)
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrReviewExists
		case errors.Is(err, ErrTourNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to create review: %w", err)
		}
	}
	return &review, nil
}

func (s *ReviewService) ListForTour(ctx context.Context, tourID uuid.UUID) ([]models.Review, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tour{}).Where("id = ?", tourID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to load tour: %w", err)
	}
	if count == 0 {
		return nil, ErrTourNotFound
	}

	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).Where("tour_id = ?", tourID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// refreshRatings recomputes ratingsAverage (one decimal, 5 when there are
// no reviews) and ratingsQuantity of a tour.
func refreshRatings(tx *gorm.DB, tourID uuid.UUID) error {
	var stats struct {
		Quantity int64
		Average  float64
	}
	err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS quantity, COALESCE(AVG(rating), 0) AS average").
		Where("tour_id = ?", tourID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	avg := 5.0
	if stats.Quantity > 0 {
		avg = math.Round(stats.Average*10) / 10
	}
	return tx.Model(&models.Tour{}).Where("id = ?", tourID).Updates(map[string]interface{}{
		"ratings_average":  avg,
		"ratings_quantity": stats.Quantity,
	}).Error
}
