package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testEnv struct {
	db      *gorm.DB
	cfg     *config.Config
	tokens  *TokenService
	auth    *AuthService
	tours   *TourService
	reviews *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.New(t)
	cfg := &config.Config{
		JWTSecret:    testSecret,
		JWTExpiresIn: 90 * 24 * time.Hour,
		AdminEmails:  "admin@example.com",
	}
	tokens := NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	return &testEnv{
		db:      db,
		cfg:     cfg,
		tokens:  tokens,
		auth:    NewAuthService(db, cfg, tokens),
		tours:   NewTourService(db),
		reviews: NewReviewService(db),
	}
}

// createUser inserts a user directly, bypassing signup.
func (e *testEnv) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		ID:       uuid.New(),
		Name:     "Test " + role,
		Email:    email,
		Photo:    "user.jpg",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func ptr[T any](v T) *T { return &v }

func tourRequest(name string) *dto.TourRequest {
	return &dto.TourRequest{
		Name:         ptr(name),
		Summary:      ptr("Breathtaking hike through the forest"),
		Description:  ptr("A long description of the tour."),
		Duration:     ptr(7),
		MaxGroupSize: ptr(25),
		Difficulty:   ptr(models.DifficultyEasy),
		Price:        ptr(397.0),
		ImageCover:   ptr("tour-1-cover.jpg"),
		Images:       ptr([]string{"tour-1-1.jpg", "tour-1-2.jpg"}),
		StartLocation: &models.Location{
			Coordinates: []float64{-116.214531, 51.417611},
			Address:     "Banff, CAN",
			Description: "Banff National Park",
		},
		Locations: &[]models.Location{
			{Coordinates: []float64{-116.214531, 51.417611}, Description: "Banff", Day: 1},
		},
	}
}

func (e *testEnv) createTour(t *testing.T, req *dto.TourRequest) *models.Tour {
	t.Helper()
	tour, err := e.tours.Create(context.Background(), req)
	require.NoError(t, err)
	return tour
}
