package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewRefreshesRatings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tour := env.createTour(t, tourRequest("The Forest Hiker"))
	alice := env.createUser(t, "alice@example.com", models.RoleUser)
	bob := env.createUser(t, "bob@example.com", models.RoleUser)

	_, err := env.reviews.Create(ctx, tour.ID, alice.ID, &dto.CreateReviewRequest{Review: "Amazing", Rating: 5})
	require.NoError(t, err)
	_, err = env.reviews.Create(ctx, tour.ID, bob.ID, &dto.CreateReviewRequest{Review: "Okay", Rating: 2})
	require.NoError(t, err)

	got, err := env.tours.Get(ctx, tour.ID.String(), false, true)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.RatingsAverage)
	assert.Equal(t, 2, got.RatingsQuantity)
	require.Len(t, got.Reviews, 2)
	for _, r := range got.Reviews {
		assert.NotEmpty(t, r.Review)
		assert.Equal(t, tour.ID, r.TourID)
	}

	reviews, err := env.reviews.ListForTour(ctx, tour.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestCreateReviewOncePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tour := env.createTour(t, tourRequest("The Forest Hiker"))
	alice := env.createUser(t, "alice@example.com", models.RoleUser)

	_, err := env.reviews.Create(ctx, tour.ID, alice.ID, &dto.CreateReviewRequest{Review: "Amazing", Rating: 5})
	require.NoError(t, err)

	_, err = env.reviews.Create(ctx, tour.ID, alice.ID, &dto.CreateReviewRequest{Review: "Again", Rating: 1})
	assert.ErrorIs(t, err, ErrReviewExists)

	got, err := env.tours.Get(ctx, tour.ID.String(), false, false)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.RatingsAverage)
	assert.Equal(t, 1, got.RatingsQuantity)
}

func TestCreateReviewUnknownTour(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reviews.Create(context.Background(), uuid.New(), uuid.New(), &dto.CreateReviewRequest{Review: "?", Rating: 3})
	assert.ErrorIs(t, err, ErrTourNotFound)

	_, err = env.reviews.ListForTour(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	tour := env.createTour(t, tourRequest("The Forest Hiker"))

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviews.Create(context.Background(), tour.ID, uuid.New(), &dto.CreateReviewRequest{Review: "x", Rating: rating})
		var verrs validation.Errors
		assert.True(t, errors.As(err, &verrs), "rating %d: got %v", rating, err)
	}
}
