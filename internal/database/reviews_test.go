package database

import (
	"context"
	"testing"
	"time"

	"garage/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "reviewer@example.com")
	car := createTestCar(t, db, "Car X", 1000)

	older := &models.Review{
		ClientID:   user.ID,
		CarID:      car.ID,
		CarName:    car.Name,
		Comment:    "Нормально",
		ReviewDate: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.CreateReview(ctx, older))

	newer := &models.Review{
		ClientID: user.ID,
		CarID:    car.ID,
		CarName:  car.Name,
		Comment:  "Отличная машина",
	}
	require.NoError(t, db.CreateReview(ctx, newer))
	assert.NotZero(t, newer.ID)
	assert.False(t, newer.ReviewDate.IsZero())

	reviews, err := db.GetCarReviews(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	// Новые отзывы первыми, с проекцией клиента
	assert.Equal(t, "Отличная машина", reviews[0].Comment)
	require.NotNil(t, reviews[0].Client)
	assert.Equal(t, "Иван", reviews[0].Client.FirstName)
}

func TestReviewDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "reviewer@example.com")
	car := createTestCar(t, db, "Car X", 1000)

	review := &models.Review{ClientID: user.ID, CarID: car.ID, CarName: car.Name, Comment: "ok"}
	require.NoError(t, db.CreateReview(ctx, review))

	require.NoError(t, db.DeleteReview(ctx, review.ID))
	assert.ErrorIs(t, db.DeleteReview(ctx, review.ID), ErrNotFound)

	_, err := db.GetReview(ctx, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
