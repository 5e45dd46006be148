package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"garage/internal/auth"
	"garage/internal/database"
	"garage/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()

	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return tm
}

func signupUser(t *testing.T, svc *AuthService, email, role string) *models.User {
	t.Helper()

	user, _, err := svc.Signup(context.Background(), SignupInput{
		Email:     email,
		Password:  "password123",
		FirstName: "Иван",
		LastName:  "Петров",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}

func createCar(t *testing.T, svc *CarService, name string, price float64) *models.Car {
	t.Helper()

	car, err := svc.CreateCar(context.Background(), models.CarInput{
		Name:        name,
		Color:       "белый",
		PricePerDay: price,
	})
	require.NoError(t, err)
	return car
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
