package domain

import (
	"context"
	"time"

	"garage/internal/models"
)

// Repository описывает операции хранилища, используемые сервисами.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Reference data
	SyncReferences(ctx context.Context, data models.ReferenceData) error
	GetBodyTypes(ctx context.Context) ([]models.BodyType, error)
	GetClasses(ctx context.Context) ([]models.CarClass, error)
	GetFuelTypes(ctx context.Context) ([]models.FuelType, error)
	GetStatuses(ctx context.Context) ([]models.Status, error)

	// Cars
	QueryCars(ctx context.Context, q models.CarQuery) ([]*models.Car, error)
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	CreateCar(ctx context.Context, input models.CarInput) (*models.Car, error)
	UpdateCar(ctx context.Context, id int64, input models.CarInput) (*models.Car, error)
	DeleteCar(ctx context.Context, id int64) error

	// Rentals
	GetOverlappingRentals(ctx context.Context, carID int64, start, end time.Time, excludeID int64) ([]models.DateRange, error)
	CreateRentalWithLock(ctx context.Context, rental *models.Rental) error
	UpdateRentalWithLock(ctx context.Context, id int64, start, end time.Time, totalPrice float64) error
	GetRental(ctx context.Context, id int64) (*models.Rental, error)
	GetAllRentals(ctx context.Context) ([]*models.Rental, error)
	GetClientRentals(ctx context.Context, clientID int64) ([]*models.Rental, error)
	GetRentalsByDateRange(ctx context.Context, from, to time.Time) ([]*models.Rental, error)
	DeleteRental(ctx context.Context, id int64) error

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	GetCarReviews(ctx context.Context, carID int64) ([]*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

// RateLimiter считает события по ключу в скользящем окне.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
