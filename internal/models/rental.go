package models

import "time"

type Rental struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	CarID      int64     `json:"car_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`

	// Display joins for listings.
	Car    *RentalCar    `json:"car,omitempty"`
	Client *RentalClient `json:"client,omitempty"`
}

// RentalCar is the car projection attached to rental listings.
type RentalCar struct {
	Name        string  `json:"name"`
	PricePerDay float64 `json:"price_per_day"`
}

// RentalClient is the client projection attached to rental listings.
type RentalClient struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DateRange is a closed booking interval. Two ranges conflict when
// s1 <= e2 && e1 >= s2 (touching endpoints count).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the closed intervals intersect.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// RentalDays возвращает количество полных суток аренды.
func RentalDays(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours() / 24)
}
