package models

import "time"

type Car struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	BodyTypeID      int64     `json:"-"`
	ClassID         int64     `json:"-"`
	FuelTypeID      int64     `json:"-"`
	StatusID        int64     `json:"-"`
	EngineVolume    float64   `json:"engine_volume"`
	Horsepower      int64     `json:"horsepower"`
	FuelConsumption string    `json:"fuel_consumption"`
	Color           string    `json:"color"`
	PricePerDay     float64   `json:"price_per_day"`
	Photo           string    `json:"photo"`
	LastModified    time.Time `json:"last_modified"`

	// Resolved reference entities; nil when the column is NULL.
	BodyType *BodyType `json:"body_type,omitempty"`
	Class    *CarClass `json:"class,omitempty"`
	FuelType *FuelType `json:"fuel_type,omitempty"`
	Status   *Status   `json:"status,omitempty"`
}

// CarInput это тело запроса на создание/обновление автомобиля.
type CarInput struct {
	Name            string  `json:"name"`
	BodyTypeID      int64   `json:"body_type_id"`
	ClassID         int64   `json:"class_id"`
	EngineVolume    float64 `json:"engine_volume"`
	Horsepower      int64   `json:"horsepower"`
	FuelTypeID      int64   `json:"fuel_type_id"`
	FuelConsumption string  `json:"fuel_consumption"`
	Color           string  `json:"color"`
	PricePerDay     float64 `json:"price_per_day"`
	StatusID        int64   `json:"status_id"`
	Photo           string  `json:"photo"`
}

// CarFilter combines optional predicates; all set fields are AND-ed.
type CarFilter struct {
	NameContains    string
	ColorContains   string
	MinPrice        *float64
	MaxPrice        *float64
	MinEngineVolume *float64
	MaxEngineVolume *float64
	MinHorsepower   *int64
	MaxHorsepower   *int64
	BodyTypeID      *int64
	ClassID         *int64
	FuelTypeID      *int64
	Available       *bool
}

// CarQuery describes one catalog listing request.
type CarQuery struct {
	Filter CarFilter
	SortBy string
	Desc   bool
	Page   int
	Limit  int
}

// Normalize clamps pagination the same way for every caller:
// page >= 1, limit in [1, MaxPageSize] with DefaultPageSize fallback.
func (q *CarQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > MaxPageSize {
		q.Limit = DefaultPageSize
	}
	if q.SortBy == "" {
		q.SortBy = "name"
	}
}
