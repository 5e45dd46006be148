package database

import "errors"

var (
	// ErrNotFound запись отсутствует в хранилище.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken пользователь с такой почтой уже существует.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrCarUnavailable is returned when the insert-time overlap check
	// finds a conflicting rental for the requested dates.
	ErrCarUnavailable = errors.New("car is not available for the requested dates")

	// ErrInvalidDateRange начало аренды должно быть раньше конца.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrInvalidSortField поле сортировки вне белого списка.
	ErrInvalidSortField = errors.New("unknown sort field")
)
