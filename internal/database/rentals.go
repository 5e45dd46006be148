package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"garage/internal/models"
)

// GetOverlappingRentals возвращает все интервалы аренды автомобиля,
// пересекающиеся с запрошенным закрытым интервалом [start, end].
// Касание границ считается пересечением.
func (db *DB) GetOverlappingRentals(ctx context.Context, carID int64, start, end time.Time, excludeID int64) ([]models.DateRange, error) {
	query := `SELECT start_date, end_date FROM rentals
              WHERE car_id = ? AND start_date <= ? AND end_date >= ? AND id != ?
              ORDER BY start_date`
	rows, err := db.QueryContext(ctx, query, carID,
		end.Format(models.DateLayout), start.Format(models.DateLayout), excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get overlapping rentals: %w", err)
	}
	defer rows.Close()

	var conflicts []models.DateRange
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan rental dates: %w", err)
		}
		r, err := parseDateRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, r)
	}
	return conflicts, rows.Err()
}

// CreateRentalWithLock выполняет проверку пересечений и вставку в одной
// транзакции. Из двух конкурентных заявок на пересекающиеся даты
// зафиксируется ровно одна, вторая получит ErrCarUnavailable.
func (db *DB) CreateRentalWithLock(ctx context.Context, rental *models.Rental) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Проверка пересечений внутри транзакции
	var overlapCount int
	queryCount := `SELECT COUNT(*) FROM rentals WHERE car_id = ? AND start_date <= ? AND end_date >= ?`
	err = tx.QueryRowContext(ctx, queryCount, rental.CarID,
		rental.EndDate.Format(models.DateLayout), rental.StartDate.Format(models.DateLayout)).Scan(&overlapCount)
	if err != nil {
		return fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if overlapCount > 0 {
		return ErrCarUnavailable
	}

	// 2. Вставка аренды
	queryInsert := `INSERT INTO rentals (client_id, car_id, start_date, end_date, total_price, created_at)
                    VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, queryInsert,
		rental.ClientID,
		rental.CarID,
		rental.StartDate.Format(models.DateLayout),
		rental.EndDate.Format(models.DateLayout),
		rental.TotalPrice,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rental in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	rental.ID = id
	rental.CreatedAt = now

	return tx.Commit()
}

// UpdateRentalWithLock меняет даты и стоимость аренды, повторяя проверку
// пересечений в той же транзакции. Сама запись из проверки исключается.
func (db *DB) UpdateRentalWithLock(ctx context.Context, id int64, start, end time.Time, totalPrice float64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var carID int64
	err = tx.QueryRowContext(ctx, `SELECT car_id FROM rentals WHERE id = ?`, id).Scan(&carID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get rental in tx: %w", err)
	}

	var overlapCount int
	queryCount := `SELECT COUNT(*) FROM rentals WHERE car_id = ? AND start_date <= ? AND end_date >= ? AND id != ?`
	err = tx.QueryRowContext(ctx, queryCount, carID,
		end.Format(models.DateLayout), start.Format(models.DateLayout), id).Scan(&overlapCount)
	if err != nil {
		return fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if overlapCount > 0 {
		return ErrCarUnavailable
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE rentals SET start_date = ?, end_date = ?, total_price = ? WHERE id = ?`,
		start.Format(models.DateLayout), end.Format(models.DateLayout), totalPrice, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update rental in tx: %w", err)
	}

	return tx.Commit()
}

func (db *DB) GetRental(ctx context.Context, id int64) (*models.Rental, error) {
	query := `SELECT id, client_id, car_id, start_date, end_date, total_price, created_at
              FROM rentals WHERE id = ?`
	var (
		rental   models.Rental
		startStr string
		endStr   string
	)
	err := db.QueryRowContext(ctx, query, id).Scan(
		&rental.ID, &rental.ClientID, &rental.CarID, &startStr, &endStr,
		&rental.TotalPrice, &rental.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}

	r, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	rental.StartDate, rental.EndDate = r.Start, r.End
	return &rental, nil
}

const rentalListQuery = `SELECT r.id, r.client_id, r.car_id, r.start_date, r.end_date,
              r.total_price, r.created_at, c.name, c.price_per_day,
              u.email, u.first_name, u.last_name
       FROM rentals r
       JOIN cars c ON c.id = r.car_id
       JOIN users u ON u.id = r.client_id`

// GetAllRentals возвращает все аренды (для администратора), новые первыми.
func (db *DB) GetAllRentals(ctx context.Context) ([]*models.Rental, error) {
	return db.queryRentals(ctx, rentalListQuery+` ORDER BY r.created_at DESC`)
}

// GetClientRentals возвращает аренды одного клиента, новые первыми.
func (db *DB) GetClientRentals(ctx context.Context, clientID int64) ([]*models.Rental, error) {
	return db.queryRentals(ctx, rentalListQuery+` WHERE r.client_id = ? ORDER BY r.created_at DESC`, clientID)
}

// GetRentalsByDateRange возвращает аренды, пересекающиеся с периодом (для отчётов).
func (db *DB) GetRentalsByDateRange(ctx context.Context, from, to time.Time) ([]*models.Rental, error) {
	return db.queryRentals(ctx,
		rentalListQuery+` WHERE r.start_date <= ? AND r.end_date >= ? ORDER BY r.start_date ASC`,
		to.Format(models.DateLayout), from.Format(models.DateLayout))
}

func (db *DB) queryRentals(ctx context.Context, query string, args ...interface{}) ([]*models.Rental, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	var rentals []*models.Rental
	for rows.Next() {
		r := &models.Rental{Car: &models.RentalCar{}, Client: &models.RentalClient{}}
		var startStr, endStr string
		err := rows.Scan(
			&r.ID, &r.ClientID, &r.CarID, &startStr, &endStr,
			&r.TotalPrice, &r.CreatedAt, &r.Car.Name, &r.Car.PricePerDay,
			&r.Client.Email, &r.Client.FirstName, &r.Client.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental: %w", err)
		}
		dr, err := parseDateRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		r.StartDate, r.EndDate = dr.Start, dr.End
		rentals = append(rentals, r)
	}
	return rentals, rows.Err()
}

func (db *DB) DeleteRental(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rentals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rental: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func parseDateRange(startStr, endStr string) (models.DateRange, error) {
	start, err := time.Parse(models.DateLayout, startStr)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("failed to parse rental start date %s: %w", startStr, err)
	}
	end, err := time.Parse(models.DateLayout, endStr)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("failed to parse rental end date %s: %w", endStr, err)
	}
	return models.DateRange{Start: start, End: end}, nil
}
