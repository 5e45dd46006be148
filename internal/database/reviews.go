package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"garage/internal/models"
)

func (db *DB) CreateReview(ctx context.Context, review *models.Review) error {
	query := `INSERT INTO reviews (client_id, car_id, car_name, comment, review_date)
              VALUES (?, ?, ?, ?, ?)`
	if review.ReviewDate.IsZero() {
		review.ReviewDate = time.Now()
	}
	result, err := db.ExecContext(ctx, query,
		review.ClientID,
		review.CarID,
		review.CarName,
		review.Comment,
		review.ReviewDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	review.ID = id
	return nil
}

func (db *DB) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	query := `SELECT id, client_id, car_id, car_name, comment, review_date
              FROM reviews WHERE id = ?`
	var review models.Review
	err := db.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.ClientID, &review.CarID, &review.CarName,
		&review.Comment, &review.ReviewDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// GetCarReviews возвращает отзывы об автомобиле, новые первыми,
// с частичной проекцией клиента (только ФИО).
func (db *DB) GetCarReviews(ctx context.Context, carID int64) ([]*models.Review, error) {
	query := `SELECT r.id, r.client_id, r.car_id, r.car_name, r.comment, r.review_date,
                     u.first_name, u.last_name, u.middle_name
              FROM reviews r
              JOIN users u ON u.id = r.client_id
              WHERE r.car_id = ?
              ORDER BY r.review_date DESC`
	rows, err := db.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to get car reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		r := &models.Review{Client: &models.ReviewClient{}}
		err := rows.Scan(
			&r.ID, &r.ClientID, &r.CarID, &r.CarName, &r.Comment, &r.ReviewDate,
			&r.Client.FirstName, &r.Client.LastName, &r.Client.MiddleName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (db *DB) DeleteReview(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
