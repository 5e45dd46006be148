package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"garage/internal/models"
)

const carSelectColumns = `c.id, c.name, c.engine_volume, c.horsepower, c.fuel_consumption,
       c.color, c.price_per_day, c.photo, c.last_modified,
       bt.id, bt.type_name, cl.id, cl.class_name, ft.id, ft.fuel_type, st.id, st.status`

const carSelectJoins = ` FROM cars c
       LEFT JOIN body_types bt ON bt.id = c.body_type_id
       LEFT JOIN classes cl ON cl.id = c.class_id
       LEFT JOIN fuel_types ft ON ft.id = c.fuel_type_id
       LEFT JOIN statuses st ON st.id = c.status_id`

// QueryCars возвращает страницу каталога по фильтру и сортировке.
// Все установленные предикаты фильтра комбинируются через AND.
func (db *DB) QueryCars(ctx context.Context, q models.CarQuery) ([]*models.Car, error) {
	q.Normalize()

	orderCol, ok := models.CarSortFields[q.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSortField, q.SortBy)
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}

	where, args := buildCarFilter(q.Filter)

	query := `SELECT ` + carSelectColumns + carSelectJoins + where +
		fmt.Sprintf(" ORDER BY %s %s, c.id ASC LIMIT ? OFFSET ?", orderCol, direction)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func buildCarFilter(f models.CarFilter) (string, []interface{}) {
	conds := []string{"1=1"}
	var args []interface{}

	if f.NameContains != "" {
		conds = append(conds, "c.name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+f.NameContains+"%")
	}
	if f.ColorContains != "" {
		conds = append(conds, "c.color LIKE ? COLLATE NOCASE")
		args = append(args, "%"+f.ColorContains+"%")
	}
	if f.MinPrice != nil {
		conds = append(conds, "c.price_per_day >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "c.price_per_day <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinEngineVolume != nil {
		conds = append(conds, "c.engine_volume >= ?")
		args = append(args, *f.MinEngineVolume)
	}
	if f.MaxEngineVolume != nil {
		conds = append(conds, "c.engine_volume <= ?")
		args = append(args, *f.MaxEngineVolume)
	}
	if f.MinHorsepower != nil {
		conds = append(conds, "c.horsepower >= ?")
		args = append(args, *f.MinHorsepower)
	}
	if f.MaxHorsepower != nil {
		conds = append(conds, "c.horsepower <= ?")
		args = append(args, *f.MaxHorsepower)
	}
	if f.BodyTypeID != nil {
		conds = append(conds, "c.body_type_id = ?")
		args = append(args, *f.BodyTypeID)
	}
	if f.ClassID != nil {
		conds = append(conds, "c.class_id = ?")
		args = append(args, *f.ClassID)
	}
	if f.FuelTypeID != nil {
		conds = append(conds, "c.fuel_type_id = ?")
		args = append(args, *f.FuelTypeID)
	}
	if f.Available != nil {
		conds = append(conds, "st.status = ?")
		args = append(args, *f.Available)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (db *DB) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + carSelectColumns + carSelectJoins + ` WHERE c.id = ?`
	row := db.QueryRowContext(ctx, query, id)
	car, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*models.Car, error) {
	var (
		car      models.Car
		btID     sql.NullInt64
		btName   sql.NullString
		clID     sql.NullInt64
		clName   sql.NullString
		ftID     sql.NullInt64
		ftName   sql.NullString
		stID     sql.NullInt64
		stStatus sql.NullBool
	)

	err := row.Scan(
		&car.ID, &car.Name, &car.EngineVolume, &car.Horsepower, &car.FuelConsumption,
		&car.Color, &car.PricePerDay, &car.Photo, &car.LastModified,
		&btID, &btName, &clID, &clName, &ftID, &ftName, &stID, &stStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan car: %w", err)
	}

	if btID.Valid {
		car.BodyTypeID = btID.Int64
		car.BodyType = &models.BodyType{ID: btID.Int64, TypeName: btName.String}
	}
	if clID.Valid {
		car.ClassID = clID.Int64
		car.Class = &models.CarClass{ID: clID.Int64, ClassName: clName.String}
	}
	if ftID.Valid {
		car.FuelTypeID = ftID.Int64
		car.FuelType = &models.FuelType{ID: ftID.Int64, FuelType: ftName.String}
	}
	if stID.Valid {
		car.StatusID = stID.Int64
		car.Status = &models.Status{ID: stID.Int64, Available: stStatus.Bool}
	}

	return &car, nil
}

func (db *DB) CreateCar(ctx context.Context, input models.CarInput) (*models.Car, error) {
	query := `INSERT INTO cars (name, body_type_id, class_id, engine_volume, horsepower,
                fuel_type_id, fuel_consumption, color, price_per_day, status_id, photo, last_modified)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		input.Name,
		nullableID(input.BodyTypeID),
		nullableID(input.ClassID),
		input.EngineVolume,
		input.Horsepower,
		nullableID(input.FuelTypeID),
		input.FuelConsumption,
		input.Color,
		input.PricePerDay,
		nullableID(input.StatusID),
		input.Photo,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return db.GetCar(ctx, id)
}

func (db *DB) UpdateCar(ctx context.Context, id int64, input models.CarInput) (*models.Car, error) {
	query := `UPDATE cars SET name = ?, body_type_id = ?, class_id = ?, engine_volume = ?,
                horsepower = ?, fuel_type_id = ?, fuel_consumption = ?, color = ?,
                price_per_day = ?, status_id = ?, photo = ?, last_modified = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		input.Name,
		nullableID(input.BodyTypeID),
		nullableID(input.ClassID),
		input.EngineVolume,
		input.Horsepower,
		nullableID(input.FuelTypeID),
		input.FuelConsumption,
		input.Color,
		input.PricePerDay,
		nullableID(input.StatusID),
		input.Photo,
		time.Now(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return db.GetCar(ctx, id)
}

func (db *DB) DeleteCar(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableID преобразует нулевой id в NULL для необязательных ссылок.
func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
