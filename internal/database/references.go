package database

import (
	"context"
	"fmt"

	"garage/internal/models"
)

// SyncReferences идемпотентно заливает справочники из конфигурации.
// Существующие строки (по уникальному имени/флагу) не трогаются.
func (db *DB) SyncReferences(ctx context.Context, data models.ReferenceData) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, bt := range data.BodyTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO body_types (type_name) VALUES (?)`, bt.TypeName); err != nil {
			return fmt.Errorf("failed to sync body type %q: %w", bt.TypeName, err)
		}
	}
	for _, cl := range data.Classes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO classes (class_name) VALUES (?)`, cl.ClassName); err != nil {
			return fmt.Errorf("failed to sync class %q: %w", cl.ClassName, err)
		}
	}
	for _, ft := range data.FuelTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO fuel_types (fuel_type) VALUES (?)`, ft.FuelType); err != nil {
			return fmt.Errorf("failed to sync fuel type %q: %w", ft.FuelType, err)
		}
	}
	for _, st := range data.Statuses {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO statuses (status) VALUES (?)`, st.Available); err != nil {
			return fmt.Errorf("failed to sync status %v: %w", st.Available, err)
		}
	}

	return tx.Commit()
}

func (db *DB) GetBodyTypes(ctx context.Context) ([]models.BodyType, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, type_name FROM body_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get body types: %w", err)
	}
	defer rows.Close()

	var out []models.BodyType
	for rows.Next() {
		var bt models.BodyType
		if err := rows.Scan(&bt.ID, &bt.TypeName); err != nil {
			return nil, fmt.Errorf("failed to scan body type: %w", err)
		}
		out = append(out, bt)
	}
	return out, rows.Err()
}

func (db *DB) GetClasses(ctx context.Context) ([]models.CarClass, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, class_name FROM classes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes: %w", err)
	}
	defer rows.Close()

	var out []models.CarClass
	for rows.Next() {
		var cl models.CarClass
		if err := rows.Scan(&cl.ID, &cl.ClassName); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (db *DB) GetFuelTypes(ctx context.Context) ([]models.FuelType, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, fuel_type FROM fuel_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get fuel types: %w", err)
	}
	defer rows.Close()

	var out []models.FuelType
	for rows.Next() {
		var ft models.FuelType
		if err := rows.Scan(&ft.ID, &ft.FuelType); err != nil {
			return nil, fmt.Errorf("failed to scan fuel type: %w", err)
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

func (db *DB) GetStatuses(ctx context.Context) ([]models.Status, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, status FROM statuses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get statuses: %w", err)
	}
	defer rows.Close()

	var out []models.Status
	for rows.Next() {
		var st models.Status
		if err := rows.Scan(&st.ID, &st.Available); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
