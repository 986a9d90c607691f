package db

import (
	"database/sql"
	"errors"
	"fmt"

	"cellplan/internal/models"
)

// ErrWorkplaceInUse indicates a delete attempt on a workplace that still
// has tasks assigned.
var ErrWorkplaceInUse = errors.New("workplace has tasks assigned")

// CreateWorkplace creates a new workplace.
func (db *DB) CreateWorkplace(name string) (*models.Workplace, error) {
	id, err := db.insertID("INSERT INTO workplaces (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}
	return db.GetWorkplace(id)
}

// GetWorkplace retrieves a workplace by id.
func (db *DB) GetWorkplace(id int64) (*models.Workplace, error) {
	w := &models.Workplace{}
	err := db.queryRow("SELECT id, name FROM workplaces WHERE id = ?", id).Scan(&w.ID, &w.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("workplace %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkplaces returns all workplaces.
func (db *DB) ListWorkplaces() ([]models.Workplace, error) {
	rows, err := db.query("SELECT id, name FROM workplaces ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workplaces []models.Workplace
	for rows.Next() {
		var w models.Workplace
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, err
		}
		workplaces = append(workplaces, w)
	}
	return workplaces, rows.Err()
}

// DeleteWorkplace deletes a workplace. Refused while any task still
// references it.
func (db *DB) DeleteWorkplace(id int64) error {
	var count int
	if err := db.queryRow("SELECT COUNT(*) FROM tasks WHERE workplace_id = ?", id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("workplace %d: %w", id, ErrWorkplaceInUse)
	}
	_, err := db.exec("DELETE FROM workplaces WHERE id = ?", id)
	return err
}
