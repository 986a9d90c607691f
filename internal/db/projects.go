package db

import (
	"database/sql"
	"fmt"

	"cellplan/internal/models"
)

// CreateProject creates a new project.
func (db *DB) CreateProject(name string) (*models.Project, error) {
	id, err := db.insertID("INSERT INTO projects (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}
	return db.GetProject(id)
}

// GetProject retrieves a project by id.
func (db *DB) GetProject(id int64) (*models.Project, error) {
	p := &models.Project{}
	err := db.queryRow("SELECT id, name FROM projects WHERE id = ?", id).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns all projects.
func (db *DB) ListProjects() ([]models.Project, error) {
	rows, err := db.query("SELECT id, name FROM projects ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteProject deletes a project and all of its tasks, including their
// dependency edges and audit trails.
func (db *DB) DeleteProject(id int64) error {
	tasks, err := db.TasksByProject(id)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := db.DeleteTask(t.ID); err != nil {
			return fmt.Errorf("task %d: %w", t.ID, err)
		}
	}
	_, err = db.exec("DELETE FROM projects WHERE id = ?", id)
	return err
}
