package db

import (
	"database/sql"
	"fmt"
	"time"

	"cellplan/internal/dates"
	"cellplan/internal/models"
)

const taskColumns = `id, project_id, workplace_id, hours, capacity_mode,
	start_date, end_date, status, notes, bodies_count, is_active, custom_start`

// scanTask reads one task row. Dates are stored as ISO text and come back
// as midnight-UTC times.
func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	var start, end sql.NullString
	err := row.Scan(&t.ID, &t.ProjectID, &t.WorkplaceID, &t.Hours, &t.Mode,
		&start, &end, &t.Status, &t.Notes, &t.BodiesCount, &t.IsActive, &t.CustomStart)
	if err != nil {
		return nil, err
	}
	if t.StartDate, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("task %d start_date: %w", t.ID, err)
	}
	if t.EndDate, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("task %d end_date: %w", t.ID, err)
	}
	return t, nil
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := dates.ParseISO(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// dateArg converts a nil-able date into its stored form.
func dateArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(dates.ISO)
}

// InsertTask inserts a task and returns its id.
func (db *DB) InsertTask(t *models.Task) (int64, error) {
	return db.insertID(`
		INSERT INTO tasks (project_id, workplace_id, hours, capacity_mode,
			start_date, end_date, status, notes, bodies_count, is_active, custom_start)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ProjectID, t.WorkplaceID, t.Hours, string(t.Mode),
		dateArg(t.StartDate), dateArg(t.EndDate), string(t.Status),
		t.Notes, t.BodiesCount, t.IsActive, t.CustomStart)
}

// GetTask retrieves a task by id.
func (db *DB) GetTask(id int64) (*models.Task, error) {
	t, err := scanTask(db.queryRow(`
		SELECT `+taskColumns+` FROM tasks WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return t, err
}

// TasksByProject returns all tasks of a project, oldest first.
func (db *DB) TasksByProject(projectID int64) ([]models.Task, error) {
	return db.listTasks(`
		SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id
	`, projectID)
}

// DatedTasks returns every task with both dates set.
func (db *DB) DatedTasks() ([]models.Task, error) {
	return db.listTasks(`
		SELECT ` + taskColumns + ` FROM tasks
		WHERE start_date IS NOT NULL AND end_date IS NOT NULL
		ORDER BY id
	`)
}

// DatedTasksOnWorkplace returns every dated task on a workplace except the
// one with excludeID. Pass 0 to exclude nothing.
func (db *DB) DatedTasksOnWorkplace(workplaceID, excludeID int64) ([]models.Task, error) {
	return db.listTasks(`
		SELECT `+taskColumns+` FROM tasks
		WHERE workplace_id = ? AND id != ?
		  AND start_date IS NOT NULL AND end_date IS NOT NULL
		ORDER BY id
	`, workplaceID, excludeID)
}

func (db *DB) listTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := db.query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTaskField sets one column of a task. Date fields take *time.Time
// (or nil to clear); everything else takes its natural Go value.
func (db *DB) UpdateTaskField(id int64, field string, value any) error {
	switch field {
	case "hours", "capacity_mode", "start_date", "end_date",
		"status", "notes", "bodies_count", "is_active", "custom_start", "workplace_id":
	default:
		return fmt.Errorf("unknown task field %q", field)
	}
	if d, ok := value.(*time.Time); ok {
		value = dateArg(d)
	}
	_, err := db.exec(`UPDATE tasks SET `+field+` = ? WHERE id = ?`, value, id)
	return err
}

// DeleteTask deletes a task together with its dependency edges (both
// directions) and its audit trail.
func (db *DB) DeleteTask(id int64) error {
	if _, err := db.exec("DELETE FROM change_log WHERE task_id = ?", id); err != nil {
		return err
	}
	if _, err := db.exec("DELETE FROM task_dependencies WHERE task_id = ? OR parent_id = ?", id, id); err != nil {
		return err
	}
	_, err := db.exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}

// ApplySchedule writes a batch of computed start/end dates in a single
// transaction, appending one audit entry per update. Either the whole
// subtree recomputation lands or none of it does.
func (db *DB) ApplySchedule(updates []models.ScheduleUpdate, actor string) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range updates {
		if u.WriteStart {
			if _, err := tx.Exec(db.rebind(`UPDATE tasks SET start_date = ? WHERE id = ?`),
				dateArg(u.Start), u.TaskID); err != nil {
				return fmt.Errorf("task %d: %w", u.TaskID, err)
			}
		}
		if _, err := tx.Exec(db.rebind(`UPDATE tasks SET end_date = ? WHERE id = ?`),
			dateArg(u.End), u.TaskID); err != nil {
			return fmt.Errorf("task %d: %w", u.TaskID, err)
		}
		entry := newChangeEntry(u.TaskID, u.Note, actor)
		if err := insertChange(tx, db, entry); err != nil {
			return fmt.Errorf("task %d audit: %w", u.TaskID, err)
		}
	}
	return tx.Commit()
}
