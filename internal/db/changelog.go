package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"cellplan/internal/models"
)

func newChangeEntry(taskID int64, description, actor string) models.ChangeEntry {
	return models.ChangeEntry{
		ID:          uuid.New().String(),
		TaskID:      taskID,
		ChangeTime:  time.Now().UTC(),
		Description: description,
		ChangedBy:   actor,
	}
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertChange(e execer, db *DB, entry models.ChangeEntry) error {
	_, err := e.Exec(db.rebind(`
		INSERT INTO change_log (id, task_id, change_time, description, changed_by)
		VALUES (?, ?, ?, ?, ?)
	`), entry.ID, entry.TaskID, entry.ChangeTime.Format(time.RFC3339), entry.Description, entry.ChangedBy)
	return err
}

// AppendChange appends one audit record for a task.
func (db *DB) AppendChange(taskID int64, description, actor string) error {
	return insertChange(db.DB, db, newChangeEntry(taskID, description, actor))
}

// ChangesForTask returns the audit trail of a task, oldest first.
func (db *DB) ChangesForTask(taskID int64) ([]models.ChangeEntry, error) {
	rows, err := db.query(`
		SELECT id, task_id, change_time, description, changed_by
		FROM change_log WHERE task_id = ? ORDER BY change_time
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ChangeEntry
	for rows.Next() {
		var e models.ChangeEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.TaskID, &ts, &e.Description, &e.ChangedBy); err != nil {
			return nil, err
		}
		if e.ChangeTime, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
