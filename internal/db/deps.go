package db

import "database/sql"

// Parent returns the parent task id of taskID, or nil for a root.
func (db *DB) Parent(taskID int64) (*int64, error) {
	var parentID int64
	err := db.queryRow(`
		SELECT parent_id FROM task_dependencies WHERE task_id = ?
	`, taskID).Scan(&parentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parentID, nil
}

// Children returns the direct children of parentID, oldest first.
func (db *DB) Children(parentID int64) ([]int64, error) {
	rows, err := db.query(`
		SELECT task_id FROM task_dependencies WHERE parent_id = ? ORDER BY task_id
	`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetParent records taskID as a child of parentID. A task has at most one
// parent; an existing edge is replaced.
func (db *DB) SetParent(taskID, parentID int64) error {
	if _, err := db.exec("DELETE FROM task_dependencies WHERE task_id = ?", taskID); err != nil {
		return err
	}
	_, err := db.exec(`
		INSERT INTO task_dependencies (task_id, parent_id) VALUES (?, ?)
	`, taskID, parentID)
	return err
}

// RemoveParent detaches taskID from its parent, making it a root.
func (db *DB) RemoveParent(taskID int64) error {
	_, err := db.exec("DELETE FROM task_dependencies WHERE task_id = ?", taskID)
	return err
}
