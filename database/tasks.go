package database

import (
	"fmt"
)

const taskColumnsSQL = "id, title, notes, completed, is_important, folder_id, due_date, created_at"

func scanTask(row scanner) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Notes, &t.Completed, &t.IsImportant, &t.FolderID, &t.DueDate, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns the user's tasks, or only those in folderID when it is
// not nil.
func (s *DataService) ListTasks(uid string, folderID *int64) ([]Task, error) {
	query := "SELECT " + taskColumnsSQL + " FROM tasks WHERE user_id = ?"
	args := []any{uid}
	if folderID != nil {
		query += " AND folder_id = ?"
		args = append(args, *folderID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *DataService) GetTask(uid string, id int64) (*Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumnsSQL+" FROM tasks WHERE id = ? AND user_id = ?", id, uid)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("failed to query task %d: %w", id, notFound(err))
	}
	return t, nil
}

// CreateTask inserts a task. An empty CreatedAt is set to now.
func (s *DataService) CreateTask(uid string, t Task) (*Task, error) {
	if t.CreatedAt == "" {
		t.CreatedAt = s.timestamp()
	}
	res, err := s.db.Exec(
		`INSERT INTO tasks (user_id, title, notes, completed, is_important, folder_id, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, t.Title, t.Notes, t.Completed, t.IsImportant, t.FolderID, t.DueDate, t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read task id: %w", err)
	}
	return s.GetTask(uid, id)
}

// UpdateTask applies the known wire fields of a patch and returns the stored
// task. Fields not in the patch are left alone.
func (s *DataService) UpdateTask(uid string, id int64, fields map[string]any) (*Task, error) {
	set, args, err := buildSet(fields, taskColumns)
	if err != nil {
		return nil, err
	}
	if set != "" {
		res, err := s.db.Exec("UPDATE tasks SET "+set+" WHERE id = ? AND user_id = ?", append(args, id, uid)...)
		if err != nil {
			return nil, fmt.Errorf("failed to update task %d: %w", id, err)
		}
		if err := checkAffected(res); err != nil {
			return nil, fmt.Errorf("failed to update task %d: %w", id, err)
		}
	}
	return s.GetTask(uid, id)
}

// DeleteTask removes the task and, through the foreign key, its files.
func (s *DataService) DeleteTask(uid string, id int64) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", id, uid)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
