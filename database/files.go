package database

import (
	"fmt"

	"github.com/CrowderSoup/godolist/models"
)

// ListFiles returns the metadata of a task's files. A task of another user
// yields ErrNotFound.
func (s *DataService) ListFiles(uid string, taskID int64) ([]models.File, error) {
	if _, err := s.GetTask(uid, taskID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT id, task_id, filename, size FROM task_files WHERE task_id = ? ORDER BY id", taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.TaskID, &f.Filename, &f.Size); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// FileContent is a stored file with its bytes.
type FileContent struct {
	models.File
	Content []byte
}

// ListFileContents returns a task's files with their content, oldest first.
func (s *DataService) ListFileContents(uid string, taskID int64) ([]FileContent, error) {
	if _, err := s.GetTask(uid, taskID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT id, task_id, filename, size, content FROM task_files WHERE task_id = ? ORDER BY id", taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []FileContent
	for rows.Next() {
		var f FileContent
		if err := rows.Scan(&f.ID, &f.TaskID, &f.Filename, &f.Size, &f.Content); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// CreateFile stores content as an attachment of the task.
func (s *DataService) CreateFile(uid string, taskID int64, filename string, content []byte) (*models.File, error) {
	if _, err := s.GetTask(uid, taskID); err != nil {
		return nil, err
	}
	res, err := s.db.Exec(
		"INSERT INTO task_files (task_id, filename, content, size, created_at) VALUES (?, ?, ?, ?, ?)",
		taskID, filename, content, len(content), s.timestamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read file id: %w", err)
	}
	return &models.File{ID: id, TaskID: taskID, Filename: filename, Size: int64(len(content))}, nil
}

// GetFile returns a file's metadata and content.
func (s *DataService) GetFile(uid string, fileID int64) (*models.File, []byte, error) {
	var f models.File
	var content []byte
	err := s.db.QueryRow(
		`SELECT f.id, f.task_id, f.filename, f.size, f.content
		FROM task_files f JOIN tasks t ON t.id = f.task_id
		WHERE f.id = ? AND t.user_id = ?`,
		fileID, uid,
	).Scan(&f.ID, &f.TaskID, &f.Filename, &f.Size, &content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query file %d: %w", fileID, notFound(err))
	}
	return &f, content, nil
}

func (s *DataService) DeleteFile(uid string, fileID int64) error {
	res, err := s.db.Exec(
		`DELETE FROM task_files WHERE id = ?
		AND task_id IN (SELECT id FROM tasks WHERE user_id = ?)`,
		fileID, uid,
	)
	if err != nil {
		return fmt.Errorf("failed to delete file %d: %w", fileID, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete file %d: %w", fileID, err)
	}
	return nil
}
