package database

import (
	"fmt"
)

const folderColumnsSQL = "id, name, due_date, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanFolder(row scanner) (*Folder, error) {
	var f Folder
	if err := row.Scan(&f.ID, &f.Name, &f.DueDate, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFolders returns the user's folders in creation order.
func (s *DataService) ListFolders(uid string) ([]Folder, error) {
	rows, err := s.db.Query("SELECT "+folderColumnsSQL+" FROM folders WHERE user_id = ? ORDER BY id", uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	folders := []Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, *f)
	}
	return folders, rows.Err()
}

func (s *DataService) GetFolder(uid string, id int64) (*Folder, error) {
	row := s.db.QueryRow("SELECT "+folderColumnsSQL+" FROM folders WHERE id = ? AND user_id = ?", id, uid)
	f, err := scanFolder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to query folder %d: %w", id, notFound(err))
	}
	return f, nil
}

// CreateFolder inserts a folder. An empty CreatedAt is set to now.
func (s *DataService) CreateFolder(uid string, f Folder) (*Folder, error) {
	if f.CreatedAt == "" {
		f.CreatedAt = s.timestamp()
	}
	res, err := s.db.Exec(
		"INSERT INTO folders (user_id, name, due_date, created_at) VALUES (?, ?, ?, ?)",
		uid, f.Name, f.DueDate, f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read folder id: %w", err)
	}
	return s.GetFolder(uid, id)
}

// UpdateFolder applies the known wire fields of a patch and returns the
// stored folder.
func (s *DataService) UpdateFolder(uid string, id int64, fields map[string]any) (*Folder, error) {
	set, args, err := buildSet(fields, folderColumns)
	if err != nil {
		return nil, err
	}
	if set != "" {
		res, err := s.db.Exec("UPDATE folders SET "+set+" WHERE id = ? AND user_id = ?", append(args, id, uid)...)
		if err != nil {
			return nil, fmt.Errorf("failed to update folder %d: %w", id, err)
		}
		if err := checkAffected(res); err != nil {
			return nil, fmt.Errorf("failed to update folder %d: %w", id, err)
		}
	}
	return s.GetFolder(uid, id)
}

// DeleteFolder removes the folder only. Its tasks keep their folder_id.
func (s *DataService) DeleteFolder(uid string, id int64) error {
	res, err := s.db.Exec("DELETE FROM folders WHERE id = ? AND user_id = ?", id, uid)
	if err != nil {
		return fmt.Errorf("failed to delete folder %d: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete folder %d: %w", id, err)
	}
	return nil
}
