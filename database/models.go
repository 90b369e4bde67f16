package database

// Folder is a folder row in the wire schema.
type Folder struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	DueDate   *string `json:"dueDate"`
	CreatedAt string  `json:"createdAt"`
}

// Task is a task row in the wire schema.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Notes       string  `json:"notes"`
	Completed   bool    `json:"completed"`
	IsImportant bool    `json:"isImportant"`
	FolderID    *int64  `json:"folder_id"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
}
