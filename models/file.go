package models

// File is the metadata of a file attached to a task. The content lives on
// the server and is fetched with a Download.
type File struct {
	ID       int64  `json:"id"`
	TaskID   int64  `json:"task_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size,omitempty"`
}

// Download is the content of a file as delivered by the server.
type Download struct {
	Filename    string
	ContentType string
	Content     []byte
}
