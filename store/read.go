package store

import "github.com/CrowderSoup/godolist/models"

// Tasks returns a copy of every task.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Task looks a task up by id.
func (s *Store) Task(id int64) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

// SelectedTask resolves the selection against the task collection, so it
// always reflects the latest update. It is nil when nothing is selected or
// the selected task no longer exists.
func (s *Store) SelectedTask() *models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedID == nil {
		return nil
	}
	i := s.taskIndex(*s.selectedID)
	if i < 0 {
		return nil
	}
	t := s.tasks[i].Clone()
	return &t
}

// CurrentFolder returns the current folder selector.
func (s *Store) CurrentFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFolder
}

// Folders returns a copy of every folder.
func (s *Store) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Folder, len(s.folders))
	for i, f := range s.folders {
		out[i] = f.Clone()
	}
	return out
}

// Folder looks a folder up by id.
func (s *Store) Folder(id int64) (models.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.folders {
		if f.ID == id {
			return f.Clone(), true
		}
	}
	return models.Folder{}, false
}

// FolderOf returns the folder a task points to. A task whose folder is not
// in the store (unassigned or dangling) reports false and renders as
// unassigned.
func (s *Store) FolderOf(task models.Task) (models.Folder, bool) {
	if task.ListID == nil {
		return models.Folder{}, false
	}
	return s.Folder(*task.ListID)
}

// ChatThreads returns a copy of every chat thread.
func (s *Store) ChatThreads() []models.ChatThread {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatThread, len(s.chats))
	for i, c := range s.chats {
		out[i] = c.Clone()
	}
	return out
}

// ChatThread looks a chat thread up by id.
func (s *Store) ChatThread(id string) (models.ChatThread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chats {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.ChatThread{}, false
}

// TaskFiles returns the cached file list of a task.
func (s *Store) TaskFiles(taskID int64) []models.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.File(nil), s.files[taskID]...)
}

// Loading reports whether a request of the domain is in flight.
func (s *Store) Loading(d Domain) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.status[d]
	return ok && st.inflight > 0
}

// Error returns the last error message of the domain, or "".
func (s *Store) Error(d Domain) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.status[d]; ok {
		return st.err
	}
	return ""
}

// User returns the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}
