// Package store holds the client's canonical in-memory copy of server-owned
// entities and the derived views computed from it.
//
// All mutations are total: an unknown id is a silent no-op. Reads return
// copies, so callers can never mutate the canonical collections directly.
package store

import (
	"sync"

	"github.com/CrowderSoup/godolist/models"
)

// Domain names a resource with its own loading and error state.
type Domain string

const (
	DomainTasks   Domain = "tasks"
	DomainFolders Domain = "folders"
	DomainFiles   Domain = "files"
	DomainChats   Domain = "chats"
	DomainAuth    Domain = "auth"
)

type status struct {
	inflight int
	err      string
}

// Store is the single source of truth for one client session. Construct it
// with New and share the pointer.
type Store struct {
	mu sync.RWMutex

	tasks   []models.Task
	folders []models.Folder
	chats   []models.ChatThread
	files   map[int64][]models.File
	user    *models.User

	currentFolder string
	// selectedID is resolved against tasks on every read.
	selectedID *int64

	status map[Domain]*status
}

// New returns an empty store.
func New() *Store {
	return &Store{
		files:  make(map[int64][]models.File),
		status: make(map[Domain]*status),
	}
}

// SetTasks replaces the task collection.
func (s *Store) SetTasks(tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(tasks)
}

// AddTask appends a task. The caller guarantees the id is new.
func (s *Store) AddTask(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task.Clone())
}

// UpdateTask shallow-merges view-schema fields into the task with the given
// id. It does nothing if the id is unknown.
func (s *Store) UpdateTask(id int64, fields models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	merged := s.tasks[i].Record().Merge(fields)
	// The id is the lookup key and never changes through a merge.
	merged[models.FieldID] = id
	s.tasks[i] = models.TaskFromRecord(merged)
}

// DeleteTask removes the task, its cached file list and, if it was
// selected, the selection.
func (s *Store) DeleteTask(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.taskIndex(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	delete(s.files, id)
	if s.selectedID != nil && *s.selectedID == id {
		s.selectedID = nil
	}
}

// SetFolders replaces the folder collection.
func (s *Store) SetFolders(folders []models.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = make([]models.Folder, len(folders))
	for i, f := range folders {
		s.folders[i] = f.Clone()
	}
}

// AddFolder appends a folder. The caller guarantees the id is new.
func (s *Store) AddFolder(folder models.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = append(s.folders, folder.Clone())
}

// UpdateFolder shallow-merges fields into the folder. Unknown ids are ignored.
func (s *Store) UpdateFolder(id int64, fields models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.folders {
		if s.folders[i].ID == id {
			merged := s.folders[i].Record().Merge(fields)
			merged[models.FieldID] = id
			s.folders[i] = models.FolderFromRecord(merged)
			return
		}
	}
}

// DeleteFolder removes the folder only. Tasks pointing at it are untouched;
// reassigning them first is the caller's job.
func (s *Store) DeleteFolder(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders = append(s.folders[:i:i], s.folders[i+1:]...)
			return
		}
	}
}

// SetChatThreads replaces the chat collection.
func (s *Store) SetChatThreads(chats []models.ChatThread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = make([]models.ChatThread, len(chats))
	for i, c := range chats {
		s.chats[i] = c.Clone()
	}
}

// AddChatThread appends a thread. The caller guarantees the id is new.
func (s *Store) AddChatThread(chat models.ChatThread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, chat.Clone())
}

// AddMessage appends a message to a thread and makes it the thread's
// summary. Unknown threads are ignored.
func (s *Store) AddMessage(chatID string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.chats[i].Messages = append(s.chats[i].Messages, msg)
			s.chats[i].LastMessage = msg.Content
			s.chats[i].Timestamp = msg.Timestamp
			return
		}
	}
}

// SetCurrentFolder sets the folder selector: a folder id or one of the
// Selector constants.
func (s *Store) SetCurrentFolder(selector string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFolder = selector
}

// SetSelectedTask selects the task, or clears the selection when task is
// nil. Only the id is kept.
func (s *Store) SetSelectedTask(task *models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task == nil {
		s.selectedID = nil
		return
	}
	id := task.ID
	s.selectedID = &id
}

// SetTaskFiles replaces the cached file list of a task.
func (s *Store) SetTaskFiles(taskID int64, files []models.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[taskID] = append([]models.File(nil), files...)
}

// AddTaskFile appends to the cached file list of a task.
func (s *Store) AddTaskFile(taskID int64, file models.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[taskID] = append(s.files[taskID], file)
}

// RemoveTaskFile drops a file from the cached list of a task.
func (s *Store) RemoveTaskFile(taskID, fileID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := s.files[taskID]
	for i := range files {
		if files[i].ID == fileID {
			s.files[taskID] = append(files[:i:i], files[i+1:]...)
			return
		}
	}
}

// SetUser sets the signed-in user, or signs out when user is nil.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

// Reset drops every entity, the selection and the domain errors, leaving an
// empty store for the next session. Loading counters are kept so requests
// still in flight settle normally.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.folders = nil
	s.chats = nil
	s.files = make(map[int64][]models.File)
	s.user = nil
	s.currentFolder = ""
	s.selectedID = nil
	for _, st := range s.status {
		st.err = ""
	}
}

// SetLoading raises or lowers the loading flag of a domain. Raises and
// lowers are counted, so overlapping requests keep the flag up until the
// last one settles. It does not touch the error.
func (s *Store) SetLoading(d Domain, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statusFor(d)
	if loading {
		st.inflight++
	} else if st.inflight > 0 {
		st.inflight--
	}
}

// SetError sets the error message of a domain; an empty message clears it.
func (s *Store) SetError(d Domain, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFor(d).err = msg
}

func (s *Store) statusFor(d Domain) *status {
	st, ok := s.status[d]
	if !ok {
		st = &status{}
		s.status[d] = st
	}
	return st
}

func (s *Store) taskIndex(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
