package store

import (
	"reflect"
	"testing"

	"github.com/CrowderSoup/godolist/models"
)

func int64p(v int64) *int64 { return &v }

func seed() *Store {
	s := New()
	s.SetTasks([]models.Task{
		{ID: 1, Title: "A", ListID: int64p(2)},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C", Important: true, ListID: int64p(2)},
	})
	s.SetFolders([]models.Folder{{ID: 2, Name: "Work"}})
	return s
}

func TestUpdateTaskMergesFields(t *testing.T) {
	s := seed()

	s.UpdateTask(1, models.Record{"title": "A2", "completed": true})

	got, ok := s.Task(1)
	if !ok {
		t.Fatal("task 1 missing")
	}
	if got.Title != "A2" || !got.Completed {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.ListID == nil || *got.ListID != 2 {
		t.Fatalf("untouched field changed: %+v", got)
	}
}

func TestUpdateTaskIsIdempotent(t *testing.T) {
	once, twice := seed(), seed()
	patch := models.Record{"important": true, "listId": nil, "priority": "high"}

	once.UpdateTask(1, patch)
	twice.UpdateTask(1, patch)
	twice.UpdateTask(1, patch)

	if !reflect.DeepEqual(once.Tasks(), twice.Tasks()) {
		t.Fatalf("applying a patch twice differs from once:\n%+v\n%+v", once.Tasks(), twice.Tasks())
	}
}

func TestUpdateTaskUnknownIDIsNoOp(t *testing.T) {
	s := seed()
	before := s.Tasks()

	s.UpdateTask(99, models.Record{"title": "ghost"})
	s.UpdateFolder(99, models.Record{"name": "ghost"})
	s.DeleteTask(99)
	s.DeleteFolder(99)
	s.AddMessage("nope", models.Message{Content: "x"})

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Fatal("unknown ids must not change the store")
	}
	if len(s.Folders()) != 1 {
		t.Fatal("unknown folder id changed folders")
	}
}

func TestUpdateTaskCannotChangeID(t *testing.T) {
	s := seed()
	s.UpdateTask(1, models.Record{"id": int64(42)})
	if _, ok := s.Task(1); !ok {
		t.Fatal("task 1 should keep its id")
	}
}

func TestSelectedTaskFollowsUpdates(t *testing.T) {
	s := seed()
	task, _ := s.Task(1)
	s.SetSelectedTask(&task)

	s.UpdateTask(1, models.Record{"title": "renamed"})

	sel := s.SelectedTask()
	if sel == nil || sel.Title != "renamed" {
		t.Fatalf("selected task is stale: %+v", sel)
	}
}

func TestDeleteSelectedTaskClearsSelection(t *testing.T) {
	s := seed()
	task, _ := s.Task(1)
	s.SetSelectedTask(&task)
	s.SetTaskFiles(1, []models.File{{ID: 10, TaskID: 1, Filename: "a.pdf"}})

	s.DeleteTask(1)

	if s.SelectedTask() != nil {
		t.Fatal("selection should be cleared")
	}
	if files := s.TaskFiles(1); len(files) != 0 {
		t.Fatalf("file cache should be dropped, got %v", files)
	}
	if _, ok := s.Task(1); ok {
		t.Fatal("task 1 should be gone")
	}
}

func TestDeleteOtherTaskKeepsSelection(t *testing.T) {
	s := seed()
	task, _ := s.Task(1)
	s.SetSelectedTask(&task)

	s.DeleteTask(2)

	sel := s.SelectedTask()
	if sel == nil || sel.ID != 1 {
		t.Fatalf("selection changed: %+v", sel)
	}
}

func TestSetSelectedTaskNilClears(t *testing.T) {
	s := seed()
	task, _ := s.Task(2)
	s.SetSelectedTask(&task)
	s.SetSelectedTask(nil)
	if s.SelectedTask() != nil {
		t.Fatal("selection should be cleared")
	}
}

func TestDeleteFolderDoesNotCascade(t *testing.T) {
	s := seed()
	s.DeleteFolder(2)

	if len(s.Folders()) != 0 {
		t.Fatal("folder should be removed")
	}
	task, _ := s.Task(1)
	if task.ListID == nil || *task.ListID != 2 {
		t.Fatal("the store must not reassign tasks on its own")
	}
	if _, ok := s.FolderOf(task); ok {
		t.Fatal("a dangling reference should resolve to no folder")
	}
}

func TestAddTaskAppends(t *testing.T) {
	s := New()
	s.AddTask(models.Task{ID: 5, Title: "x"})
	s.AddTask(models.Task{ID: 5, Title: "dup"})
	if n := len(s.Tasks()); n != 2 {
		t.Fatalf("AddTask does no duplicate check, want 2 tasks, got %d", n)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := seed()
	tasks := s.Tasks()
	tasks[0].Title = "mutated"
	*tasks[0].ListID = 77

	task, _ := s.Task(1)
	if task.Title != "A" || *task.ListID != 2 {
		t.Fatalf("canonical state leaked: %+v", task)
	}
}

func TestTaskFiles(t *testing.T) {
	s := New()
	s.SetTaskFiles(1, []models.File{{ID: 1, TaskID: 1}})
	s.AddTaskFile(1, models.File{ID: 2, TaskID: 1})
	s.RemoveTaskFile(1, 1)

	files := s.TaskFiles(1)
	if len(files) != 1 || files[0].ID != 2 {
		t.Fatalf("files = %+v", files)
	}
}

func TestLoadingAndErrorAreOrthogonal(t *testing.T) {
	s := New()
	s.SetError(DomainTasks, "boom")
	s.SetLoading(DomainTasks, true)

	if !s.Loading(DomainTasks) {
		t.Fatal("loading should be raised")
	}
	if s.Error(DomainTasks) != "boom" {
		t.Fatal("raising loading must not clear the error")
	}
	if s.Loading(DomainFolders) {
		t.Fatal("domains are independent")
	}

	s.SetLoading(DomainTasks, false)
	s.SetError(DomainTasks, "")
	if s.Loading(DomainTasks) || s.Error(DomainTasks) != "" {
		t.Fatal("status should be clear")
	}
}

func TestLoadingIsCounted(t *testing.T) {
	s := New()
	s.SetLoading(DomainTasks, true)
	s.SetLoading(DomainTasks, true)
	s.SetLoading(DomainTasks, false)
	if !s.Loading(DomainTasks) {
		t.Fatal("one request is still in flight")
	}
	s.SetLoading(DomainTasks, false)
	s.SetLoading(DomainTasks, false)
	if s.Loading(DomainTasks) {
		t.Fatal("loading should be released")
	}
	s.SetLoading(DomainTasks, true)
	if !s.Loading(DomainTasks) {
		t.Fatal("extra releases must not go negative")
	}
}

func TestAddMessageUpdatesSummary(t *testing.T) {
	s := New()
	s.SetChatThreads([]models.ChatThread{{ID: "c1", Name: "Review"}})

	s.AddMessage("c1", models.Message{ID: "m1", Role: models.RoleUser, Content: "hi", Timestamp: "2024-03-15T10:30:00"})

	c, ok := s.ChatThread("c1")
	if !ok {
		t.Fatal("thread missing")
	}
	if len(c.Messages) != 1 || c.LastMessage != "hi" || c.Timestamp != "2024-03-15T10:30:00" {
		t.Fatalf("thread = %+v", c)
	}
}

func TestUser(t *testing.T) {
	s := New()
	if s.IsAuthenticated() {
		t.Fatal("new store has no user")
	}
	s.SetUser(&models.User{UID: "u1", Email: "a@b.c"})
	if !s.IsAuthenticated() || s.User().Email != "a@b.c" {
		t.Fatal("user not set")
	}
	s.SetUser(nil)
	if s.IsAuthenticated() {
		t.Fatal("user not cleared")
	}
}

func TestResetEmptiesSession(t *testing.T) {
	s := seed()
	s.SetChatThreads([]models.ChatThread{{ID: "c1"}})
	s.SetTaskFiles(1, []models.File{{ID: 9, TaskID: 1}})
	s.SetUser(&models.User{UID: "u1"})
	s.SetCurrentFolder("2")
	task, _ := s.Task(1)
	s.SetSelectedTask(&task)
	s.SetError(DomainTasks, "boom")
	s.SetLoading(DomainFiles, true)

	s.Reset()

	if len(s.Tasks()) != 0 || len(s.Folders()) != 0 || len(s.ChatThreads()) != 0 {
		t.Fatal("entities survived reset")
	}
	if len(s.TaskFiles(1)) != 0 || s.SelectedTask() != nil || s.CurrentFolder() != "" {
		t.Fatal("files or selection survived reset")
	}
	if s.IsAuthenticated() || s.Error(DomainTasks) != "" {
		t.Fatal("user or error survived reset")
	}
	if !s.Loading(DomainFiles) {
		t.Fatal("in-flight request lost its loading flag")
	}
}
