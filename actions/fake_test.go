package actions

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/CrowderSoup/godolist/client"
	"github.com/CrowderSoup/godolist/models"
)

// fakeAPI is an in-memory server speaking the wire schema.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int64

	tasks   map[int64]models.Record
	folders map[int64]models.Record
	files   map[int64]models.File
	content map[int64][]byte
	chats   []models.ChatThread

	calls map[string]int
	// fail makes the named method return the error. failUpdate fails
	// UpdateTask for the given task ids only.
	fail       map[string]error
	failUpdate map[int64]error
	// gate, when set for a method, holds its response until closed.
	gate map[string]chan struct{}
}

var _ client.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextID:     100,
		tasks:      map[int64]models.Record{},
		folders:    map[int64]models.Record{},
		files:      map[int64]models.File{},
		content:    map[int64][]byte{},
		calls:      map[string]int{},
		fail:       map[string]error{},
		failUpdate: map[int64]error{},
		gate:       map[string]chan struct{}{},
	}
}

func (f *fakeAPI) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.fail[method]
}

// wait blocks on the method's gate, if any. Callers take their snapshot
// first, so a gated call returns the data it saw before blocking.
func (f *fakeAPI) wait(method string) {
	f.mu.Lock()
	gate := f.gate[method]
	if gate != nil {
		f.calls[method+":waiting"]++
	}
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeAPI) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeAPI) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) putTask(r models.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, _ := models.Int64(r["id"])
	f.tasks[id] = r.Clone()
}

func (f *fakeAPI) putFolder(r models.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, _ := models.Int64(r["id"])
	f.folders[id] = r.Clone()
}

func sortedRecords(m map[int64]models.Record) []models.Record {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]models.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k].Clone())
	}
	return out
}

func (f *fakeAPI) ListFolders(ctx context.Context) ([]models.Record, error) {
	if err := f.enter("ListFolders"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedRecords(f.folders), nil
}

func (f *fakeAPI) CreateFolder(ctx context.Context, folder models.Record) (models.Record, error) {
	if err := f.enter("CreateFolder"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r := folder.Clone()
	r["id"] = f.id()
	r["createdAt"] = "2025-04-14T13:00:00"
	f.folders[r["id"].(int64)] = r
	return r.Clone(), nil
}

func (f *fakeAPI) UpdateFolder(ctx context.Context, id int64, fields models.Record) (models.Record, error) {
	if err := f.enter("UpdateFolder"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.folders[id]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "Folder not found"}
	}
	r = r.Merge(fields)
	f.folders[id] = r
	return r.Clone(), nil
}

func (f *fakeAPI) DeleteFolder(ctx context.Context, id int64) error {
	if err := f.enter("DeleteFolder"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.folders, id)
	return nil
}

func (f *fakeAPI) ListTasks(ctx context.Context, folderID *int64) ([]models.Record, error) {
	if err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	out := []models.Record{}
	for _, r := range sortedRecords(f.tasks) {
		if folderID != nil {
			ref, ok := models.Int64(r["folder_id"])
			if !ok || ref != *folderID {
				continue
			}
		}
		out = append(out, r)
	}
	f.mu.Unlock()
	f.wait("ListTasks")
	return out, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, task models.Record) (models.Record, error) {
	if err := f.enter("CreateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r := task.Clone()
	r["id"] = f.id()
	r["createdAt"] = "2025-04-14T13:00:00"
	f.tasks[r["id"].(int64)] = r
	return r.Clone(), nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id int64, fields models.Record) (models.Record, error) {
	// A cancelled request never reaches the server.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.enter("UpdateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failUpdate[id]; err != nil {
		return nil, err
	}
	r, ok := f.tasks[id]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "Task not found"}
	}
	r = r.Merge(fields)
	f.tasks[id] = r
	return r.Clone(), nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id int64) error {
	if err := f.enter("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
	return nil
}

func (f *fakeAPI) ProcessTask(ctx context.Context, taskID int64, kind string) (*models.TaskAnalysis, error) {
	if err := f.enter("ProcessTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.tasks[taskID]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "Task not found"}
	}
	if kind == "" {
		kind = models.AnalysisReview
	}
	return &models.TaskAnalysis{TaskID: taskID, Kind: kind, Result: fmt.Sprintf("%s of %v", kind, r["title"])}, nil
}

func (f *fakeAPI) ListTaskFiles(ctx context.Context, taskID int64) ([]models.File, error) {
	if err := f.enter("ListTaskFiles"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.File{}
	for _, file := range f.files {
		if file.TaskID == taskID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAPI) UploadFile(ctx context.Context, taskID int64, filename string, content io.Reader) (models.File, error) {
	if err := f.enter("UploadFile"); err != nil {
		return models.File{}, err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return models.File{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	file := models.File{ID: f.id(), TaskID: taskID, Filename: filename, Size: int64(len(data))}
	f.files[file.ID] = file
	f.content[file.ID] = data
	return file, nil
}

func (f *fakeAPI) DownloadFile(ctx context.Context, fileID int64) (*models.Download, error) {
	if err := f.enter("DownloadFile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[fileID]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "File not found"}
	}
	return &models.Download{Filename: file.Filename, Content: f.content[fileID]}, nil
}

func (f *fakeAPI) DeleteFile(ctx context.Context, fileID int64) error {
	if err := f.enter("DeleteFile"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, fileID)
	delete(f.content, fileID)
	return nil
}

func (f *fakeAPI) ListChats(ctx context.Context) ([]models.ChatThread, error) {
	if err := f.enter("ListChats"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ChatThread(nil), f.chats...), nil
}

func (f *fakeAPI) CreateChat(ctx context.Context, name string) (models.ChatThread, error) {
	if err := f.enter("CreateChat"); err != nil {
		return models.ChatThread{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	chat := models.ChatThread{ID: fmt.Sprintf("chat%d", f.id()), Name: name}
	f.chats = append(f.chats, chat)
	return chat, nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, chatID, content string) ([]models.Message, error) {
	if err := f.enter("SendMessage"); err != nil {
		return nil, err
	}
	return []models.Message{
		{ID: "m1", Role: models.RoleUser, Content: content, Timestamp: "2024-03-15T10:30:00"},
		{ID: "m2", Role: models.RoleAssistant, Content: "noted", Timestamp: "2024-03-15T10:30:30"},
	}, nil
}

// fakeAuth is an Authenticator with a fixed user.
type fakeAuth struct {
	user       *models.User
	signedIn   bool
	signInErr  error
	signOutErr error
}

func (a *fakeAuth) SignIn(ctx context.Context) (*models.User, error) {
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	a.signedIn = true
	return a.user, nil
}

func (a *fakeAuth) SignOut(ctx context.Context) error {
	a.signedIn = false
	return a.signOutErr
}

func (a *fakeAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	if !a.signedIn {
		return nil, nil
	}
	return a.user, nil
}
