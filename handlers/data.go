package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/CrowderSoup/godolist/database"
)

// DataHandler handles the folder and task endpoints
type DataHandler struct {
	dataService *database.DataService
}

func NewDataHandler(dataService *database.DataService) *DataHandler {
	return &DataHandler{
		dataService: dataService,
	}
}

// requireUID returns the uid of the signed-in user, or answers 401.
func requireUID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return "", false
	}
	return user.UID, true
}

func (h *DataHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	folders, err := h.dataService.ListFolders(uid)
	if err != nil {
		writeDBError(w, err, "Folder")
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *DataHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	var folder database.Folder
	if err := decodeBody(r, &folder); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(folder.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	created, err := h.dataService.CreateFolder(uid, folder)
	if err != nil {
		writeDBError(w, err, "Folder")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DataHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid folder id")
		return
	}
	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.dataService.UpdateFolder(uid, id, fields)
	if err != nil {
		writeDBError(w, err, "Folder")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteFolder deletes the folder only. Reassigning its tasks is up to the
// client.
func (h *DataHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid folder id")
		return
	}
	if err := h.dataService.DeleteFolder(uid, id); err != nil {
		writeDBError(w, err, "Folder")
		return
	}
	log.Printf("Deleted folder %d", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListTasks lists all tasks, or those of ?folder_id=.
func (h *DataHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	var folderID *int64
	if r.URL.Query().Has("folder_id") {
		id, ok := queryID(r, "folder_id")
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid folder_id")
			return
		}
		folderID = &id
	}

	tasks, err := h.dataService.ListTasks(uid, folderID)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *DataHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	var task database.Task
	if err := decodeBody(r, &task); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(task.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.dataService.CreateTask(uid, task)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTask patches the task in ?id= with the fields of the body.
func (h *DataHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.dataService.UpdateTask(uid, id, fields)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *DataHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	if err := h.dataService.DeleteTask(uid, id); err != nil {
		writeDBError(w, err, "Task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
