package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
)

// maxUploadSize bounds the body of a file upload.
const maxUploadSize = 10 << 20

func (h *DataHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	files, err := h.dataService.ListFiles(uid, taskID)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// UploadFile stores the multipart field "file" as an attachment.
func (h *DataHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	stored, err := h.dataService.CreateFile(uid, taskID, filepath.Base(header.Filename), content)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// DownloadFile sends the content with the filename in Content-Disposition.
func (h *DataHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	fileID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid file id")
		return
	}

	meta, content, err := h.dataService.GetFile(uid, fileID)
	if err != nil {
		writeDBError(w, err, "File")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(meta.Filename))
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": meta.Filename}))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

func (h *DataHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	fileID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid file id")
		return
	}
	if err := h.dataService.DeleteFile(uid, fileID); err != nil {
		writeDBError(w, err, "File")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
