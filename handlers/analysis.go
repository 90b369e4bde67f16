package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/CrowderSoup/godolist/database"
	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/services"
)

// Analyzer writes an analysis of a task and its attachments.
type Analyzer interface {
	AnalyzeTask(ctx context.Context, kind string, brief services.TaskBrief) (string, error)
}

// AnalysisHandler handles POST /process-task
type AnalysisHandler struct {
	dataService *database.DataService
	// analyzer may be nil; the endpoint then answers 503.
	analyzer Analyzer
}

func NewAnalysisHandler(dataService *database.DataService, analyzer Analyzer) *AnalysisHandler {
	return &AnalysisHandler{
		dataService: dataService,
		analyzer:    analyzer,
	}
}

func (h *AnalysisHandler) ProcessTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	var req struct {
		TaskID any    `json:"task_id"`
		Type   string `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	taskID, ok := models.Int64(req.TaskID)
	if !ok || taskID <= 0 {
		writeError(w, http.StatusBadRequest, "Task ID is required")
		return
	}
	if h.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "Task analysis is not configured")
		return
	}

	task, err := h.dataService.GetTask(uid, taskID)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}
	files, err := h.dataService.ListFileContents(uid, taskID)
	if err != nil {
		writeDBError(w, err, "Task")
		return
	}

	brief := services.TaskBrief{Title: task.Title, Notes: task.Notes}
	for _, f := range files {
		brief.Files = append(brief.Files, services.NewBriefFile(f.Filename, f.Content))
	}
	kind := services.AnalysisKind(req.Type)

	result, err := h.analyzer.AnalyzeTask(r.Context(), kind, brief)
	if err != nil {
		log.Printf("Error analysing task %d: %v", taskID, err)
		writeError(w, http.StatusBadGateway, "Task analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, models.TaskAnalysis{TaskID: taskID, Kind: kind, Result: result})
}
