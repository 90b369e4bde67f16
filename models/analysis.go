package models

// Kinds of task analysis. An empty or unknown kind is treated as a review.
const (
	AnalysisReview    = "review"
	AnalysisAnalyze   = "analyze"
	AnalysisSummarize = "summarize"
)

// TaskAnalysis is the assistant's write-up of a task and its files.
type TaskAnalysis struct {
	TaskID int64  `json:"task_id"`
	Kind   string `json:"type"`
	Result string `json:"result"`
}
