package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/CrowderSoup/godolist/models"
	openai "github.com/sashabaranov/go-openai"
)

// maxAttachmentText bounds how much of each attached file is sent.
const maxAttachmentText = 8000

var analysisInstructions = map[string][]string{
	models.AnalysisReview: {
		"Read the task and every attached document carefully.",
		"Summarise what the task asks for and what the documents contain.",
		"Point out the key points, open questions and risks.",
		"Suggest concrete next steps, citing the documents where you can.",
	},
	models.AnalysisAnalyze: {
		"Break the task and its documents down into their parts.",
		"Identify patterns, dependencies and relationships between them.",
		"Back every insight with evidence from the task or the documents.",
	},
	models.AnalysisSummarize: {
		"Write a short overview of the task and its documents.",
		"Keep the main findings and conclusions, drop the detail.",
	},
}

// AnalysisKind normalises kind to one of the models.Analysis constants.
func AnalysisKind(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if _, ok := analysisInstructions[kind]; !ok {
		return models.AnalysisReview
	}
	return kind
}

// TaskBrief is what the assistant reads when it analyses a task.
type TaskBrief struct {
	Title string
	Notes string
	Files []BriefFile
}

// BriefFile is an attachment of a TaskBrief. Text is empty for binary files,
// which are named but not read.
type BriefFile struct {
	Filename  string
	Text      string
	Truncated bool
}

// NewBriefFile keeps the text of content when it looks like text.
func NewBriefFile(filename string, content []byte) BriefFile {
	f := BriefFile{Filename: filename}
	if len(content) == 0 || !utf8.Valid(content) {
		return f
	}
	if !strings.HasPrefix(http.DetectContentType(content), "text/") {
		return f
	}
	if len(content) > maxAttachmentText {
		content = content[:maxAttachmentText]
		// Do not cut a rune in half.
		for len(content) > 0 && !utf8.Valid(content) {
			content = content[:len(content)-1]
		}
		f.Truncated = true
	}
	f.Text = string(content)
	return f
}

// AnalyzeTask writes an analysis of the task of the given kind.
func (a *Assistant) AnalyzeTask(ctx context.Context, kind string, brief TaskBrief) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: analysisMessages(AnalysisKind(kind), brief),
	})
	if err != nil {
		return "", fmt.Errorf("task analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("task analysis returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func analysisMessages(kind string, brief TaskBrief) []openai.ChatCompletionMessage {
	var system strings.Builder
	system.WriteString("You analyse tasks from a to-do list app for their owner. Answer in markdown.\n")
	for _, line := range analysisInstructions[kind] {
		system.WriteString("- ")
		system.WriteString(line)
		system.WriteString("\n")
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Task: %s\n", brief.Title)
	if brief.Notes != "" {
		fmt.Fprintf(&user, "Notes: %s\n", brief.Notes)
	}
	for _, f := range brief.Files {
		switch {
		case f.Text == "":
			fmt.Fprintf(&user, "\nAttached file %s (not readable as text)\n", f.Filename)
		case f.Truncated:
			fmt.Fprintf(&user, "\nAttached file %s (first %d bytes):\n%s\n", f.Filename, len(f.Text), f.Text)
		default:
			fmt.Fprintf(&user, "\nAttached file %s:\n%s\n", f.Filename, f.Text)
		}
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system.String()},
		{Role: openai.ChatMessageRoleUser, Content: user.String()},
	}
}
