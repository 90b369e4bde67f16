package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/CrowderSoup/godolist/models"
)

// ListFolders returns every folder.
func (c *Client) ListFolders(ctx context.Context) ([]models.Record, error) {
	var folders []models.Record
	if err := c.doJSON(ctx, http.MethodGet, "/folders", nil, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder creates a folder and returns the server's copy.
func (c *Client) CreateFolder(ctx context.Context, folder models.Record) (models.Record, error) {
	var created models.Record
	if err := c.doJSON(ctx, http.MethodPost, "/folders", nil, folder, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateFolder patches a folder and returns the server's copy.
func (c *Client) UpdateFolder(ctx context.Context, id int64, fields models.Record) (models.Record, error) {
	var updated models.Record
	if err := c.doJSON(ctx, http.MethodPatch, idPath("/folders/%d", id), nil, fields, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/folders/%d", id), nil, nil, nil)
}

// ListTasks returns every task, or the tasks of one folder.
func (c *Client) ListTasks(ctx context.Context, folderID *int64) ([]models.Record, error) {
	var query url.Values
	if folderID != nil {
		query = url.Values{"folder_id": {fmt.Sprint(*folderID)}}
	}
	var tasks []models.Record
	if err := c.doJSON(ctx, http.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's copy, with its id and
// timestamps.
func (c *Client) CreateTask(ctx context.Context, task models.Record) (models.Record, error) {
	var created models.Record
	if err := c.doJSON(ctx, http.MethodPost, "/tasks", nil, task, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTask patches the given wire fields and returns the server's copy.
func (c *Client) UpdateTask(ctx context.Context, id int64, fields models.Record) (models.Record, error) {
	var updated models.Record
	if err := c.doJSON(ctx, http.MethodPatch, "/tasks", idQuery(id), fields, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/tasks", idQuery(id), nil, nil)
}

// ProcessTask asks the server's assistant to analyse a task, its notes and
// its files. kind is one of the models.Analysis constants; empty means a
// review.
func (c *Client) ProcessTask(ctx context.Context, taskID int64, kind string) (*models.TaskAnalysis, error) {
	body := map[string]any{"task_id": taskID}
	if kind != "" {
		body["type"] = kind
	}
	var analysis models.TaskAnalysis
	if err := c.doJSON(ctx, http.MethodPost, "/process-task", nil, body, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
