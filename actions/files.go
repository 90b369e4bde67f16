package actions

import (
	"context"
	"fmt"
	"io"

	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
)

// FetchTaskFiles replaces the cached file list of a task.
func (a *Actions) FetchTaskFiles(ctx context.Context, taskID int64) (err error) {
	done := a.begin(store.DomainFiles)
	defer func() { err = done(err) }()

	files, err := a.api.ListTaskFiles(ctx, taskID)
	if err != nil {
		return fmt.Errorf("fetch files of task %d: %w", taskID, err)
	}
	a.store.SetTaskFiles(taskID, files)
	return nil
}

// UploadFile uploads content and appends the returned metadata to the
// task's file list.
func (a *Actions) UploadFile(ctx context.Context, taskID int64, filename string, content io.Reader) (file models.File, err error) {
	done := a.begin(store.DomainFiles)
	defer func() { err = done(err) }()

	file, err = a.api.UploadFile(ctx, taskID, filename, content)
	if err != nil {
		return models.File{}, fmt.Errorf("upload %s to task %d: %w", filename, taskID, err)
	}
	if file.TaskID == 0 {
		file.TaskID = taskID
	}
	a.store.AddTaskFile(taskID, file)
	return file, nil
}

// DownloadFile fetches a file's content for the caller. Entity state is not
// touched.
func (a *Actions) DownloadFile(ctx context.Context, fileID int64) (dl *models.Download, err error) {
	done := a.begin(store.DomainFiles)
	defer func() { err = done(err) }()

	dl, err = a.api.DownloadFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("download file %d: %w", fileID, err)
	}
	return dl, nil
}

// DeleteFile deletes remotely, then drops the file from the task's list.
func (a *Actions) DeleteFile(ctx context.Context, taskID, fileID int64) (err error) {
	done := a.begin(store.DomainFiles)
	defer func() { err = done(err) }()

	if err := a.api.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("delete file %d: %w", fileID, err)
	}
	a.store.RemoveTaskFile(taskID, fileID)
	return nil
}
