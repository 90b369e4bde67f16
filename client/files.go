package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/CrowderSoup/godolist/models"
)

// ListTaskFiles returns the metadata of the files attached to a task.
func (c *Client) ListTaskFiles(ctx context.Context, taskID int64) ([]models.File, error) {
	var files []models.File
	if err := c.doJSON(ctx, http.MethodGet, idPath("/tasks/%d/files", taskID), nil, nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// UploadFile streams content as the multipart field "file".
func (c *Client) UploadFile(ctx context.Context, taskID int64, filename string, content io.Reader) (models.File, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	p := idPath("/tasks/%d/files", taskID)
	req, err := c.newRequest(ctx, http.MethodPost, p, nil, pr)
	if err != nil {
		pr.CloseWithError(err)
		return models.File{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		pr.CloseWithError(err)
		return models.File{}, err
	}
	defer resp.Body.Close()

	var file models.File
	if err := decodeJSON(resp.Body, &file); err != nil {
		return models.File{}, fmt.Errorf("decode POST %s: %w", p, err)
	}
	return file, nil
}

// DownloadFile fetches a file's content. The filename comes from the
// Content-Disposition header, falling back to the last URL segment.
func (c *Client) DownloadFile(ctx context.Context, fileID int64) (*models.Download, error) {
	p := idPath("/files/%d", fileID)
	req, err := c.newRequest(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read GET %s: %w", p, err)
	}
	return &models.Download{
		Filename:    filenameFrom(resp.Header.Get("Content-Disposition"), path.Base(p)),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID int64) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/files/%d", fileID), nil, nil, nil)
}

func filenameFrom(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return fallback
	}
	return params["filename"]
}
