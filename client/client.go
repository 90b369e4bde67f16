// Package client talks to the godolist HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/CrowderSoup/godolist/models"
)

// API is the remote contract the synchronization layer depends on. Task and
// folder payloads are wire-schema records; mapping them is the caller's job.
type API interface {
	ListFolders(ctx context.Context) ([]models.Record, error)
	CreateFolder(ctx context.Context, folder models.Record) (models.Record, error)
	UpdateFolder(ctx context.Context, id int64, fields models.Record) (models.Record, error)
	DeleteFolder(ctx context.Context, id int64) error

	// ListTasks lists every task, or only those of a folder when folderID
	// is not nil.
	ListTasks(ctx context.Context, folderID *int64) ([]models.Record, error)
	CreateTask(ctx context.Context, task models.Record) (models.Record, error)
	UpdateTask(ctx context.Context, id int64, fields models.Record) (models.Record, error)
	DeleteTask(ctx context.Context, id int64) error
	ProcessTask(ctx context.Context, taskID int64, kind string) (*models.TaskAnalysis, error)

	ListTaskFiles(ctx context.Context, taskID int64) ([]models.File, error)
	UploadFile(ctx context.Context, taskID int64, filename string, content io.Reader) (models.File, error)
	DownloadFile(ctx context.Context, fileID int64) (*models.Download, error)
	DeleteFile(ctx context.Context, fileID int64) error

	ListChats(ctx context.Context) ([]models.ChatThread, error)
	CreateChat(ctx context.Context, name string) (models.ChatThread, error)
	SendMessage(ctx context.Context, chatID, content string) ([]models.Message, error)
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// timeout, when set by WithTimeout, is applied to a copy of httpClient.
	timeout *time.Duration

	mu    sync.RWMutex
	token string
}

var _ API = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero means no timeout. It applies to a
// copy of the http.Client, so a client passed to WithHTTPClient is never
// modified, whatever the order of the options.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

// WithToken starts the client with a session token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs the request and returns the response if its status is 2xx.
// Any other status is turned into an *APIError and the body is closed.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newAPIError(resp)
	}
	return resp, nil
}

// doJSON sends body (if not nil) as JSON and decodes the response into out
// (if not nil). Numbers decode as json.Number so large ids survive.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

func idQuery(id int64) url.Values {
	return url.Values{"id": {fmt.Sprint(id)}}
}
