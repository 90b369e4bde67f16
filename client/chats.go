package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/CrowderSoup/godolist/models"
)

// ListChats returns every chat thread with its messages.
func (c *Client) ListChats(ctx context.Context) ([]models.ChatThread, error) {
	var chats []models.ChatThread
	if err := c.doJSON(ctx, http.MethodGet, "/chats", nil, nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// CreateChat starts an empty thread.
func (c *Client) CreateChat(ctx context.Context, name string) (models.ChatThread, error) {
	var chat models.ChatThread
	body := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/chats", nil, body, &chat); err != nil {
		return models.ChatThread{}, err
	}
	return chat, nil
}

// SendMessage posts a user message. The server answers with the messages it
// stored: the user's, then the assistant's reply when one was produced.
func (c *Client) SendMessage(ctx context.Context, chatID, content string) ([]models.Message, error) {
	var msgs []models.Message
	p := "/chats/" + url.PathEscape(chatID) + "/messages"
	body := map[string]string{"content": content}
	if err := c.doJSON(ctx, http.MethodPost, p, nil, body, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func decodeJSON(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(out)
}
