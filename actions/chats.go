package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
)

var ErrEmptyMessage = errors.New("message is empty")

// FetchChats replaces the chat threads with the server's list.
func (a *Actions) FetchChats(ctx context.Context) (err error) {
	done := a.begin(store.DomainChats)
	defer func() { err = done(err) }()

	gen := a.startFetch(store.DomainChats)
	chats, err := a.api.ListChats(ctx)
	if err != nil {
		return fmt.Errorf("fetch chats: %w", err)
	}
	if !a.isLatest(store.DomainChats, gen) {
		log.Printf("Discarding stale chat fetch (generation %d)", gen)
		return errStale
	}
	a.store.SetChatThreads(chats)
	return nil
}

// CreateChat starts a thread on the server and appends it.
func (a *Actions) CreateChat(ctx context.Context, name string) (chat models.ChatThread, err error) {
	if strings.TrimSpace(name) == "" {
		return models.ChatThread{}, ErrEmptyName
	}

	done := a.begin(store.DomainChats)
	defer func() { err = done(err) }()

	chat, err = a.api.CreateChat(ctx, name)
	if err != nil {
		return models.ChatThread{}, fmt.Errorf("create chat: %w", err)
	}
	a.store.AddChatThread(chat)
	return chat, nil
}

// SendMessage posts a message to a thread and appends the messages the
// server stored, in order.
func (a *Actions) SendMessage(ctx context.Context, chatID, content string) (msgs []models.Message, err error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	done := a.begin(store.DomainChats)
	defer func() { err = done(err) }()

	msgs, err = a.api.SendMessage(ctx, chatID, content)
	if err != nil {
		return nil, fmt.Errorf("send message to chat %s: %w", chatID, err)
	}
	for _, m := range msgs {
		a.store.AddMessage(chatID, m)
	}
	return msgs, nil
}
