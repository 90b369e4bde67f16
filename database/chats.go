package database

import (
	"fmt"

	"github.com/CrowderSoup/godolist/models"
	"github.com/google/uuid"
)

// ListChats returns the user's threads, oldest first, each with its messages
// and a summary of the latest one.
func (s *DataService) ListChats(uid string) ([]models.ChatThread, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM chat_threads WHERE user_id = ? ORDER BY created_at, id", uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	chats := []models.ChatThread{}
	for rows.Next() {
		var c models.ChatThread
		if err := rows.Scan(&c.ID, &c.Name, &c.Timestamp); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The pool holds one connection, so messages are read after the thread
	// rows are closed.
	for i := range chats {
		msgs, err := s.Messages(chats[i].ID)
		if err != nil {
			return nil, err
		}
		chats[i].Messages = msgs
		if n := len(msgs); n > 0 {
			chats[i].LastMessage = msgs[n-1].Content
			chats[i].Timestamp = msgs[n-1].Timestamp
		}
	}
	return chats, nil
}

// CreateChat starts an empty thread with a random id.
func (s *DataService) CreateChat(uid, name string) (*models.ChatThread, error) {
	c := models.ChatThread{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: s.timestamp(),
		Messages:  []models.Message{},
	}
	_, err := s.db.Exec(
		"INSERT INTO chat_threads (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		c.ID, uid, c.Name, c.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat: %w", err)
	}
	return &c, nil
}

// ChatOwned reports ErrNotFound unless the thread belongs to the user.
func (s *DataService) ChatOwned(uid, chatID string) error {
	var id string
	err := s.db.QueryRow("SELECT id FROM chat_threads WHERE id = ? AND user_id = ?", chatID, uid).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to query chat %s: %w", chatID, notFound(err))
	}
	return nil
}

// Messages returns a thread's messages in the order they were added.
func (s *DataService) Messages(chatID string) ([]models.Message, error) {
	rows, err := s.db.Query("SELECT id, role, content, created_at FROM chat_messages WHERE thread_id = ? ORDER BY seq", chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// AddMessage appends a message to a thread.
func (s *DataService) AddMessage(chatID, role, content string) (*models.Message, error) {
	m := models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: s.timestamp(),
	}
	_, err := s.db.Exec(
		"INSERT INTO chat_messages (id, thread_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, chatID, m.Role, m.Content, m.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return &m, nil
}
