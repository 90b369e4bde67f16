package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/CrowderSoup/godolist/database"
	"github.com/CrowderSoup/godolist/models"
	"github.com/gorilla/mux"
)

// Replier writes the assistant's answer to a conversation.
type Replier interface {
	Reply(ctx context.Context, history []models.Message) (string, error)
}

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	dataService *database.DataService
	// assistant may be nil; messages then get no reply.
	assistant Replier
}

func NewChatHandler(dataService *database.DataService, assistant Replier) *ChatHandler {
	return &ChatHandler{
		dataService: dataService,
		assistant:   assistant,
	}
}

func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	chats, err := h.dataService.ListChats(uid)
	if err != nil {
		writeDBError(w, err, "Chat")
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	chat, err := h.dataService.CreateChat(uid, req.Name)
	if err != nil {
		writeDBError(w, err, "Chat")
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

// SendMessage stores the user's message and, when an assistant is
// configured, its reply. A failed reply is logged and the user's message is
// still returned.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	chatID := mux.Vars(r)["id"]
	if err := h.dataService.ChatOwned(uid, chatID); err != nil {
		writeDBError(w, err, "Chat")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Message is empty")
		return
	}

	msg, err := h.dataService.AddMessage(chatID, models.RoleUser, req.Content)
	if err != nil {
		writeDBError(w, err, "Chat")
		return
	}
	out := []models.Message{*msg}

	if h.assistant != nil {
		if reply, ok := h.reply(r.Context(), chatID); ok {
			out = append(out, *reply)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ChatHandler) reply(ctx context.Context, chatID string) (*models.Message, bool) {
	history, err := h.dataService.Messages(chatID)
	if err != nil {
		log.Printf("Error loading chat %s: %v", chatID, err)
		return nil, false
	}
	content, err := h.assistant.Reply(ctx, history)
	if err != nil {
		log.Printf("Error getting assistant reply for chat %s: %v", chatID, err)
		return nil, false
	}
	if content == "" {
		return nil, false
	}
	msg, err := h.dataService.AddMessage(chatID, models.RoleAssistant, content)
	if err != nil {
		log.Printf("Error saving assistant reply for chat %s: %v", chatID, err)
		return nil, false
	}
	return msg, true
}
