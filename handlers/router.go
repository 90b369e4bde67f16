package handlers

import (
	"net/http"

	"github.com/CrowderSoup/godolist/database"
	"github.com/CrowderSoup/godolist/services"
	"github.com/gorilla/mux"
)

// Deps are the services the router needs. Assistant and Analyzer may be
// nil.
type Deps struct {
	Auth      *services.AuthService
	Data      *database.DataService
	Assistant Replier
	Analyzer  Analyzer
}

// NewRouter wires every API route.
func NewRouter(deps Deps) *mux.Router {
	authHandler := NewAuthHandler(deps.Auth, deps.Data)
	dataHandler := NewDataHandler(deps.Data)
	chatHandler := NewChatHandler(deps.Data, deps.Assistant)
	analysisHandler := NewAnalysisHandler(deps.Data, deps.Analyzer)
	authMiddleware := NewAuthMiddleware(deps.Auth)

	r := mux.NewRouter()
	r.Use(Logging)

	// Auth routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected routes
	api := r.NewRoute().Subrouter()
	api.Use(authMiddleware.Auth)

	api.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	api.HandleFunc("/folders", dataHandler.ListFolders).Methods(http.MethodGet)
	api.HandleFunc("/folders", dataHandler.CreateFolder).Methods(http.MethodPost)
	api.HandleFunc("/folders/{id:[0-9]+}", dataHandler.UpdateFolder).Methods(http.MethodPatch)
	api.HandleFunc("/folders/{id:[0-9]+}", dataHandler.DeleteFolder).Methods(http.MethodDelete)

	api.HandleFunc("/tasks", dataHandler.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", dataHandler.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks", dataHandler.UpdateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks", dataHandler.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/process-task", analysisHandler.ProcessTask).Methods(http.MethodPost)

	api.HandleFunc("/tasks/{id:[0-9]+}/files", dataHandler.ListFiles).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}/files", dataHandler.UploadFile).Methods(http.MethodPost)
	api.HandleFunc("/files/{id:[0-9]+}", dataHandler.DownloadFile).Methods(http.MethodGet)
	api.HandleFunc("/files/{id:[0-9]+}", dataHandler.DeleteFile).Methods(http.MethodDelete)

	api.HandleFunc("/chats", chatHandler.ListChats).Methods(http.MethodGet)
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods(http.MethodPost)
	api.HandleFunc("/chats/{id}/messages", chatHandler.SendMessage).Methods(http.MethodPost)

	return r
}
