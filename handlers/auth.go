package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/CrowderSoup/godolist/database"
	"github.com/CrowderSoup/godolist/services"
)

// AuthHandler handles authentication-related endpoints
type AuthHandler struct {
	authService *services.AuthService
	dataService *database.DataService
}

func NewAuthHandler(authService *services.AuthService, dataService *database.DataService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		dataService: dataService,
	}
}

// Login signs in with an identity and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		PhotoURL    string `json:"photoURL"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.authService.UserFor(req.Email, req.DisplayName, req.PhotoURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if err := h.dataService.SaveUser(user); err != nil {
		log.Printf("Error saving user: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.authService.CreateJWT(user)
	if err != nil {
		log.Printf("Error creating JWT: %v", err)
		writeError(w, http.StatusInternalServerError, "Authentication error")
		return
	}

	log.Printf("User %s signed in", user.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Session returns the user of the request's session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	stored, err := h.dataService.GetUser(user.UID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Unknown user")
		return
	}
	if err != nil {
		writeDBError(w, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// Logout ends the session. Tokens are stateless, so there is nothing to
// revoke on the server.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := UserFromContext(r.Context()); ok {
		log.Printf("User %s signed out", user.Email)
	}
	w.WriteHeader(http.StatusNoContent)
}
