package database

import (
	"database/sql"
	"fmt"

	"github.com/CrowderSoup/godolist/models"
)

// SaveUser creates the user, or refreshes the profile of an existing one.
func (s *DataService) SaveUser(user models.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow("SELECT uid FROM users WHERE uid = ?", user.UID).Scan(&existing)
	if err == sql.ErrNoRows {
		_, err = tx.Exec(
			"INSERT INTO users (uid, email, display_name, photo_url) VALUES (?, ?, ?, ?)",
			user.UID, user.Email, user.DisplayName, user.PhotoURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	} else {
		_, err = tx.Exec(
			"UPDATE users SET email = ?, display_name = ?, photo_url = ? WHERE uid = ?",
			user.Email, user.DisplayName, user.PhotoURL, user.UID,
		)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUser loads a user by uid.
func (s *DataService) GetUser(uid string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		"SELECT uid, email, display_name, photo_url FROM users WHERE uid = ?", uid,
	).Scan(&u.UID, &u.Email, &u.DisplayName, &u.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", uid, notFound(err))
	}
	return &u, nil
}
