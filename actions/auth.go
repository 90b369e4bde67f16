package actions

import (
	"context"
	"fmt"
	"log"

	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
)

// InitAuth restores the current session, if any.
func (a *Actions) InitAuth(ctx context.Context) (err error) {
	done := a.begin(store.DomainAuth)
	defer func() { err = done(err) }()

	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	a.store.SetUser(user)
	return nil
}

// SignIn signs in and records the user.
func (a *Actions) SignIn(ctx context.Context) (user *models.User, err error) {
	done := a.begin(store.DomainAuth)
	defer func() { err = done(err) }()

	user, err = a.auth.SignIn(ctx)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	a.store.SetUser(user)
	return user, nil
}

// SignOut empties the store, forgetting the user and their data, and tells
// the collaborator. The remote call is fire-and-forget: its failure is
// logged and never undoes the local sign-out.
func (a *Actions) SignOut(ctx context.Context) {
	a.store.Reset()
	if err := a.auth.SignOut(ctx); err != nil {
		log.Printf("Error signing out: %v", err)
	}
}
