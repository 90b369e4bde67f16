// Package app assembles the client core from configuration: one API client,
// the Store it feeds and the Actions that write to it. The App is the root
// that owns the Store.
package app

import (
	"context"
	"fmt"

	"github.com/CrowderSoup/godolist/actions"
	"github.com/CrowderSoup/godolist/client"
	"github.com/CrowderSoup/godolist/config"
	"github.com/CrowderSoup/godolist/store"
)

type App struct {
	Client  *client.Client
	Store   *store.Store
	Actions *actions.Actions
}

// New builds an App talking to cfg.APIBaseURL. Requests are bounded by
// cfg.RequestTimeout; opts are applied after it.
func New(cfg *config.Config, identity client.Identity, opts ...client.Option) *App {
	opts = append([]client.Option{client.WithTimeout(cfg.RequestTimeout)}, opts...)
	c := client.New(cfg.APIBaseURL, opts...)
	s := store.New()
	return &App{
		Client:  c,
		Store:   s,
		Actions: actions.New(c, s, client.NewSessionAuth(c, identity)),
	}
}

// Start restores the session, signing in when there is none, then loads the
// folders and every task.
func (a *App) Start(ctx context.Context) error {
	if err := a.Actions.InitAuth(ctx); err != nil {
		return err
	}
	if !a.Store.IsAuthenticated() {
		if _, err := a.Actions.SignIn(ctx); err != nil {
			return err
		}
	}
	if err := a.Actions.FetchFolders(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := a.Actions.FetchTasks(ctx, nil); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}
