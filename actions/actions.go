// Package actions pairs remote API calls with Entity Store mutations.
//
// Every action follows the same policy: raise the domain's loading flag, make
// the call, and only after the server confirms map the response and mutate
// the store. A failure sets the domain's error and is returned to the caller;
// nothing is retried. The loading flag is lowered on every exit path.
package actions

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"github.com/CrowderSoup/godolist/client"
	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
)

var (
	ErrEmptyTitle = errors.New("title is required")
	ErrEmptyName  = errors.New("name is required")
	ErrNoChanges  = errors.New("no fields to update")

	// errStale marks a fetch whose response was discarded because a newer
	// fetch of the same domain began. It never reaches the caller.
	errStale = errors.New("stale fetch discarded")
)

// Authenticator is the sign-in collaborator.
type Authenticator interface {
	SignIn(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error
	// CurrentUser returns nil without error when there is no session.
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Actions is the write side of the client. It is safe for concurrent use;
// responses mutate the store in the order they arrive.
type Actions struct {
	api   client.API
	store *store.Store
	auth  Authenticator

	// fetchGen numbers fetches per domain so a slow, older fetch cannot
	// overwrite the result of a newer one. File lists are cached per task
	// and have no counter.
	fetchGen map[store.Domain]*atomic.Uint64
}

func New(api client.API, s *store.Store, auth Authenticator) *Actions {
	gens := make(map[store.Domain]*atomic.Uint64)
	for _, d := range []store.Domain{store.DomainTasks, store.DomainFolders, store.DomainChats} {
		gens[d] = new(atomic.Uint64)
	}
	return &Actions{
		api:      api,
		store:    s,
		auth:     auth,
		fetchGen: gens,
	}
}

// Store returns the store the actions write to.
func (a *Actions) Store() *store.Store {
	return a.store
}

// begin raises the loading flag of d. The returned func settles the call:
// it records err as the domain error, or clears the error on success, then
// lowers the flag. It returns err unchanged, except errStale: a discarded
// fetch leaves the error alone and returns nil.
func (a *Actions) begin(d store.Domain) func(err error) error {
	a.store.SetLoading(d, true)
	return func(err error) error {
		defer a.store.SetLoading(d, false)
		if errors.Is(err, errStale) {
			return nil
		}
		if err != nil {
			log.Printf("Error in %s action: %v", d, err)
			a.store.SetError(d, message(err))
			return err
		}
		a.store.SetError(d, "")
		return nil
	}
}

func (a *Actions) startFetch(d store.Domain) uint64 {
	return a.fetchGen[d].Add(1)
}

func (a *Actions) isLatest(d store.Domain, gen uint64) bool {
	return a.fetchGen[d].Load() == gen
}

// message is what the store shows for err: the server's message when there
// is one.
func message(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
