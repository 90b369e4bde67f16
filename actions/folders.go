package actions

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/CrowderSoup/godolist/mapper"
	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
	"golang.org/x/sync/errgroup"
)

// maxReassign bounds the concurrent task updates of a folder deletion.
const maxReassign = 4

// FetchFolders replaces the folder collection with the server's list.
func (a *Actions) FetchFolders(ctx context.Context) (err error) {
	done := a.begin(store.DomainFolders)
	defer func() { err = done(err) }()

	gen := a.startFetch(store.DomainFolders)
	records, err := a.api.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("fetch folders: %w", err)
	}
	if !a.isLatest(store.DomainFolders, gen) {
		log.Printf("Discarding stale folder fetch (generation %d)", gen)
		return errStale
	}

	folders := make([]models.Folder, 0, len(records))
	for _, r := range records {
		folders = append(folders, models.FolderFromRecord(mapper.FolderToView(r)))
	}
	a.store.SetFolders(folders)
	return nil
}

// CreateFolder posts a new folder and appends the server's copy.
func (a *Actions) CreateFolder(ctx context.Context, fields models.Record) (folder models.Folder, err error) {
	name, _ := fields[models.FieldName].(string)
	if strings.TrimSpace(name) == "" {
		return models.Folder{}, ErrEmptyName
	}

	done := a.begin(store.DomainFolders)
	defer func() { err = done(err) }()

	created, err := a.api.CreateFolder(ctx, mapper.FolderToWire(fields))
	if err != nil {
		return models.Folder{}, fmt.Errorf("create folder: %w", err)
	}
	folder = models.FolderFromRecord(mapper.FolderToView(created))
	a.store.AddFolder(folder)
	return folder, nil
}

// UpdateFolder patches a folder and merges the server's response.
func (a *Actions) UpdateFolder(ctx context.Context, id int64, fields models.Record) (folder models.Folder, err error) {
	wire := mapper.FolderToWire(fields)
	delete(wire, models.FieldID)
	if len(wire) == 0 {
		return models.Folder{}, ErrNoChanges
	}

	done := a.begin(store.DomainFolders)
	defer func() { err = done(err) }()

	updated, err := a.api.UpdateFolder(ctx, id, wire)
	if err != nil {
		return models.Folder{}, fmt.Errorf("update folder %d: %w", id, err)
	}
	if updated == nil {
		updated = wire
	}
	a.store.UpdateFolder(id, mapper.FolderToView(updated))

	if f, ok := a.store.Folder(id); ok {
		return f, nil
	}
	view := mapper.FolderToView(updated)
	view[models.FieldID] = id
	return models.FolderFromRecord(view), nil
}

// DeleteFolder unassigns every task of the folder, then deletes the folder.
// The unassignments run concurrently and all of them are awaited; one
// failing does not cancel the others.
//
// The steps are not atomic: if an unassignment fails, the ones that
// succeeded stay applied (locally and remotely) and the folder is left in
// place; calling DeleteFolder again finishes the job.
func (a *Actions) DeleteFolder(ctx context.Context, id int64) (err error) {
	done := a.begin(store.DomainFolders)
	defer func() { err = done(err) }()

	records, err := a.api.ListTasks(ctx, &id)
	if err != nil {
		return fmt.Errorf("list tasks of folder %d: %w", id, err)
	}
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if taskID, ok := models.Int64(r[models.FieldID]); ok {
			ids = append(ids, taskID)
		}
	}

	if err := a.moveTasks(ctx, ids, nil); err != nil {
		return fmt.Errorf("unassign tasks of folder %d: %w", id, err)
	}

	if err := a.api.DeleteFolder(ctx, id); err != nil {
		return fmt.Errorf("delete folder %d: %w", id, err)
	}
	a.store.DeleteFolder(id)
	log.Printf("Deleted folder %d and unassigned %d tasks", id, len(ids))
	return nil
}

// MoveTasksToFolder puts every listed task into the folder. Like the
// folder deletion cascade it is not atomic: tasks moved before a failure
// stay moved.
func (a *Actions) MoveTasksToFolder(ctx context.Context, folderID int64, taskIDs []int64) (err error) {
	done := a.begin(store.DomainFolders)
	defer func() { err = done(err) }()

	if err := a.moveTasks(ctx, taskIDs, &folderID); err != nil {
		return fmt.Errorf("move tasks to folder %d: %w", folderID, err)
	}
	return nil
}

// moveTasks reassigns the tasks through MoveTask, at most maxReassign at a
// time. Every started move is awaited; one failing does not cancel the
// others. The first failure is returned and recorded as the tasks-domain
// error once all moves have settled, so a move succeeding after it cannot
// clear it.
func (a *Actions) moveTasks(ctx context.Context, ids []int64, folderID *int64) error {
	var g errgroup.Group
	g.SetLimit(maxReassign)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := a.MoveTask(ctx, id, folderID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		a.store.SetError(store.DomainTasks, message(err))
		return err
	}
	return nil
}
