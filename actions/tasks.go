package actions

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/CrowderSoup/godolist/mapper"
	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
)

// FetchTasks replaces the task collection with the server's list: all tasks,
// or only those of folderID when it is not nil.
func (a *Actions) FetchTasks(ctx context.Context, folderID *int64) (err error) {
	done := a.begin(store.DomainTasks)
	defer func() { err = done(err) }()

	gen := a.startFetch(store.DomainTasks)
	records, err := a.api.ListTasks(ctx, folderID)
	if err != nil {
		return fmt.Errorf("fetch tasks: %w", err)
	}
	if !a.isLatest(store.DomainTasks, gen) {
		log.Printf("Discarding stale task fetch (generation %d)", gen)
		return errStale
	}

	tasks := make([]models.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, mapper.TaskFromWire(r))
	}
	a.store.SetTasks(tasks)
	return nil
}

// CreateTask posts a new task and appends the server's copy. Fields may use
// view or wire names; absent fields take their defaults.
func (a *Actions) CreateTask(ctx context.Context, fields models.Record) (task models.Task, err error) {
	title, _ := fields[models.FieldTitle].(string)
	if strings.TrimSpace(title) == "" {
		return models.Task{}, ErrEmptyTitle
	}

	done := a.begin(store.DomainTasks)
	defer func() { err = done(err) }()

	created, err := a.api.CreateTask(ctx, mapper.TaskToWire(fields, mapper.Create))
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	task = mapper.TaskFromWire(created)
	a.store.AddTask(task)
	return task, nil
}

// UpdateTask patches only the supplied fields and merges the server's
// response into the store. The response, not the request, is what lands.
func (a *Actions) UpdateTask(ctx context.Context, id int64, fields models.Record) (task models.Task, err error) {
	wire := mapper.TaskToWire(fields, mapper.Patch)
	delete(wire, models.FieldID)
	if len(wire) == 0 {
		return models.Task{}, ErrNoChanges
	}

	done := a.begin(store.DomainTasks)
	defer func() { err = done(err) }()

	updated, err := a.api.UpdateTask(ctx, id, wire)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	if updated == nil {
		// The server confirmed without a body; what it accepted is what we sent.
		updated = wire
	}
	view := mapper.TaskToView(updated)
	a.store.UpdateTask(id, view)

	if t, ok := a.store.Task(id); ok {
		return t, nil
	}
	view[models.FieldID] = id
	return models.TaskFromRecord(view), nil
}

// DeleteTask deletes remotely, then locally. A failed call leaves the store
// as it was.
func (a *Actions) DeleteTask(ctx context.Context, id int64) (err error) {
	done := a.begin(store.DomainTasks)
	defer func() { err = done(err) }()

	if err := a.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	a.store.DeleteTask(id)
	return nil
}

// ToggleTaskCompletion flips the completed flag through UpdateTask. An
// unknown id is a no-op and returns the zero Task.
func (a *Actions) ToggleTaskCompletion(ctx context.Context, id int64) (models.Task, error) {
	return a.toggle(ctx, id, models.FieldCompleted, func(t models.Task) bool { return t.Completed })
}

// ToggleTaskImportance flips the important flag through UpdateTask.
func (a *Actions) ToggleTaskImportance(ctx context.Context, id int64) (models.Task, error) {
	return a.toggle(ctx, id, models.FieldImportant, func(t models.Task) bool { return t.Important })
}

func (a *Actions) toggle(ctx context.Context, id int64, field string, current func(models.Task) bool) (models.Task, error) {
	task, ok := a.store.Task(id)
	if !ok {
		return models.Task{}, nil
	}
	return a.UpdateTask(ctx, id, models.Record{field: !current(task)})
}

// MoveTask reassigns a task to a folder, or to no folder when folderID is nil.
func (a *Actions) MoveTask(ctx context.Context, id int64, folderID *int64) (models.Task, error) {
	var ref any
	if folderID != nil {
		ref = *folderID
	}
	return a.UpdateTask(ctx, id, models.Record{models.FieldListID: ref})
}

// ProcessTask asks the server's assistant to analyse a task and its files.
// The analysis goes to the caller; entity state is not touched.
func (a *Actions) ProcessTask(ctx context.Context, id int64, kind string) (analysis *models.TaskAnalysis, err error) {
	done := a.begin(store.DomainTasks)
	defer func() { err = done(err) }()

	analysis, err = a.api.ProcessTask(ctx, id, kind)
	if err != nil {
		return nil, fmt.Errorf("process task %d: %w", id, err)
	}
	return analysis, nil
}

// SelectTask makes the task the selected one and loads its files. Selecting
// an id that is not in the store clears the selection.
func (a *Actions) SelectTask(ctx context.Context, id int64) error {
	task, ok := a.store.Task(id)
	if !ok {
		a.store.SetSelectedTask(nil)
		return nil
	}
	a.store.SetSelectedTask(&task)
	return a.FetchTaskFiles(ctx, id)
}

// SelectFolder sets the current folder selector and refreshes the full task
// collection the selectors filter.
func (a *Actions) SelectFolder(ctx context.Context, selector string) error {
	a.store.SetCurrentFolder(selector)
	return a.FetchTasks(ctx, nil)
}
