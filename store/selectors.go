package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/CrowderSoup/godolist/models"
)

// Reserved folder selectors.
const (
	SelectorAll        = "all"
	SelectorImportant  = "important"
	SelectorCompleted  = "completed"
	SelectorUnassigned = "unassigned"
	SelectorMyDay      = "myday"
)

var now = time.Now

// TasksByFolder filters tasks by a folder selector. The reserved selectors
// are checked before any folder id matching, so "important" returns every
// important task whatever its folder. An empty selector returns everything;
// a selector that is neither reserved nor a folder id matches nothing.
func TasksByFolder(tasks []models.Task, selector string) []models.Task {
	switch selector {
	case SelectorImportant:
		return ImportantTasks(tasks)
	case SelectorCompleted:
		return CompletedTasks(tasks)
	case SelectorAll, "":
		return filter(tasks, func(models.Task) bool { return true })
	case SelectorUnassigned:
		return filter(tasks, models.Task.Unassigned)
	case SelectorMyDay:
		today := now().Format(time.DateOnly)
		return filter(tasks, func(t models.Task) bool {
			return t.DueDate != nil && strings.HasPrefix(*t.DueDate, today)
		})
	}
	folderID, err := strconv.ParseInt(selector, 10, 64)
	if err != nil {
		return []models.Task{}
	}
	return filter(tasks, func(t models.Task) bool { return t.InFolder(folderID) })
}

// SearchTasks matches the query against titles and notes, case-insensitively,
// across all folders: a non-empty query ignores the selector. An empty query
// falls back to TasksByFolder.
func SearchTasks(tasks []models.Task, query, selector string) []models.Task {
	if query == "" {
		return TasksByFolder(tasks, selector)
	}
	term := strings.ToLower(query)
	return filter(tasks, func(t models.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term)
	})
}

func CompletedTasks(tasks []models.Task) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Completed })
}

func ImportantTasks(tasks []models.Task) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Important })
}

// TaskByID does a linear lookup.
func TaskByID(tasks []models.Task, id int64) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func filter(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TasksByFolder filters the current tasks. See the package function.
func (s *Store) TasksByFolder(selector string) []models.Task {
	return TasksByFolder(s.Tasks(), selector)
}

// CurrentTasks filters the tasks by the current folder selector.
func (s *Store) CurrentTasks() []models.Task {
	return TasksByFolder(s.Tasks(), s.CurrentFolder())
}

// SearchTasks searches the current tasks. See the package function.
func (s *Store) SearchTasks(query, selector string) []models.Task {
	return SearchTasks(s.Tasks(), query, selector)
}

func (s *Store) CompletedTasks() []models.Task {
	return CompletedTasks(s.Tasks())
}

func (s *Store) ImportantTasks() []models.Task {
	return ImportantTasks(s.Tasks())
}
