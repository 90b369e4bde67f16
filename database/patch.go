package database

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CrowderSoup/godolist/models"
)

// column maps a wire field to its SQL column and checks the patched value.
type column struct {
	name    string
	convert func(any) (any, error)
}

var taskColumns = map[string]column{
	"title":       {"title", requiredString},
	"notes":       {"notes", plainString},
	"completed":   {"completed", boolean},
	"isImportant": {"is_important", boolean},
	"folder_id":   {"folder_id", nullableID},
	"dueDate":     {"due_date", nullableString},
}

var folderColumns = map[string]column{
	"name":    {"name", requiredString},
	"dueDate": {"due_date", nullableString},
}

// buildSet turns the known fields of a patch into a SET clause. Unknown
// fields are ignored.
func buildSet(fields map[string]any, columns map[string]column) (string, []any, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, ok := columns[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		col := columns[k]
		v, err := col.convert(fields[k])
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, k, err)
		}
		sets = append(sets, col.name+" = ?")
		args = append(args, v)
	}
	return strings.Join(sets, ", "), args, nil
}

func plainString(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("want string, got %T", v)
	}
	return s, nil
}

func requiredString(v any) (any, error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("must be a non-empty string")
	}
	return s, nil
}

func nullableString(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return plainString(v)
}

func boolean(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("want bool, got %T", v)
	}
	return b, nil
}

// nullableID accepts null, a number, or a numeric string. "" and
// "unassigned" mean no folder.
func nullableID(v any) (any, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		if s == "" || s == "unassigned" {
			return nil, nil
		}
	}
	id, ok := models.Int64(v)
	if !ok {
		return nil, fmt.Errorf("want folder id, got %v", v)
	}
	return id, nil
}
