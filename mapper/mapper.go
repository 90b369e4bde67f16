// Package mapper translates task documents between the field names the API
// uses (wire schema) and the names the client uses (view schema). Folders
// share one schema and pass through.
package mapper

import (
	"strconv"

	"github.com/CrowderSoup/godolist/models"
)

// Wire-schema field names that differ from the view schema.
const (
	WireNotes       = "notes"
	WireIsImportant = "isImportant"
	WireFolderID    = "folder_id"
)

// Mode selects how absent fields are handled when mapping to the wire.
type Mode int

const (
	// Patch emits only the fields present in the input.
	Patch Mode = iota
	// Create fills absent fields with their defaults.
	Create
)

// fieldRule maps one wire field. Sources are tried in order and the first
// present one wins; the default applies only in Create mode.
type fieldRule struct {
	wire       string
	view       string
	sources    []string
	def        any
	hasDefault bool
	normalize  func(any) any
}

// taskRules is the complete set of renamed or defaulted task fields:
//
//	notes       <- notes | description | ""
//	isImportant <- isImportant | important | false
//	folder_id   <- folder_id | listId | null
//	completed   <- completed | false
var taskRules = []fieldRule{
	{
		wire:       WireNotes,
		view:       models.FieldDescription,
		sources:    []string{WireNotes, models.FieldDescription},
		def:        "",
		hasDefault: true,
	},
	{
		wire:       WireIsImportant,
		view:       models.FieldImportant,
		sources:    []string{WireIsImportant, models.FieldImportant},
		def:        false,
		hasDefault: true,
	},
	{
		wire:       WireFolderID,
		view:       models.FieldListID,
		sources:    []string{WireFolderID, models.FieldListID},
		def:        nil,
		hasDefault: true,
		normalize:  normalizeFolderID,
	},
	{
		wire:       models.FieldCompleted,
		view:       models.FieldCompleted,
		sources:    []string{models.FieldCompleted},
		def:        false,
		hasDefault: true,
	},
}

// consumed lists every field name read by a rule; those never pass through
// as unknown fields.
var consumed = func() map[string]bool {
	m := map[string]bool{}
	for _, rule := range taskRules {
		for _, s := range rule.sources {
			m[s] = true
		}
	}
	return m
}()

// TaskToView renames wire fields to their view names. Unknown fields pass
// through; a renamed field wins over an unknown field of the same name.
func TaskToView(wire models.Record) models.Record {
	view := make(models.Record, len(wire))
	for k, v := range wire {
		if !consumed[k] {
			view[k] = v
		}
	}
	for _, rule := range taskRules {
		if v, ok := wire[rule.wire]; ok {
			view[rule.view] = v
		}
	}
	return view
}

// TaskToWire maps a view record (which may already use wire names) to the
// wire schema.
func TaskToWire(view models.Record, mode Mode) models.Record {
	wire := make(models.Record, len(view))
	for k, v := range view {
		if !consumed[k] {
			wire[k] = v
		}
	}
	for _, rule := range taskRules {
		v, ok := firstPresent(view, rule.sources)
		if !ok {
			if mode != Create || !rule.hasDefault {
				continue
			}
			v = rule.def
		}
		if rule.normalize != nil {
			v = rule.normalize(v)
		}
		wire[rule.wire] = v
	}
	return wire
}

// TaskFromWire decodes a server payload into a view-schema Task.
func TaskFromWire(wire models.Record) models.Task {
	return models.TaskFromRecord(TaskToView(wire))
}

// FolderToView returns a copy of the folder record.
func FolderToView(wire models.Record) models.Record {
	return wire.Clone()
}

// FolderToWire returns a copy of the folder record.
func FolderToWire(view models.Record) models.Record {
	return view.Clone()
}

func firstPresent(r models.Record, fields []string) (any, bool) {
	for _, f := range fields {
		if v, ok := r[f]; ok {
			return v, true
		}
	}
	return nil, false
}

// normalizeFolderID turns the routing layer's string ids into numbers and
// the empty and "unassigned" selectors into null, as the server does.
func normalizeFolderID(v any) any {
	switch id := v.(type) {
	case nil:
		return nil
	case string:
		if id == "" || id == "unassigned" {
			return nil
		}
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			return n
		}
		return id
	case *int64:
		if id == nil {
			return nil
		}
		return *id
	}
	if n, ok := models.Int64(v); ok {
		return n
	}
	return v
}
