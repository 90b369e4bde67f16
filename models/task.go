package models

// View-schema field names for tasks.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldImportant   = "important"
	FieldListID      = "listId"
	FieldDueDate     = "dueDate"
	FieldCreatedAt   = "createdAt"
)

// Task is a task in view schema.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	Important   bool
	// ListID is nil when the task is unassigned.
	ListID    *int64
	DueDate   *string
	CreatedAt string
	// Extra holds fields the client does not interpret.
	Extra Record
}

// TaskFromRecord builds a Task from a view-schema record. It never fails:
// fields of the wrong type decode to their zero value.
func TaskFromRecord(r Record) Task {
	var t Task
	for k, v := range r {
		switch k {
		case FieldID:
			t.ID = int64Value(v)
		case FieldTitle:
			t.Title = stringValue(v)
		case FieldDescription:
			t.Description = stringValue(v)
		case FieldCompleted:
			t.Completed = boolValue(v)
		case FieldImportant:
			t.Important = boolValue(v)
		case FieldListID:
			t.ListID = NullableInt64(v)
		case FieldDueDate:
			t.DueDate = nullableString(v)
		case FieldCreatedAt:
			t.CreatedAt = stringValue(v)
		default:
			if t.Extra == nil {
				t.Extra = Record{}
			}
			t.Extra[k] = v
		}
	}
	return t
}

// Record returns the task as a view-schema record.
func (t Task) Record() Record {
	r := make(Record, 8+len(t.Extra))
	for k, v := range t.Extra {
		r[k] = v
	}
	r[FieldID] = t.ID
	r[FieldTitle] = t.Title
	r[FieldDescription] = t.Description
	r[FieldCompleted] = t.Completed
	r[FieldImportant] = t.Important
	r[FieldListID] = nullableValue(t.ListID)
	r[FieldDueDate] = nullableValue(t.DueDate)
	r[FieldCreatedAt] = t.CreatedAt
	return r
}

// Unassigned reports whether the task has no folder reference.
func (t Task) Unassigned() bool {
	return t.ListID == nil
}

// InFolder reports whether the task references the given folder.
func (t Task) InFolder(folderID int64) bool {
	return t.ListID != nil && *t.ListID == folderID
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	c := t
	if t.ListID != nil {
		id := *t.ListID
		c.ListID = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.Extra != nil {
		c.Extra = t.Extra.Clone()
	}
	return c
}
