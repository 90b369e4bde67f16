package models

// Folder field names. The wire and view schemas agree for folders.
const (
	FieldName = "name"
)

// Folder is a list that tasks point to.
type Folder struct {
	ID        int64
	Name      string
	DueDate   *string
	CreatedAt string
	Extra     Record
}

// FolderFromRecord builds a Folder from a record. It never fails.
func FolderFromRecord(r Record) Folder {
	var f Folder
	for k, v := range r {
		switch k {
		case FieldID:
			f.ID = int64Value(v)
		case FieldName:
			f.Name = stringValue(v)
		case FieldDueDate:
			f.DueDate = nullableString(v)
		case FieldCreatedAt:
			f.CreatedAt = stringValue(v)
		default:
			if f.Extra == nil {
				f.Extra = Record{}
			}
			f.Extra[k] = v
		}
	}
	return f
}

// Record returns the folder as a record.
func (f Folder) Record() Record {
	r := make(Record, 4+len(f.Extra))
	for k, v := range f.Extra {
		r[k] = v
	}
	r[FieldID] = f.ID
	r[FieldName] = f.Name
	r[FieldDueDate] = nullableValue(f.DueDate)
	r[FieldCreatedAt] = f.CreatedAt
	return r
}

// Clone returns a copy that shares no mutable state with f.
func (f Folder) Clone() Folder {
	c := f
	if f.DueDate != nil {
		d := *f.DueDate
		c.DueDate = &d
	}
	if f.Extra != nil {
		c.Extra = f.Extra.Clone()
	}
	return c
}
