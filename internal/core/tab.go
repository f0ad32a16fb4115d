package core

import (
	"context"
	"io"
)

// Column describes one column of a tab's result table.
type Column struct {
	Key    string
	Label  string
	Render func(e Entity) string // Optional; defaults to FieldString(e, Key)
}

// Cell returns the display value of this column for e.
func (c Column) Cell(e Entity) string {
	if c.Render != nil {
		return c.Render(e)
	}
	return FieldString(e, c.Key)
}

// RenderAs adapts a render function written against a concrete entity type.
// Entities of any other type render as an empty cell.
func RenderAs[E Entity](fn func(e E) string) func(Entity) string {
	return func(e Entity) string {
		typed, ok := e.(E)
		if !ok {
			return ""
		}
		return fn(typed)
	}
}

// Store is the data collaborator behind a tab. List returns the snapshot the
// tab renders; the mutating calls are the effects the modal orchestrator runs.
type Store interface {
	List(ctx context.Context) ([]Entity, error)
	Create(ctx context.Context, data FormData) (Entity, error)
	Update(ctx context.Context, item Entity, data FormData) (Entity, error)
	Delete(ctx context.Context, item Entity) error
}

// Exporter writes a collection to a file format. Implementations must not
// modify items.
type Exporter interface {
	FileExtension() string
	ContentType() string
	Export(w io.Writer, items []Entity) error
}

// ImportHandler receives unvalidated rows from a spreadsheet. Validating them
// is the handler's job.
type ImportHandler func(ctx context.Context, rows []RawRecord) error

// Tab is the declarative configuration of one manageable collection.
// Everything the surface does for a tab goes through these fields.
type Tab struct {
	ID           string
	Label        string
	Icon         string
	Columns      []Column
	SearchFields []string
	Filters      []FilterDescriptor
	Form         Form
	Store        Store
	CreateLabel  string
	Exporter     Exporter      // nil disables export
	ImportKind   string        // Shown in the import dialog, e.g. "élèves"
	Import       ImportHandler // nil disables import
}

// Filter returns the descriptor for key.
func (t Tab) Filter(key string) (FilterDescriptor, bool) {
	for _, f := range t.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterDescriptor{}, false
}

// CanExport reports whether the tab has an exporter.
func (t Tab) CanExport() bool { return t.Exporter != nil }

// CanImport reports whether the tab accepts imports.
func (t Tab) CanImport() bool { return t.Import != nil }

// TabInfo is the display summary of a tab used by tab bars and the JSON API.
type TabInfo struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}
