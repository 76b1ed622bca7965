package graph

import (
	"iter"
	"slices"
)

// DefaultFunctionColor strokes entries that have no colour.
const DefaultFunctionColor = "gray"

// Entry is a named function in the scene.
type Entry struct {
	ID      string
	Func    Func // may be nil; drawing a nil function does nothing
	Visible bool
	Color   string
}

// StrokeColor returns the entry colour or DefaultFunctionColor.
func (e *Entry) StrokeColor() string {
	if e.Color == "" {
		return DefaultFunctionColor
	}
	return e.Color
}

// Registry is the ordered set of functions drawn by a Graph.
type Registry struct {
	order   []string
	entries map[string]*Entry
	palette *Palette
}

// NewRegistry creates an empty registry drawing colours from palette.
func NewRegistry(palette *Palette) *Registry {
	if palette == nil {
		palette = NewPalette(DefaultColors...)
	}
	return &Registry{
		entries: make(map[string]*Entry),
		palette: palette,
	}
}

// Insert adds f under id and makes it visible. Without a colour argument
// the next palette colour is used.
//
// Inserting an existing id replaces its function and colour in place; the
// entry keeps its position in the drawing order.
func (r *Registry) Insert(id string, f Func, color ...string) *Entry {
	var c string
	if len(color) > 0 {
		c = color[0]
	} else {
		c = r.palette.Next()
	}

	e, ok := r.entries[id]
	if !ok {
		e = &Entry{ID: id}
		r.entries[id] = e
		r.order = append(r.order, id)
	}
	e.Func = f
	e.Color = c
	e.Visible = true
	return e
}

// Remove deletes id. It reports whether the id was present.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return true
}

// SetVisible changes the visibility of id. Unknown ids are ignored and
// reported as false.
func (r *Registry) SetVisible(id string, visible bool) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.Visible = visible
	return true
}

// Toggle flips the visibility of id and returns the new state.
func (r *Registry) Toggle(id string) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.Visible = !e.Visible
	return e.Visible
}

// Visible reports whether id exists and is visible.
func (r *Registry) Visible(id string) bool {
	e, ok := r.entries[id]
	return ok && e.Visible
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.order)
}

// Entries yields every entry in insertion order.
func (r *Registry) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, id := range r.order {
			if !yield(r.entries[id]) {
				return
			}
		}
	}
}

// IDs returns the entry ids in insertion order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Palette returns the palette used for unnamed colours.
func (r *Registry) Palette() *Palette {
	return r.palette
}
