package components

import (
	"github.com/alexisbeaulieu97/rigup/internal/model"
)

// DeclEntry represents a single declaration for rendering.
type DeclEntry struct {
	ID      string
	Outcome model.ApplyOutcome
}

// DeclList renders declarations with their current status, in run order.
type DeclList struct {
	entries []DeclEntry
}

// NewDeclList constructs a declaration list component.
func NewDeclList(order []string, entries map[string]model.ReportEntry) DeclList {
	list := make([]DeclEntry, 0, len(order))
	for _, id := range order {
		list = append(list, DeclEntry{ID: id, Outcome: entries[id].Outcome})
	}
	return DeclList{entries: list}
}

// Entries returns the ordered declaration entries.
func (d DeclList) Entries() []DeclEntry {
	clone := make([]DeclEntry, len(d.entries))
	copy(clone, d.entries)
	return clone
}
