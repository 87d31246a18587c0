// Package differ compares two documents and lists what changed between them.
//
// Objects are compared key by key and recursed into. Arrays and scalars are
// leaves: an array that changed anywhere is reported once, at its own path,
// as Modified.
package differ

import (
	"github.com/mcncl/jsonkit/internal/models"
)

// Diff returns the changes that turn left into right, in pre-order over the
// union of keys: left's keys in their order, then keys only right has.
func Diff(left, right models.Value) []models.DiffEntry {
	entries := make([]models.DiffEntry, 0)
	if !left.IsObject() || !right.IsObject() {
		if !models.Identical(left, right) {
			entries = append(entries, modified("", left, right))
		}
		return entries
	}
	return diffAt(entries, left, right, "")
}

func diffAt(entries []models.DiffEntry, left, right models.Value, path string) []models.DiffEntry {
	for _, m := range left.Members() {
		childPath := join(path, m.Key)
		other, ok := right.Get(m.Key)
		if !ok {
			entries = append(entries, models.DiffEntry{
				Kind:     models.Removed,
				Path:     childPath,
				OldValue: models.Ptr(m.Value),
			})
			continue
		}
		if m.Value.IsObject() && other.IsObject() {
			entries = diffAt(entries, m.Value, other, childPath)
			continue
		}
		if !models.Identical(m.Value, other) {
			entries = append(entries, modified(childPath, m.Value, other))
		}
	}

	for _, m := range right.Members() {
		if left.Has(m.Key) {
			continue
		}
		entries = append(entries, models.DiffEntry{
			Kind:     models.Added,
			Path:     join(path, m.Key),
			NewValue: models.Ptr(m.Value),
		})
	}
	return entries
}

func modified(path string, oldValue, newValue models.Value) models.DiffEntry {
	return models.DiffEntry{
		Kind:     models.Modified,
		Path:     path,
		OldValue: models.Ptr(oldValue),
		NewValue: models.Ptr(newValue),
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Summary counts entries per kind.
type Summary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Total is the number of entries summarized.
func (s Summary) Total() int {
	return s.Added + s.Removed + s.Modified
}

// Summarize counts the entries of a diff by kind.
func Summarize(entries []models.DiffEntry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Kind {
		case models.Added:
			s.Added++
		case models.Removed:
			s.Removed++
		case models.Modified:
			s.Modified++
		}
	}
	return s
}
