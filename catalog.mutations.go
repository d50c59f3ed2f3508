package main

import (
	"slices"
	"strings"
)

// record is implemented by every catalog entity.
type record[T any] interface {
	Identifier() string
	WithID(id string) T
}

func indexOf[T record[T]](records []T, id string) int {
	return slices.IndexFunc(records, func(r T) bool { return sameID(r.Identifier(), id) })
}

func containsID[T record[T]](records []T, id string) bool {
	return indexOf(records, id) >= 0
}

// appendRecord checks rec can join records and returns the new collection.
func appendRecord[T record[T]](records []T, rec T, kind string) ([]T, error) {
	if strings.TrimSpace(rec.Identifier()) == "" {
		return nil, validationError(kind + " must include 'id'")
	}
	if containsID(records, rec.Identifier()) {
		return nil, conflictError(kind + " id already exists")
	}
	return append(slices.Clip(records), rec), nil
}

// replaceRecord returns a copy of records where the record matching id is
// replaced by rec carrying id. The boolean is false when id is unknown.
func replaceRecord[T record[T]](records []T, id string, rec T) ([]T, T, bool) {
	idx := indexOf(records, id)
	if idx < 0 {
		var zero T
		return nil, zero, false
	}
	rec = rec.WithID(id)
	updated := slices.Clone(records)
	updated[idx] = rec
	return updated, rec, true
}

// removeRecord returns records without the ones matching id.
func removeRecord[T record[T]](records []T, id string) ([]T, bool) {
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if !sameID(r.Identifier(), id) {
			kept = append(kept, r)
		}
	}
	return kept, len(kept) != len(records)
}
