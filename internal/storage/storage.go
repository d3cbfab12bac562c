// Package storage defines the Storage interface — a contract that any
// collection backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The controller should not know or care how the collection is held.
// By depending only on this interface:
//
//   - Swapping the backing store = implement the interface, change one
//     line in main.go. Zero controller changes.
//
//   - Writing tests = each test instantiates its own store, so
//     controllers in parallel tests never share state.
package storage

import "github.com/MuhammadAnbiya/student-manager/internal/types"

// Storage is the collection contract: an ordered sequence of records
// where insertion order is display order. Positions are stable — Set
// replaces in place, Remove closes the gap.
//
// Implementations must return and accept defensive copies: a caller
// mutating a slice it got from List (or passed to Replace) must not
// affect the stored collection.
type Storage interface {
	// List returns a snapshot of every record in insertion order.
	// An empty collection yields an empty (non-nil) slice.
	List() []types.StudentRecord

	// Len reports the number of stored records.
	Len() int

	// Append adds a record at the end of the collection.
	Append(rec types.StudentRecord)

	// Set replaces the record at position i, preserving order.
	// Returns an error if i is out of range.
	Set(i int, rec types.StudentRecord) error

	// Remove deletes the record at position i and returns it.
	// Returns an error if i is out of range.
	Remove(i int) (types.StudentRecord, error)

	// Replace swaps the entire collection for the given records.
	Replace(recs []types.StudentRecord)
}
