// Package memory provides the in-memory implementation of the
// storage.Storage interface.
//
// The whole system is process-lifetime only — there is deliberately no
// file, database, or network behind this store. A plain slice is the
// entire persistence layer, and the data is gone when the process
// exits.
package memory

import (
	"fmt"

	"github.com/MuhammadAnbiya/student-manager/internal/storage"
	"github.com/MuhammadAnbiya/student-manager/internal/types"
)

// Memory holds the live collection as an ordered slice.
// Single-threaded by design: the one controller owning this store is
// driven by a synchronous menu loop, so there is no lock.
type Memory struct {
	records []types.StudentRecord
}

// Compile-time check that Memory satisfies the interface.
var _ storage.Storage = (*Memory)(nil)

// New returns an empty store.
func New() *Memory {
	return &Memory{records: make([]types.StudentRecord, 0)}
}

// List returns a copy of the collection in insertion order. The record
// type has no reference fields, so a shallow copy of the slice is a
// full snapshot.
func (m *Memory) List() []types.StudentRecord {
	out := make([]types.StudentRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	return len(m.records)
}

// Append adds a record at the end of the collection.
func (m *Memory) Append(rec types.StudentRecord) {
	m.records = append(m.records, rec)
}

// Set replaces the record at position i in place.
func (m *Memory) Set(i int, rec types.StudentRecord) error {
	if i < 0 || i >= len(m.records) {
		return fmt.Errorf("memory.Set: index %d out of range (len %d)", i, len(m.records))
	}
	m.records[i] = rec
	return nil
}

// Remove deletes the record at position i and returns it. Later records
// shift down one position.
func (m *Memory) Remove(i int) (types.StudentRecord, error) {
	if i < 0 || i >= len(m.records) {
		return types.StudentRecord{}, fmt.Errorf("memory.Remove: index %d out of range (len %d)", i, len(m.records))
	}
	removed := m.records[i]
	m.records = append(m.records[:i], m.records[i+1:]...)
	return removed, nil
}

// Replace swaps the whole collection. The input slice is copied so the
// caller keeps no handle on the stored data.
func (m *Memory) Replace(recs []types.StudentRecord) {
	m.records = make([]types.StudentRecord, len(recs))
	copy(m.records, recs)
}
