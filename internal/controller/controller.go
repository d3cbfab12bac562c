// Package controller implements the business logic over the student
// collection: CRUD, search, statistics, and bulk import/export.
//
// The controller is the sole owner of the live collection — the CLI
// never touches storage directly. Every mutation is gated by model
// validation and is atomic: a detected error leaves the stored
// collection exactly as it was.
package controller

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/MuhammadAnbiya/student-manager/internal/opresult"
	"github.com/MuhammadAnbiya/student-manager/internal/storage"
	"github.com/MuhammadAnbiya/student-manager/internal/types"
)

// SearchFields are the record fields a search may target, by their
// external (serialized) names.
var SearchFields = []string{"name", "major", "email", "student_id"}

// Statistics is the aggregate view over the whole collection.
type Statistics struct {
	TotalStudents     int            `json:"total_students"`
	AverageGPA        float64        `json:"average_gpa"` // rounded to 2 decimals
	HighestGPA        float64        `json:"highest_gpa"`
	LowestGPA         float64        `json:"lowest_gpa"`
	AverageAge        float64        `json:"average_age"` // rounded to 1 decimal
	MajorDistribution map[string]int `json:"major_distribution"`
}

// Controller mediates every operation on the record collection.
// Stateless apart from the injected store — no pending transactions,
// no locks.
type Controller struct {
	store storage.Storage
}

// New returns a controller owning the given store. The store is
// injected rather than global so tests can run isolated controllers
// side by side.
func New(store storage.Storage) *Controller {
	return &Controller{store: store}
}

// Create validates the record against the current collection and
// appends it. Both timestamps are stamped here — whatever the caller
// put in created_at/updated_at is overwritten, because creation is the
// one moment a record's history starts.
//
// On validation failure nothing is stored and the returned error
// carries every broken rule.
func (c *Controller) Create(rec types.StudentRecord) (types.StudentRecord, error) {
	slog.Info("creating student", slog.String("student_id", rec.ID))

	rec.StampCreated()

	if msgs := rec.Validate(c.existingIDs(-1)); len(msgs) > 0 {
		slog.Warn("student rejected",
			slog.String("student_id", rec.ID),
			slog.Int("violations", len(msgs)))
		return types.StudentRecord{}, opresult.Validation(msgs)
	}

	c.store.Append(rec)
	return rec, nil
}

// ReadAll returns a snapshot of the collection in insertion order.
// An empty collection is not an error — the caller gets an empty slice.
func (c *Controller) ReadAll() []types.StudentRecord {
	return c.store.List()
}

// ReadByID returns the record with the given id. An empty id is a
// request error, a missing one a not-found error.
func (c *Controller) ReadByID(id string) (types.StudentRecord, error) {
	if id == "" {
		return types.StudentRecord{}, opresult.BadRequest("student ID cannot be empty")
	}

	for _, rec := range c.store.List() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return types.StudentRecord{}, opresult.NotFound(id)
}

// Update merges the given fields onto the record with the given id and
// re-validates before committing. Semantics:
//
//   - only keys present in fields are merged; unknown keys are dropped
//   - "student_id" is silently ignored — the id is immutable
//   - duplicate-id validation excludes the record itself, so keeping
//     its own id is never flagged
//   - validation runs on a merged copy; on failure the stored record is
//     untouched (copy, validate, then commit)
//   - on success updated_at is refreshed and the record keeps its
//     position in the collection
func (c *Controller) Update(id string, fields map[string]any) (types.StudentRecord, error) {
	if id == "" {
		return types.StudentRecord{}, opresult.BadRequest("student ID cannot be empty")
	}
	slog.Info("updating student", slog.String("student_id", id))

	list := c.store.List()
	idx := indexOf(list, id)
	if idx < 0 {
		return types.StudentRecord{}, opresult.NotFound(id)
	}

	merged := list[idx].ToMap()
	for key, value := range fields {
		// student_id and created_at are immutable after creation.
		if key == "student_id" || key == "created_at" {
			continue
		}
		if _, known := merged[key]; known {
			merged[key] = value
		}
	}

	candidate := types.FromMap(merged)
	if msgs := candidate.Validate(c.existingIDs(idx)); len(msgs) > 0 {
		return types.StudentRecord{}, opresult.Validation(msgs)
	}

	candidate.TouchUpdatedAt()
	if err := c.store.Set(idx, candidate); err != nil {
		return types.StudentRecord{}, err
	}
	return candidate, nil
}

// Delete removes the record with the given id and returns it, so the
// caller can report who was deleted without a second lookup.
func (c *Controller) Delete(id string) (types.StudentRecord, error) {
	if id == "" {
		return types.StudentRecord{}, opresult.BadRequest("student ID cannot be empty")
	}
	slog.Info("deleting student", slog.String("student_id", id))

	idx := indexOf(c.store.List(), id)
	if idx < 0 {
		return types.StudentRecord{}, opresult.NotFound(id)
	}
	return c.store.Remove(idx)
}

// Search returns every record whose given field contains term,
// case-insensitively, in insertion order. Zero matches is a success
// with an empty slice. The field must be one of SearchFields; "id" is
// accepted as an alias for "student_id".
func (c *Controller) Search(term, field string) ([]types.StudentRecord, error) {
	if term == "" {
		return nil, opresult.BadRequest("search term cannot be empty")
	}
	if field == "id" {
		field = "student_id"
	}
	if !slices.Contains(SearchFields, field) {
		return nil, opresult.BadRequest(fmt.Sprintf(
			"invalid search field '%s', valid fields: %s",
			field, strings.Join(SearchFields, ", ")))
	}

	needle := strings.ToLower(term)
	matches := make([]types.StudentRecord, 0)
	for _, rec := range c.store.List() {
		if strings.Contains(strings.ToLower(searchValue(rec, field)), needle) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// Statistics computes aggregates over the whole collection. An empty
// collection is not an error: it returns (nil, nil) and the caller
// decides how to present the absence of data.
func (c *Controller) Statistics() (*Statistics, error) {
	list := c.store.List()
	if len(list) == 0 {
		return nil, nil
	}

	stats := &Statistics{
		TotalStudents:     len(list),
		HighestGPA:        list[0].GPA,
		LowestGPA:         list[0].GPA,
		MajorDistribution: make(map[string]int),
	}

	var gpaSum, ageSum float64
	for _, rec := range list {
		gpaSum += rec.GPA
		ageSum += float64(rec.Age)
		stats.HighestGPA = math.Max(stats.HighestGPA, rec.GPA)
		stats.LowestGPA = math.Min(stats.LowestGPA, rec.GPA)
		stats.MajorDistribution[rec.Major]++
	}

	n := float64(len(list))
	stats.AverageGPA = roundTo(gpaSum/n, 2)
	stats.AverageAge = roundTo(ageSum/n, 1)
	return stats, nil
}

// Export returns a defensive copy of the full dataset.
func (c *Controller) Export() []types.StudentRecord {
	return c.store.List()
}

// Import replaces the collection wholesale with the given records —
// all or nothing. Each row is validated against the rows already
// accepted, so duplicate ids within the batch are caught incrementally.
// If any row fails, the whole batch is rejected with every row's
// errors and the existing collection is left unchanged.
//
// Rows arriving without timestamps are stamped on acceptance.
func (c *Controller) Import(recs []types.StudentRecord) error {
	accepted := make([]types.StudentRecord, 0, len(recs))
	var rowErrs []string

	for i, rec := range recs {
		if rec.CreatedAt == "" {
			rec.StampCreated()
		} else if rec.UpdatedAt == "" {
			rec.UpdatedAt = rec.CreatedAt
		}

		ids := make([]string, len(accepted))
		for j, a := range accepted {
			ids[j] = a.ID
		}

		if msgs := rec.Validate(ids); len(msgs) > 0 {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: %s", i+1, strings.Join(msgs, ", ")))
			continue
		}
		accepted = append(accepted, rec)
	}

	if len(rowErrs) > 0 {
		slog.Warn("import rejected", slog.Int("bad_rows", len(rowErrs)))
		return opresult.Validation(rowErrs)
	}

	c.store.Replace(accepted)
	slog.Info("import complete", slog.Int("records", len(accepted)))
	return nil
}

// existingIDs collects every stored id, skipping the record at position
// skip (pass -1 to skip nothing). Used so an updated record is not
// compared against its own id.
func (c *Controller) existingIDs(skip int) []string {
	list := c.store.List()
	ids := make([]string, 0, len(list))
	for i, rec := range list {
		if i == skip {
			continue
		}
		ids = append(ids, rec.ID)
	}
	return ids
}

func indexOf(list []types.StudentRecord, id string) int {
	for i, rec := range list {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func searchValue(rec types.StudentRecord, field string) string {
	switch field {
	case "name":
		return rec.Name
	case "major":
		return rec.Major
	case "email":
		return rec.Email
	default: // student_id — field is pre-validated
		return rec.ID
	}
}

func roundTo(x float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(x*shift) / shift
}
