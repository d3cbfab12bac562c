package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() StudentRecord {
	return StudentRecord{
		ID:    "STU001",
		Name:  "John Doe",
		Email: "john.doe@email.com",
		Age:   20,
		Major: "Computer Science",
		GPA:   3.8,
	}
}

func TestValidateValidRecord(t *testing.T) {
	msgs := validRecord().Validate(nil)
	assert.Empty(t, msgs)
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StudentRecord)
		want   string
	}{
		{"empty id", func(r *StudentRecord) { r.ID = "" }, "Student ID cannot be empty"},
		{"short id", func(r *StudentRecord) { r.ID = "AB" }, "Student ID must be at least 3 characters long"},
		{"non-alphanumeric id", func(r *StudentRecord) { r.ID = "AB-1" }, "Student ID must contain only letters and numbers"},
		{"empty name", func(r *StudentRecord) { r.Name = "" }, "Name cannot be empty"},
		{"blank name", func(r *StudentRecord) { r.Name = "   " }, "Name cannot be empty"},
		{"short name", func(r *StudentRecord) { r.Name = "J" }, "Name must be at least 2 characters long"},
		{"digits in name", func(r *StudentRecord) { r.Name = "J0hn Doe" }, "Name must contain only letters and spaces"},
		{"hyphenated name", func(r *StudentRecord) { r.Name = "Anne-Marie" }, "Name must contain only letters and spaces"},
		{"empty email", func(r *StudentRecord) { r.Email = "" }, "Email cannot be empty"},
		{"malformed email", func(r *StudentRecord) { r.Email = "not-an-email" }, "Invalid email format"},
		{"email without tld", func(r *StudentRecord) { r.Email = "a@b" }, "Invalid email format"},
		{"age too low", func(r *StudentRecord) { r.Age = 15 }, "Age must be between 16 and 100"},
		{"age too high", func(r *StudentRecord) { r.Age = 101 }, "Age must be between 16 and 100"},
		{"empty major", func(r *StudentRecord) { r.Major = "" }, "Major cannot be empty"},
		{"blank-padded short major", func(r *StudentRecord) { r.Major = " a " }, "Major must be at least 2 characters long"},
		{"gpa too high", func(r *StudentRecord) { r.GPA = 4.5 }, "GPA must be between 0.0 and 4.0"},
		{"gpa negative", func(r *StudentRecord) { r.GPA = -0.1 }, "GPA must be between 0.0 and 4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			assert.Equal(t, []string{tt.want}, rec.Validate(nil))
		})
	}
}

func TestValidateBoundaryValues(t *testing.T) {
	rec := validRecord()
	rec.Age = 16
	rec.GPA = 0.0
	assert.Empty(t, rec.Validate(nil))

	rec.Age = 100
	rec.GPA = 4.0
	assert.Empty(t, rec.Validate(nil))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	// A zero record breaks every rule except GPA (0.0 is a valid GPA).
	// Messages come back in field order: id, name, email, age, major.
	msgs := StudentRecord{}.Validate(nil)
	assert.Equal(t, []string{
		"Student ID cannot be empty",
		"Name cannot be empty",
		"Email cannot be empty",
		"Age must be between 16 and 100",
		"Major cannot be empty",
	}, msgs)
}

func TestValidateDuplicateID(t *testing.T) {
	msgs := validRecord().Validate([]string{"STU001", "STU002"})
	assert.Equal(t, []string{"Student ID already exists"}, msgs)
}

func TestValidateDuplicateSkippedForInvalidID(t *testing.T) {
	// A syntactically broken id gets its own message only — no
	// duplicate complaint on top, even if the same value is present.
	rec := validRecord()
	rec.ID = "AB"
	msgs := rec.Validate([]string{"AB"})
	assert.Equal(t, []string{"Student ID must be at least 3 characters long"}, msgs)
}

func TestMapRoundTrip(t *testing.T) {
	rec := validRecord()
	rec.CreatedAt = "2024-01-15 10:30:00"
	rec.UpdatedAt = "2024-02-20 08:00:00"

	got := FromMap(rec.ToMap())
	assert.Equal(t, rec, got)
}

func TestFromMapStampsMissingTimestamps(t *testing.T) {
	got := FromMap(map[string]any{
		"student_id": "STU001",
		"name":       "John Doe",
		"email":      "john.doe@email.com",
		"age":        20,
		"major":      "Computer Science",
		"gpa":        3.8,
	})

	require.NotEmpty(t, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	_, err := time.Parse(TimestampLayout, got.CreatedAt)
	assert.NoError(t, err)
}

func TestFromMapJSONNumbers(t *testing.T) {
	// A mapping that went through encoding/json carries every number
	// as float64; age must still land as an int.
	got := FromMap(map[string]any{
		"student_id": "STU001",
		"age":        float64(20),
		"gpa":        float64(3.8),
	})
	assert.Equal(t, 20, got.Age)
	assert.Equal(t, 3.8, got.GPA)

	got = FromMap(map[string]any{"age": int64(21), "gpa": 3})
	assert.Equal(t, 21, got.Age)
	assert.Equal(t, 3.0, got.GPA)
}

func TestFromMapMissingFieldsDefault(t *testing.T) {
	got := FromMap(map[string]any{"student_id": "STU001"})
	assert.Equal(t, "STU001", got.ID)
	assert.Empty(t, got.Name)
	assert.Zero(t, got.Age)
	assert.Zero(t, got.GPA)
}

func TestTouchUpdatedAt(t *testing.T) {
	rec := validRecord()
	rec.CreatedAt = "2000-01-01 00:00:00"
	rec.UpdatedAt = "2000-01-01 00:00:00"

	rec.TouchUpdatedAt()

	assert.Equal(t, "2000-01-01 00:00:00", rec.CreatedAt, "created_at must never change")
	assert.NotEqual(t, "2000-01-01 00:00:00", rec.UpdatedAt)

	_, err := time.Parse(TimestampLayout, rec.UpdatedAt)
	assert.NoError(t, err)
}

func TestValidateHasNoSideEffects(t *testing.T) {
	rec := validRecord()
	rec.ID = ""
	before := rec
	rec.Validate([]string{"STU002"})
	assert.Equal(t, before, rec)
}
