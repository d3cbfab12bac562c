// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the controller, storage, and CLI can all import types without
// depending on each other.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout is the string form used for created_at / updated_at.
// Records keep their timestamps as strings so that a serialize →
// deserialize round trip is lossless down to the character.
const TimestampLayout = "2006-01-02 15:04:05"

// StudentRecord represents one student in the system.
//
// Struct tags serve two purposes:
//
//  1. json:"..." — the external field names, also used as the keys of
//     the ToMap/FromMap mapping.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. Tags on a field are evaluated left to right and the
//     first failing tag wins, so each field reports at most one error.
//     Fields are declared in validation order: id, name, email, age,
//     major, gpa.
type StudentRecord struct {
	ID        string  `json:"student_id" validate:"required,min=3,alphanum"`
	Name      string  `json:"name" validate:"required,notblank,trimmedmin=2,alphaspace"`
	Email     string  `json:"email" validate:"required,emailfmt"`
	Age       int     `json:"age" validate:"gte=16,lte=100"`
	Major     string  `json:"major" validate:"required,notblank,trimmedmin=2"`
	GPA       float64 `json:"gpa" validate:"gte=0,lte=4"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailRe = regexp.MustCompile(`^[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}$`)
)

// validate is the shared validator instance with our custom rules
// registered. validator.Validate caches struct metadata internally, so
// one instance for the whole package is the cheap option.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// notblank: rejects strings that are empty after trimming.
	// The stock "required" tag only catches the truly empty string.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// trimmedmin=N: minimum rune count after trimming surrounding
	// whitespace ("  a  " is one character long, not five).
	v.RegisterValidation("trimmedmin", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})

	// alphaspace: letters and spaces only. Deliberately strict — no
	// hyphens, apostrophes, or non-ASCII letters.
	v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})

	// emailfmt: the classic local@domain.tld shape.
	v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})

	return v
}

// Validate runs every field rule in order (id → name → email → age →
// major → gpa) and returns all failure messages, not just the first.
// A duplicate-id check against existingIDs is added only when the id
// itself is syntactically valid — a malformed id already has its own
// message and a duplicate complaint on top of it would be noise.
//
// Validate never mutates the record and never returns a Go error for a
// rule violation: an empty slice means the record is valid.
func (r StudentRecord) Validate(existingIDs []string) []string {
	var msgs []string
	idValid := true

	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			// ValidationErrors come back in struct declaration
			// order, which is exactly the order we want.
			for _, fe := range fieldErrs {
				if fe.StructField() == "ID" {
					idValid = false
				}
				msgs = append(msgs, fieldMessage(fe))
			}
		}
	}

	if idValid && slices.Contains(existingIDs, r.ID) {
		// The id slot comes first in message order, so the
		// duplicate message goes to the front.
		msgs = append([]string{"Student ID already exists"}, msgs...)
	}

	return msgs
}

// fieldMessage converts one validator.FieldError into a human-readable
// message, switching on the field and the tag that failed.
func fieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "ID":
		switch fe.Tag() {
		case "required":
			return "Student ID cannot be empty"
		case "min":
			return "Student ID must be at least 3 characters long"
		default: // alphanum
			return "Student ID must contain only letters and numbers"
		}
	case "Name":
		switch fe.Tag() {
		case "required", "notblank":
			return "Name cannot be empty"
		case "trimmedmin":
			return "Name must be at least 2 characters long"
		default: // alphaspace
			return "Name must contain only letters and spaces"
		}
	case "Email":
		if fe.Tag() == "required" {
			return "Email cannot be empty"
		}
		return "Invalid email format"
	case "Age":
		return "Age must be between 16 and 100"
	case "Major":
		switch fe.Tag() {
		case "required", "notblank":
			return "Major cannot be empty"
		default: // trimmedmin
			return "Major must be at least 2 characters long"
		}
	case "GPA":
		return "GPA must be between 0.0 and 4.0"
	}
	return fmt.Sprintf("field %s is invalid", fe.Field())
}

// Now returns the current time in the record timestamp form.
func Now() string {
	return time.Now().Format(TimestampLayout)
}

// StampCreated sets both timestamps to the current time. Called once
// when a record enters the collection; created_at never changes after
// that.
func (r *StudentRecord) StampCreated() {
	now := Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// TouchUpdatedAt refreshes updated_at. No other side effect.
func (r *StudentRecord) TouchUpdatedAt() {
	r.UpdatedAt = Now()
}

// ToMap serializes the record into a field-name-keyed mapping. The keys
// match the json tags, so ToMap/FromMap and encoding/json agree on
// naming.
func (r StudentRecord) ToMap() map[string]any {
	return map[string]any{
		"student_id": r.ID,
		"name":       r.Name,
		"email":      r.Email,
		"age":        r.Age,
		"major":      r.Major,
		"gpa":        r.GPA,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}

// FromMap builds a record from a mapping. Missing fields default to
// their zero values. Timestamps present in the source map are preserved
// as-is; absent ones are stamped with the current time, so
// FromMap(rec.ToMap()) round-trips losslessly.
//
// Numeric values are accepted as int, int64, or float64 — a mapping
// that has passed through encoding/json carries all numbers as float64.
func FromMap(data map[string]any) StudentRecord {
	r := StudentRecord{
		ID:    stringField(data, "student_id"),
		Name:  stringField(data, "name"),
		Email: stringField(data, "email"),
		Age:   intField(data, "age"),
		Major: stringField(data, "major"),
		GPA:   floatField(data, "gpa"),
	}

	r.StampCreated()
	if v, ok := data["created_at"]; ok {
		r.CreatedAt, _ = v.(string)
	}
	if v, ok := data["updated_at"]; ok {
		r.UpdatedAt, _ = v.(string)
	}

	return r
}

// String is the one-line log/debug representation.
func (r StudentRecord) String() string {
	return fmt.Sprintf("Student(ID: %s, Name: %s, Email: %s, Age: %d, Major: %s, GPA: %.2f)",
		r.ID, r.Name, r.Email, r.Age, r.Major, r.GPA)
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func floatField(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
