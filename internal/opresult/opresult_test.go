package opresult

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "student with ID 'STU001' not found", NotFound("STU001").Error())
	assert.Equal(t, "search term cannot be empty", BadRequest("search term cannot be empty").Error())
	assert.Equal(t,
		"validation failed: Name cannot be empty; Invalid email format",
		Validation([]string{"Name cannot be empty", "Invalid email format"}).Error())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation([]string{"x"})))
	assert.True(t, IsNotFound(NotFound("STU001")))
	assert.True(t, IsBadRequest(BadRequest("bad")))

	assert.False(t, IsNotFound(BadRequest("bad")))
	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(fmt.Errorf("plain error")))
}

func TestAsUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("import: %w", NotFound("STU001"))
	e, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.True(t, IsNotFound(wrapped))
}
