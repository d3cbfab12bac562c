package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadAnbiya/student-manager/internal/types"
)

func rec(id string) types.StudentRecord {
	return types.StudentRecord{ID: id, Name: "Some Student"}
}

func TestAppendAndListOrder(t *testing.T) {
	m := New()
	m.Append(rec("STU001"))
	m.Append(rec("STU002"))
	m.Append(rec("STU003"))

	list := m.List()
	require.Len(t, list, 3)
	assert.Equal(t, "STU001", list[0].ID)
	assert.Equal(t, "STU002", list[1].ID)
	assert.Equal(t, "STU003", list[2].ID)
	assert.Equal(t, 3, m.Len())
}

func TestListIsSnapshot(t *testing.T) {
	m := New()
	m.Append(rec("STU001"))

	list := m.List()
	list[0].ID = "MUTATED"

	assert.Equal(t, "STU001", m.List()[0].ID)
}

func TestListEmptyIsNonNil(t *testing.T) {
	m := New()
	assert.NotNil(t, m.List())
	assert.Empty(t, m.List())
}

func TestSet(t *testing.T) {
	m := New()
	m.Append(rec("STU001"))
	m.Append(rec("STU002"))

	require.NoError(t, m.Set(1, rec("STU099")))
	assert.Equal(t, "STU099", m.List()[1].ID)
	assert.Equal(t, "STU001", m.List()[0].ID)

	assert.Error(t, m.Set(-1, rec("X")))
	assert.Error(t, m.Set(2, rec("X")))
}

func TestRemove(t *testing.T) {
	m := New()
	m.Append(rec("STU001"))
	m.Append(rec("STU002"))
	m.Append(rec("STU003"))

	removed, err := m.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "STU002", removed.ID)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "STU001", list[0].ID)
	assert.Equal(t, "STU003", list[1].ID)

	_, err = m.Remove(2)
	assert.Error(t, err)
}

func TestReplaceCopiesInput(t *testing.T) {
	m := New()
	m.Append(rec("OLD001"))

	input := []types.StudentRecord{rec("STU001"), rec("STU002")}
	m.Replace(input)
	input[0].ID = "MUTATED"

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "STU001", list[0].ID)
}
