package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeIncremental, false},
		{"incremental", ModeIncremental, false},
		{"full", ModeFull, false},
		{"FULL", "", true},
		{"delta", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCachedMember_MergeDataOnlyCarriesPresentFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	m := NewCachedMember("C-100")
	m.CachedAt = now
	assert.True(t, m.Set(KeyStatus, "Authorized"))
	assert.False(t, m.Set("unknown", "x"))

	data := m.MergeData()

	assert.Equal(t, map[string]interface{}{
		KeyClientKey: "C-100",
		KeyCachedAt:  now,
		KeyStatus:    "Authorized",
	}, data)
}

func TestCachedMember_MergeDataSearchKeys(t *testing.T) {
	m := NewCachedMember("C-101")
	m.Set(KeyAssignedStaff, "")

	data := m.MergeData()

	assert.Equal(t, []string{}, data[KeySearchKeys])
	assert.Equal(t, "", data[KeyAssignedStaff])
}

func TestCachedMember_ValueOfLoadedDocument(t *testing.T) {
	m := &CachedMember{ClientKey: "C-1", Pathway: "Kaiser"}

	assert.Equal(t, "Kaiser", m.Value(KeyPathway))
	assert.False(t, m.Has(KeyPathway))
	assert.Equal(t, "", m.Value("nope"))
}

func TestDesiredColumns(t *testing.T) {
	columns := DesiredColumns()

	assert.Equal(t, ColumnClientID, columns[0])
	assert.Contains(t, columns, ColumnDateModified)
	assert.Len(t, columns, len(MemberFields)+1)
}

func TestTrackedFieldsAreKnown(t *testing.T) {
	for _, tf := range TrackedFields {
		_, ok := FieldByKey(tf.Key)
		assert.True(t, ok, tf.Key)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")

	errs := []error{
		&AuthError{Err: cause},
		&SchemaResolutionError{Table: "members", Err: cause},
		&RemoteFetchError{Page: 2, Err: cause},
		&PersistenceError{Committed: 800, Err: cause},
		&ActivityEmissionError{Dropped: 3, Err: cause},
	}

	for _, err := range errs {
		wrapped := fmt.Errorf("run: %w", err)
		assert.ErrorIs(t, wrapped, cause)
	}

	var pe *PersistenceError
	assert.True(t, errors.As(fmt.Errorf("x: %w", errs[3]), &pe))
	assert.Equal(t, 800, pe.Committed)
}
