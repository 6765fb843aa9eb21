package task

import (
	"testing"
	"time"

	"github.com/harrisonrobin/harper/pkg/herrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithField_Description(t *testing.T) {
	original := NewToDo("read book", true)
	updated, err := original.WithField("description read two books")
	require.NoError(t, err)
	assert.Equal(t, "read two books", updated.Description)
	assert.True(t, updated.Done)
	assert.Equal(t, "read book", original.Description)
}

func TestWithField_DeadlineBy(t *testing.T) {
	d := NewDeadline("return book", false, at(2024, time.December, 2, 18, 0))

	updated, err := d.WithField("by 3/12/2024 9:00")
	require.NoError(t, err)
	assert.True(t, at(2024, time.December, 3, 9, 0).Equal(updated.By))

	updated, err = d.WithField("/by 4/12/2024 9:00")
	require.NoError(t, err)
	assert.True(t, at(2024, time.December, 4, 9, 0).Equal(updated.By))

	_, err = d.WithField("by next week")
	assert.ErrorIs(t, err, herrors.ErrInvalidDateTime)
}

func TestWithField_EventSpan(t *testing.T) {
	e := NewEvent("meeting", false, at(2024, time.December, 2, 9, 0), at(2024, time.December, 2, 10, 0))

	updated, err := e.WithField("to 2/12/2024 11:30")
	require.NoError(t, err)
	assert.True(t, at(2024, time.December, 2, 11, 30).Equal(updated.End))
	assert.True(t, e.Start.Equal(updated.Start))

	updated, err = e.WithField("from 2/12/2024 8:00")
	require.NoError(t, err)
	assert.True(t, at(2024, time.December, 2, 8, 0).Equal(updated.Start))

	_, err = e.WithField("from 2/12/2024 10:30")
	assert.ErrorIs(t, err, herrors.ErrInvalidEvent)
}

func TestWithField_Invalid(t *testing.T) {
	todo := NewToDo("read book", false)
	deadline := NewDeadline("return book", false, at(2024, time.December, 2, 18, 0))

	tests := []struct {
		name      string
		task      Task
		fieldText string
	}{
		{"empty", todo, ""},
		{"no value", todo, "description"},
		{"unknown field", todo, "priority high"},
		{"by on todo", todo, "by 2/12/2024 18:00"},
		{"from on deadline", deadline, "from 2/12/2024 18:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.task.WithField(tt.fieldText)
			assert.ErrorIs(t, err, herrors.ErrInvalidUpdate)
			assert.True(t, tt.task.Equal(got))
		})
	}
}
