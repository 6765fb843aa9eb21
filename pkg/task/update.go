package task

import (
	"fmt"
	"strings"

	"github.com/harrisonrobin/harper/pkg/herrors"
)

const (
	FieldDescription = "description"
	FieldBy          = "by"
	FieldFrom        = "from"
	FieldTo          = "to"
)

// WithField returns a copy of t with one field replaced. fieldText is the field
// name followed by the new value, e.g. "by 3/12/2024 9:00". The receiver is
// never modified, so a failed update leaves the original intact.
func (t Task) WithField(fieldText string) (Task, error) {
	name, value, _ := strings.Cut(strings.TrimSpace(fieldText), " ")
	name = strings.TrimPrefix(name, "/")
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return t, herrors.ErrInvalidUpdate
	}

	switch {
	case name == FieldDescription:
		t.Description = value
		return t, nil
	case name == FieldBy && t.Kind == DEADLINE:
		by, err := ParseDateTime(value)
		if err != nil {
			return t, err
		}
		t.By = by
		return t, nil
	case (name == FieldFrom || name == FieldTo) && t.Kind == EVENT:
		when, err := ParseDateTime(value)
		if err != nil {
			return t, err
		}
		start, end := t.Start, t.End
		if name == FieldFrom {
			start = when
		} else {
			end = when
		}
		if err := ValidateSpan(start, end); err != nil {
			return t, err
		}
		t.Start, t.End = start, end
		return t, nil
	}
	return t, fmt.Errorf("%w: field %q does not apply to [%s] tasks", herrors.ErrInvalidUpdate, name, t.Kind)
}
