// Package model contains the records stored for a race event.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
)

var ErrValidation = errors.New("validation failed")

func missingField(name string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, name)
}

func invalidValue(name string, value any) error {
	return fmt.Errorf("%w: invalid %s %v", ErrValidation, name, value)
}

// DateTime accepts the ISO 8601 variants used by clients when decoding.
// Values without zone are interpreted as UTC.
type DateTime time.Time

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime(t), nil
		}
	}
	return DateTime{}, invalidValue("datetime", s)
}

func (d DateTime) Time() time.Time { return time.Time(d) }
func (d DateTime) IsZero() bool    { return time.Time(d).IsZero() }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(time.RFC3339))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func apply[T any](dst *T, v omit.Val[T]) {
	if val, ok := v.Get(); ok {
		*dst = val
	}
}

// applyNull sets dst to nil if the patch contains an explicit null
func applyNull[T any](dst **T, v omitnull.Val[T]) {
	if !v.IsUnset() {
		*dst = v.MustPtr()
	}
}
