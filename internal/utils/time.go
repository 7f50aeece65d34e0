package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type LocalDateTime struct {
	time.Time
}

const (
	layout     = "2006-01-02T15:04:05"
	dateLayout = "2006-01-02"
)

var Location = time.UTC

func ToTimePtr(ldt *LocalDateTime) *time.Time {
	if ldt == nil {
		return nil
	}
	t := ldt.Time
	return &t
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(layout, s, Location)
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := parseDateTime(s)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.In(Location).Format(layout) + `"`), nil
}

func (ldt LocalDateTime) Equal(other LocalDateTime) bool {
	return ldt.Time.Equal(other.Time)
}

func (ldt LocalDateTime) Value() (driver.Value, error) {
	if ldt.IsZero() {
		return nil, nil
	}
	return ldt.Time, nil
}

func (ldt *LocalDateTime) Scan(value interface{}) error {
	t, err := scanTime(value, parseDateTime)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

// LocalDate is a calendar day without a time component, stored at UTC midnight.
type LocalDate struct {
	time.Time
}

func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) LocalDate {
	return NewLocalDate(t.Year(), t.Month(), t.Day())
}

func Today() LocalDate {
	return DateOf(time.Now().In(Location))
}

func ParseDate(s string) (LocalDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{t}, nil
}

func (d LocalDate) AddDays(n int) LocalDate {
	return LocalDate{d.Time.AddDate(0, 0, n)}
}

// DaysSince returns the whole number of days from other to d.
func (d LocalDate) DaysSince(other LocalDate) int {
	return int(d.Time.Sub(other.Time).Hours() / 24)
}

func (d LocalDate) After(other LocalDate) bool {
	return d.Time.After(other.Time)
}

func (d LocalDate) String() string {
	return d.Format(dateLayout)
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d LocalDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *LocalDate) Scan(value interface{}) error {
	t, err := scanTime(value, func(s string) (time.Time, error) {
		if len(s) >= len(dateLayout) {
			return time.Parse(dateLayout, s[:len(dateLayout)])
		}
		return time.Parse(dateLayout, s)
	})
	if err != nil {
		return err
	}
	if t.IsZero() {
		d.Time = time.Time{}
		return nil
	}
	*d = NewLocalDate(t.Year(), t.Month(), t.Day())
	return nil
}

func scanTime(value interface{}, parse func(string) (time.Time, error)) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case []byte:
		return parse(string(v))
	case string:
		return parse(v)
	default:
		return time.Time{}, fmt.Errorf("cannot scan type %T into a date/time", value)
	}
}
