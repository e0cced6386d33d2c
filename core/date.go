package core

import (
	"time"

	"github.com/pkg/errors"
)

// DateKeyLayout is the canonical local-calendar layout used as the time axis of every per-day record.
const DateKeyLayout = "2006-01-02"

// DateKey is a local calendar date formatted as YYYY-MM-DD. No timezone conversion is ever applied.
// Keys sort lexically in chronological order.
type DateKey string

var nowFunc = time.Now // mockable

// ParseDateKey checks that s is a canonical YYYY-MM-DD date.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.ParseInLocation(DateKeyLayout, s, time.Local)
	if err != nil {
		return "", errors.Wrapf(err, "parsing date key %q", s)
	}
	// reject non-canonical spellings that time.Parse would still normalize
	if t.Format(DateKeyLayout) != s {
		return "", errors.Errorf("date key %q is not canonical", s)
	}
	return DateKey(s), nil
}

// DateKeyOf formats t in local time.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.In(time.Local).Format(DateKeyLayout))
}

// Today returns the current local date.
func Today() DateKey {
	return DateKeyOf(nowFunc())
}

func (d DateKey) String() string { return string(d) }

// Time returns local midnight of d.
func (d DateKey) Time() (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, string(d), time.Local)
}

func (d DateKey) Valid() bool {
	_, err := ParseDateKey(string(d))
	return err == nil
}
