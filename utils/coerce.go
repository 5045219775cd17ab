package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexibleInt accepts a JSON number, a numeric string, an empty string, or
// null. Empty and null leave Valid false, which callers store as NULL or
// replace with a documented default.
type FlexibleInt struct {
	Valid bool
	Int   int
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("FlexibleInt: %q is not numeric", s)
		}
		f.Valid = true
		f.Int = n
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err == nil {
		n, err := num.Int64()
		if err != nil {
			// Tolerate decimals by truncating.
			fl, ferr := num.Float64()
			if ferr != nil {
				return fmt.Errorf("FlexibleInt: %s is not numeric", num)
			}
			n = int64(fl)
		}
		f.Valid = true
		f.Int = int(n)
		return nil
	}

	return fmt.Errorf("FlexibleInt: expected number or string, got %s", string(data))
}

// Ptr returns the value as a nullable pointer.
func (f FlexibleInt) Ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Int
	return &v
}

// Or returns the value, or def when absent.
func (f FlexibleInt) Or(def int) int {
	if !f.Valid {
		return def
	}
	return f.Int
}

// dateLayouts are the accepted inbound date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate parses any accepted date string into a canonical UTC
// timestamp. Unparseable or empty input is treated as absent, not an error.
func NormalizeDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
