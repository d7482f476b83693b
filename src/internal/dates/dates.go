package dates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PartialDate is a calendar date whose month and day may be unknown.
// Zero fields mean "unknown"; a zero Year means the whole date is unknown.
type PartialDate struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether no part of the date is known.
func (d PartialDate) IsZero() bool { return d.Year == 0 }

// String renders the date with only the known precision: "1965", "1965-03" or "1965-03-04".
func (d PartialDate) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// SameMonth reports whether d falls in the given year and month.
func (d PartialDate) SameMonth(year, month int) bool {
	return d.Year == year && d.Month == month
}

// Parse reads the remote's YYYY-MM-DD form where unknown parts are zero
// ("1965-00-00"). Placeholder years 0000, 8888 (unpublished) and 9999
// (forthcoming) yield the zero date. Shorter forms "YYYY" and "YYYY-MM" are accepted.
func Parse(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartialDate{}, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) > 3 || len(parts[0]) != 4 {
		return PartialDate{}, fmt.Errorf("dates: invalid date %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return PartialDate{}, fmt.Errorf("dates: invalid date %q", s)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	switch year {
	case 0, 8888, 9999:
		return PartialDate{}, nil
	}
	if month > 12 || day > 31 {
		return PartialDate{}, fmt.Errorf("dates: invalid date %q", s)
	}
	if month == 0 {
		day = 0
	}
	return PartialDate{Year: year, Month: month, Day: day}, nil
}

func (d PartialDate) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *PartialDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*d = p
	return nil
}

func (d PartialDate) MarshalYAML() (any, error) { return d.String(), nil }

func (d *PartialDate) UnmarshalYAML(value *yaml.Node) error {
	p, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*d = p
	return nil
}
