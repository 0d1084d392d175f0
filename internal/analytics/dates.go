package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is the zero point of spreadsheet date serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serials in this open range are treated as dates. Values outside it are
// assumed to be ordinary integers (quantities, phone-number fragments).
const (
	serialMin = 30000
	serialMax = 60000
)

// ParseFlexibleDate converts a raw cell value into a calendar date. It
// accepts Excel date serials, ISO 8601 strings and slash/dash/dot-delimited
// day-month-year strings in either component order. Ambiguous strings where
// neither of the first two components exceeds 12 are read day-first; this
// policy is applied uniformly across the whole pipeline.
//
// String dates resolve to local noon so that timezone conversion can never
// shift them across a day boundary. Returns false when the value does not
// describe a date.
func ParseFlexibleDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, true
	case float64:
		return fromExcelSerial(v)
	case int:
		return fromExcelSerial(float64(v))
	case int64:
		return fromExcelSerial(float64(v))
	}

	str := strings.TrimSpace(cellString(value))
	if str == "" || strings.EqualFold(str, "n/a") {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(str, 64); err == nil {
		return fromExcelSerial(serial)
	}

	// ISO 8601 carries a literal T between date and time.
	if strings.Contains(str, "T") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, str); err == nil {
				return t, true
			}
		}
	}

	return parseDelimitedDate(str)
}

func fromExcelSerial(serial float64) (time.Time, bool) {
	if serial <= serialMin || serial >= serialMax {
		return time.Time{}, false
	}
	seconds := serial * 86400
	return excelEpoch.Add(time.Duration(seconds * float64(time.Second))), true
}

func parseDelimitedDate(str string) (time.Time, bool) {
	parts := strings.FieldsFunc(str, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	var year, month, day int
	switch {
	case len(strings.TrimSpace(parts[0])) == 4:
		year, month, day = nums[0], nums[1], nums[2]
	case len(strings.TrimSpace(parts[2])) == 4:
		year = nums[2]
		day, month = disambiguate(nums[0], nums[1])
	default:
		year = nums[2] + 2000
		day, month = disambiguate(nums[0], nums[1])
	}

	return makeDate(year, month, day)
}

// disambiguate decides which of the two leading components is the day.
// Whichever exceeds 12 cannot be a month; when both fit, day-first wins.
func disambiguate(a, b int) (day, month int) {
	if a > 12 {
		return a, b
	}
	if b > 12 {
		return b, a
	}
	return a, b
}

// makeDate builds the date at local noon and rejects impossible components
// (time.Date silently normalizes overflow, so round-trip the fields).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2200 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseFlexibleDateTime additionally recovers the hour from values carrying a
// time component ("13/05/2026 14:30", serials with a day fraction). The hour
// defaults to 0 when absent.
func ParseFlexibleDateTime(value any) (t time.Time, hour int, ok bool) {
	switch value.(type) {
	case float64, int, int64:
		t, ok = ParseFlexibleDate(value)
		if !ok {
			return time.Time{}, 0, false
		}
		return t, t.Hour(), true
	}

	str := strings.TrimSpace(cellString(value))
	if str == "" {
		return time.Time{}, 0, false
	}

	if strings.Contains(str, "T") {
		t, ok = ParseFlexibleDate(str)
		if !ok {
			return time.Time{}, 0, false
		}
		return t, t.Hour(), true
	}

	datePart := str
	if fields := strings.Fields(str); len(fields) > 1 {
		datePart = fields[0]
		if h, err := strconv.Atoi(strings.SplitN(fields[1], ":", 2)[0]); err == nil {
			hour = h
		}
	}

	t, ok = ParseFlexibleDate(datePart)
	if !ok {
		return time.Time{}, 0, false
	}
	return t, hour, true
}

// DateKey formats a date as YYYY-MM-DD using its own location, never UTC, to
// avoid off-by-one day shifts.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// cellString renders a sheet cell value as text. Unformatted numeric cells
// arrive as float64; integral values must not grow a ".000000" suffix.
func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
