// Package minguo converts between Minguo (ROC calendar) date strings and
// Gregorian dates. The open-data platform publishes transaction dates as
// "YYY.MM.DD" where YYY is the Gregorian year minus 1911.
package minguo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const yearOffset = 1911

// ToGregorian parses a Minguo date string such as "114.3.5" into a Gregorian
// date at UTC midnight. Any malformed input yields an error; callers drop the
// record rather than propagate.
func ToGregorian(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("minguo: expected 3 dot-separated fields in %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("minguo: bad year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("minguo: bad month in %q: %w", s, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("minguo: bad day in %q: %w", s, err)
	}

	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("minguo: out of range date %q", s)
	}

	t := time.Date(year+yearOffset, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (e.g. 2.30 -> 3.2); reject those.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("minguo: invalid calendar day %q", s)
	}
	return t, nil
}

// FromGregorian renders a Gregorian date in the canonical zero-padded Minguo
// form, e.g. 2025-03-05 -> "114.03.05".
func FromGregorian(t time.Time) string {
	return fmt.Sprintf("%d.%02d.%02d", t.Year()-yearOffset, int(t.Month()), t.Day())
}
