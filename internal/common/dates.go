package common

import (
	"fmt"
	"strings"
	"time"
)

// The source site publishes on Beijing time. All date anchoring uses a
// fixed UTC+8 zone so behavior does not depend on the host timezone.
var beijingZone = time.FixedZone("CST", 8*60*60)

// ParseDate validates a YYYY-MM-DD date string and returns it parsed
// in Beijing time at midnight.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", date, beijingZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return t, nil
}

// DateAtNoon anchors a YYYY-MM-DD date at local noon Beijing time.
// Noon keeps range scans stable against DST-free zone offsets and
// off-by-one day boundaries.
func DateAtNoon(date string) (time.Time, error) {
	t, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}

// DayBounds returns the inclusive start and end instants of a
// YYYY-MM-DD calendar day in Beijing time.
func DayBounds(date string) (time.Time, time.Time, error) {
	start, err := ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}

// BeijingYesterday returns the calendar day before now in Beijing
// time, formatted YYYY-MM-DD. The daily update targets this date since
// the source finishes publishing a day's news by the following
// morning.
func BeijingYesterday(now time.Time) string {
	return now.In(beijingZone).AddDate(0, 0, -1).Format("2006-01-02")
}

// SlashDate converts YYYY-MM-DD to the YYYY/MM/DD form used by the
// source site's list pages.
func SlashDate(date string) string {
	return strings.ReplaceAll(date, "-", "/")
}
