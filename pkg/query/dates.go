// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// stampLayout is the fixed wire format of date-range endpoints.
const stampLayout = "200601021504"

// timeNow is the clock relative expressions resolve against. Declared as
// a var so tests can pin it.
var timeNow = time.Now

// Absolute layouts carrying an explicit time of day; these resolve to the
// exact minute with no flooring or ceiling.
var exactLayouts = []string{
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"20060102 15:04",
}

// Date-only layouts; a start endpoint floors to 00:00 and an end endpoint
// ceils to 23:59 of the period.
var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

var daysAgoPattern = regexp.MustCompile(`^(\d+) days? ago$`)

// DateRange appends a submittedDate:[A TO B] clause. Each endpoint is an
// absolute date ("2021-01-01", "2021/01/01 14:30", "2021-01", "2021") or
// a relative expression evaluated against the current time ("today",
// "yesterday", "last week", "N days ago"). Date-only endpoints floor the
// start to 00:00 and ceil the end to the last minute of the period.
func (b *Builder) DateRange(start, end string) *Builder {
	if b.err != nil {
		return b
	}
	if b.todayUsed {
		b.err = &InvalidQueryError{Reason: "Today and DateRange cannot be combined"}
		return b
	}
	if b.rangeUsed {
		b.err = &InvalidQueryError{Reason: "date range already set"}
		return b
	}
	s, err := resolveEndpoint(start, false)
	if err != nil {
		b.err = err
		return b
	}
	e, err := resolveEndpoint(end, true)
	if err != nil {
		b.err = err
		return b
	}
	if s.After(e) {
		b.err = &DateError{Input: start, Reason: "start date is after end date"}
		return b
	}
	b.dateToken = "submittedDate:[" + s.Format(stampLayout) + " TO " + e.Format(stampLayout) + "]"
	b.rangeUsed = true
	return b
}

// Today appends a date-range clause covering the current UTC day.
func (b *Builder) Today() *Builder {
	if b.err != nil {
		return b
	}
	if b.rangeUsed {
		b.err = &InvalidQueryError{Reason: "Today and DateRange cannot be combined"}
		return b
	}
	if b.todayUsed {
		b.err = &InvalidQueryError{Reason: "date range already set"}
		return b
	}
	now := timeNow().UTC()
	b.dateToken = "submittedDate:[" + floorDay(now).Format(stampLayout) + " TO " + ceilDay(now).Format(stampLayout) + "]"
	b.todayUsed = true
	return b
}

// resolveEndpoint parses one endpoint of a date range. end selects the
// ceiling bound for date-only input.
func resolveEndpoint(input string, end bool) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, &DateError{Input: input, Reason: "empty date"}
	}

	if day, ok := resolveRelative(strings.ToLower(s)); ok {
		return dayBound(day, end), nil
	}

	for _, layout := range exactLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dayBound(t.UTC(), end), nil
		}
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		if !end {
			return t.UTC(), nil
		}
		// Last minute of the month.
		last := time.Date(t.Year(), t.Month()+1, 0, 23, 59, 0, 0, time.UTC)
		return last, nil
	}
	if t, err := time.Parse("2006", s); err == nil {
		if !end {
			return t.UTC(), nil
		}
		return time.Date(t.Year(), time.December, 31, 23, 59, 0, 0, time.UTC), nil
	}

	return time.Time{}, &DateError{Input: input, Reason: "unrecognized date format"}
}

// resolveRelative maps a relative expression to the day it names.
func resolveRelative(s string) (time.Time, bool) {
	now := timeNow().UTC()
	switch s {
	case "today":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	case "last week":
		return now.AddDate(0, 0, -7), true
	}
	if m := daysAgoPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return now.AddDate(0, 0, -n), true
	}
	return time.Time{}, false
}

func dayBound(t time.Time, end bool) time.Time {
	if end {
		return ceilDay(t)
	}
	return floorDay(t)
}

func floorDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ceilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, time.UTC)
}
