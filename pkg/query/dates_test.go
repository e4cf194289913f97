// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinClock fixes the package clock for the duration of a test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	old := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = old })
}

func TestDateRangeAbsoluteDays(t *testing.T) {
	s, err := New().DateRange("2021-01-01", "2021-01-02").Build()
	require.NoError(t, err)
	assert.Equal(t, "submittedDate:[202101010000 TO 202101022359]", s)
}

func TestDateRangeToday(t *testing.T) {
	pinClock(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC))

	s, err := New().DateRange("today", "today").Build()
	require.NoError(t, err)
	assert.Equal(t, "submittedDate:[202405010000 TO 202405012359]", s)
}

func TestTodayShorthand(t *testing.T) {
	pinClock(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC))

	s, err := New().Today().Build()
	require.NoError(t, err)
	assert.Equal(t, "submittedDate:[202405010000 TO 202405012359]", s)
}

func TestDateRangeRelativeExpressions(t *testing.T) {
	pinClock(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"yesterday", "yesterday", "yesterday", "submittedDate:[202405090000 TO 202405092359]"},
		{"last week", "last week", "today", "submittedDate:[202405030000 TO 202405102359]"},
		{"n days ago", "3 days ago", "today", "submittedDate:[202405070000 TO 202405102359]"},
		{"one day ago", "1 day ago", "today", "submittedDate:[202405090000 TO 202405102359]"},
		{"case insensitive", "Yesterday", "TODAY", "submittedDate:[202405090000 TO 202405102359]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New().DateRange(tt.start, tt.end).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestDateRangeExplicitTimes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"dashed with time", "2021-01-01 14:30", "2021-01-01 18:45", "submittedDate:[202101011430 TO 202101011845]"},
		{"slashed with time", "2021/01/01 14:30", "2021/01/02 09:00", "submittedDate:[202101011430 TO 202101020900]"},
		{"compact with time", "20210101 14:30", "20210102 09:00", "submittedDate:[202101011430 TO 202101020900]"},
		{"slashed date only", "2021/01/01", "2021/01/02", "submittedDate:[202101010000 TO 202101022359]"},
		{"compact date only", "20210101", "20210102", "submittedDate:[202101010000 TO 202101022359]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New().DateRange(tt.start, tt.end).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestDateRangePeriodEndpoints(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"year-month", "2021-02", "2021-02", "submittedDate:[202102010000 TO 202102282359]"},
		{"leap month", "2024-02", "2024-02", "submittedDate:[202402010000 TO 202402292359]"},
		{"year", "2020", "2020", "submittedDate:[202001010000 TO 202012312359]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New().DateRange(tt.start, tt.end).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestDateRangeUnparseable(t *testing.T) {
	_, err := New().DateRange("not a date", "2021-01-02").Build()
	var de *DateError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "not a date", de.Input)
}

func TestDateRangeEmptyEndpoint(t *testing.T) {
	_, err := New().DateRange("2021-01-01", "").Build()
	var de *DateError
	require.ErrorAs(t, err, &de)
}

func TestDateRangeStartAfterEnd(t *testing.T) {
	_, err := New().DateRange("2021-06-01", "2021-01-01").Build()
	var de *DateError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Reason, "after")
}

func TestTodaySetTwice(t *testing.T) {
	_, err := New().Today().Today().Build()
	var iqe *InvalidQueryError
	require.ErrorAs(t, err, &iqe)
	assert.Contains(t, iqe.Reason, "already set")
}

func TestDateRangeSetTwice(t *testing.T) {
	_, err := New().
		DateRange("2021-01-01", "2021-01-02").
		DateRange("2022-01-01", "2022-01-02").
		Build()
	var iqe *InvalidQueryError
	require.ErrorAs(t, err, &iqe)
}
