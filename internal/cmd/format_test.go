package cmd

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestFormatTime(t *testing.T) {
	pacific := time.FixedZone("PST", -8*60*60)

	type testCase struct {
		name     string
		iso      string
		style    TimeStyle
		loc      *time.Location
		expected string
	}

	run := func(t *testing.T, tc testCase) {
		actual, err := FormatTime(tc.iso, tc.style, tc.loc)
		assert.NilError(t, err)
		assert.Equal(t, actual, tc.expected)
	}

	testCases := []testCase{
		{
			name:     "full",
			iso:      "2024-03-04T15:30:05Z",
			style:    StyleFull,
			loc:      pacific,
			expected: "Monday, March 04, 2024 at 07:30:05 AM PST",
		},
		{
			name:     "short",
			iso:      "2024-03-04T15:30:05Z",
			style:    StyleShort,
			loc:      pacific,
			expected: "03/04/2024 07:30 AM",
		},
		{
			name:     "date only",
			iso:      "2024-03-04T15:30:05+00:00",
			style:    StyleDateOnly,
			expected: "March 04, 2024",
		},
		{
			name:     "time only",
			iso:      "2024-03-04T15:30:05.123456Z",
			style:    StyleTimeOnly,
			expected: "03:30 PM",
		},
		{
			name:     "unknown style",
			iso:      "2024-03-04T15:30:05Z",
			style:    TimeStyle("fancy"),
			expected: "March 04, 2024 at 03:30 PM",
		},
		{
			name:     "naive timestamp is UTC",
			iso:      "2024-03-04T15:30:05",
			style:    StyleShort,
			loc:      pacific,
			expected: "03/04/2024 07:30 AM",
		},
		{
			name:     "offset kept without location",
			iso:      "2024-03-04T15:30:05-05:00",
			style:    StyleShort,
			expected: "03/04/2024 03:30 PM",
		},
		{
			name:     "date",
			iso:      "2024-03-04",
			style:    StyleDateOnly,
			expected: "March 04, 2024",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func TestFormatTime_Invalid(t *testing.T) {
	_, err := FormatTime("yesterday", StyleShort, nil)
	assert.ErrorContains(t, err, `not an ISO 8601 time: "yesterday"`)
}

func TestFormatTime_Relative(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		offset   time.Duration
		expected string
	}

	testCases := []testCase{
		{offset: -30 * time.Second, expected: "just now"},
		{offset: 30 * time.Second, expected: "just now"},
		{offset: -time.Minute, expected: "1 minute ago"},
		{offset: -5 * time.Minute, expected: "5 minutes ago"},
		{offset: 2 * time.Hour, expected: "in 2 hours"},
		{offset: -3 * 24 * time.Hour, expected: "3 days ago"},
		{offset: 7 * 24 * time.Hour, expected: "in 1 week"},
		{offset: -45 * 24 * time.Hour, expected: "1 month ago"},
		{offset: -400 * 24 * time.Hour, expected: "1 year ago"},
		{offset: 800 * 24 * time.Hour, expected: "in 2 years"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			iso := now.Add(tc.offset).Format(time.RFC3339)
			actual, err := formatTimeAt(iso, StyleRelative, nil, now)
			assert.NilError(t, err)
			assert.Equal(t, actual, tc.expected)
		})
	}
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, HumanDuration(500*time.Millisecond), "Less than a second")
	assert.Equal(t, HumanDuration(time.Second), "1 second")
	assert.Equal(t, HumanDuration(45*time.Second), "45 seconds")
	assert.Equal(t, HumanDuration(90*time.Second), "About a minute")
	assert.Equal(t, HumanDuration(59*time.Minute), "59 minutes")
	assert.Equal(t, HumanDuration(time.Hour), "About an hour")
	assert.Equal(t, HumanDuration(36*time.Hour), "36 hours")
	assert.Equal(t, HumanDuration(3*24*time.Hour), "3 days")
	assert.Equal(t, HumanDuration(3*7*24*time.Hour), "3 weeks")
	assert.Equal(t, HumanDuration(90*24*time.Hour), "3 months")
	assert.Equal(t, HumanDuration(3*365*24*time.Hour), "3 years")
}

func TestHumanTime(t *testing.T) {
	assert.Equal(t, HumanTime(time.Time{}, "never"), "never")
	assert.Equal(t, HumanTime(time.Now().Add(-10*time.Minute), "never"), "10 minutes ago")
	assert.Equal(t, HumanTime(time.Now().Add(3*time.Hour+time.Minute), "never"), "3 hours from now")
}
