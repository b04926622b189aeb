package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/michaelrosejr/pytellum/internal/dynamic"
)

// HumanDuration returns a human-readable approximation of a duration
// (eg. "About a minute", "4 hours ago", etc.).
// Modified version of github.com/docker/go-units.HumanDuration
func HumanDuration(d time.Duration) string {
	seconds := int(d.Seconds())

	switch {
	case seconds < 1:
		return "Less than a second"
	case seconds == 1:
		return "1 second"
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	}

	minutes := int(d.Minutes())
	switch {
	case minutes == 1:
		return "About a minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := int(math.Round(d.Hours()))
	switch {
	case hours == 1:
		return "About an hour"
	case hours < 48:
		return fmt.Sprintf("%d hours", hours)
	case hours < 24*7*2:
		return fmt.Sprintf("%d days", hours/24)
	case hours < 24*30*2:
		return fmt.Sprintf("%d weeks", hours/24/7)
	case hours < 24*365*2:
		return fmt.Sprintf("%d months", hours/24/30)
	}

	return fmt.Sprintf("%d years", int(d.Hours())/24/365)
}

func HumanTime(t time.Time, zeroValue string) string {
	if t.IsZero() {
		return zeroValue
	}

	delta := time.Since(t)
	if delta < 0 {
		return HumanDuration(-delta) + " from now"
	}
	return HumanDuration(delta) + " ago"
}

// TimeStyle selects a layout for FormatTime.
type TimeStyle string

const (
	StyleFull     TimeStyle = "full"
	StyleShort    TimeStyle = "short"
	StyleDateOnly TimeStyle = "date_only"
	StyleTimeOnly TimeStyle = "time_only"
	StyleRelative TimeStyle = "relative"
)

var timeLayouts = map[TimeStyle]string{
	StyleFull:     "Monday, January 02, 2006 at 03:04:05 PM MST",
	StyleShort:    "01/02/2006 03:04 PM",
	StyleDateOnly: "January 02, 2006",
	StyleTimeOnly: "03:04 PM",
}

const defaultTimeLayout = "January 02, 2006 at 03:04 PM"

// timestamps without an offset are read as UTC
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseISOTime(iso string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("not an ISO 8601 time: %q", iso)
}

// FormatTime renders an ISO 8601 timestamp in loc using style. A nil loc
// keeps the timestamp's own offset. Unknown styles use a long date and
// minute precision time.
func FormatTime(iso string, style TimeStyle, loc *time.Location) (string, error) {
	return formatTimeAt(iso, style, loc, time.Now())
}

func formatTimeAt(iso string, style TimeStyle, loc *time.Location, now time.Time) (string, error) {
	t, err := parseISOTime(strings.TrimSpace(iso))
	if err != nil {
		return "", err
	}

	if loc != nil {
		t = t.In(loc)
	}

	if style == StyleRelative {
		return relativeTime(t, now), nil
	}

	layout, ok := timeLayouts[style]
	if !ok {
		layout = defaultTimeLayout
	}

	return t.Format(layout), nil
}

// relativeTime describes t from the point of view of now, e.g.
// "2 hours ago" or "in 3 days". Months are 30 days and years 365.
func relativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	future := diff < 0
	seconds := math.Abs(diff.Seconds())

	const (
		minute = 60
		hour   = 60 * minute
		day    = 24 * hour
		week   = 7 * day
		month  = 30 * day
		year   = 365 * day
	)

	format := func(value int, unit string) string {
		if value != 1 {
			unit += "s"
		}
		if future {
			return fmt.Sprintf("in %d %s", value, unit)
		}
		return fmt.Sprintf("%d %s ago", value, unit)
	}

	switch {
	case seconds < minute:
		return "just now"
	case seconds < hour:
		return format(int(seconds/minute), "minute")
	case seconds < day:
		return format(int(seconds/hour), "hour")
	case seconds < week:
		return format(int(seconds/day), "day")
	case seconds < month:
		return format(int(seconds/week), "week")
	case seconds < year:
		return format(int(seconds/month), "month")
	default:
		return format(int(seconds/year), "year")
	}
}

// displayTime is FormatTime for table cells: empty values stay empty and
// values that do not parse are shown as they are.
func displayTime(node *dynamic.Node, key string, loc *time.Location) string {
	raw := node.Text(key)
	if raw == "" {
		return ""
	}

	formatted, err := FormatTime(raw, StyleShort, loc)
	if err != nil {
		return raw
	}

	return formatted
}

func writeStructured(w io.Writer, node *dynamic.Node, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(node.Interface())
		if err != nil {
			return err
		}

		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q, expected json or yaml", format)
	}
}
