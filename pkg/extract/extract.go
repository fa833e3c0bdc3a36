// Package extract pulls embedded timestamps out of raw log lines and
// normalizes them to the canonical entry format.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/modoterra/tailview/pkg/core"
)

// pattern pairs a matcher with the parser for its captured substring.
// Patterns are tried in order and the first successful match+parse wins,
// so the most specific forms must come first.
type pattern struct {
	re    *regexp.Regexp
	parse func(match string) (time.Time, error)
}

var patterns = []pattern{
	{
		// ISO-8601, optional milliseconds, optional Z
		re: regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{3})?Z?`),
		parse: func(m string) (time.Time, error) {
			return parseFirst(m,
				"2006-01-02T15:04:05.000Z",
				"2006-01-02T15:04:05Z",
				"2006-01-02T15:04:05.000",
				"2006-01-02T15:04:05",
			)
		},
	},
	{
		re: regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}`),
		parse: func(m string) (time.Time, error) {
			return time.Parse("2006-01-02 15:04:05.000", m)
		},
	},
	{
		re: regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`),
		parse: func(m string) (time.Time, error) {
			return time.Parse("2006-01-02 15:04:05", m)
		},
	},
	{
		// syslog style omits the year; assume the current local year
		re: regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) {1,2}\d{1,2} \d{2}:\d{2}:\d{2}`),
		parse: func(m string) (time.Time, error) {
			year := strconv.Itoa(time.Now().Year())
			return time.Parse("Jan _2 15:04:05 2006", m+" "+year)
		},
	},
	{
		re: regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3}`),
		parse: func(m string) (time.Time, error) {
			t, err := time.Parse("15:04:05.000", m)
			if err != nil {
				return time.Time{}, err
			}
			return withToday(t), nil
		},
	},
	{
		re: regexp.MustCompile(`\d{2}:\d{2}:\d{2}`),
		parse: func(m string) (time.Time, error) {
			t, err := time.Parse("15:04:05", m)
			if err != nil {
				return time.Time{}, err
			}
			return withToday(t), nil
		},
	},
	{
		re: regexp.MustCompile(`\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`),
		parse: func(m string) (time.Time, error) {
			return time.Parse("01/02/2006 15:04:05", m)
		},
	},
	{
		// bare epoch seconds
		re: regexp.MustCompile(`\b\d{10}\b`),
		parse: func(m string) (time.Time, error) {
			secs, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				return time.Time{}, err
			}
			return time.Unix(secs, 0), nil
		},
	},
}

// Timestamp scans line for the first recognized embedded timestamp.
// On success it returns the timestamp in canonical form and the line with
// every occurrence of the matched substring removed. When no pattern
// matches (or none parses), content is the untouched line and ok is false;
// the caller decides the fallback stamp.
func Timestamp(line string) (timestamp, content string, ok bool) {
	for _, p := range patterns {
		match := p.re.FindString(line)
		if match == "" {
			continue
		}
		t, err := p.parse(match)
		if err != nil {
			continue
		}
		content = strings.TrimSpace(strings.ReplaceAll(line, match, ""))
		return t.Format(core.TimeFormat), content, true
	}
	return "", line, false
}

func parseFirst(value string, layouts ...string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", value)
}

// withToday anchors a time-of-day match to the current local date, since
// the canonical form always carries a full date.
func withToday(t time.Time) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
}
