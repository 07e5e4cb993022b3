// Package timeutil parses the compact durations accepted by --since.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var segment = regexp.MustCompile(`^(\d+)([a-z]+)`)

// units maps every accepted spelling onto its size. Order matters for Format.
var units = []struct {
	label   string
	size    time.Duration
	aliases []string
}{
	{"w", week, []string{"w", "wk", "wks", "week", "weeks"}},
	{"d", day, []string{"d", "day", "days"}},
	{"h", time.Hour, []string{"h", "hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"m", "min", "mins", "minute", "minutes"}},
}

func unitSize(name string) (time.Duration, bool) {
	for _, u := range units {
		for _, a := range u.aliases {
			if a == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// ParseSince reads strings like "3d", "1w2d" or "90m". Whitespace between
// segments is ignored. An empty string means no window and returns zero.
func ParseSince(s string) (time.Duration, error) {
	rest := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if rest == "" {
		return 0, nil
	}
	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		size, ok := unitSize(m[2])
		if !ok {
			return 0, fmt.Errorf("unknown unit %q in %q", m[2], s)
		}
		total += time.Duration(n) * size
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return total, nil
}

// Format is the inverse of ParseSince, rounding down to the minute.
func Format(d time.Duration) string {
	d = d.Truncate(time.Minute)
	if d <= 0 {
		return "0m"
	}
	var b strings.Builder
	for _, u := range units {
		if d < u.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/u.size, u.label)
		d %= u.size
	}
	return b.String()
}
