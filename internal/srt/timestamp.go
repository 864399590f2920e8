// Package srt implements parsing and composition of SubRip (SRT) subtitle
// streams, with tolerant recovery on parse and strict control over output
// shape on compose.
package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a non-negative duration with millisecond resolution,
// measured from 00:00:00,000. The hour component is not bounded at 24h.
type Timestamp time.Duration

// ParseTimestamp parses an SRT timestamp of the form HH:MM:SS,mmm. The
// decimal separator may be a comma or a period on input; hours may be one
// or more digits; minutes, seconds, and milliseconds must be exactly two,
// two, and three digits respectively.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ",.")
	if sep < 0 {
		return 0, fmt.Errorf("srt: timestamp %q: missing millisecond separator", s)
	}
	hms, msStr := s[:sep], s[sep+1:]
	if len(msStr) != 3 {
		return 0, fmt.Errorf("srt: timestamp %q: milliseconds must be 3 digits", s)
	}
	ms, err := strconv.Atoi(msStr)
	if err != nil {
		return 0, fmt.Errorf("srt: timestamp %q: invalid milliseconds: %w", s, err)
	}

	parts := strings.Split(hms, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("srt: timestamp %q: expected HH:MM:SS", s)
	}
	if len(parts[0]) < 1 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return 0, fmt.Errorf("srt: timestamp %q: malformed HH:MM:SS field widths", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("srt: timestamp %q: invalid hours", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("srt: timestamp %q: invalid minutes", s)
	}
	seconds, err := strconv.Atoi(parts[2])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("srt: timestamp %q: invalid seconds", s)
	}

	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ms)*time.Millisecond
	return Timestamp(total), nil
}

// String formats the timestamp as HH:MM:SS,mmm. Hours are emitted with at
// least two digits; values of 100h or more widen without truncation.
func (t Timestamp) String() string {
	d := time.Duration(t)
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// Duration returns the timestamp as a time.Duration.
func (t Timestamp) Duration() time.Duration { return time.Duration(t) }

// Sub returns t-u, clamped at zero (overlaps are treated as zero).
func (t Timestamp) Sub(u Timestamp) time.Duration {
	if t <= u {
		return 0
	}
	return time.Duration(t - u)
}

// Max returns the later of t and u.
func (t Timestamp) Max(u Timestamp) Timestamp {
	if u > t {
		return u
	}
	return t
}
