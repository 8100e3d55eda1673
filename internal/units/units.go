// Package units converts human-entered sizes and times to bytes and seconds
// and formats byte counts for display.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
)

// FormatError reports a size or time argument that could not be parsed.
type FormatError struct {
	Kind   string // "size" or "time"
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s format: %q", e.Kind, e.Value)
	}
	return fmt.Sprintf("invalid %s format: %q (%s)", e.Kind, e.Value, e.Reason)
}

func sizeError(value, reason string) error {
	return errors.WithStack(&FormatError{Kind: "size", Value: value, Reason: reason})
}

func timeError(value, reason string) error {
	return errors.WithStack(&FormatError{Kind: "time", Value: value, Reason: reason})
}

// ParseSize parses sizes like "10m", "1.5G", "800k" or a bare byte count.
// Suffixes are binary multiples and case-insensitive.
func ParseSize(value string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return 0, sizeError(value, "empty")
	}

	var multiplier int64
	switch s[len(s)-1] {
	case 'k':
		multiplier = KiB
	case 'm':
		multiplier = MiB
	case 'g':
		multiplier = GiB
	}

	var size int64
	if multiplier == 0 {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, sizeError(value, "expected a number with an optional k, m or g suffix")
		}
		size = n
	} else {
		f, err := parseFinite(s[:len(s)-1])
		if err != nil {
			return 0, sizeError(value, "expected a number before the suffix")
		}
		size = int64(f * float64(multiplier))
	}

	if size <= 0 {
		return 0, sizeError(value, "must be greater than zero")
	}
	return size, nil
}

// ParseTime parses "minutes:seconds[.fraction]" or a bare number of seconds.
func ParseTime(value string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")

	var seconds float64
	switch len(parts) {
	case 1:
		s, err := parseFinite(parts[0])
		if err != nil {
			return 0, timeError(value, "expected seconds or minutes:seconds")
		}
		seconds = s
	case 2:
		m, err := parseFinite(parts[0])
		if err != nil {
			return 0, timeError(value, "bad minutes")
		}
		s, err := parseFinite(parts[1])
		if err != nil {
			return 0, timeError(value, "bad seconds")
		}
		seconds = m*60 + s
	default:
		return 0, timeError(value, "too many colons")
	}

	if seconds < 0 {
		return 0, timeError(value, "must not be negative")
	}
	return seconds, nil
}

// FormatSize renders a byte count as bytes, KB, MB or GB (binary multiples).
func FormatSize(size float64) string {
	switch {
	case size < float64(KiB):
		return strconv.FormatFloat(size, 'f', -1, 64) + " bytes"
	case size < float64(MiB):
		return fmt.Sprintf("%.2f KB", size/float64(KiB))
	case size < float64(GiB):
		return fmt.Sprintf("%.2f MB", size/float64(MiB))
	default:
		return fmt.Sprintf("%.2f GB", size/float64(GiB))
	}
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%q is not finite", s)
	}
	return f, nil
}
