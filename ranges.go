package smallserver

import (
	"fmt"
	"strconv"
	"strings"
)

const rangeUnit = "bytes="

// IsByteRange reports whether a Range header value uses the bytes unit.
// Headers in any other unit are ignored and the whole file is served.
func IsByteRange(header string) bool {
	return strings.HasPrefix(header, rangeUnit)
}

// ParseRange parses a Range header of the form "bytes=<start>-<end>" against
// a file of the given size. The end offset is exclusive and defaults to size
// when omitted, so "bytes=5-8" selects bytes 5, 6 and 7.
//
// Returns ErrUnsatisfiableRange when the header is malformed, when end is not
// greater than start, when end exceeds size, or when size is unknown.
func ParseRange(header string, size int64) (Window, error) {
	byteRange, ok := strings.CutPrefix(header, rangeUnit)
	if !ok {
		return Window{}, fmt.Errorf("parse range %q: unsupported unit: %w", header, ErrUnsatisfiableRange)
	}

	startStr, endStr, ok := strings.Cut(byteRange, "-")
	if !ok {
		return Window{}, fmt.Errorf("parse range %q: missing separator: %w", header, ErrUnsatisfiableRange)
	}

	start, ok := parseOffset(startStr)
	if !ok {
		return Window{}, fmt.Errorf("parse range %q: invalid start: %w", header, ErrUnsatisfiableRange)
	}

	end := size
	if endStr != "" {
		if end, ok = parseOffset(endStr); !ok {
			return Window{}, fmt.Errorf("parse range %q: invalid end: %w", header, ErrUnsatisfiableRange)
		}
	}

	if size < 0 || end <= start || end > size {
		return Window{}, fmt.Errorf("parse range %q for size %d: %w", header, size, ErrUnsatisfiableRange)
	}

	return Window{Start: start, End: end}, nil
}

// parseOffset accepts only plain decimal digits; ParseInt alone would also
// take signs.
func parseOffset(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
