package smallserver

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DecodeRequestPath turns a raw request target into a slash-separated path
// rooted at "/". The query and fragment are dropped, percent-encoding is
// decoded once, and an empty or "/" path becomes "/" + index.
//
// It returns ErrTraversal if the decoded path:
//   - contains a ".." segment
//   - contains a NUL byte or a backslash
//   - is not valid percent-encoding
func DecodeRequestPath(raw, index string) (string, error) {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("decode request path: %w", ErrTraversal)
	}

	if strings.ContainsAny(decoded, "\x00\\") {
		return "", fmt.Errorf("decode request path %q: %w", decoded, ErrTraversal)
	}

	for _, segment := range strings.Split(decoded, "/") {
		if segment == ".." {
			return "", fmt.Errorf("decode request path %q: %w", decoded, ErrTraversal)
		}
	}

	if !strings.HasPrefix(decoded, "/") {
		decoded = "/" + decoded
	}

	if decoded == "/" {
		return "/" + index, nil
	}

	return decoded, nil
}

// IsWithinRoot reports whether candidate lies inside root. Both paths must be
// absolute.
func IsWithinRoot(root, candidate string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}

	if filepath.IsAbs(rel) {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func extensionOf(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filepath.ToSlash(name)), "."))
	if ext == "" {
		return UnknownExtension
	}
	return ext
}

// httpDate formats t as an RFC 7231 HTTP-date. The zero time has no date.
func httpDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(http.TimeFormat)
}
