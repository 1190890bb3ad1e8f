package smallserver

import (
	"net/http"
	"strings"
)

// UnknownExtension is the extension reported for files without one.
const UnknownExtension = "unknown"

// FallbackPage identifies which built-in page, if any, a ResolvedFile refers to.
type FallbackPage int

const (
	NoFallback FallbackPage = iota
	FallbackIndex
	FallbackNotFound
)

func (p FallbackPage) String() string {
	switch p {
	case FallbackIndex:
		return "index"
	case FallbackNotFound:
		return "not_found"
	default:
		return "none"
	}
}

// ResolvedFile describes the file chosen to answer a request.
type ResolvedFile struct {
	// Path is the filesystem path to stream. For fallback pages it is the
	// page name inside the page filesystem.
	Path string
	// Extension is the lowercase extension without the dot, or UnknownExtension.
	Extension string
	// StatusCode is the status intended for the response (200 or 404).
	StatusCode int
	// ModifiedTime is the HTTP-date of the file's mtime, or "" when unknown.
	ModifiedTime string
	// Size is the byte length of the file, or -1 when unknown.
	Size int64
	// Fallback reports whether Path refers to a built-in page.
	Fallback FallbackPage
}

// Window is a half-open byte range [Start, End).
type Window struct {
	Start int64
	End   int64
}

// Len returns the number of bytes in the window.
func (w Window) Len() int64 {
	return w.End - w.Start
}

// Encoding is a content coding applied to the response body.
type Encoding string

const (
	EncodingIdentity Encoding = ""
	EncodingGzip     Encoding = "gzip"
	EncodingDeflate  Encoding = "deflate"
)

// ResponsePlan is everything needed to write a response for a ResolvedFile.
type ResponsePlan struct {
	Status int
	Header http.Header
	// Window is the part of the file to stream. Ranged is set when it was
	// restricted by a Range header.
	Window Window
	Ranged bool
	// Encoding is the transform applied to the windowed bytes.
	Encoding Encoding
	// Body is false for responses that must not carry content (304, 416).
	Body bool
}

// DefaultExtensions is the default long-lived and compressible extension set.
var DefaultExtensions = []string{"gif", "png", "jpg", "js", "css", "json"}

// ExtensionSet is a case-insensitive set of file extensions.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from extensions with or without a leading dot.
func NewExtensionSet(exts ...string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = normalizeExtension(ext)
		if ext == "" {
			continue
		}
		s[ext] = struct{}{}
	}
	return s
}

// Contains reports whether ext is in the set.
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[normalizeExtension(ext)]
	return ok
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
