package smallserver

import (
	"fmt"
	"net/http"
	"strconv"
)

// DefaultMaxAge is the Cache-Control max-age, in seconds, sent for
// long-lived extensions: one year.
const DefaultMaxAge = 365 * 24 * 60 * 60

const defaultContentType = "text/plain"

// BuilderConfig holds configuration for a Builder. Zero values select the
// defaults.
type BuilderConfig struct {
	// MIME maps extensions to content types (default: DefaultMIMETable(nil)).
	MIME MIMETypes
	// LongLived extensions get Expires and Cache-Control headers (default: DefaultExtensions).
	LongLived ExtensionSet
	// Compressible extensions may be gzip or deflate encoded (default: DefaultExtensions).
	Compressible ExtensionSet
	// MaxAge is the Cache-Control max-age in seconds (default: DefaultMaxAge).
	MaxAge int
}

// Builder computes response plans. It holds no per-request state and is safe
// for concurrent use.
type Builder struct {
	mime         MIMETypes
	longLived    ExtensionSet
	compressible ExtensionSet
	maxAge       int
}

// NewBuilder creates a Builder, filling unset configuration with defaults.
func NewBuilder(cfg BuilderConfig) *Builder {
	b := &Builder{
		mime:         cfg.MIME,
		longLived:    cfg.LongLived,
		compressible: cfg.Compressible,
		maxAge:       cfg.MaxAge,
	}
	if b.mime == nil {
		b.mime = DefaultMIMETable(nil)
	}
	if b.longLived == nil {
		b.longLived = NewExtensionSet(DefaultExtensions...)
	}
	if b.compressible == nil {
		b.compressible = NewExtensionSet(DefaultExtensions...)
	}
	if b.maxAge <= 0 {
		b.maxAge = DefaultMaxAge
	}
	return b
}

// Plan computes the response for f given the request headers.
//
// The checks run in order and the first two may end the response early:
//  1. If-Modified-Since equal to the file's Last-Modified: 304 without a body
//  2. Content-Type, Last-Modified and, for long-lived extensions, Expires and Cache-Control
//  3. Range: 206 with the requested window, or 416 without a body
//  4. Accept-Encoding: gzip or deflate for compressible extensions
//
// Ranged responses are never compressed, so Content-Length always describes
// the bytes on the wire. Compressed responses carry no Content-Length.
func (b *Builder) Plan(h http.Header, f ResolvedFile) ResponsePlan {
	plan := ResponsePlan{
		Status: f.StatusCode,
		Header: make(http.Header),
		Window: Window{Start: 0, End: f.Size},
		Body:   true,
	}

	if f.ModifiedTime != "" && h.Get("If-Modified-Since") == f.ModifiedTime {
		plan.Status = http.StatusNotModified
		plan.Header.Set("Last-Modified", f.ModifiedTime)
		plan.Window = Window{}
		plan.Body = false
		return plan
	}

	contentType := b.mime.TypeByExtension(f.Extension)
	if contentType == "" {
		contentType = defaultContentType
	}
	plan.Header.Set("Content-Type", contentType+"; charset=utf-8")

	if f.ModifiedTime != "" {
		plan.Header.Set("Last-Modified", f.ModifiedTime)
	}

	if b.longLived.Contains(f.Extension) {
		if f.ModifiedTime != "" {
			plan.Header.Set("Expires", f.ModifiedTime)
		}
		plan.Header.Set("Cache-Control", "max-age="+strconv.Itoa(b.maxAge))
	}

	compressible := b.compressible.Contains(f.Extension)
	if compressible {
		plan.Header.Set("Vary", "Accept-Encoding")
	}

	rangeHeader := h.Get("Range")
	if IsByteRange(rangeHeader) {
		window, err := ParseRange(rangeHeader, f.Size)
		if err != nil {
			return unsatisfiable(plan, f.Size)
		}

		plan.Status = http.StatusPartialContent
		plan.Window = window
		plan.Ranged = true
		plan.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", window.Start, window.End-1, window.End))
		plan.Header.Set("Content-Length", strconv.FormatInt(window.Len(), 10))
		return plan
	}

	plan.Header.Set("Accept-Ranges", "bytes")

	if compressible {
		plan.Encoding = NegotiateEncoding(h.Get("Accept-Encoding"))
	}

	if plan.Encoding != EncodingIdentity {
		plan.Header.Set("Content-Encoding", string(plan.Encoding))
	} else if f.Size >= 0 {
		plan.Header.Set("Content-Length", strconv.FormatInt(f.Size, 10))
	}

	return plan
}

func unsatisfiable(plan ResponsePlan, size int64) ResponsePlan {
	plan.Status = http.StatusRequestedRangeNotSatisfiable
	plan.Window = Window{}
	plan.Body = false
	if size >= 0 {
		plan.Header.Set("Content-Range", fmt.Sprintf("bytes */%d", size))
	}
	return plan
}
