// Package public holds the built-in pages served when a request cannot be
// resolved under the served root.
package public

import "embed"

// Page names inside FS.
const (
	IndexPage    = "index.html"
	NotFoundPage = "404.html"
)

//go:embed index.html 404.html
var FS embed.FS
