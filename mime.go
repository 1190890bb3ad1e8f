package smallserver

// MIMETypes looks up the content type registered for a file extension.
// Implementations return "" when the extension is unknown.
type MIMETypes interface {
	TypeByExtension(ext string) string
}

// MIMETable is a static extension to content-type mapping. Keys are lowercase
// extensions without the dot.
type MIMETable map[string]string

var builtinTypes = MIMETable{
	"aac":   "audio/aac",
	"avif":  "image/avif",
	"bmp":   "image/bmp",
	"css":   "text/css",
	"csv":   "text/csv",
	"gif":   "image/gif",
	"htm":   "text/html",
	"html":  "text/html",
	"ico":   "image/vnd.microsoft.icon",
	"jpeg":  "image/jpeg",
	"jpg":   "image/jpeg",
	"js":    "application/javascript",
	"json":  "application/json",
	"map":   "application/json",
	"md":    "text/markdown",
	"mjs":   "application/javascript",
	"mp3":   "audio/mpeg",
	"mp4":   "video/mp4",
	"ogg":   "audio/ogg",
	"otf":   "font/otf",
	"pdf":   "application/pdf",
	"png":   "image/png",
	"svg":   "image/svg+xml",
	"ttf":   "font/ttf",
	"txt":   "text/plain",
	"wasm":  "application/wasm",
	"wav":   "audio/wav",
	"webm":  "video/webm",
	"webp":  "image/webp",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"xml":   "application/xml",
	"zip":   "application/zip",
}

// DefaultMIMETable returns a copy of the built-in table with overrides
// applied on top. Override keys may carry a leading dot and any case.
func DefaultMIMETable(overrides map[string]string) MIMETable {
	t := make(MIMETable, len(builtinTypes)+len(overrides))
	for ext, typ := range builtinTypes {
		t[ext] = typ
	}
	for ext, typ := range overrides {
		if ext = normalizeExtension(ext); ext != "" && typ != "" {
			t[ext] = typ
		}
	}
	return t
}

// TypeByExtension returns the content type for ext, or "" if none is registered.
func (t MIMETable) TypeByExtension(ext string) string {
	return t[normalizeExtension(ext)]
}
