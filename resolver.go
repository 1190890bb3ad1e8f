package smallserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// maxLookups bounds directory-to-index substitution: the requested path and
// at most one index file beneath it.
const maxLookups = 2

// FileSystem defines the interface for reading files to serve.
// Implementations can use the local filesystem, an embedded fs.FS, or any
// other read-only source.
//
// All methods accept a context for cancellation. Implementations should stop
// long reads once the context is cancelled so abandoned downloads release
// their resources.
type FileSystem interface {
	// Stat returns metadata for the named file.
	//
	// Returns:
	//   - fs.FileInfo: size, modification time and directory flag
	//   - error: ErrNotFound if the file doesn't exist, or other storage errors
	Stat(ctx context.Context, name string) (fs.FileInfo, error)

	// Open opens the named file for reading.
	//
	// Returns:
	//   - io.ReadSeekCloser: Reader for file content with seek capability
	//   - error: ErrNotFound if the file doesn't exist, or other storage errors
	//
	// The caller is responsible for closing the returned ReadSeekCloser.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
}

// Page is a built-in document served when resolution fails.
type Page struct {
	FS   FileSystem
	Name string
}

// ResolverConfig holds configuration for a Resolver.
type ResolverConfig struct {
	// Root is the directory being served. Relative paths are made absolute.
	Root string
	// Index is the file served for directory requests (default: index.html).
	Index string
	// IndexPage is served for the root index when Root has none.
	IndexPage Page
	// NotFoundPage is served with status 404 when resolution fails.
	NotFoundPage Page
}

type pageStat struct {
	info fs.FileInfo
}

// Resolver maps request paths onto files under a root directory.
// It is safe for concurrent use.
type Resolver struct {
	root         string
	index        string
	files        FileSystem
	indexPage    Page
	notFoundPage Page

	// Fallback page stats are cached for the process lifetime. Concurrent
	// first lookups may both stat the page; the results are identical.
	indexStat    atomic.Pointer[pageStat]
	notFoundStat atomic.Pointer[pageStat]
}

// NewResolver creates a Resolver serving files from the given filesystem.
func NewResolver(files FileSystem, cfg ResolverConfig) (*Resolver, error) {
	if files == nil {
		return nil, fmt.Errorf("new resolver: %w: files cannot be nil", ErrInvalidInput)
	}

	if cfg.Root == "" {
		return nil, fmt.Errorf("new resolver: %w: root cannot be empty", ErrInvalidInput)
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = "index.html"
	}
	if strings.ContainsAny(index, `/\`) {
		return nil, fmt.Errorf("new resolver: %w: index must be a file name: %s", ErrInvalidInput, index)
	}

	if cfg.IndexPage.FS == nil || cfg.IndexPage.Name == "" {
		return nil, fmt.Errorf("new resolver: %w: index page is required", ErrInvalidInput)
	}
	if cfg.NotFoundPage.FS == nil || cfg.NotFoundPage.Name == "" {
		return nil, fmt.Errorf("new resolver: %w: not found page is required", ErrInvalidInput)
	}

	return &Resolver{
		root:         root,
		index:        index,
		files:        files,
		indexPage:    cfg.IndexPage,
		notFoundPage: cfg.NotFoundPage,
	}, nil
}

// Root returns the absolute directory being served.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a raw request path onto the file that should answer it.
//
// The method performs the following steps:
//  1. Decodes the path and rejects traversal attempts (see DecodeRequestPath)
//  2. Joins it onto the root and checks the result stays inside the root
//  3. Stats the candidate, substituting the index file once for directories
//  4. On a miss, serves the index page for the root index, or the 404 page
//
// Traversal attempts are answered exactly like missing files.
//
// Returns an error only for storage failures other than ErrNotFound, or when
// the 404 page itself is missing (the error then wraps ErrNotFound).
func (r *Resolver) Resolve(ctx context.Context, rawPath string) (ResolvedFile, error) {
	if err := ctx.Err(); err != nil {
		return ResolvedFile{}, fmt.Errorf("resolve: %w", err)
	}

	reqPath, err := DecodeRequestPath(rawPath, r.index)
	if err != nil {
		slog.DebugContext(ctx, "rejected request path", "path", rawPath, "err", err)
		return r.fallback(ctx, "")
	}

	file, err := r.lookup(ctx, reqPath)
	if err == nil {
		return file, nil
	}

	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrTraversal) {
		return ResolvedFile{}, fmt.Errorf("resolve %s: %w", reqPath, err)
	}

	slog.DebugContext(ctx, "file not resolved", "path", reqPath, "err", err)
	return r.fallback(ctx, reqPath)
}

// Open opens the file described by f from the filesystem that resolved it.
func (r *Resolver) Open(ctx context.Context, f ResolvedFile) (io.ReadSeekCloser, error) {
	var src FileSystem
	switch f.Fallback {
	case FallbackIndex:
		src = r.indexPage.FS
	case FallbackNotFound:
		src = r.notFoundPage.FS
	default:
		src = r.files
	}

	content, err := src.Open(ctx, f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}

	return content, nil
}

func (r *Resolver) lookup(ctx context.Context, reqPath string) (ResolvedFile, error) {
	candidate := filepath.Join(r.root, filepath.FromSlash(reqPath))
	if !IsWithinRoot(r.root, candidate) {
		return ResolvedFile{}, fmt.Errorf("lookup %s: %w", reqPath, ErrTraversal)
	}

	for range maxLookups {
		info, err := r.files.Stat(ctx, candidate)
		if err != nil {
			return ResolvedFile{}, fmt.Errorf("lookup %s: %w", reqPath, err)
		}

		if !info.IsDir() {
			return newResolvedFile(candidate, info, http.StatusOK, NoFallback), nil
		}

		candidate = filepath.Join(candidate, r.index)
	}

	return ResolvedFile{}, fmt.Errorf("lookup %s: nested index directory: %w", reqPath, ErrNotFound)
}

func (r *Resolver) fallback(ctx context.Context, reqPath string) (ResolvedFile, error) {
	if reqPath == "/"+r.index {
		info, err := r.statPage(ctx, &r.indexStat, r.indexPage)
		if err == nil {
			f := newResolvedFile(r.indexPage.Name, info, http.StatusOK, FallbackIndex)
			// The built-in index stands in for a missing file, so it is never cacheable.
			f.ModifiedTime = ""
			return f, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return ResolvedFile{}, fmt.Errorf("resolve index page: %w", err)
		}
		slog.WarnContext(ctx, "index page missing, serving not found page", "page", r.indexPage.Name)
	}

	info, err := r.statPage(ctx, &r.notFoundStat, r.notFoundPage)
	if err != nil {
		return ResolvedFile{}, fmt.Errorf("resolve not found page: %w", err)
	}

	return newResolvedFile(r.notFoundPage.Name, info, http.StatusNotFound, FallbackNotFound), nil
}

func (r *Resolver) statPage(ctx context.Context, slot *atomic.Pointer[pageStat], page Page) (fs.FileInfo, error) {
	if cached := slot.Load(); cached != nil {
		return cached.info, nil
	}

	info, err := page.FS.Stat(ctx, page.Name)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("page %s is a directory: %w", page.Name, ErrInvalidInput)
	}

	slot.Store(&pageStat{info: info})
	return info, nil
}

func newResolvedFile(path string, info fs.FileInfo, status int, page FallbackPage) ResolvedFile {
	return ResolvedFile{
		Path:         path,
		Extension:    extensionOf(path),
		StatusCode:   status,
		ModifiedTime: httpDate(info.ModTime()),
		Size:         info.Size(),
		Fallback:     page,
	}
}
