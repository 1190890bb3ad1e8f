// Package filesystem provides read-only file sources for smallserver.
// Store reads from the local disk by absolute path; FSStore reads from an
// fs.FS such as the embedded fallback pages. Both map missing files to
// smallserver.ErrNotFound and stop reads once the request context ends.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/sagarc03/smallserver"
)

// Store provides file system read operations on the local disk.
type Store struct{}

// NewFileStorage creates a new Store. Names passed to its methods are
// filesystem paths; confinement to a served root is the resolver's job.
func NewFileStorage() *Store {
	return &Store{}
}

// Stat returns file metadata. Returns smallserver.ErrNotFound if the file does not exist.
func (s *Store) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(name)
	if err != nil {
		return nil, mapError("stat", err)
	}

	return info, nil
}

// Open opens a file for reading. Returns smallserver.ErrNotFound if the file does not exist.
// Reads on the returned file fail once ctx is done.
func (s *Store) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(name) //nolint:gosec // name is confined to the served root by the resolver
	if err != nil {
		return nil, mapError("open", err)
	}

	return &ctxFile{ctx: ctx, f: f}, nil
}

// FSStore serves files from an fs.FS.
type FSStore struct {
	fsys fs.FS
}

// NewFSStorage creates a new FSStore reading from fsys.
func NewFSStorage(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Stat returns file metadata. Returns smallserver.ErrNotFound if the file does not exist.
func (s *FSStore) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return nil, mapError("stat", err)
	}

	return info, nil
}

// Open opens a file for reading. The underlying file must support seeking.
func (s *FSStore) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, mapError("open", err)
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: file does not support seeking", name)
	}

	return &ctxFile{ctx: ctx, f: readSeekFile{ReadSeeker: rs, File: f}}, nil
}

type readSeekFile struct {
	io.ReadSeeker
	fs.File
}

func (f readSeekFile) Read(p []byte) (int, error) {
	return f.ReadSeeker.Read(p)
}

type ctxFile struct {
	ctx context.Context
	f   io.ReadSeekCloser
}

func (c *ctxFile) Read(p []byte) (n int, err error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.f.Read(p)
}

func (c *ctxFile) Seek(offset int64, whence int) (int64, error) {
	return c.f.Seek(offset, whence)
}

func (c *ctxFile) Close() error {
	return c.f.Close()
}

// mapError converts "does not exist" errors, including a file used as a
// directory component, to smallserver.ErrNotFound.
func mapError(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return fmt.Errorf("%s: %w", op, smallserver.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
