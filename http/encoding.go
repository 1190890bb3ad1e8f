package http

import (
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/sagarc03/smallserver"
)

// encoder is a resettable compressing writer.
type encoder interface {
	io.WriteCloser
	Reset(w io.Writer)
}

var (
	gzipPool = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	zlibPool = sync.Pool{New: func() any { return zlib.NewWriter(io.Discard) }}
)

// copyBody streams body to w, compressing it with enc.
func copyBody(w io.Writer, body io.Reader, enc smallserver.Encoding) error {
	var pool *sync.Pool
	switch enc {
	case smallserver.EncodingGzip:
		pool = &gzipPool
	case smallserver.EncodingDeflate:
		pool = &zlibPool
	default:
		_, err := io.Copy(w, body)
		return err
	}

	zw := pool.Get().(encoder)
	zw.Reset(w)
	defer func() {
		zw.Reset(io.Discard)
		pool.Put(zw)
	}()

	if _, err := io.Copy(zw, body); err != nil {
		return err
	}

	return zw.Close()
}
