package smallserver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/smallserver"
)

func TestNegotiateEncoding(t *testing.T) {
	tt := []struct {
		Name   string
		Header string
		Want   smallserver.Encoding
	}{
		{Name: "empty", Header: "", Want: smallserver.EncodingIdentity},
		{Name: "gzip", Header: "gzip", Want: smallserver.EncodingGzip},
		{Name: "deflate", Header: "deflate", Want: smallserver.EncodingDeflate},
		{Name: "gzip preferred over deflate", Header: "deflate, gzip", Want: smallserver.EncodingGzip},
		{Name: "browser default", Header: "gzip, deflate, br, zstd", Want: smallserver.EncodingGzip},
		{Name: "x-gzip alias", Header: "x-gzip", Want: smallserver.EncodingGzip},
		{Name: "case insensitive", Header: "GZIP", Want: smallserver.EncodingGzip},
		{Name: "quality values", Header: "gzip;q=0.5, deflate;q=1.0", Want: smallserver.EncodingGzip},
		{Name: "gzip refused", Header: "gzip;q=0, deflate", Want: smallserver.EncodingDeflate},
		{Name: "both refused", Header: "gzip;q=0.0, deflate; q=0", Want: smallserver.EncodingIdentity},
		{Name: "unsupported only", Header: "br, zstd", Want: smallserver.EncodingIdentity},
		{Name: "identity", Header: "identity", Want: smallserver.EncodingIdentity},
		{Name: "substring is not a token", Header: "gzipx, mydeflate", Want: smallserver.EncodingIdentity},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, smallserver.NegotiateEncoding(tc.Header))
		})
	}
}
