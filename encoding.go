package smallserver

import (
	"strconv"
	"strings"
)

// NegotiateEncoding picks the content coding for an Accept-Encoding header.
// gzip is preferred over deflate; codings listed with q=0 are refused.
// EncodingIdentity is returned when neither is acceptable.
func NegotiateEncoding(acceptEncoding string) Encoding {
	var gzip, deflate bool

	for _, part := range strings.Split(acceptEncoding, ",") {
		token, params, _ := strings.Cut(part, ";")
		token = strings.ToLower(strings.TrimSpace(token))
		if refused(params) {
			continue
		}

		switch token {
		case "gzip", "x-gzip":
			gzip = true
		case "deflate":
			deflate = true
		}
	}

	switch {
	case gzip:
		return EncodingGzip
	case deflate:
		return EncodingDeflate
	default:
		return EncodingIdentity
	}
}

func refused(params string) bool {
	for _, p := range strings.Split(params, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q == 0
	}
	return false
}
