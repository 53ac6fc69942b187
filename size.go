package nbhttp

import (
	"net/http"
	"unicode/utf8"
)

// HeaderSize returns the accounted size of a header set: the sum over all
// entries of the name length plus the lengths of every value.
//
// Lengths are counted in characters, not bytes, and the same rule applies to
// request and response headers, so sizes stay comparable across both.
func HeaderSize(h http.Header) int64 {
	var size int64
	for name, values := range h {
		size += int64(utf8.RuneCountInString(name))
		for _, v := range values {
			size += int64(utf8.RuneCountInString(v))
		}
	}
	return size
}

// BodySize returns the declared content length, or 0 when the length is
// unknown. The body stream is never read to measure it.
func BodySize(contentLength int64) int64 {
	if contentLength > 0 {
		return contentLength
	}
	return 0
}

// RequestSize returns HeaderSize plus BodySize for a request.
func RequestSize(req *Request) int64 {
	return HeaderSize(req.Header) + BodySize(req.ContentLength)
}

// ResponseSize returns HeaderSize plus BodySize for a response.
func ResponseSize(resp *http.Response) int64 {
	return HeaderSize(resp.Header) + BodySize(resp.ContentLength)
}
