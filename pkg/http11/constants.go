package http11

// Pre-compiled byte forms of the header names and tokens the framing
// resolver inspects, and of the version strings HttpVersion.String
// returns, in the teacher's constants.go style (byte slices
// avoid re-allocating string->[]byte conversions on every header scanned).
var (
	headerNameContentLength    = []byte("Content-Length")
	headerNameTransferEncoding = []byte("Transfer-Encoding")
	tokenChunked               = []byte("chunked")

	http11VersionBytes = []byte("HTTP/1.1")
	http10VersionBytes = []byte("HTTP/1.0")
)
