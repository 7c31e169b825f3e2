package http11

// HttpRequest is the output aggregate of a completed parse: the request
// line, the ordered header list, and the decoded body (absent when framing
// determined there is none).
type HttpRequest struct {
	Method      HttpMethod
	MethodToken string // raw token; set for every method, canonical or MethodOther
	URI         string
	Version     HttpVersion
	Headers     Headers
	body        []byte
	hasBody     bool
	chunked     bool
	contentLen  int64 // -1 if not framed by Content-Length
}

// HeaderValue returns the first header value matching name
// (case-insensitive), and whether one was found.
func (r *HttpRequest) HeaderValue(name string) (string, bool) {
	return r.Headers.Get(name)
}

// HeaderValues returns every header value matching name
// (case-insensitive), in arrival order.
func (r *HttpRequest) HeaderValues(name string) []string {
	return r.Headers.Values(name)
}

// ContentLength returns the parsed Content-Length value and whether the
// request was framed by Content-Length (false for chunked or no-body
// requests).
func (r *HttpRequest) ContentLength() (int64, bool) {
	if r.chunked || r.contentLen < 0 {
		return 0, false
	}
	return r.contentLen, true
}

// IsChunked reports whether the body is framed by chunked transfer coding.
func (r *HttpRequest) IsChunked() bool {
	return r.chunked
}

// Body returns the decoded body bytes, or nil if the request has no body.
func (r *HttpRequest) Body() []byte {
	if !r.hasBody {
		return nil
	}
	return r.body
}
