package http11

import "testing"

// Smuggling-relevant cases: a parser that gets body-framing wrong on these
// inputs is exploitable for request smuggling against an intermediary that
// resolves framing differently.

func TestSmugglingCLTEBothPresentChunkedWins(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Length: 4\r\nTransfer-Encoding: chunked\r\n\r\n0\r\n\r\n"
	req := mustParse(t, raw)
	if !req.IsChunked() {
		t.Fatal("Transfer-Encoding: chunked must win over Content-Length")
	}
	if n, ok := req.ContentLength(); ok {
		t.Fatalf("ContentLength() should report false for a chunked request, got %d", n)
	}
}

func TestSmugglingDuplicateDistinctContentLengthRejected(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Length: 10\r\nContent-Length: 20\r\n\r\n"
	_, err := Parse([]byte(raw))
	assertParseErrorKind(t, err, ErrKindDuplicateContentLength)
}

func TestSmugglingCommaListContentLengthAllMustAgree(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Length: 5, 5\r\n\r\nHello"
	req := mustParse(t, raw)
	if n, ok := req.ContentLength(); !ok || n != 5 {
		t.Fatalf("ContentLength() = %d, %v, want 5,true", n, ok)
	}

	raw2 := "POST /x HTTP/1.1\r\nContent-Length: 5, 6\r\n\r\n"
	_, err := Parse([]byte(raw2))
	assertParseErrorKind(t, err, ErrKindDuplicateContentLength)
}

func TestSmugglingNonDigitContentLengthRejected(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Length: 5abc\r\n\r\n"
	_, err := Parse([]byte(raw))
	assertParseErrorKind(t, err, ErrKindInvalidContentLength)
}

func TestSmugglingContentLengthOverflowRejected(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Length: 99999999999999999999999999\r\n\r\n"
	_, err := Parse([]byte(raw))
	assertParseErrorKind(t, err, ErrKindInvalidContentLength)
}

func TestContentLengthExceedingCapRejected(t *testing.T) {
	cfg := DefaultParserConfig()
	cfg.MaxBodySize = 10
	raw := "POST /x HTTP/1.1\r\nContent-Length: 11\r\n\r\n"
	_, err := ParseWithConfig([]byte(raw), cfg)
	assertParseErrorKind(t, err, ErrKindBodyTooLarge)
}

func TestZeroContentLengthHasNoBody(t *testing.T) {
	req := mustParse(t, "GET / HTTP/1.1\r\nContent-Length: 0\r\n\r\n")
	if req.Body() != nil {
		t.Fatalf("expected nil body, got %q", req.Body())
	}
}

func TestControlByteInURIRejected(t *testing.T) {
	_, err := Parse([]byte("GET /\x01path HTTP/1.1\r\n\r\n"))
	assertParseErrorKind(t, err, ErrKindInvalidURI)
}

func TestEmptyURIRejected(t *testing.T) {
	_, err := Parse([]byte("GET  HTTP/1.1\r\n\r\n"))
	assertParseErrorKind(t, err, ErrKindInvalidURI)
}

func TestObsTextInURIRejected(t *testing.T) {
	// obs-text (0x80-0xFF) is a field-value allowance only; the
	// request-target grammar is vchar-only.
	_, err := Parse([]byte("GET /\x80path HTTP/1.1\r\n\r\n"))
	assertParseErrorKind(t, err, ErrKindInvalidURI)
}

func TestURITooLongRejected(t *testing.T) {
	cfg := DefaultParserConfig()
	cfg.MaxURILen = 4
	_, err := ParseWithConfig([]byte("GET /abcdefgh HTTP/1.1\r\n\r\n"), cfg)
	assertParseErrorKind(t, err, ErrKindURITooLong)
}
