package http11

import (
	"bytes"
	"testing"
)

func TestFeedByteAtATime(t *testing.T) {
	raw := []byte("GET /path?q=1 HTTP/1.1\r\nHost: example.com\r\nX-A: b\r\n\r\n")
	p := NewParser(DefaultParserConfig())
	status, total, err := feedAll(t, p, raw, 1)
	if err != nil {
		t.Fatalf("feed byte-at-a-time: %v", err)
	}
	if status != StatusComplete {
		t.Fatalf("expected Complete, got %v", status)
	}
	if total != len(raw) {
		t.Fatalf("consumed %d, want %d", total, len(raw))
	}
	req, err := p.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if req.URI != "/path?q=1" {
		t.Fatalf("uri = %q", req.URI)
	}
}

// TestIncrementalEquivalence feeds every fixture at several granularities
// and checks the outcome (error kind, or method/uri/body) agrees with
// one-shot parsing, per spec.md §8's incremental-equivalence property.
func TestIncrementalEquivalence(t *testing.T) {
	fixtures := []string{
		"GET / HTTP/1.1\r\nHost: h\r\n\r\n",
		"POST /u HTTP/1.1\r\nContent-Length: 5\r\n\r\nHello",
		"POST /x HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nHello\r\n0\r\n\r\n",
		"GET / HTTP/1.1\r\nContent-Length: 5\r\nContent-Length: 6\r\n\r\n",
		"GET / HTTP/2.0\r\n\r\n",
		"GET /\nHTTP/1.1\r\n\r\n", // bare LF after request target: expect error
	}
	for _, raw := range fixtures {
		data := []byte(raw)
		oneShotReq, oneShotErr := Parse(data)

		for _, chunkSize := range []int{1, 2, 7} {
			p := NewParser(DefaultParserConfig())
			_, total, err := feedAll(t, p, data, chunkSize)

			if (err != nil) != (oneShotErr != nil) {
				t.Fatalf("chunkSize=%d raw=%q: error mismatch one-shot=%v incremental=%v", chunkSize, raw, oneShotErr, err)
			}
			if err != nil {
				if err.(*ParseError).Kind != oneShotErr.(*ParseError).Kind {
					t.Fatalf("chunkSize=%d raw=%q: error kind mismatch one-shot=%v incremental=%v", chunkSize, raw, oneShotErr, err)
				}
				continue
			}
			if total != len(data) {
				continue // trailing pipelined bytes, not applicable to these fixtures
			}
			req, ferr := p.Finish()
			if ferr != nil {
				t.Fatalf("chunkSize=%d raw=%q: Finish: %v", chunkSize, raw, ferr)
			}
			if req.Method != oneShotReq.Method || req.URI != oneShotReq.URI {
				t.Fatalf("chunkSize=%d raw=%q: mismatch method/uri", chunkSize, raw)
			}
			if !bytes.Equal(req.Body(), oneShotReq.Body()) {
				t.Fatalf("chunkSize=%d raw=%q: body mismatch", chunkSize, raw)
			}
		}
	}
}

func TestBytesConsumedCorrectness(t *testing.T) {
	raw := []byte("GET / HTTP/1.1\r\nHost: h\r\n\r\nEXTRA-PIPELINED-DATA")
	p := NewParser(DefaultParserConfig())
	status, n, err := p.Feed(raw)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if status != StatusComplete {
		t.Fatalf("expected Complete, got %v", status)
	}
	wantN := len("GET / HTTP/1.1\r\nHost: h\r\n\r\n")
	if n != wantN {
		t.Fatalf("consumed %d, want %d", n, wantN)
	}

	// A fresh Parser applied to exactly those n bytes must agree.
	p2 := NewParser(DefaultParserConfig())
	status2, n2, err2 := p2.Feed(raw[:n])
	if err2 != nil || status2 != StatusComplete || n2 != n {
		t.Fatalf("replay of first n bytes: status=%v n=%d err=%v", status2, n2, err2)
	}
}

func TestDeterminism(t *testing.T) {
	raw := []byte("POST /x HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nHello\r\n0\r\n\r\n")
	var first *HttpRequest
	for i := 0; i < 5; i++ {
		req, err := Parse(raw)
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if first == nil {
			first = req
			continue
		}
		if req.URI != first.URI || !bytes.Equal(req.Body(), first.Body()) {
			t.Fatalf("iteration %d: result diverged", i)
		}
	}
}

func TestLeadingCRLFTolerated(t *testing.T) {
	raw := "\r\nGET / HTTP/1.1\r\nHost: h\r\n\r\n"
	req := mustParse(t, raw)
	if req.Method != MethodGET {
		t.Fatalf("method = %v", req.Method)
	}
}

func TestBareLFInRequestLineRejected(t *testing.T) {
	_, err := Parse([]byte("GET / HTTP/1.1\nHost: h\r\n\r\n"))
	assertParseErrorKind(t, err, ErrKindMissingCRLF)
}

func TestLeadingBareLFRejected(t *testing.T) {
	// A lone leading LF, with no preceding CR, is not a tolerated CRLF pair.
	_, err := Parse([]byte("\nGET / HTTP/1.1\r\n\r\n"))
	assertParseErrorKind(t, err, ErrKindInvalidMethod)
}

func TestLeadingBareCRRejected(t *testing.T) {
	// A lone leading CR not immediately followed by LF is not a tolerated
	// CRLF pair either.
	_, err := Parse([]byte("\rGET / HTTP/1.1\r\n\r\n"))
	assertParseErrorKind(t, err, ErrKindMissingCRLF)
}

func TestObsoleteLineFoldingRejected(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: h\r\n Continued: val\r\n\r\n"
	_, err := Parse([]byte(raw))
	assertParseErrorKind(t, err, ErrKindObsoleteLineFolding)
}

func TestCaseInsensitiveHeaderLookup(t *testing.T) {
	req := mustParse(t, "GET / HTTP/1.1\r\nHost: example.com\r\n\r\n")
	for _, name := range []string{"HOST", "host", "Host", "hOsT"} {
		v, ok := req.HeaderValue(name)
		if !ok || v != "example.com" {
			t.Fatalf("lookup %q: got %q, %v", name, v, ok)
		}
	}
}

func TestHTTP10Accepted(t *testing.T) {
	req := mustParse(t, "GET / HTTP/1.0\r\n\r\n")
	if req.Version != (HttpVersion{1, 0}) {
		t.Fatalf("version = %v", req.Version)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	first := []byte("GET / HTTP/1.1\r\n\r\n")
	status, _, err := p.Feed(first)
	if err != nil || status != StatusComplete {
		t.Fatalf("first parse: status=%v err=%v", status, err)
	}
	if _, err := p.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	p.Reset()
	second := []byte("POST /b HTTP/1.1\r\nContent-Length: 1\r\n\r\nX")
	status, n, err := p.Feed(second)
	if err != nil || status != StatusComplete || n != len(second) {
		t.Fatalf("second parse after Reset: status=%v n=%d err=%v", status, n, err)
	}
	req, err := p.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !bytes.Equal(req.Body(), []byte("X")) {
		t.Fatalf("body = %q", req.Body())
	}
}

func TestFailedParserStaysFailedWithoutReset(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	_, _, err := p.Feed([]byte("BAD REQUEST\nline\r\n\r\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
	_, _, err2 := p.Feed([]byte("more data"))
	if err2 == nil {
		t.Fatal("expected Feed on a failed Parser to keep returning an error")
	}
}
