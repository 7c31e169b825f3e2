package http11

import "testing"

// feedAll drives p with data split into pieces of exactly chunkSize bytes
// (the final piece may be shorter), returning the terminal status and the
// total bytes consumed across all Feed calls, or the first error.
func feedAll(t *testing.T, p *Parser, data []byte, chunkSize int) (ParseStatus, int, error) {
	t.Helper()
	total := 0
	for total < len(data) {
		end := total + chunkSize
		if end > len(data) {
			end = len(data)
		}
		status, n, err := p.Feed(data[total:end])
		total += n
		if err != nil {
			return status, total, err
		}
		if status == StatusComplete {
			return status, total, nil
		}
	}
	return StatusIncomplete, total, nil
}

func mustParse(t *testing.T, raw string) *HttpRequest {
	t.Helper()
	req, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", raw, err)
	}
	return req
}
