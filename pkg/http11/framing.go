package http11

import "github.com/intuitivelabs/bytescase"

// resolveFraming inspects the collected header set exactly once, at the
// transition out of the header block, and decides which body-framing
// discipline applies. Implements spec.md §4.3.
//
// Grounded on the teacher's processSpecialHeader/setupBodyReader (the
// CL/TE smuggling checks), restructured from "checked while scanning" to
// "resolved once, after the block ends", and on intuitivelabs-httpsp's
// TrEncResolve for comma-list Transfer-Encoding codings.
func resolveFraming(p *Parser) (framingKind, int64, *ParseError) {
	var teCodings [][]byte
	sawTE := false

	for _, h := range p.headers {
		if !bytescase.CmpEq([]byte(h.Name), headerNameTransferEncoding) {
			continue
		}
		sawTE = true
		for _, coding := range splitComma(h.Value) {
			if len(coding) == 0 {
				continue
			}
			teCodings = append(teCodings, coding)
		}
	}

	if sawTE {
		if len(teCodings) == 0 || !bytescase.CmpEq(teCodings[len(teCodings)-1], tokenChunked) {
			return framingNone, 0, newParseError(ErrKindUnsupportedTransferEncoding, stateHeaderBlockLF.String(), p.bytesConsumed)
		}
		// Transfer-Encoding: chunked wins over any Content-Length present
		// (RFC 9112 §6.1); Content-Length is ignored without rejection.
		return framingChunked, 0, nil
	}

	var clSeen bool
	var clValue int64
	for _, h := range p.headers {
		if !bytescase.CmpEq([]byte(h.Name), headerNameContentLength) {
			continue
		}
		for _, part := range splitComma(h.Value) {
			n, ok := parseNonNegativeInt(part)
			if !ok {
				return framingNone, 0, newParseError(ErrKindInvalidContentLength, stateHeaderBlockLF.String(), p.bytesConsumed)
			}
			if clSeen && n != clValue {
				return framingNone, 0, newParseError(ErrKindDuplicateContentLength, stateHeaderBlockLF.String(), p.bytesConsumed)
			}
			clSeen = true
			clValue = n
		}
	}

	if !clSeen {
		return framingNone, 0, nil
	}
	if clValue > p.cfg.MaxBodySize {
		return framingNone, 0, newParseError(ErrKindBodyTooLarge, stateHeaderBlockLF.String(), p.bytesConsumed)
	}
	if clValue == 0 {
		return framingNone, 0, nil
	}
	return framingFixedLength, clValue, nil
}

// splitComma splits a header value on commas, trimming OWS from each part.
// Unlike strings.Split, an empty input yields no parts at all (distinct
// from a single empty part), matching how a blank Content-Length value
// should be treated as "no value supplied" rather than "one empty value".
func splitComma(value string) [][]byte {
	if len(value) == 0 {
		return nil
	}
	var out [][]byte
	b := []byte(value)
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ',' {
			out = append(out, trimOWS(b[start:i]))
			start = i + 1
		}
	}
	return out
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && isOWS(b[0]) {
		b = b[1:]
	}
	for len(b) > 0 && isOWS(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

// parseNonNegativeInt parses a base-10 non-negative integer, rejecting
// empty input, non-digit bytes, and int64 overflow.
func parseNonNegativeInt(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n int64
	for _, c := range b {
		if !isDigit(c) {
			return 0, false
		}
		d := int64(c - '0')
		if n > (1<<63-1-d)/10 {
			return 0, false // overflow
		}
		n = n*10 + d
	}
	return n, true
}
