package http11

import "github.com/valyala/bytebufferpool"

// ParseStatus reports what Feed accomplished with the bytes it was given.
type ParseStatus int

const (
	// StatusIncomplete means every byte passed to Feed was consumed but the
	// request is not yet fully parsed; call Feed again with more data.
	StatusIncomplete ParseStatus = iota
	// StatusComplete means the request line, headers, and body (if any)
	// finished parsing. Any bytes after the last one consumed belong to the
	// next pipelined request.
	StatusComplete
)

// Parser is an incremental, resumable HTTP/1.1 request parser. It can be
// fed data of any length, one byte or one megabyte at a time, and suspends
// cleanly at any boundary. A Parser processes exactly one request; call
// Reset (or take a fresh one from GetParser) to parse the next pipelined
// request on the same connection.
//
// Grounded on the teacher's byte-oriented accumulation style (method/URI/
// header buffers grown incrementally) but restructured around a single
// explicit state field instead of blocking reads, so Feed never calls into
// an io.Reader and never blocks.
type Parser struct {
	cfg ParserConfig

	state         state
	bytesConsumed int64

	methodBuf *bytebufferpool.ByteBuffer
	uriBuf    *bytebufferpool.ByteBuffer
	nameBuf   *bytebufferpool.ByteBuffer
	valueBuf  *bytebufferpool.ByteBuffer
	bodyBuf   *bytebufferpool.ByteBuffer

	headers Headers

	method      HttpMethod
	methodToken string
	uri         string
	version     HttpVersion
	verPos      int
	verMajor    uint8
	verMinor    uint8

	curHeaderName string

	framing       framingKind
	bodyRemaining uint64

	chunkSizeAccum  uint64
	chunkSizeDigits int
	chunkExtQuoted  bool
	chunkExtEscaped bool
	totalBodyLen    int64

	atMessageStart bool

	err *ParseError
}

// NewParser returns a Parser configured with cfg, ready to parse one
// request. Use GetParser/PutParser in pool.go to avoid the allocation on
// connection-heavy paths.
func NewParser(cfg ParserConfig) *Parser {
	p := &Parser{
		methodBuf: new(bytebufferpool.ByteBuffer),
		uriBuf:    new(bytebufferpool.ByteBuffer),
		nameBuf:   new(bytebufferpool.ByteBuffer),
		valueBuf:  new(bytebufferpool.ByteBuffer),
		bodyBuf:   new(bytebufferpool.ByteBuffer),
	}
	p.cfg = cfg
	p.Reset()
	return p
}

// Reset returns the Parser to its initial state so it can parse a new
// request, reusing all pooled buffers and slices.
func (p *Parser) Reset() {
	p.state = stateStartLine
	p.bytesConsumed = 0
	p.methodBuf.Reset()
	p.uriBuf.Reset()
	p.nameBuf.Reset()
	p.valueBuf.Reset()
	p.bodyBuf.Reset()
	p.headers = p.headers[:0]
	p.method = MethodUnknown
	p.methodToken = ""
	p.uri = ""
	p.version = HttpVersion{}
	p.verPos = 0
	p.verMajor = 0
	p.verMinor = 0
	p.curHeaderName = ""
	p.framing = framingNone
	p.bodyRemaining = 0
	p.chunkSizeAccum = 0
	p.chunkSizeDigits = 0
	p.chunkExtQuoted = false
	p.chunkExtEscaped = false
	p.totalBodyLen = 0
	p.atMessageStart = true
	p.err = nil
}

// IsComplete reports whether the request has finished parsing.
func (p *Parser) IsComplete() bool { return p.state == stateComplete }

// BytesConsumed returns the total number of bytes Feed has consumed across
// the life of this Parser (since the last Reset).
func (p *Parser) BytesConsumed() int64 { return p.bytesConsumed }

// Feed advances the state machine over data, returning how many leading
// bytes of data were consumed. Once Feed returns StatusComplete, the caller
// must stop feeding bytes that belong to this request; any remainder in
// data past the returned count belongs to the next pipelined request (or is
// trailing garbage, for one-shot callers — see oneshot.go).
//
// A non-nil error means the request is malformed beyond recovery; the
// Parser must not be fed further without a Reset.
func (p *Parser) Feed(data []byte) (ParseStatus, int, error) {
	if p.err != nil {
		return StatusIncomplete, 0, p.err
	}
	if p.state == stateComplete {
		return StatusComplete, 0, nil
	}

	i := 0
	for i < len(data) {
		if p.state == stateBodyFixed {
			if perr := p.bulkBodyFixed(data, &i); perr != nil {
				p.state = stateFailed
				p.err = perr
				return StatusIncomplete, i, perr
			}
			if p.state == stateComplete {
				return StatusComplete, i, nil
			}
			continue
		}
		if p.state == stateChunkData {
			if perr := p.bulkChunkData(data, &i); perr != nil {
				p.state = stateFailed
				p.err = perr
				return StatusIncomplete, i, perr
			}
			continue
		}

		b := data[i]
		perr := p.step(b)
		i++
		p.bytesConsumed++
		if perr != nil {
			p.state = stateFailed
			p.err = perr
			return StatusIncomplete, i, perr
		}
		if p.state == stateComplete {
			return StatusComplete, i, nil
		}
	}
	return StatusIncomplete, i, nil
}

// step dispatches a single byte to the handler for the current state. Bulk
// states (BodyFixed, ChunkData) are short-circuited in Feed before step is
// ever called for them.
func (p *Parser) step(b byte) *ParseError {
	switch p.state {
	case stateLeadingCR:
		return p.handleLeadingCR(b)
	case stateStartLine:
		return p.handleStartLine(b)
	case stateURI:
		return p.handleURI(b)
	case stateVersion:
		return p.handleVersion(b)
	case stateRequestLineLF:
		return p.handleRequestLineLF(b)
	case stateHeaderStart:
		return p.handleHeaderStart(b)
	case stateHeaderName:
		return p.handleHeaderName(b)
	case stateHeaderValueLeadingOWS:
		return p.handleHeaderValueLeadingOWS(b)
	case stateHeaderValue:
		return p.handleHeaderValue(b)
	case stateHeaderValueLF:
		return p.handleHeaderValueLF(b)
	case stateHeaderBlockLF:
		return p.handleHeaderBlockLF(b)
	case stateChunkSize:
		return p.handleChunkSize(b)
	case stateChunkExt:
		return p.handleChunkExt(b)
	case stateChunkSizeLF:
		return p.handleChunkSizeLF(b)
	case stateChunkDataCR:
		return p.handleChunkDataCR(b)
	case stateChunkDataLF:
		return p.handleChunkDataLF(b)
	case stateTrailerStart:
		return p.handleTrailerStart(b)
	case stateTrailerName:
		return p.handleTrailerName(b)
	case stateTrailerValueLeadingOWS:
		return p.handleTrailerValueLeadingOWS(b)
	case stateTrailerValue:
		return p.handleTrailerValue(b)
	case stateTrailerValueLF:
		return p.handleTrailerValueLF(b)
	case stateTrailerEndLF:
		return p.handleTrailerEndLF(b)
	default:
		return newParseError(ErrKindIncomplete, p.state.String(), p.bytesConsumed).withByte(b)
	}
}

// handleStartLine accumulates the method token. A single leading CRLF
// pair before the request line is tolerated and skipped per RFC 9112
// §2.2, matching SPEC_FULL.md §6.1: only a genuine CR immediately followed
// by LF is consumed — a lone CR or a lone LF is not "skippable whitespace"
// and must be rejected like any other line-terminator violation.
func (p *Parser) handleStartLine(b byte) *ParseError {
	if p.atMessageStart && p.methodBuf.Len() == 0 && b == '\r' {
		p.state = stateLeadingCR
		return nil
	}
	p.atMessageStart = false
	if b == ' ' {
		if p.methodBuf.Len() == 0 {
			return newParseError(ErrKindInvalidMethod, stateStartLine.String(), p.bytesConsumed).withByte(b)
		}
		tok := p.methodBuf.Bytes()
		p.methodToken = string(tok)
		p.method = classifyMethod(tok)
		p.state = stateURI
		return nil
	}
	if !isTchar(b) {
		return newParseError(ErrKindInvalidMethod, stateStartLine.String(), p.bytesConsumed).withByte(b)
	}
	if p.methodBuf.Len() >= p.cfg.MaxMethodLen {
		return newParseError(ErrKindMethodTooLong, stateStartLine.String(), p.bytesConsumed).withByte(b)
	}
	p.methodBuf.WriteByte(b)
	return nil
}

// handleLeadingCR is entered only once, having just consumed a lone CR as
// the very first byte of a fresh parse. A following LF completes the
// tolerated pair and parsing resumes at StartLine with the tolerance
// disabled (atMessageStart cleared) so it cannot apply again mid-message;
// anything else means the CR wasn't part of a real CRLF pair and the
// message is malformed.
func (p *Parser) handleLeadingCR(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindMissingCRLF, stateLeadingCR.String(), p.bytesConsumed).withByte(b)
	}
	p.atMessageStart = false
	p.state = stateStartLine
	return nil
}

// handleURI accumulates the request-target. Grammar is intentionally
// permissive (any vchar) since request-target validation per scheme
// (origin-form, absolute-form, authority-form, asterisk-form) is layered
// policy, not wire-parsing; spec.md §3.2 only requires rejecting
// whitespace and control bytes.
func (p *Parser) handleURI(b byte) *ParseError {
	if b == ' ' {
		if p.uriBuf.Len() == 0 {
			return newParseError(ErrKindInvalidURI, stateURI.String(), p.bytesConsumed).withByte(b)
		}
		p.uri = string(p.uriBuf.Bytes())
		p.state = stateVersion
		p.verPos = 0
		return nil
	}
	if !isVchar(b) {
		return newParseError(ErrKindInvalidURI, stateURI.String(), p.bytesConsumed).withByte(b)
	}
	if p.uriBuf.Len() >= p.cfg.MaxURILen {
		return newParseError(ErrKindURITooLong, stateURI.String(), p.bytesConsumed).withByte(b)
	}
	p.uriBuf.WriteByte(b)
	return nil
}

// handleVersion matches "HTTP/d.d" followed by CR: positions 0-4 are the
// fixed "HTTP/" tag, position 5 is the major digit, 6 is '.', 7 is the
// minor digit, and 8 must be the CR ending the request line.
func (p *Parser) handleVersion(b byte) *ParseError {
	const lit = "HTTP/"
	switch {
	case p.verPos < 5:
		if b != lit[p.verPos] {
			return newParseError(ErrKindInvalidVersion, stateVersion.String(), p.bytesConsumed).withByte(b)
		}
	case p.verPos == 5:
		if !isDigit(b) {
			return newParseError(ErrKindInvalidVersion, stateVersion.String(), p.bytesConsumed).withByte(b)
		}
		p.verMajor = b - '0'
	case p.verPos == 6:
		if b != '.' {
			return newParseError(ErrKindInvalidVersion, stateVersion.String(), p.bytesConsumed).withByte(b)
		}
	case p.verPos == 7:
		if !isDigit(b) {
			return newParseError(ErrKindInvalidVersion, stateVersion.String(), p.bytesConsumed).withByte(b)
		}
		p.verMinor = b - '0'
	case p.verPos == 8:
		if b != '\r' {
			return newParseError(ErrKindMissingCRLF, stateVersion.String(), p.bytesConsumed).withByte(b)
		}
		if p.verMajor != 1 || (p.verMinor != 0 && p.verMinor != 1) {
			return newParseError(ErrKindInvalidVersion, stateVersion.String(), p.bytesConsumed)
		}
		p.version = HttpVersion{Major: p.verMajor, Minor: p.verMinor}
		p.state = stateRequestLineLF
		return nil
	}
	p.verPos++
	return nil
}

func (p *Parser) handleRequestLineLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidLineTerminator, stateRequestLineLF.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateHeaderStart
	return nil
}

// handleHeaderStart inspects the first byte of a header line: CR means the
// header block (and thus the blank line) is ending; an OWS byte here is an
// obsolete line fold, rejected per RFC 9112 §5.2.
func (p *Parser) handleHeaderStart(b byte) *ParseError {
	if b == '\r' {
		p.state = stateHeaderBlockLF
		return nil
	}
	if isOWS(b) {
		return newParseError(ErrKindObsoleteLineFolding, stateHeaderStart.String(), p.bytesConsumed).withByte(b)
	}
	if !isTchar(b) {
		return newParseError(ErrKindInvalidHeaderName, stateHeaderStart.String(), p.bytesConsumed).withByte(b)
	}
	if len(p.headers) >= p.cfg.MaxHeadersCount {
		return newParseError(ErrKindTooManyHeaders, stateHeaderStart.String(), p.bytesConsumed).withByte(b)
	}
	p.nameBuf.Reset()
	p.nameBuf.WriteByte(b)
	p.state = stateHeaderName
	return nil
}

func (p *Parser) handleHeaderName(b byte) *ParseError {
	if b == ':' {
		p.curHeaderName = string(p.nameBuf.Bytes())
		p.valueBuf.Reset()
		p.state = stateHeaderValueLeadingOWS
		return nil
	}
	if !isTchar(b) {
		return newParseError(ErrKindInvalidHeaderName, stateHeaderName.String(), p.bytesConsumed).withByte(b)
	}
	if p.nameBuf.Len() >= p.cfg.MaxHeaderNameLen {
		return newParseError(ErrKindInvalidHeaderName, stateHeaderName.String(), p.bytesConsumed).withByte(b)
	}
	p.nameBuf.WriteByte(b)
	return nil
}

func (p *Parser) handleHeaderValueLeadingOWS(b byte) *ParseError {
	if isOWS(b) {
		return nil
	}
	if b == '\r' {
		p.state = stateHeaderValueLF
		return p.commitHeader()
	}
	if !isHeaderValueByte(b) {
		return newParseError(ErrKindInvalidHeaderValue, stateHeaderValueLeadingOWS.String(), p.bytesConsumed).withByte(b)
	}
	p.valueBuf.WriteByte(b)
	p.state = stateHeaderValue
	return nil
}

func (p *Parser) handleHeaderValue(b byte) *ParseError {
	if b == '\r' {
		p.state = stateHeaderValueLF
		return p.commitHeader()
	}
	if !isHeaderValueByte(b) {
		return newParseError(ErrKindInvalidHeaderValue, stateHeaderValue.String(), p.bytesConsumed).withByte(b)
	}
	if p.valueBuf.Len() >= p.cfg.MaxHeaderValueLen {
		return newParseError(ErrKindInvalidHeaderValue, stateHeaderValue.String(), p.bytesConsumed).withByte(b)
	}
	p.valueBuf.WriteByte(b)
	return nil
}

// commitHeader trims trailing OWS from the accumulated value (RFC 9112
// §5.1 field-value has no trailing whitespace) and appends the (name,
// value) pair in arrival order.
func (p *Parser) commitHeader() *ParseError {
	v := trimOWS(p.valueBuf.Bytes())
	p.headers = append(p.headers, Header{Name: p.curHeaderName, Value: string(v)})
	return nil
}

func (p *Parser) handleHeaderValueLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidLineTerminator, stateHeaderValueLF.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateHeaderStart
	return nil
}

// handleHeaderBlockLF requires the LF of the blank line ending the header
// block, then resolves body framing exactly once per spec.md §4.3.
func (p *Parser) handleHeaderBlockLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidLineTerminator, stateHeaderBlockLF.String(), p.bytesConsumed).withByte(b)
	}
	kind, length, perr := resolveFraming(p)
	if perr != nil {
		return perr
	}
	p.framing = kind
	switch kind {
	case framingFixedLength:
		p.bodyRemaining = uint64(length)
		p.state = stateBodyFixed
	case framingChunked:
		p.state = stateChunkSize
	default:
		p.state = stateComplete
	}
	return nil
}

// bulkBodyFixed copies as many of the remaining Content-Length bytes as are
// available in data[*i:], completing the request once bodyRemaining drains
// to zero.
func (p *Parser) bulkBodyFixed(data []byte, i *int) *ParseError {
	avail := uint64(len(data) - *i)
	take := p.bodyRemaining
	if avail < take {
		take = avail
	}
	if take > 0 {
		p.bodyBuf.Write(data[*i : *i+int(take)])
		*i += int(take)
		p.bytesConsumed += int64(take)
		p.bodyRemaining -= take
		p.totalBodyLen += int64(take)
	}
	if p.bodyRemaining == 0 {
		p.state = stateComplete
	}
	return nil
}

// Finish returns the completed HttpRequest, or ErrIncomplete if the
// message has not finished parsing.
func (p *Parser) Finish() (*HttpRequest, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.state != stateComplete {
		return nil, newParseError(ErrKindIncomplete, p.state.String(), p.bytesConsumed)
	}
	req := &HttpRequest{
		Method:      p.method,
		MethodToken: p.methodToken,
		URI:         p.uri,
		Version:     p.version,
		Headers:     append(Headers(nil), p.headers...),
		contentLen:  -1,
	}
	switch p.framing {
	case framingFixedLength:
		req.hasBody = p.totalBodyLen > 0
		req.contentLen = p.totalBodyLen
		if req.hasBody {
			req.body = append([]byte(nil), p.bodyBuf.Bytes()...)
		}
	case framingChunked:
		req.chunked = true
		req.hasBody = p.totalBodyLen > 0
		if req.hasBody {
			req.body = append([]byte(nil), p.bodyBuf.Bytes()...)
		}
	}
	return req, nil
}
