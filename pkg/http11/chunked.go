package http11

// The chunked-transfer sub-machine (spec.md §4.5). Ported from the
// teacher's ChunkedReader (pkg/shockwave/http11/chunked.go), whose
// readChunkHeader/readTrailers blocked on a bufio.Reader and could not
// suspend mid-line; here every state advances (or rejects) on a single
// byte so Feed can return Incomplete at any boundary and resume exactly
// where it left off.
//
//   ChunkSize -> [ChunkExt] -> ChunkSizeLf -> (if size==0: TrailerStart ->
//   ... -> TrailerEndLf -> Complete; otherwise ChunkData -> ChunkDataCr ->
//   ChunkDataLf -> loop back to ChunkSize)

const maxChunkSizeDigits = 16 // 64-bit hex value never needs more digits

// handleChunkSize processes one byte of the current chunk-size line.
func (p *Parser) handleChunkSize(b byte) *ParseError {
	switch {
	case isHexDigit(b):
		if p.chunkSizeDigits >= maxChunkSizeDigits {
			return newParseError(ErrKindInvalidChunkSize, stateChunkSize.String(), p.bytesConsumed).withByte(b)
		}
		p.chunkSizeAccum = p.chunkSizeAccum<<4 | hexVal(b)
		p.chunkSizeDigits++
		return nil
	case b == ';':
		if p.chunkSizeDigits == 0 {
			return newParseError(ErrKindInvalidChunkSize, stateChunkSize.String(), p.bytesConsumed).withByte(b)
		}
		p.state = stateChunkExt
		return nil
	case b == '\r':
		if p.chunkSizeDigits == 0 {
			return newParseError(ErrKindInvalidChunkSize, stateChunkSize.String(), p.bytesConsumed).withByte(b)
		}
		p.state = stateChunkSizeLF
		return nil
	default:
		return newParseError(ErrKindInvalidChunkSize, stateChunkSize.String(), p.bytesConsumed).withByte(b)
	}
}

// handleChunkExt discards chunk-extension content (RFC 9112 §4.1.1), never
// counting it toward any size cap. A quoted-string may contain a
// backslash-escaped CR, so only an unescaped, unquoted CR ends the
// extension run.
func (p *Parser) handleChunkExt(b byte) *ParseError {
	if p.chunkExtQuoted {
		if p.chunkExtEscaped {
			p.chunkExtEscaped = false
			return nil
		}
		switch b {
		case '\\':
			p.chunkExtEscaped = true
		case '"':
			p.chunkExtQuoted = false
		}
		return nil
	}
	switch {
	case b == '"':
		p.chunkExtQuoted = true
		return nil
	case b == '\r':
		p.state = stateChunkSizeLF
		return nil
	case isVchar(b) || isOWS(b) || isObsText(b) || b == '=':
		return nil
	default:
		return newParseError(ErrKindInvalidChunkSize, stateChunkExt.String(), p.bytesConsumed).withByte(b)
	}
}

// handleChunkSizeLF requires the LF terminating the chunk-size line, then
// dispatches to either the trailer section (size 0, last chunk) or a new
// ChunkData span.
func (p *Parser) handleChunkSizeLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidChunkTerminator, stateChunkSizeLF.String(), p.bytesConsumed).withByte(b)
	}
	size := p.chunkSizeAccum
	p.chunkSizeAccum = 0
	p.chunkSizeDigits = 0
	if size == 0 {
		p.state = stateTrailerStart
		return nil
	}
	// Compare entirely in unsigned space: size can carry the top bit of a
	// 64-bit hex value, and int64(size) would wrap negative for those,
	// silently defeating this check (every earlier chunk passed this same
	// check, so p.totalBodyLen never exceeds MaxBodySize and the
	// subtraction below can't itself underflow past zero).
	remaining := uint64(p.cfg.MaxBodySize) - uint64(p.totalBodyLen)
	if size > remaining {
		return newParseError(ErrKindBodyTooLarge, stateChunkSizeLF.String(), p.bytesConsumed)
	}
	p.bodyRemaining = size
	p.state = stateChunkData
	return nil
}

// bulkChunkData copies as many of the current chunk's remaining bytes as
// are available in data[*i:], advancing *i and p.bytesConsumed, and
// transitions to stateChunkDataCR once the chunk is fully consumed.
func (p *Parser) bulkChunkData(data []byte, i *int) *ParseError {
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
		p.state = stateChunkDataCR
	}
	return nil
}

func (p *Parser) handleChunkDataCR(b byte) *ParseError {
	if b != '\r' {
		return newParseError(ErrKindInvalidChunkTerminator, stateChunkDataCR.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateChunkDataLF
	return nil
}

func (p *Parser) handleChunkDataLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidChunkTerminator, stateChunkDataLF.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateChunkSize
	return nil
}

// handleTrailerStart peeks at the byte starting a (possibly empty)
// trailer section. An immediate CR means no trailers follow.
func (p *Parser) handleTrailerStart(b byte) *ParseError {
	if b == '\r' {
		p.state = stateTrailerEndLF
		return nil
	}
	if !isTchar(b) {
		return newParseError(ErrKindInvalidTrailer, stateTrailerStart.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateTrailerName
	return nil
}

// handleTrailerName accumulates (but never stores) a trailer field-name;
// trailers are parsed grammatically and discarded per spec.md §4.5f.
func (p *Parser) handleTrailerName(b byte) *ParseError {
	if b == ':' {
		p.state = stateTrailerValueLeadingOWS
		return nil
	}
	if !isTchar(b) {
		return newParseError(ErrKindInvalidTrailer, stateTrailerName.String(), p.bytesConsumed).withByte(b)
	}
	return nil
}

func (p *Parser) handleTrailerValueLeadingOWS(b byte) *ParseError {
	if isOWS(b) {
		return nil
	}
	if b == '\r' {
		p.state = stateTrailerValueLF
		return nil
	}
	if !isHeaderValueByte(b) {
		return newParseError(ErrKindInvalidTrailer, stateTrailerValueLeadingOWS.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateTrailerValue
	return nil
}

func (p *Parser) handleTrailerValue(b byte) *ParseError {
	if b == '\r' {
		p.state = stateTrailerValueLF
		return nil
	}
	if !isHeaderValueByte(b) {
		return newParseError(ErrKindInvalidTrailer, stateTrailerValue.String(), p.bytesConsumed).withByte(b)
	}
	return nil
}

func (p *Parser) handleTrailerValueLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidTrailer, stateTrailerValueLF.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateTrailerStart
	return nil
}

func (p *Parser) handleTrailerEndLF(b byte) *ParseError {
	if b != '\n' {
		return newParseError(ErrKindInvalidTrailer, stateTrailerEndLF.String(), p.bytesConsumed).withByte(b)
	}
	p.state = stateComplete
	return nil
}
