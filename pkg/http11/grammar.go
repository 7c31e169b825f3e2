package http11

// Byte-class predicates from RFC 9110/9112. The FSM in parser.go and
// chunked.go refer to these by name rather than re-deriving ranges inline.

// tchar: RFC 9110 §5.6.2 token character.
var tcharTable [256]bool

// headerValueByteTable: vchar, OWS, or obs-text (RFC 9112 §5.1 field-value).
var headerValueByteTable [256]bool

func init() {
	for c := '0'; c <= '9'; c++ {
		tcharTable[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		tcharTable[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		tcharTable[c] = true
	}
	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		tcharTable[c] = true
	}

	for b := 0; b < 256; b++ {
		switch {
		case b >= 0x21 && b <= 0x7E: // vchar
			headerValueByteTable[b] = true
		case b == 0x20 || b == 0x09: // OWS
			headerValueByteTable[b] = true
		case b >= 0x80 && b <= 0xFF: // obs-text
			headerValueByteTable[b] = true
		}
	}
}

// isTchar reports whether b is a valid token character.
func isTchar(b byte) bool { return tcharTable[b] }

// isVchar reports whether b is a visible US-ASCII character (0x21-0x7E).
func isVchar(b byte) bool { return b >= 0x21 && b <= 0x7E }

// isObsText reports whether b is an obsolete-text byte (0x80-0xFF).
func isObsText(b byte) bool { return b >= 0x80 }

// isOWS reports whether b is optional whitespace (space or tab).
func isOWS(b byte) bool { return b == 0x20 || b == 0x09 }

// isDigit reports whether b is an ASCII decimal digit.
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isHexDigit reports whether b is an ASCII hexadecimal digit.
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// hexVal returns the numeric value of a hex digit; caller must have
// already validated b with isHexDigit.
func hexVal(b byte) uint64 {
	switch {
	case b >= '0' && b <= '9':
		return uint64(b - '0')
	case b >= 'a' && b <= 'f':
		return uint64(b-'a') + 10
	default:
		return uint64(b-'A') + 10
	}
}

// isHeaderValueByte reports whether b may appear inside a header field
// value: vchar, OWS, or obs-text. Control bytes other than tab are rejected.
func isHeaderValueByte(b byte) bool { return headerValueByteTable[b] }
