package http11

import "fmt"

// ErrorKind is the closed taxonomy of rejection reasons a Parser can
// surface. Every variant below corresponds 1:1 to a condition named in
// spec.md §7.
type ErrorKind int

const (
	ErrKindInvalidMethod ErrorKind = iota
	ErrKindMethodTooLong
	ErrKindInvalidURI
	ErrKindURITooLong
	ErrKindInvalidVersion
	ErrKindMissingCRLF
	ErrKindInvalidLineTerminator
	ErrKindInvalidHeaderName
	ErrKindInvalidHeaderValue
	ErrKindTooManyHeaders
	ErrKindObsoleteLineFolding
	ErrKindInvalidContentLength
	ErrKindDuplicateContentLength
	ErrKindBodyTooLarge
	ErrKindInvalidChunkSize
	ErrKindInvalidChunkTerminator
	ErrKindInvalidTrailer
	ErrKindUnsupportedTransferEncoding
	ErrKindIncomplete
	ErrKindTrailingData
)

var errKindNames = map[ErrorKind]string{
	ErrKindInvalidMethod:               "invalid method",
	ErrKindMethodTooLong:               "method too long",
	ErrKindInvalidURI:                  "invalid URI",
	ErrKindURITooLong:                  "URI too long",
	ErrKindInvalidVersion:              "invalid version",
	ErrKindMissingCRLF:                 "missing CRLF",
	ErrKindInvalidLineTerminator:       "invalid line terminator",
	ErrKindInvalidHeaderName:           "invalid header name",
	ErrKindInvalidHeaderValue:          "invalid header value",
	ErrKindTooManyHeaders:              "too many headers",
	ErrKindObsoleteLineFolding:         "obsolete line folding",
	ErrKindInvalidContentLength:        "invalid Content-Length",
	ErrKindDuplicateContentLength:      "duplicate Content-Length",
	ErrKindBodyTooLarge:                "body too large",
	ErrKindInvalidChunkSize:            "invalid chunk size",
	ErrKindInvalidChunkTerminator:      "invalid chunk terminator",
	ErrKindInvalidTrailer:              "invalid trailer",
	ErrKindUnsupportedTransferEncoding: "unsupported transfer encoding",
	ErrKindIncomplete:                  "parse incomplete",
	ErrKindTrailingData:                "trailing data after request",
}

func (k ErrorKind) String() string {
	if s, ok := errKindNames[k]; ok {
		return s
	}
	return "unknown error kind"
}

// ParseError is the error type returned by Feed and Finish. It carries the
// FSM state active when the condition was detected and, where meaningful,
// the offending byte and its position.
type ParseError struct {
	Kind    ErrorKind
	State   string
	Pos     int64
	Byte    byte
	hasByte bool
}

func (e *ParseError) Error() string {
	if e.hasByte {
		return fmt.Sprintf("http11: %s (state=%s pos=%d byte=%#x)", e.Kind, e.State, e.Pos, e.Byte)
	}
	return fmt.Sprintf("http11: %s (state=%s pos=%d)", e.Kind, e.State, e.Pos)
}

// Is supports errors.Is against the package-level Err* sentinels below, so
// callers that only care about the broad category can compare without
// unwrapping via errors.As.
func (e *ParseError) Is(target error) bool {
	sentinel, ok := target.(*sentinelError)
	if !ok {
		return false
	}
	return sentinel.kind == e.Kind
}

// sentinelError lets callers write `errors.Is(err, http11.ErrBodyTooLarge)`
// without reaching into ParseError's fields, mirroring the teacher's flat
// package-level Err* table while still attaching positional context.
type sentinelError struct {
	kind ErrorKind
}

func (s *sentinelError) Error() string { return s.kind.String() }

// Package-level sentinels, one per ErrorKind, in the teacher's errors.go
// style (a flat var block of pre-allocated errors).
var (
	ErrInvalidMethod               = &sentinelError{ErrKindInvalidMethod}
	ErrMethodTooLong                = &sentinelError{ErrKindMethodTooLong}
	ErrInvalidURI                   = &sentinelError{ErrKindInvalidURI}
	ErrURITooLong                   = &sentinelError{ErrKindURITooLong}
	ErrInvalidVersion               = &sentinelError{ErrKindInvalidVersion}
	ErrMissingCRLF                  = &sentinelError{ErrKindMissingCRLF}
	ErrInvalidLineTerminator        = &sentinelError{ErrKindInvalidLineTerminator}
	ErrInvalidHeaderName            = &sentinelError{ErrKindInvalidHeaderName}
	ErrInvalidHeaderValue           = &sentinelError{ErrKindInvalidHeaderValue}
	ErrTooManyHeaders               = &sentinelError{ErrKindTooManyHeaders}
	ErrObsoleteLineFolding          = &sentinelError{ErrKindObsoleteLineFolding}
	ErrInvalidContentLength         = &sentinelError{ErrKindInvalidContentLength}
	ErrDuplicateContentLength       = &sentinelError{ErrKindDuplicateContentLength}
	ErrBodyTooLarge                 = &sentinelError{ErrKindBodyTooLarge}
	ErrInvalidChunkSize             = &sentinelError{ErrKindInvalidChunkSize}
	ErrInvalidChunkTerminator       = &sentinelError{ErrKindInvalidChunkTerminator}
	ErrInvalidTrailer               = &sentinelError{ErrKindInvalidTrailer}
	ErrUnsupportedTransferEncoding  = &sentinelError{ErrKindUnsupportedTransferEncoding}
	ErrIncomplete                   = &sentinelError{ErrKindIncomplete}
	ErrTrailingData                 = &sentinelError{ErrKindTrailingData}
)

// newParseError builds a *ParseError for the given kind, current state name
// and position.
func newParseError(kind ErrorKind, state string, pos int64) *ParseError {
	return &ParseError{Kind: kind, State: state, Pos: pos}
}

func (e *ParseError) withByte(b byte) *ParseError {
	e.Byte = b
	e.hasByte = true
	return e
}
