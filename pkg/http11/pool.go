package http11

import "sync"

// parserPool recycles Parsers configured with DefaultParserConfig. Callers
// needing a non-default ParserConfig should construct their own Parser via
// NewParser and, if desired, their own sync.Pool around it — pooling here
// intentionally mirrors the teacher's single global pool rather than the
// per-CPU strategy, since a resumable Parser is held per-connection for the
// lifetime of a request rather than acquired and released per call.
var parserPool = sync.Pool{
	New: func() interface{} {
		return NewParser(DefaultParserConfig())
	},
}

// GetParser retrieves a Parser from the pool, ready to parse a new request.
//
// IMPORTANT: the caller must call PutParser when done to return it.
func GetParser() *Parser {
	return parserPool.Get().(*Parser)
}

// PutParser resets p and returns it to the pool. It is safe to call
// PutParser on nil (no-op). After calling PutParser, the caller must not
// use p again.
func PutParser(p *Parser) {
	if p == nil {
		return
	}
	p.Reset()
	parserPool.Put(p)
}
