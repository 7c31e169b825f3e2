package http11

// Parse parses a single, complete HTTP/1.1 request from data using
// DefaultParserConfig. Unlike Feed, it requires the request to finish
// exactly at the end of data: any unconsumed trailing bytes are reported
// as ErrTrailingData rather than silently treated as the start of a
// pipelined request. Use a Parser directly via Feed for streaming or
// pipelined input.
func Parse(data []byte) (*HttpRequest, error) {
	return ParseWithConfig(data, DefaultParserConfig())
}

// ParseWithConfig is Parse with an explicit ParserConfig.
func ParseWithConfig(data []byte, cfg ParserConfig) (*HttpRequest, error) {
	p := NewParser(cfg)
	status, n, err := p.Feed(data)
	if err != nil {
		return nil, err
	}
	if status != StatusComplete {
		return nil, newParseError(ErrKindIncomplete, p.state.String(), p.bytesConsumed)
	}
	if n != len(data) {
		return nil, newParseError(ErrKindTrailingData, stateComplete.String(), p.bytesConsumed)
	}
	return p.Finish()
}
