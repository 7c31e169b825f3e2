package http11

// HttpVersion is the (major, minor) pair from the request line. Only 1.0
// and 1.1 are accepted by the pre-body FSM; Parser.handleVersion rejects
// anything else before a HttpVersion is ever constructed.
type HttpVersion struct {
	Major uint8
	Minor uint8
}

func (v HttpVersion) String() string {
	switch {
	case v.Major == 1 && v.Minor == 1:
		return string(http11VersionBytes)
	case v.Major == 1 && v.Minor == 0:
		return string(http10VersionBytes)
	default:
		return string([]byte{'H', 'T', 'T', 'P', '/', '0' + v.Major, '.', '0' + v.Minor})
	}
}
