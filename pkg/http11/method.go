package http11

// HttpMethod is a closed set of canonical verbs plus MethodOther for
// tchar-valid extension methods.
type HttpMethod uint8

const (
	MethodUnknown HttpMethod = iota
	MethodGET
	MethodHEAD
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodCONNECT
	MethodOPTIONS
	MethodTRACE
	MethodPATCH
	// MethodOther marks a tchar-valid token that isn't one of the
	// canonical verbs above; the raw token is recovered via
	// HttpRequest.MethodToken().
	MethodOther
)

var methodNames = map[HttpMethod]string{
	MethodGET:     "GET",
	MethodHEAD:    "HEAD",
	MethodPOST:    "POST",
	MethodPUT:     "PUT",
	MethodDELETE:  "DELETE",
	MethodCONNECT: "CONNECT",
	MethodOPTIONS: "OPTIONS",
	MethodTRACE:   "TRACE",
	MethodPATCH:   "PATCH",
}

func (m HttpMethod) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	if m == MethodOther {
		return "OTHER"
	}
	return "UNKNOWN"
}

// canonicalMethods maps every canonical verb's wire spelling to its
// HttpMethod, built once from methodNames instead of hand-listing each
// token's bytes.
var canonicalMethods = func() map[string]HttpMethod {
	m := make(map[string]HttpMethod, len(methodNames))
	for id, name := range methodNames {
		m[name] = id
	}
	return m
}()

// classifyMethod maps a method token to its canonical HttpMethod. Every
// byte in tok has already been validated as tchar by the caller; this only
// decides which canonical verb (if any) it names. Unrecognized tchar-valid
// tokens classify as MethodOther rather than being rejected, per spec.md §3.
func classifyMethod(tok []byte) HttpMethod {
	if id, ok := canonicalMethods[string(tok)]; ok {
		return id
	}
	return MethodOther
}
