package cors

// RequestContext carries the subset of an HTTP request that the engine
// needs to reach a decision. Callers are responsible for extracting these
// values from whatever request type their framework uses; the engine
// itself never touches net/http.
type RequestContext struct {
	// Method is the request's HTTP method, byte-exact as sent on the wire
	// (e.g. "OPTIONS", "GET"). The Fetch Standard compares this
	// case-sensitively, so callers must not normalize case before setting
	// this field.
	Method string

	// Origin is the value of the request's Origin header. HasOrigin
	// distinguishes an absent header from one that (degenerately) carries
	// an empty value; most callers will simply set HasOrigin to whether
	// the header was present at all.
	Origin    string
	HasOrigin bool

	// AccessControlRequestMethod is the value of the preflight's
	// Access-Control-Request-Method header. HasAccessControlRequestMethod
	// must be true for the engine to classify a request as a preflight,
	// even when Method is "OPTIONS".
	AccessControlRequestMethod    string
	HasAccessControlRequestMethod bool

	// AccessControlRequestHeaders is the raw, comma-separated value of the
	// preflight's Access-Control-Request-Headers header, or "" if absent.
	AccessControlRequestHeaders string

	// AccessControlRequestPrivateNetwork reports whether the preflight
	// carried Access-Control-Request-Private-Network: true, per the
	// Private Network Access draft.
	AccessControlRequestPrivateNetwork bool
}
