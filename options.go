package cors

// Options configures a [Cors] engine. A zero Options is not valid: at
// minimum Origin must be set. Pass Options to [New] or [Must] to obtain a
// validated, immutable engine.
type Options struct {
	// Origin determines which request origins are allowed. There is no
	// default; every engine must pick one of AnyOrigin, ExactOrigin,
	// ListOrigin, PredicateOrigin, CallbackOrigin, or DisabledOrigin.
	Origin OriginMatcher

	// Methods determines which HTTP methods a preflight may request.
	Methods AllowedMethods

	// AllowedHeaders determines which request headers a preflight may
	// request via Access-Control-Request-Headers.
	AllowedHeaders AllowedHeaders

	// ExposedHeaders determines which response headers
	// Access-Control-Expose-Headers grants scripts read access to on
	// simple (actual) requests. The zero value exposes nothing.
	ExposedHeaders ExposedHeaders

	// Credentials enables credentialed access
	// (Access-Control-Allow-Credentials: true). Enabling it restricts
	// Origin, AllowedHeaders, ExposedHeaders and TimingAllowOrigin to
	// non-wildcard configurations; New rejects the wildcard forms.
	Credentials bool

	// MaxAge, when non-nil, sets Access-Control-Max-Age to the given
	// number of seconds a preflight result may be cached. Must be
	// non-negative.
	MaxAge *int

	// AllowNullOrigin controls how the literal "null" Origin header (sent
	// by sandboxed iframes, file:// documents, and some redirects) is
	// treated. By default (false), "null" is forced to Disallow ahead of
	// the configured origin matcher entirely — no matcher kind, including
	// Any, ever matches it. When true, "null" is evaluated normally; under
	// an Any matcher this replaces the ordinary wildcard output with the
	// literal "null" value, preserving request-origin fidelity for
	// sandboxed callers instead of emitting a meaningless "*".
	AllowNullOrigin bool

	// AllowPrivateNetwork enables the Private Network Access response
	// header (Access-Control-Allow-Private-Network) for preflights that
	// request it. Requires Credentials and a non-wildcard Origin.
	AllowPrivateNetwork bool

	// TimingAllowOrigin, when non-nil, sets the Timing-Allow-Origin header
	// on simple responses, exposing resource-timing data to the listed
	// origins.
	TimingAllowOrigin *TimingAllowOrigin
}

// OriginPredicateFunc reports whether origin (the value of a present
// Origin header) should be allowed, given the rest of the request in ctx.
type OriginPredicateFunc func(origin string, ctx RequestContext) bool

// OriginCallbackFunc resolves an arbitrary [OriginDecision] for a request.
// hasOrigin reports whether the request carried an Origin header at all;
// origin is "" when hasOrigin is false. Unlike every other matcher kind, a
// Callback is consulted even for requests with no Origin header, so it
// can implement bespoke NotApplicable logic.
type OriginCallbackFunc func(origin string, hasOrigin bool, ctx RequestContext) OriginDecision

// OriginDecisionKind is the variant tag of an [OriginDecision].
type OriginDecisionKind int

const (
	// OriginDecisionSkip opts the request out of CORS entirely.
	OriginDecisionSkip OriginDecisionKind = iota
	// OriginDecisionMirror echoes the request's own Origin value.
	OriginDecisionMirror
	// OriginDecisionExact emits OriginDecision.Value regardless of the
	// request's own origin.
	OriginDecisionExact
	// OriginDecisionAny emits the wildcard "*".
	OriginDecisionAny
	// OriginDecisionDisallow rejects the request's origin.
	OriginDecisionDisallow
)

// OriginDecision is the value an [OriginCallbackFunc] returns to steer the
// engine's origin-matching outcome for one request.
type OriginDecision struct {
	Kind  OriginDecisionKind
	Value string // meaningful only when Kind == OriginDecisionExact
}

// DecisionSkip returns an OriginDecision that opts the current request out
// of CORS.
func DecisionSkip() OriginDecision { return OriginDecision{Kind: OriginDecisionSkip} }

// DecisionMirror returns an OriginDecision that echoes the request's own
// Origin value.
func DecisionMirror() OriginDecision { return OriginDecision{Kind: OriginDecisionMirror} }

// DecisionExact returns an OriginDecision that emits value regardless of
// the request's own origin.
func DecisionExact(value string) OriginDecision {
	return OriginDecision{Kind: OriginDecisionExact, Value: value}
}

// DecisionAny returns an OriginDecision that emits the wildcard "*".
//
// Combining this with Options.Credentials is a runtime error surfaced as
// a rejected decision: unlike the other invariants, this combination
// cannot be caught at construction time, because a Callback's behavior is
// opaque until invoked.
func DecisionAny() OriginDecision { return OriginDecision{Kind: OriginDecisionAny} }

// DecisionDisallow returns an OriginDecision that rejects the request's
// origin.
func DecisionDisallow() OriginDecision { return OriginDecision{Kind: OriginDecisionDisallow} }

// OriginEntry is one element of a List origin matcher: either a literal
// origin (via [ExactEntry]) or a regular-expression pattern (via
// [PatternEntry]) that is full-matched, case-insensitively, against the
// request's Origin value.
type OriginEntry struct {
	exact   string
	pattern string
	isExact bool
}

// ExactEntry returns a List entry that matches value byte-exactly.
func ExactEntry(value string) OriginEntry {
	return OriginEntry{exact: value, isExact: true}
}

// PatternEntry returns a List entry that full-matches the regular
// expression pattern, case-insensitively, against the request's Origin
// value. pattern is compiled once, at [New] time, subject to the engine's
// length and compile-time budget.
func PatternEntry(pattern string) OriginEntry {
	return OriginEntry{pattern: pattern}
}

// OriginMatcher is the sum type of origin-matching strategies described
// by the package's data model. Construct one with AnyOrigin, ExactOrigin,
// ListOrigin, PredicateOrigin, CallbackOrigin, or DisabledOrigin.
type OriginMatcher struct {
	kind      originMatcherKind
	exact     string
	entries   []OriginEntry
	predicate OriginPredicateFunc
	callback  OriginCallbackFunc
	set       bool
}

type originMatcherKind int

const (
	originKindAny originMatcherKind = iota
	originKindExact
	originKindList
	originKindPredicate
	originKindCallback
	originKindDisabled
)

// AnyOrigin allows every origin, emitting a wildcard
// Access-Control-Allow-Origin: * for non-credentialed requests.
// Credentialed requests additionally require a non-wildcard matcher (see
// ExactOrigin, ListOrigin, PredicateOrigin).
func AnyOrigin() OriginMatcher { return OriginMatcher{kind: originKindAny, set: true} }

// ExactOrigin allows only the single given origin, compared byte-exact
// per the Fetch Standard's origin serialization.
func ExactOrigin(origin string) OriginMatcher {
	return OriginMatcher{kind: originKindExact, exact: origin, set: true}
}

// ListOrigin allows any origin matching at least one of entries.
func ListOrigin(entries ...OriginEntry) OriginMatcher {
	return OriginMatcher{kind: originKindList, entries: entries, set: true}
}

// PredicateOrigin allows any origin for which f returns true. f is never
// called for requests without an Origin header.
func PredicateOrigin(f OriginPredicateFunc) OriginMatcher {
	return OriginMatcher{kind: originKindPredicate, predicate: f, set: true}
}

// CallbackOrigin defers the entire origin decision to f, including for
// requests without an Origin header. Use this for decisions that cannot
// be expressed as a static allow-list or pure predicate, such as
// per-tenant origin lookups from an external store.
func CallbackOrigin(f OriginCallbackFunc) OriginMatcher {
	return OriginMatcher{kind: originKindCallback, callback: f, set: true}
}

// DisabledOrigin opts every request out of CORS; [Cors.Check] always
// returns NotApplicable.
func DisabledOrigin() OriginMatcher { return OriginMatcher{kind: originKindDisabled, set: true} }

// AllowedMethods is the sum type Any | List(...) for the set of HTTP
// methods a preflight may request.
type AllowedMethods struct {
	any     bool
	entries []string
	set     bool
}

// AnyMethods allows any method.
func AnyMethods() AllowedMethods { return AllowedMethods{any: true, set: true} }

// ListMethods allows exactly the given methods, each of which must be a
// valid HTTP token (RFC 7230 §3.2.6).
func ListMethods(methods ...string) AllowedMethods {
	return AllowedMethods{entries: methods, set: true}
}

// AllowedHeaders is the sum type Any | List(...) for the set of request
// headers a preflight may request via Access-Control-Request-Headers.
type AllowedHeaders struct {
	any     bool
	entries []string
	set     bool
}

// AnyHeaders allows any request header.
func AnyHeaders() AllowedHeaders { return AllowedHeaders{any: true, set: true} }

// ListHeaders allows exactly the given request headers, each of which
// must be a valid HTTP token.
func ListHeaders(headers ...string) AllowedHeaders {
	return AllowedHeaders{entries: headers, set: true}
}

// ExposedHeaders is the sum type None | Any | List(...) for the set of
// response headers Access-Control-Expose-Headers grants script access to.
// The zero value is None.
type ExposedHeaders struct {
	any     bool
	entries []string
}

// AnyExposedHeaders exposes every response header.
func AnyExposedHeaders() ExposedHeaders { return ExposedHeaders{any: true} }

// ListExposedHeaders exposes exactly the given response headers.
func ListExposedHeaders(headers ...string) ExposedHeaders {
	return ExposedHeaders{entries: headers}
}

// TimingAllowOrigin is the sum type Any | List(...) for the set of
// origins granted resource-timing visibility via Timing-Allow-Origin.
type TimingAllowOrigin struct {
	any     bool
	entries []string
}

// AnyTimingAllowOrigin grants resource-timing visibility to every origin.
func AnyTimingAllowOrigin() *TimingAllowOrigin { return &TimingAllowOrigin{any: true} }

// ListTimingAllowOrigin grants resource-timing visibility to exactly the
// given origins.
func ListTimingAllowOrigin(origins ...string) *TimingAllowOrigin {
	return &TimingAllowOrigin{entries: origins}
}
