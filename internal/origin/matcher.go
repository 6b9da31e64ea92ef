// Package origin implements the origin-matching component of the CORS
// decision engine: a sum type of matching strategies (Any, Exact, List,
// Predicate, Callback, Disabled) that each resolve a request's Origin
// header value into an [Decision].
package origin

import (
	"regexp"

	"github.com/corspolicy/cors/internal/regexcache"
	"github.com/corspolicy/cors/internal/util"
)

// MaxLength bounds the length, in bytes, of a request's Origin value that
// the matcher is willing to consider; longer values are disallowed
// without further inspection.
const MaxLength = 4096

// SmallListLinearScanThreshold is the number of exact entries in a List
// matcher at or below which a linear scan is preferred over building a
// hash set.
const SmallListLinearScanThreshold = 4

// Context carries the subset of request information that a Predicate or
// Callback matcher may consult. It mirrors the public RequestContext type
// one layer up; the two are kept separate to avoid an import cycle
// between this internal package and the root package.
type Context struct {
	Method                              string
	Origin                              string
	AccessControlRequestMethod          string
	AccessControlRequestHeaders         string
	AccessControlRequestPrivateNetwork bool
}

// Decision is the result of resolving a matcher against a request's
// (optional) origin value.
type Decision int

const (
	// Skip indicates CORS does not apply to this request (no origin
	// present, or the matcher is Disabled).
	Skip Decision = iota
	// Mirror indicates the request's own origin should be echoed back.
	Mirror
	// ExactDecision indicates a specific, matcher-supplied origin string
	// should be emitted, which may differ from the request's origin.
	ExactDecision
	// Any indicates the wildcard "*" should be emitted.
	Any
	// Disallow indicates the request's origin does not satisfy the
	// matcher.
	Disallow
)

// PredicateFunc reports whether origin is allowed, given ctx.
type PredicateFunc func(origin string, ctx Context) bool

// CallbackFunc resolves an arbitrary [Decision] for a request, given its
// (possibly absent) origin and ctx. hasOrigin reports whether origin was
// present on the request.
type CallbackFunc func(origin string, hasOrigin bool, ctx Context) (Decision, string)

// A Matcher is one variant of the origin-matching sum type described by
// the engine's specification.
type Matcher struct {
	kind      matcherKind
	exact     string
	list      *list
	predicate PredicateFunc
	callback  CallbackFunc
}

type matcherKind int

const (
	kindAny matcherKind = iota
	kindExact
	kindList
	kindPredicate
	kindCallback
	kindDisabled
)

// NewAny returns the Any matcher: yields Any (the wildcard) for any present
// origin, Skip when absent.
func NewAny() Matcher { return Matcher{kind: kindAny} }

// NewDisabled returns the Disabled matcher: always yields Skip.
func NewDisabled() Matcher { return Matcher{kind: kindDisabled} }

// NewExact returns a matcher that allows exactly value, compared
// byte-exact (case-sensitive), per the Fetch Standard's origin
// serialization.
func NewExact(value string) Matcher {
	return Matcher{kind: kindExact, exact: value}
}

// NewPredicate returns a matcher that defers to f for every present
// origin.
func NewPredicate(f PredicateFunc) Matcher {
	return Matcher{kind: kindPredicate, predicate: f}
}

// NewCallback returns a matcher that defers entirely to f, including for
// absent origins.
func NewCallback(f CallbackFunc) Matcher {
	return Matcher{kind: kindCallback, callback: f}
}

// ListEntry is one element of a List matcher: either a literal origin
// (Pattern == "") or a regular expression (Pattern != "").
type ListEntry struct {
	Exact   string
	Pattern string // raw source pattern; compiled by NewList
}

// NewList compiles entries into a List matcher. Each entry with a
// non-empty Pattern is compiled via the process-wide regex cache; the
// first compile error aborts and is returned to the caller (surfaced as a
// construction-time validation error one layer up).
func NewList(entries []ListEntry) (Matcher, error) {
	l := &list{}
	for _, e := range entries {
		if e.Pattern != "" {
			re, err := regexcache.Compile(e.Pattern)
			if err != nil {
				return Matcher{}, err
			}
			l.patterns = append(l.patterns, re)
			continue
		}
		l.exactEntries = append(l.exactEntries, e.Exact)
	}
	l.linearScan = len(l.exactEntries) <= SmallListLinearScanThreshold
	if !l.linearScan {
		l.exactSet = make(map[string]struct{}, len(l.exactEntries))
		for _, e := range l.exactEntries {
			l.exactSet[e] = struct{}{}
		}
	}
	return Matcher{kind: kindList, list: l}, nil
}

type list struct {
	exactEntries []string
	exactSet     map[string]struct{}
	linearScan   bool
	patterns     []*regexp.Regexp
}

func (l *list) matches(origin string) bool {
	if l.linearScan {
		for _, e := range l.exactEntries {
			if e == origin {
				return true
			}
		}
	} else if _, ok := l.exactSet[origin]; ok {
		return true
	}
	for _, re := range l.patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// Resolve evaluates m against an (optional) request origin, returning the
// resulting [Decision] and, for ExactDecision, the literal value to emit.
// present reports whether origin was actually sent on the request (an
// empty string and an absent origin are distinct at the call site).
func Resolve(m Matcher, origin string, present bool, ctx Context) (Decision, string) {
	if present && len(origin) > MaxLength && m.kind != kindDisabled {
		return Disallow, ""
	}
	switch m.kind {
	case kindAny:
		if !present {
			return Skip, ""
		}
		return Any, ""
	case kindDisabled:
		return Skip, ""
	case kindExact:
		if !present {
			return Skip, ""
		}
		if origin == m.exact {
			return ExactDecision, m.exact
		}
		return Disallow, ""
	case kindList:
		if !present {
			return Skip, ""
		}
		if m.list.matches(origin) {
			return Mirror, ""
		}
		return Disallow, ""
	case kindPredicate:
		if !present {
			return Skip, ""
		}
		if m.predicate(origin, ctx) {
			return Mirror, ""
		}
		return Disallow, ""
	case kindCallback:
		return m.callback(origin, present, ctx)
	default:
		return Skip, ""
	}
}

// IsCallback reports whether m is a Callback matcher.
func (m Matcher) IsCallback() bool { return m.kind == kindCallback }

// IsAny reports whether m is the Any matcher.
func (m Matcher) IsAny() bool { return m.kind == kindAny }

// VaryOnDisallow reports whether a Disallow (or Skip-turned-rejection)
// decision from m should still contribute Origin to Vary. Every matcher
// other than Disabled does.
func (m Matcher) VaryOnDisallow() bool { return m.kind != kindDisabled }

// EqualOriginFold reports whether two origin strings are equal under
// Unicode case-insensitive comparison ([util.EqualFold]). The matchers
// themselves compare origins byte-exact and do not use it.
func EqualOriginFold(a, b string) bool {
	return util.EqualFold(a, b)
}
