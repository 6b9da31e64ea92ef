package cors

import (
	"github.com/corspolicy/cors/internal/classify"
	"github.com/corspolicy/cors/internal/compose"
	"github.com/corspolicy/cors/internal/origin"
)

// Cors is an immutable, validated CORS decision engine. The zero value is
// not usable; obtain one with [New] or [Must]. A *Cors is safe for
// concurrent use by multiple goroutines: Check never mutates engine
// state, so the same engine can be shared across every request handler in
// a process.
type Cors struct {
	v *validated
}

// New validates opts and returns an engine built from it. The returned
// error, if non-nil, is an errors.Join tree of one or more configuration
// errors from package corserr; use [corserr.All] to enumerate them.
func New(opts Options) (*Cors, error) {
	v, err := validate(opts)
	if err != nil {
		return nil, err
	}
	return &Cors{v: v}, nil
}

// Must is like New but panics if opts is invalid. It is intended for
// package-level engine initialization where a misconfiguration should
// fail fast at startup.
func Must(opts Options) *Cors {
	c, err := New(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Check evaluates ctx against the engine's configuration and returns the
// resulting [Decision]. Check is pure and allocation-light: it performs
// no I/O and touches no shared mutable state beyond the process-wide
// regex cache populated once at construction time.
func (c *Cors) Check(ctx RequestContext) Decision {
	isNull := ctx.HasOrigin && isNullOrigin(ctx.Origin)

	var decision origin.Decision
	var value string
	if isNull && !c.v.allowNullOrigin {
		// The literal "null" origin (sent by sandboxed iframes, file://
		// documents, and some redirects) never matches unless the caller
		// opted in, regardless of matcher kind; this runs ahead of the
		// configured matcher entirely, mirroring header_builder.rs's
		// placement of the same check before origin resolution.
		decision, value = origin.Disallow, ""
	} else {
		originCtx := toOriginContext(ctx)
		decision, value = origin.Resolve(c.v.matcher, ctx.Origin, ctx.HasOrigin, originCtx)
	}

	// Every matcher kind other than Callback has Any-plus-credentials
	// rejected at construction time (I1). A Callback's return value is
	// opaque until invoked, so the same guard is re-checked here and,
	// unlike the construction-time violation, fails safe by treating the
	// origin as disallowed rather than emitting a wildcard alongside
	// Access-Control-Allow-Credentials.
	if decision == origin.Any && c.v.credentials {
		decision, value = origin.Disallow, ""
	}

	kind := classify.Classify(ctx.Method, ctx.HasAccessControlRequestMethod, decision == origin.Skip)
	if kind == classify.NotApplicable {
		return Decision{Kind: NotApplicable}
	}

	in := compose.Input{
		OriginDecision: decision,
		OriginValue:    value,
		RequestOrigin:  ctx.Origin,
		// Only meaningful once AllowNullOrigin has let a null origin reach
		// the Any matcher; it is never set on the forced-Disallow path
		// above, and Resolve only reports Any when this is reached.
		IsNullOrigin:   isNull && decision == origin.Any,
		VaryOnDisallow: c.v.matcher.VaryOnDisallow(),

		Credentials: c.v.credentials,

		Methods:         c.v.methods,
		RequestedMethod: ctx.AccessControlRequestMethod,

		AllowedHeaders:   c.v.allowedHeaders,
		RequestedHeaders: ctx.AccessControlRequestHeaders,

		MaxAge:    c.v.maxAge,
		HasMaxAge: c.v.maxAge != nil,

		AllowPrivateNetwork:     c.v.allowPrivateNetwork,
		PrivateNetworkRequested: ctx.AccessControlRequestPrivateNetwork,

		ExposedHeaders:       c.v.exposedHeaders,
		TimingAllowOrigin:    c.v.timingAllowOrigin,
		HasTimingAllowOrigin: c.v.hasTimingAllowOrigin,
	}

	switch kind {
	case classify.Preflight:
		hdrs, ok, accepted, reason := compose.Preflight(in)
		if !ok {
			return Decision{Kind: NotApplicable}
		}
		if !accepted {
			return Decision{Kind: PreflightRejected, Headers: toHeaders(hdrs), Reason: toRejectionReason(reason)}
		}
		return Decision{Kind: PreflightAccepted, Headers: toHeaders(hdrs)}
	default: // classify.Simple
		hdrs, ok, accepted := compose.Simple(in)
		if !ok {
			return Decision{Kind: NotApplicable}
		}
		if !accepted {
			return Decision{Kind: SimpleRejected, Headers: toHeaders(hdrs)}
		}
		return Decision{Kind: SimpleAccepted, Headers: toHeaders(hdrs)}
	}
}

func toHeaders(hdrs []compose.Header) Headers {
	if len(hdrs) == 0 {
		return nil
	}
	out := make(Headers, len(hdrs))
	for i, h := range hdrs {
		out[i] = Header{Name: h.Name, Value: h.Value}
	}
	return out
}

func toRejectionReason(r compose.RejectionReason) RejectionReason {
	switch r {
	case compose.OriginNotAllowed:
		return OriginNotAllowed
	case compose.MethodNotAllowed:
		return MethodNotAllowed
	case compose.HeadersNotAllowed:
		return HeadersNotAllowed
	default:
		return NoRejection
	}
}
