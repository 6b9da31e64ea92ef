package cors

import (
	"errors"
	"strings"

	"github.com/corspolicy/cors/corserr"
	"github.com/corspolicy/cors/internal/allowlist"
	"github.com/corspolicy/cors/internal/origin"
	"github.com/corspolicy/cors/internal/regexcache"
	"github.com/corspolicy/cors/internal/util"
)

// validated holds every value engine.go's Check needs, computed once from
// an Options value by validate. All fields are immutable after
// construction; Cors.Check never mutates them, which is what makes a
// *Cors safe to share across goroutines.
type validated struct {
	matcher             origin.Matcher
	allowNullOrigin     bool
	credentials         bool
	methods             allowlist.List
	allowedHeaders      allowlist.List
	exposedHeaders      allowlist.List
	timingAllowOrigin   allowlist.List
	hasTimingAllowOrigin bool
	maxAge              *int
	allowPrivateNetwork bool
}

// validate checks o against every cross-field invariant, compiles its
// origin patterns, and returns the immutable form the engine evaluates
// per-request. Every violation found is accumulated and returned together
// via errors.Join, rather than failing on the first one, so a caller
// fixing configuration sees the whole picture at once.
func validate(o Options) (*validated, error) {
	var errs []error

	if !o.Origin.set {
		errs = append(errs, &corserr.MissingOriginError{})
	}

	matcher, matcherErrs := buildMatcher(o.Origin)
	errs = append(errs, matcherErrs...)

	methods, methodErrs := buildMethods(o.Methods)
	errs = append(errs, methodErrs...)

	allowedHeaders, headerErrs := buildAllowedHeaders(o.AllowedHeaders)
	errs = append(errs, headerErrs...)

	exposedHeaders, exposedErrs := buildExposedHeaders(o.ExposedHeaders, o.Credentials)
	errs = append(errs, exposedErrs...)

	var timingList allowlist.List
	hasTiming := o.TimingAllowOrigin != nil
	if hasTiming {
		var timingErrs []error
		timingList, timingErrs = buildTimingAllowOrigin(*o.TimingAllowOrigin, o.Credentials)
		errs = append(errs, timingErrs...)
	}

	if o.Credentials && o.Origin.set && o.Origin.kind == originKindAny {
		errs = append(errs, &corserr.CredentialsRequireSpecificOriginError{})
	}

	if o.Credentials && o.AllowedHeaders.any {
		errs = append(errs, &corserr.AllowedHeadersWildcardWithCredentialsError{})
	}

	if o.AllowPrivateNetwork {
		if !o.Credentials {
			errs = append(errs, &corserr.PrivateNetworkRequiresCredentialsError{})
		}
		if o.Origin.set && o.Origin.kind == originKindAny {
			errs = append(errs, &corserr.PrivateNetworkRequiresSpecificOriginError{})
		}
	}

	if o.MaxAge != nil && *o.MaxAge < 0 {
		errs = append(errs, &corserr.InvalidMaxAgeError{Value: *o.MaxAge})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &validated{
		matcher:              matcher,
		allowNullOrigin:      o.AllowNullOrigin,
		credentials:          o.Credentials,
		methods:              methods,
		allowedHeaders:       allowedHeaders,
		exposedHeaders:       exposedHeaders,
		timingAllowOrigin:    timingList,
		hasTimingAllowOrigin: hasTiming,
		maxAge:               o.MaxAge,
		allowPrivateNetwork:  o.AllowPrivateNetwork,
	}, nil
}

func buildMatcher(m OriginMatcher) (origin.Matcher, []error) {
	switch m.kind {
	case originKindAny:
		return origin.NewAny(), nil
	case originKindExact:
		return origin.NewExact(m.exact), nil
	case originKindList:
		entries := make([]origin.ListEntry, len(m.entries))
		for i, e := range m.entries {
			if e.isExact {
				entries[i] = origin.ListEntry{Exact: e.exact}
			} else {
				entries[i] = origin.ListEntry{Pattern: e.pattern}
			}
		}
		om, err := origin.NewList(entries)
		if err != nil {
			return origin.Matcher{}, []error{translatePatternError(err)}
		}
		return om, nil
	case originKindPredicate:
		return origin.NewPredicate(func(o string, ctx origin.Context) bool {
			return m.predicate(o, fromOriginContext(ctx))
		}), nil
	case originKindCallback:
		return origin.NewCallback(func(o string, present bool, ctx origin.Context) (origin.Decision, string) {
			d := m.callback(o, present, fromOriginContext(ctx))
			return toOriginDecision(d)
		}), nil
	case originKindDisabled:
		return origin.NewDisabled(), nil
	default:
		// Not reached by values built with the exported constructors. An
		// unset Options.Origin has the zero kind (Any), takes the Any case
		// above, and is reported by validate as MissingOriginError.
		return origin.NewDisabled(), nil
	}
}

func translatePatternError(err error) error {
	var tooLong *regexcache.ErrTooLong
	var timeout *regexcache.ErrTimeout
	var invalid *regexcache.ErrInvalid
	switch {
	case errors.As(err, &tooLong):
		return &corserr.PatternTooLongError{Pattern: tooLong.Pattern, Length: tooLong.Length, Max: regexcache.MaxPatternLength}
	case errors.As(err, &timeout):
		return &corserr.PatternCompileTimeoutError{Pattern: timeout.Pattern}
	case errors.As(err, &invalid):
		return &corserr.PatternInvalidError{Pattern: invalid.Pattern, Detail: invalid.Detail.Error()}
	default:
		return err
	}
}

func buildMethods(m AllowedMethods) (allowlist.List, []error) {
	if m.any {
		return allowlist.NewAny(), nil
	}
	var errs []error
	for _, e := range m.entries {
		if e == "*" {
			errs = append(errs, &corserr.AllowedMethodsWildcardInListError{})
			continue
		}
		if !util.IsToken(e) {
			errs = append(errs, &corserr.InvalidTokenError{Field: corserr.FieldMethods, Value: e})
		}
	}
	return allowlist.New(m.entries, ","), errs
}

func buildAllowedHeaders(h AllowedHeaders) (allowlist.List, []error) {
	if h.any {
		return allowlist.NewAny(), nil
	}
	var errs []error
	for _, e := range h.entries {
		if e == "*" {
			errs = append(errs, &corserr.AllowedHeadersWildcardInListError{})
			continue
		}
		if !util.IsToken(e) {
			errs = append(errs, &corserr.InvalidTokenError{Field: corserr.FieldAllowedHeaders, Value: e})
		}
	}
	return allowlist.New(h.entries, ","), errs
}

func buildExposedHeaders(h ExposedHeaders, credentials bool) (allowlist.List, []error) {
	if h.any {
		var errs []error
		if credentials {
			errs = append(errs, &corserr.ExposedHeadersWildcardWithCredentialsError{})
		}
		return allowlist.NewAny(), errs
	}
	var errs []error
	hasWildcard := false
	for _, e := range h.entries {
		if e == "*" {
			hasWildcard = true
			continue
		}
		if !util.IsToken(e) {
			errs = append(errs, &corserr.InvalidTokenError{Field: corserr.FieldExposedHeaders, Value: e})
		}
	}
	if hasWildcard && len(h.entries) > 1 {
		errs = append(errs, &corserr.ExposedHeadersWildcardNotSoleEntryError{})
	}
	if hasWildcard && credentials {
		errs = append(errs, &corserr.ExposedHeadersWildcardWithCredentialsListError{})
	}
	return allowlist.New(h.entries, ","), errs
}

func buildTimingAllowOrigin(t TimingAllowOrigin, credentials bool) (allowlist.List, []error) {
	if t.any {
		var errs []error
		if credentials {
			errs = append(errs, &corserr.TimingAllowOriginWildcardWithCredentialsError{})
		}
		return allowlist.NewAny(), errs
	}
	return allowlist.New(t.entries, " "), nil
}

func fromOriginContext(ctx origin.Context) RequestContext {
	return RequestContext{
		Method:                              ctx.Method,
		Origin:                              ctx.Origin,
		HasOrigin:                           ctx.Origin != "",
		AccessControlRequestMethod:          ctx.AccessControlRequestMethod,
		HasAccessControlRequestMethod:       ctx.AccessControlRequestMethod != "",
		AccessControlRequestHeaders:         ctx.AccessControlRequestHeaders,
		AccessControlRequestPrivateNetwork: ctx.AccessControlRequestPrivateNetwork,
	}
}

func toOriginContext(rc RequestContext) origin.Context {
	return origin.Context{
		Method:                              rc.Method,
		Origin:                              rc.Origin,
		AccessControlRequestMethod:          rc.AccessControlRequestMethod,
		AccessControlRequestHeaders:         rc.AccessControlRequestHeaders,
		AccessControlRequestPrivateNetwork: rc.AccessControlRequestPrivateNetwork,
	}
}

func toOriginDecision(d OriginDecision) (origin.Decision, string) {
	switch d.Kind {
	case OriginDecisionSkip:
		return origin.Skip, ""
	case OriginDecisionMirror:
		return origin.Mirror, ""
	case OriginDecisionExact:
		return origin.ExactDecision, d.Value
	case OriginDecisionAny:
		return origin.Any, ""
	case OriginDecisionDisallow:
		return origin.Disallow, ""
	default:
		return origin.Skip, ""
	}
}

// isNullOrigin reports whether raw is the literal "null" origin, compared
// case-insensitively (so "NULL" also counts), unlike every other origin
// value, which the matchers compare byte-exact.
func isNullOrigin(raw string) bool {
	return strings.EqualFold(raw, "null")
}
