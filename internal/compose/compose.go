// Package compose builds the ordered response-header list for each branch
// of a CORS decision (preflight accepted/rejected, simple accepted/
// rejected), including the Vary discipline required by the Fetch
// Standard.
package compose

import (
	"strconv"
	"strings"

	"github.com/corspolicy/cors/internal/allowlist"
	"github.com/corspolicy/cors/internal/origin"
)

// Header is a single response header name/value pair. Names are always
// lowercase ASCII.
type Header struct {
	Name  string
	Value string
}

const (
	hdrACAO = "access-control-allow-origin"
	hdrACAC = "access-control-allow-credentials"
	hdrACAM = "access-control-allow-methods"
	hdrACAH = "access-control-allow-headers"
	hdrACMA = "access-control-max-age"
	hdrACAPN = "access-control-allow-private-network"
	hdrACEH = "access-control-expose-headers"
	hdrTAO  = "timing-allow-origin"
	hdrVary = "vary"

	valOrigin = "Origin"
	valACRM   = "Access-Control-Request-Method"
	valACRH   = "Access-Control-Request-Headers"
)

// RejectionReason identifies why a preflight request was rejected.
type RejectionReason int

const (
	// NoRejection is the zero value, used when a preflight succeeds.
	NoRejection RejectionReason = iota
	OriginNotAllowed
	MethodNotAllowed
	HeadersNotAllowed
)

// vary accumulates the Vary contributions required by §4.5, in the order
// they are discovered, and joins them with ", " on demand.
type vary struct {
	origin bool
	acrm   bool
	acrh   bool
}

func (v *vary) headers() []Header {
	var parts []string
	if v.origin {
		parts = append(parts, valOrigin)
	}
	if v.acrm {
		parts = append(parts, valACRM)
	}
	if v.acrh {
		parts = append(parts, valACRH)
	}
	if len(parts) == 0 {
		return nil
	}
	return []Header{{Name: hdrVary, Value: strings.Join(parts, ", ")}}
}

// Input carries every already-resolved piece of configuration and request
// state the composer needs. Nothing here depends on the public Options
// type, so this package stays free of an import cycle with the root
// package.
type Input struct {
	// Origin resolution.
	OriginDecision origin.Decision
	OriginValue    string // meaningful for origin.ExactDecision
	RequestOrigin  string // the request's raw Origin header value
	IsNullOrigin   bool   // whether RequestOrigin is the literal "null"
	VaryOnDisallow bool   // matcher.VaryOnDisallow()

	Credentials bool

	// Preflight-only.
	Methods         allowlist.List // configured allowed methods
	RequestedMethod string         // Access-Control-Request-Method value

	AllowedHeaders   allowlist.List // configured allowed request headers
	RequestedHeaders string         // raw Access-Control-Request-Headers value

	MaxAge    *int
	HasMaxAge bool

	AllowPrivateNetwork     bool
	PrivateNetworkRequested bool

	// Actual-request-only.
	ExposedHeaders    allowlist.List
	TimingAllowOrigin allowlist.List
	HasTimingAllowOrigin bool
}

// originHeaders resolves the Access-Control-Allow-Origin header (if any)
// and the Vary: Origin contribution, per §4.5. It returns ok=false when
// the origin decision is origin.Skip (caller must treat this as
// NotApplicable, never reaching header composition at all).
func originHeaders(in Input) (hdrs []Header, v vary, allowed bool, ok bool) {
	switch in.OriginDecision {
	case origin.Skip:
		return nil, v, false, false
	case origin.Any:
		v.origin = true
		if in.IsNullOrigin {
			// Open question (§9): preserve request-origin fidelity for the
			// literal "null" origin even under Origin::Any.
			return []Header{{Name: hdrACAO, Value: "null"}}, v, true, true
		}
		return []Header{{Name: hdrACAO, Value: "*"}}, v, true, true
	case origin.ExactDecision:
		v.origin = true
		return []Header{{Name: hdrACAO, Value: in.OriginValue}}, v, true, true
	case origin.Mirror:
		v.origin = true
		if in.RequestOrigin == "" {
			return nil, v, false, true
		}
		return []Header{{Name: hdrACAO, Value: in.RequestOrigin}}, v, true, true
	case origin.Disallow:
		if in.VaryOnDisallow {
			v.origin = true
		}
		return nil, v, false, true
	default:
		return nil, v, false, true
	}
}

// Preflight builds the header set for a CORS-preflight request. ok
// reports whether CORS applies at all (false means the caller's origin
// decision was origin.Skip and the result is NotApplicable). accepted
// reports whether the preflight succeeded; when false, reason identifies
// which check failed.
func Preflight(in Input) (hdrs []Header, ok bool, accepted bool, reason RejectionReason) {
	oh, v, allowedOrigin, ok := originHeaders(in)
	if !ok {
		return nil, false, false, NoRejection
	}
	if !allowedOrigin {
		return append(oh, v.headers()...), true, false, OriginNotAllowed
	}

	// Method check: only meaningful when Methods is a concrete list;
	// Any always admits the requested method.
	// A rejected preflight carries only its Vary contribution, never the
	// allow-origin header.
	if !in.Methods.IsAny() && !in.Methods.ContainsFold(in.RequestedMethod) {
		return v.headers(), true, false, MethodNotAllowed
	}

	// Header check: every comma-separated, trimmed, lowercased name in
	// the request must be permitted.
	if !headersAllowed(in.AllowedHeaders, in.RequestedHeaders) {
		return v.headers(), true, false, HeadersNotAllowed
	}

	hdrs = append(hdrs, oh...)
	if in.Credentials {
		hdrs = append(hdrs, Header{Name: hdrACAC, Value: "true"})
	}

	if in.Methods.IsAny() {
		if in.Credentials {
			// Credentials are compatible with Any methods (unlike Any
			// headers/exposed-headers/timing-allow-origin); a literal "*"
			// would be meaningless to credentialed clients, so echo the
			// requested method instead.
			v.acrm = true
			hdrs = append(hdrs, Header{Name: hdrACAM, Value: in.RequestedMethod})
		} else {
			hdrs = append(hdrs, Header{Name: hdrACAM, Value: "*"})
		}
	} else {
		hdrs = append(hdrs, Header{Name: hdrACAM, Value: in.Methods.HeaderValue()})
	}

	if in.AllowedHeaders.IsAny() {
		v.acrh = true
		if in.Credentials {
			// I2 forbids this combination at construction time; defensive only.
			hdrs = append(hdrs, Header{Name: hdrACAH, Value: in.RequestedHeaders})
		} else {
			hdrs = append(hdrs, Header{Name: hdrACAH, Value: "*"})
		}
	} else if !in.AllowedHeaders.IsEmpty() {
		hdrs = append(hdrs, Header{Name: hdrACAH, Value: in.AllowedHeaders.HeaderValue()})
	}

	if in.HasMaxAge {
		hdrs = append(hdrs, Header{Name: hdrACMA, Value: strconv.Itoa(*in.MaxAge)})
	}

	if in.AllowPrivateNetwork && in.PrivateNetworkRequested {
		hdrs = append(hdrs, Header{Name: hdrACAPN, Value: "true"})
	}

	hdrs = append(hdrs, v.headers()...)
	return hdrs, true, true, NoRejection
}

// headersAllowed reports whether every header name in raw (a
// comma-separated list, per the Access-Control-Request-Headers grammar)
// is permitted by allowed.
func headersAllowed(allowed allowlist.List, raw string) bool {
	if allowed.IsAny() {
		return true
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !allowed.ContainsFold(name) {
			return false
		}
	}
	return true
}

// Simple builds the header set for a simple (actual, non-preflight) CORS
// request. ok reports whether CORS applies (false => NotApplicable).
// accepted reports whether the origin was allowed.
func Simple(in Input) (hdrs []Header, ok bool, accepted bool) {
	oh, v, allowedOrigin, ok := originHeaders(in)
	if !ok {
		return nil, false, false
	}
	if !allowedOrigin {
		return append(oh, v.headers()...), true, false
	}

	hdrs = append(hdrs, oh...)
	if in.Credentials {
		hdrs = append(hdrs, Header{Name: hdrACAC, Value: "true"})
	}
	if in.ExposedHeaders.IsAny() {
		hdrs = append(hdrs, Header{Name: hdrACEH, Value: "*"})
	} else if !in.ExposedHeaders.IsEmpty() {
		hdrs = append(hdrs, Header{Name: hdrACEH, Value: in.ExposedHeaders.HeaderValue()})
	}
	if in.HasTimingAllowOrigin {
		hdrs = append(hdrs, Header{Name: hdrTAO, Value: in.TimingAllowOrigin.HeaderValue()})
	}
	hdrs = append(hdrs, v.headers()...)
	return hdrs, true, true
}
