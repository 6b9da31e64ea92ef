/*
Package corserr provides structured configuration-error types produced by
package [github.com/corspolicy/cors] when an [Options] value violates one
of the engine's cross-field invariants.

Most callers only need the error returned by [github.com/corspolicy/cors.New]
for logging. Callers that want to render their own human-friendly message
(for instance, multi-tenant services that let tenants configure CORS
through a web portal) can use [All] to walk the individual violations and
type-switch on them.
*/
package corserr

import (
	"fmt"
	"iter"
)

// A CredentialsRequireSpecificOriginError indicates that credentialed
// access was enabled while the origin matcher was Any (invariant I1).
type CredentialsRequireSpecificOriginError struct{}

func (*CredentialsRequireSpecificOriginError) Error() string {
	return "cors: credentialed access requires a non-wildcard origin matcher"
}

// An AllowedHeadersWildcardWithCredentialsError indicates that
// credentialed access was enabled while allowed request headers was Any
// (invariant I2).
type AllowedHeadersWildcardWithCredentialsError struct{}

func (*AllowedHeadersWildcardWithCredentialsError) Error() string {
	return "cors: credentialed access requires a non-wildcard set of allowed request headers"
}

// An ExposedHeadersWildcardWithCredentialsError indicates that
// credentialed access was enabled while exposed headers was Any
// (invariant I3).
type ExposedHeadersWildcardWithCredentialsError struct{}

func (*ExposedHeadersWildcardWithCredentialsError) Error() string {
	return "cors: credentialed access requires a non-wildcard set of exposed headers"
}

// A TimingAllowOriginWildcardWithCredentialsError indicates that
// credentialed access was enabled while timing-allow-origin was Any
// (invariant I4).
type TimingAllowOriginWildcardWithCredentialsError struct{}

func (*TimingAllowOriginWildcardWithCredentialsError) Error() string {
	return "cors: credentialed access requires a non-wildcard timing-allow-origin"
}

// An AllowedHeadersWildcardInListError indicates that a List of allowed
// request headers contained the literal "*" (invariant I5).
type AllowedHeadersWildcardInListError struct{}

func (*AllowedHeadersWildcardInListError) Error() string {
	return `cors: allowed-headers list must not contain "*"; use the Any matcher instead`
}

// An ExposedHeadersWildcardNotSoleEntryError indicates that a List of
// exposed headers contained "*" alongside other entries (invariant I6).
type ExposedHeadersWildcardNotSoleEntryError struct{}

func (*ExposedHeadersWildcardNotSoleEntryError) Error() string {
	return `cors: exposed-headers "*" must be the only entry in the list`
}

// An ExposedHeadersWildcardWithCredentialsListError indicates that a List
// of exposed headers containing "*" was combined with credentialed access
// (invariant I6).
type ExposedHeadersWildcardWithCredentialsListError struct{}

func (*ExposedHeadersWildcardWithCredentialsListError) Error() string {
	return `cors: exposed-headers "*" requires credentialed access to be disabled`
}

// An AllowedMethodsWildcardInListError indicates that a List of allowed
// methods contained the literal "*" (invariant I7).
type AllowedMethodsWildcardInListError struct{}

func (*AllowedMethodsWildcardInListError) Error() string {
	return `cors: allowed-methods list must not contain "*"; use the Any matcher instead`
}

// Field identifies which configuration list an [InvalidTokenError]
// belongs to.
type Field string

const (
	FieldMethods        Field = "methods"
	FieldAllowedHeaders  Field = "allowed-headers"
	FieldExposedHeaders Field = "exposed-headers"
)

// An InvalidTokenError indicates that a list entry was not a valid HTTP
// token (invariant I8).
type InvalidTokenError struct {
	Field Field
	Value string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("cors: %s entry %q is not a valid HTTP token", e.Field, e.Value)
}

// A PrivateNetworkRequiresCredentialsError indicates that
// AllowPrivateNetwork was set without Credentials (invariant I9).
type PrivateNetworkRequiresCredentialsError struct{}

func (*PrivateNetworkRequiresCredentialsError) Error() string {
	return "cors: allowing private-network access requires credentialed access to be enabled"
}

// A PrivateNetworkRequiresSpecificOriginError indicates that
// AllowPrivateNetwork was set while the origin matcher was Any
// (invariant I9).
type PrivateNetworkRequiresSpecificOriginError struct{}

func (*PrivateNetworkRequiresSpecificOriginError) Error() string {
	return "cors: allowing private-network access requires a non-wildcard origin matcher"
}

// A PatternTooLongError indicates an origin pattern whose length exceeds
// the engine's maximum (invariant I10).
type PatternTooLongError struct {
	Pattern string
	Length  int
	Max     int
}

func (e *PatternTooLongError) Error() string {
	return fmt.Sprintf("cors: origin pattern of length %d exceeds maximum %d", e.Length, e.Max)
}

// A PatternCompileTimeoutError indicates an origin pattern whose
// compilation exceeded the engine's compile-time budget (invariant I11).
type PatternCompileTimeoutError struct {
	Pattern string
}

func (e *PatternCompileTimeoutError) Error() string {
	return fmt.Sprintf("cors: compiling origin pattern %q exceeded the compile-time budget", e.Pattern)
}

// A PatternInvalidError indicates an origin pattern that failed to
// compile as a regular expression (invariant I11).
type PatternInvalidError struct {
	Pattern string
	Detail  string
}

func (e *PatternInvalidError) Error() string {
	return fmt.Sprintf("cors: invalid origin pattern %q: %s", e.Pattern, e.Detail)
}

// An InvalidMaxAgeError indicates a negative max-age value (invariant
// I12).
type InvalidMaxAgeError struct {
	Value int
}

func (e *InvalidMaxAgeError) Error() string {
	return fmt.Sprintf("cors: max-age value %d must be a non-negative integer", e.Value)
}

// A MissingOriginError indicates that no origin matcher was configured at
// all.
type MissingOriginError struct{}

func (*MissingOriginError) Error() string {
	return "cors: an origin matcher must be configured"
}

// All returns an iterator over the configuration errors contained in
// err's error tree. The order is unspecified. All only supports error
// values returned by [github.com/corspolicy/cors.New] and
// [github.com/corspolicy/cors.Must]; it should not be called on any other
// error value.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// No "interface{ Unwrap() error }" case because validation only ever
	// joins errors, never wraps a single one.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
