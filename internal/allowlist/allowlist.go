// Package allowlist provides the reusable "Any | List(tokens) | None"
// structure shared by allowed methods, allowed request headers, exposed
// headers, and timing-allow-origin configuration.
package allowlist

import "strings"

// A List represents one of:
//   - the zero value: no entries (None);
//   - Any: a wildcard, matching everything;
//   - a List of specific token values.
//
// The joined header-value string is computed once, at construction time
// via [New] or [NewAny], and memoized on the value, mirroring the
// teacher's precomputation of ACAH/ACAM/ACEH strings at configuration time.
type List struct {
	any     bool
	entries []string // as given to New, original casing kept; ContainsFold compares case-insensitively
	joined  string
	sep     string
}

// New returns a List containing entries, joined with sep ("," for most
// header-style lists) to produce its header value. entries are expected to
// already be validated and deduplicated by the caller.
func New(entries []string, sep string) List {
	return List{entries: entries, joined: strings.Join(entries, sep), sep: sep}
}

// NewAny returns the wildcard List.
func NewAny() List {
	return List{any: true, joined: "*"}
}

// IsAny reports whether l is the wildcard.
func (l List) IsAny() bool {
	return l.any
}

// IsEmpty reports whether l has no entries and is not the wildcard.
func (l List) IsEmpty() bool {
	return !l.any && len(l.entries) == 0
}

// Entries returns l's entries in construction order. The result must not
// be mutated.
func (l List) Entries() []string {
	return l.entries
}

// HeaderValue returns the precomputed header-value string for l, or ""
// if l is empty.
func (l List) HeaderValue() string {
	return l.joined
}

// ContainsFold reports whether name is a member of l under
// case-insensitive comparison ([strings.EqualFold]). It always returns false for an empty or
// wildcard List; callers must special-case IsAny separately.
func (l List) ContainsFold(name string) bool {
	for _, e := range l.entries {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}
