// Package regexcache provides a process-wide, memoized compiler for the
// regular-expression origin patterns that an [Options] may configure. It
// bounds both the length of a pattern and the wall-clock time allowed to
// compile it, so that a hostile or accidental catastrophic pattern cannot
// stall engine construction.
package regexcache

import (
	"fmt"
	"regexp"
	"sync"
	"time"
)

// MaxPatternLength is the maximum length, in bytes, of a pattern accepted
// by [Compile]. Longer patterns are rejected with [ErrTooLong] before any
// compile attempt is made.
const MaxPatternLength = 50_000

// CompileBudget is the wall-clock budget allotted to compiling a single
// pattern. Patterns that take longer fail with [ErrTimeout].
const CompileBudget = 100 * time.Millisecond

// ErrTooLong indicates a pattern longer than [MaxPatternLength].
type ErrTooLong struct {
	Pattern string
	Length  int
}

func (e *ErrTooLong) Error() string {
	return fmt.Sprintf("regexcache: pattern length %d exceeds maximum %d", e.Length, MaxPatternLength)
}

// ErrTimeout indicates that compiling a pattern exceeded [CompileBudget].
type ErrTimeout struct {
	Pattern string
	Elapsed time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("regexcache: compiling pattern exceeded budget of %s (took at least %s)", CompileBudget, e.Elapsed)
}

// ErrInvalid wraps a regexp syntax error.
type ErrInvalid struct {
	Pattern string
	Detail  error
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("regexcache: invalid pattern: %s", e.Detail)
}

func (e *ErrInvalid) Unwrap() error { return e.Detail }

// cache is the process-wide memoization table, keyed by the exact pattern
// string. sync.Map is reader-preferred: the hot read path (an
// already-compiled pattern) never blocks on a writer.
var cache sync.Map // map[string]*regexp.Regexp

// Compile returns a compiled, full-match, case-insensitive regular
// expression for pattern, reusing a previously compiled form when
// available. Compilation is bounded by [MaxPatternLength] and
// [CompileBudget].
func Compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := cache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	if len(pattern) > MaxPatternLength {
		return nil, &ErrTooLong{Pattern: pattern, Length: len(pattern)}
	}

	type result struct {
		re  *regexp.Regexp
		err error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		re, err := regexp.Compile("(?i:\\A(?:" + pattern + ")\\z)")
		done <- result{re, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, &ErrInvalid{Pattern: pattern, Detail: r.err}
		}
		actual, _ := cache.LoadOrStore(pattern, r.re)
		return actual.(*regexp.Regexp), nil
	case <-time.After(CompileBudget):
		return nil, &ErrTimeout{Pattern: pattern, Elapsed: time.Since(start)}
	}
}

// Len reports the number of distinct patterns currently memoized. It
// exists chiefly for tests.
func Len() int {
	n := 0
	cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
