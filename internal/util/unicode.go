package util

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// foldBufferPoolLimit mirrors NORMALIZATION_BUFFER_POOL_LIMIT. The pool
// below is a plain sync.Pool and does not enforce this count.
const foldBufferPoolLimit = 16

var foldCaser = cases.Lower(language.Und)

var foldBufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 128)
		return &b
	},
}

// acquireFoldBuffer returns a scratch buffer from the pool, growing it to
// at least minCap bytes of capacity.
func acquireFoldBuffer(minCap int) *[]byte {
	buf := foldBufferPool.Get().(*[]byte)
	if cap(*buf) < minCap {
		*buf = make([]byte, 0, minCap)
	}
	*buf = (*buf)[:0]
	return buf
}

func releaseFoldBuffer(buf *[]byte) {
	if cap(*buf) == 0 {
		return
	}
	foldBufferPool.Put(buf)
}

// EqualFold reports whether a and b are equal after Unicode lowercase
// mapping (the Unicode Default Case Conversion toLowercase, full mapping).
// It takes the ASCII fast path whenever both inputs are ASCII.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	if IsASCII(a) && IsASCII(b) {
		return EqualASCII(a, b)
	}
	return Lowercase(a) == Lowercase(b)
}

// Lowercase returns a lowercased version of s: the ASCII fast path for
// all-ASCII input, falling back to full Unicode lowercase mapping otherwise.
// The Unicode path reuses a pooled scratch buffer to avoid a fresh
// allocation on every call.
func Lowercase(s string) string {
	if IsASCII(s) {
		return ByteLowercase(s)
	}
	buf := acquireFoldBuffer(len(s) + len(s)/4)
	defer releaseFoldBuffer(buf)
	out, _, _ := transform.Append(foldCaser, *buf, []byte(s))
	*buf = out
	return string(out)
}
