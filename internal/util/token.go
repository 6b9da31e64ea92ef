package util

import "golang.org/x/net/http/httpguts"

// IsToken reports whether s is a valid HTTP token, per RFC 7230 §3.2.6.
// The empty string is not a valid token.
func IsToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !httpguts.IsTokenRune(rune(s[i])) {
			return false
		}
	}
	return true
}
