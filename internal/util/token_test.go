package util

import "testing"

func TestIsToken(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Content-Type", true},
		{"X-Foo_Bar.Baz", true},
		{"", false},
		{"foo bar", false},
		{"foo/bar", false},
		{"*", true}, // '*' is a valid token character; callers reject it separately
	}
	for _, c := range cases {
		if got := IsToken(c.in); got != c.want {
			t.Errorf("IsToken(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
