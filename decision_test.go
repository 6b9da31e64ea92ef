package cors

import "testing"

func TestDecisionAccepted(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{NotApplicable, false},
		{PreflightAccepted, true},
		{PreflightRejected, false},
		{SimpleAccepted, true},
		{SimpleRejected, false},
	}
	for _, c := range cases {
		d := Decision{Kind: c.kind}
		if got := d.Accepted(); got != c.want {
			t.Errorf("Decision{Kind: %v}.Accepted() = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestHeadersGet(t *testing.T) {
	h := Headers{{Name: "vary", Value: "Origin"}}
	if v, ok := h.Get("vary"); !ok || v != "Origin" {
		t.Errorf("Get(vary) = %q, %v", v, ok)
	}
	if _, ok := h.Get("missing"); ok {
		t.Error("expected not found")
	}
}

func TestKindString(t *testing.T) {
	if NotApplicable.String() != "NotApplicable" {
		t.Errorf("String() = %q", NotApplicable.String())
	}
}

func TestRejectionReasonString(t *testing.T) {
	if MethodNotAllowed.String() != "MethodNotAllowed" {
		t.Errorf("String() = %q", MethodNotAllowed.String())
	}
}
