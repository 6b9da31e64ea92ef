package compose

import (
	"testing"

	"github.com/corspolicy/cors/internal/allowlist"
	"github.com/corspolicy/cors/internal/origin"
)

func findHeader(hdrs []Header, name string) (string, bool) {
	for _, h := range hdrs {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

func TestSimpleAcceptedAnyOrigin(t *testing.T) {
	in := Input{
		OriginDecision: origin.Any,
		RequestOrigin:  "https://example.com",
	}
	hdrs, ok, accepted := Simple(in)
	if !ok || !accepted {
		t.Fatalf("ok=%v accepted=%v", ok, accepted)
	}
	if v, _ := findHeader(hdrs, hdrACAO); v != "*" {
		t.Errorf("ACAO = %q, want *", v)
	}
	if v, found := findHeader(hdrs, hdrVary); !found || v != "Origin" {
		t.Errorf("Vary = %q, found=%v", v, found)
	}
}

func TestSimpleNotApplicable(t *testing.T) {
	in := Input{OriginDecision: origin.Skip}
	_, ok, _ := Simple(in)
	if ok {
		t.Error("expected ok=false (NotApplicable)")
	}
}

func TestSimpleRejected(t *testing.T) {
	in := Input{OriginDecision: origin.Disallow, VaryOnDisallow: true}
	hdrs, ok, accepted := Simple(in)
	if !ok || accepted {
		t.Fatalf("ok=%v accepted=%v", ok, accepted)
	}
	if _, found := findHeader(hdrs, hdrACAO); found {
		t.Error("unexpected ACAO on rejection")
	}
	if v, found := findHeader(hdrs, hdrVary); !found || v != "Origin" {
		t.Errorf("Vary = %q, found=%v", v, found)
	}
}

func TestPreflightAccepted(t *testing.T) {
	in := Input{
		OriginDecision:   origin.ExactDecision,
		OriginValue:      "https://app.example.com",
		Credentials:      true,
		Methods:          allowlist.New([]string{"GET", "POST"}, ","),
		RequestedMethod:  "POST",
		AllowedHeaders:   allowlist.New([]string{"Content-Type", "Authorization"}, ","),
		RequestedHeaders: "content-type, authorization",
		MaxAge:           intPtr(3600),
		HasMaxAge:        true,
	}
	hdrs, ok, accepted, reason := Preflight(in)
	if !ok || !accepted || reason != NoRejection {
		t.Fatalf("ok=%v accepted=%v reason=%v", ok, accepted, reason)
	}
	checks := map[string]string{
		hdrACAO: "https://app.example.com",
		hdrACAC: "true",
		hdrACAM: "GET,POST",
		hdrACAH: "Content-Type,Authorization",
		hdrACMA: "3600",
		hdrVary: "Origin",
	}
	for name, want := range checks {
		if got, found := findHeader(hdrs, name); !found || got != want {
			t.Errorf("%s = %q (found=%v), want %q", name, got, found, want)
		}
	}
}

func TestPreflightRejectedHeadersNotAllowed(t *testing.T) {
	in := Input{
		OriginDecision:   origin.ExactDecision,
		OriginValue:      "https://app.example.com",
		Credentials:      true,
		Methods:          allowlist.New([]string{"GET", "POST"}, ","),
		RequestedMethod:  "POST",
		AllowedHeaders:   allowlist.New([]string{"Content-Type", "Authorization"}, ","),
		RequestedHeaders: "content-type, x-evil",
	}
	hdrs, ok, accepted, reason := Preflight(in)
	if !ok || accepted || reason != HeadersNotAllowed {
		t.Fatalf("ok=%v accepted=%v reason=%v", ok, accepted, reason)
	}
	if _, found := findHeader(hdrs, hdrACAH); found {
		t.Error("unexpected ACAH on rejection")
	}
}

func TestPreflightRejectedMethodNotAllowed(t *testing.T) {
	in := Input{
		OriginDecision:  origin.ExactDecision,
		OriginValue:     "https://app.example.com",
		Methods:         allowlist.New([]string{"GET"}, ","),
		RequestedMethod: "DELETE",
	}
	_, ok, accepted, reason := Preflight(in)
	if !ok || accepted || reason != MethodNotAllowed {
		t.Fatalf("ok=%v accepted=%v reason=%v", ok, accepted, reason)
	}
}

func TestPreflightRejectedOriginNotAllowed(t *testing.T) {
	in := Input{OriginDecision: origin.Disallow, VaryOnDisallow: true}
	hdrs, ok, accepted, reason := Preflight(in)
	if !ok || accepted || reason != OriginNotAllowed {
		t.Fatalf("ok=%v accepted=%v reason=%v", ok, accepted, reason)
	}
	if _, found := findHeader(hdrs, hdrACAO); found {
		t.Error("unexpected ACAO")
	}
}

func TestPreflightPrivateNetwork(t *testing.T) {
	in := Input{
		OriginDecision:          origin.ExactDecision,
		OriginValue:             "https://app.example.com",
		Credentials:             true,
		Methods:                 allowlist.New([]string{"POST"}, ","),
		RequestedMethod:         "POST",
		AllowPrivateNetwork:     true,
		PrivateNetworkRequested: true,
	}
	hdrs, ok, accepted, _ := Preflight(in)
	if !ok || !accepted {
		t.Fatal("expected accepted preflight")
	}
	if v, found := findHeader(hdrs, hdrACAPN); !found || v != "true" {
		t.Errorf("ACAPN = %q, found=%v", v, found)
	}
}

func TestPreflightAnyMethodsWithCredentialsVariesOnACRM(t *testing.T) {
	in := Input{
		OriginDecision:  origin.ExactDecision,
		OriginValue:     "https://app.example.com",
		Credentials:     true,
		Methods:         allowlist.NewAny(),
		RequestedMethod: "PATCH",
	}
	hdrs, ok, accepted, reason := Preflight(in)
	if !ok || !accepted || reason != NoRejection {
		t.Fatalf("ok=%v accepted=%v reason=%v", ok, accepted, reason)
	}
	if got, _ := findHeader(hdrs, hdrACAM); got != "PATCH" {
		t.Errorf("ACAM = %q, want PATCH", got)
	}
	if got, found := findHeader(hdrs, hdrVary); !found || got != "Origin, Access-Control-Request-Method" {
		t.Errorf("Vary = %q, found=%v, want %q", got, found, "Origin, Access-Control-Request-Method")
	}
}

func intPtr(n int) *int { return &n }
