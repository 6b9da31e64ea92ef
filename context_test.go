package cors

import "testing"

func TestRequestContextZeroValueHasNoOrigin(t *testing.T) {
	var ctx RequestContext
	if ctx.HasOrigin {
		t.Error("zero RequestContext: HasOrigin = true")
	}
	if ctx.HasAccessControlRequestMethod {
		t.Error("zero RequestContext: HasAccessControlRequestMethod = true")
	}
}
