package cors

import (
	"errors"
	"testing"

	"github.com/corspolicy/cors/corserr"
)

func hasErrorOfType(err error, target any) bool {
	for e := range corserr.All(err) {
		if errors.As(e, target) {
			return true
		}
	}
	return false
}

func TestValidateCredentialsRequireSpecificOrigin(t *testing.T) {
	_, err := New(Options{Origin: AnyOrigin(), Credentials: true})
	var want *corserr.CredentialsRequireSpecificOriginError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected CredentialsRequireSpecificOriginError, got %v", err)
	}
}

func TestValidateAllowedHeadersWildcardWithCredentials(t *testing.T) {
	_, err := New(Options{
		Origin:         ExactOrigin("https://example.com"),
		Credentials:    true,
		AllowedHeaders: AnyHeaders(),
	})
	var want *corserr.AllowedHeadersWildcardWithCredentialsError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected AllowedHeadersWildcardWithCredentialsError, got %v", err)
	}
}

func TestValidateExposedHeadersWildcardWithCredentials(t *testing.T) {
	_, err := New(Options{
		Origin:         ExactOrigin("https://example.com"),
		Credentials:    true,
		ExposedHeaders: AnyExposedHeaders(),
	})
	var want *corserr.ExposedHeadersWildcardWithCredentialsError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected ExposedHeadersWildcardWithCredentialsError, got %v", err)
	}
}

func TestValidateTimingAllowOriginWildcardWithCredentials(t *testing.T) {
	_, err := New(Options{
		Origin:            ExactOrigin("https://example.com"),
		Credentials:       true,
		TimingAllowOrigin: AnyTimingAllowOrigin(),
	})
	var want *corserr.TimingAllowOriginWildcardWithCredentialsError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected TimingAllowOriginWildcardWithCredentialsError, got %v", err)
	}
}

func TestValidateAllowedHeadersWildcardInList(t *testing.T) {
	_, err := New(Options{
		Origin:         AnyOrigin(),
		AllowedHeaders: ListHeaders("Content-Type", "*"),
	})
	var want *corserr.AllowedHeadersWildcardInListError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected AllowedHeadersWildcardInListError, got %v", err)
	}
}

func TestValidateExposedHeadersWildcardNotSoleEntry(t *testing.T) {
	_, err := New(Options{
		Origin:         AnyOrigin(),
		ExposedHeaders: ListExposedHeaders("X-Custom", "*"),
	})
	var want *corserr.ExposedHeadersWildcardNotSoleEntryError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected ExposedHeadersWildcardNotSoleEntryError, got %v", err)
	}
}

func TestValidateAllowedMethodsWildcardInList(t *testing.T) {
	_, err := New(Options{
		Origin:  AnyOrigin(),
		Methods: ListMethods("GET", "*"),
	})
	var want *corserr.AllowedMethodsWildcardInListError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected AllowedMethodsWildcardInListError, got %v", err)
	}
}

func TestValidateInvalidToken(t *testing.T) {
	_, err := New(Options{
		Origin:  AnyOrigin(),
		Methods: ListMethods("GET, POST"),
	})
	var want *corserr.InvalidTokenError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
}

func TestValidatePrivateNetworkRequiresCredentials(t *testing.T) {
	_, err := New(Options{
		Origin:              ExactOrigin("https://example.com"),
		AllowPrivateNetwork: true,
	})
	var want *corserr.PrivateNetworkRequiresCredentialsError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected PrivateNetworkRequiresCredentialsError, got %v", err)
	}
}

func TestValidatePrivateNetworkRequiresSpecificOrigin(t *testing.T) {
	_, err := New(Options{
		Origin:              AnyOrigin(),
		Credentials:         true,
		AllowPrivateNetwork: true,
	})
	var want *corserr.PrivateNetworkRequiresSpecificOriginError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected PrivateNetworkRequiresSpecificOriginError, got %v", err)
	}
}

func TestValidatePatternTooLong(t *testing.T) {
	huge := make([]byte, 60_000)
	for i := range huge {
		huge[i] = 'a'
	}
	_, err := New(Options{
		Origin: ListOrigin(PatternEntry(string(huge))),
	})
	var want *corserr.PatternTooLongError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected PatternTooLongError, got %v", err)
	}
	if want.Pattern != string(huge) {
		t.Error("expected PatternTooLongError to carry the offending pattern")
	}
}

func TestValidatePatternInvalid(t *testing.T) {
	_, err := New(Options{
		Origin: ListOrigin(PatternEntry("(unclosed")),
	})
	var want *corserr.PatternInvalidError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected PatternInvalidError, got %v", err)
	}
	if want.Pattern != "(unclosed" {
		t.Errorf("Pattern = %q, want %q", want.Pattern, "(unclosed")
	}
}

func TestValidatePatternIdentifiesOffendingEntryInList(t *testing.T) {
	_, err := New(Options{
		Origin: ListOrigin(
			PatternEntry(`https://[a-z]+\.example\.com`),
			PatternEntry("(unclosed"),
		),
	})
	var want *corserr.PatternInvalidError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected PatternInvalidError, got %v", err)
	}
	if want.Pattern != "(unclosed" {
		t.Errorf("Pattern = %q, want the second entry identified, not the first", want.Pattern)
	}
}

func TestValidateInvalidMaxAge(t *testing.T) {
	negative := -1
	_, err := New(Options{
		Origin: AnyOrigin(),
		MaxAge: &negative,
	})
	var want *corserr.InvalidMaxAgeError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected InvalidMaxAgeError, got %v", err)
	}
}

func TestValidateMissingOrigin(t *testing.T) {
	_, err := New(Options{})
	var want *corserr.MissingOriginError
	if !hasErrorOfType(err, &want) {
		t.Fatalf("expected MissingOriginError, got %v", err)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	_, err := New(Options{
		Origin:      AnyOrigin(),
		Credentials: true,
		Methods:     ListMethods("*"),
	})
	var originErr *corserr.CredentialsRequireSpecificOriginError
	var methodErr *corserr.AllowedMethodsWildcardInListError
	if !hasErrorOfType(err, &originErr) || !hasErrorOfType(err, &methodErr) {
		t.Fatalf("expected both violations reported together, got %v", err)
	}
}

func TestValidateValidConfigurationSucceeds(t *testing.T) {
	_, err := New(Options{
		Origin:  ExactOrigin("https://example.com"),
		Methods: ListMethods("GET", "POST"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
