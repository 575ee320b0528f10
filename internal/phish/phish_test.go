package phish

import (
	"strings"
	"testing"
)

func TestSkeletonFoldsConfusables(t *testing.T) {
	// "раураl.com" with Cyrillic а/р/у folds to the Latin brand.
	if got := Skeleton("раураl.com"); got != "paypal.com" {
		t.Fatalf("got %q", got)
	}
	if got := Skeleton("example.com"); got != "example.com" {
		t.Fatalf("plain ASCII must be unchanged, got %q", got)
	}
}

func TestHomoglyphDomains(t *testing.T) {
	content := "Login at https://раураl.com/secure to continue"
	spans := HomoglyphDomains(content)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if !strings.Contains(spans[0].Note, "paypal") {
		t.Fatalf("expected paypal note, got %q", spans[0].Note)
	}
}

func TestHomoglyphIgnoresLegitDomains(t *testing.T) {
	content := "visit example.com and docs.google.com today"
	if spans := HomoglyphDomains(content); len(spans) != 0 {
		t.Fatalf("expected no spans, got %v", spans)
	}
}

func TestMixedScriptLabel(t *testing.T) {
	// Latin "secure" with one Cyrillic е, no brand in the skeleton.
	content := "go to sесurе-site.net now"
	spans := HomoglyphDomains(content)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Note != "mixed-script domain label" {
		t.Fatalf("got note %q", spans[0].Note)
	}
}

func TestSuspiciousForms(t *testing.T) {
	content := `<p>Unusual activity detected. Verify your account below.</p>
<input type="password" name="pw">`
	spans := SuspiciousForms(content)
	if len(spans) == 0 {
		t.Fatal("expected a span for password input near urgency text")
	}
}

func TestSuspiciousFormsRequiresBothSignals(t *testing.T) {
	login := `<input type="password" name="pw"> <button>Sign in</button>`
	if spans := SuspiciousForms(login); len(spans) != 0 {
		t.Fatalf("plain login form should not be flagged, got %v", spans)
	}
	text := "Please verify your account by phone."
	if spans := SuspiciousForms(text); len(spans) != 0 {
		t.Fatalf("urgency text alone should not be flagged, got %v", spans)
	}
}

func TestSuspiciousFormsProximity(t *testing.T) {
	far := `<input type="password">` + strings.Repeat("x", 2000) + `verify your account`
	if spans := SuspiciousForms(far); len(spans) != 0 {
		t.Fatalf("distant signals should not combine, got %v", spans)
	}
}
