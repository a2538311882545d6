package directive

import (
	"strings"
	"testing"
)

func TestSanitizer_PassesMarkupUnchanged(t *testing.T) {
	sanitizer := NewSanitizer()

	input := `<span id="sn-1" class="sidenote" data-sidenote-number="1"><sup class="sidenote-number">1</sup>&nbsp;note</span>`
	got, err := sanitizer.Sanitize(input)
	if err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}
	if got != input {
		t.Fatalf("Sanitize() rewrote the fragment:\n got: %q\nwant: %q", got, input)
	}
}

func TestSanitizer_RejectsScript(t *testing.T) {
	sanitizer := NewSanitizer()

	if _, err := sanitizer.Sanitize(`<SCRIPT>alert(1)</SCRIPT>`); err == nil {
		t.Fatal("expected script rejection")
	}
}

func TestSanitizeInner_KeepsInlineFormatting(t *testing.T) {
	sanitizer := NewSanitizer()

	got := sanitizer.SanitizeInner(`see <em>this</em> and <strong>that</strong>`)
	if !strings.Contains(got, "<em>this</em>") || !strings.Contains(got, "<strong>that</strong>") {
		t.Fatalf("inline formatting stripped: %q", got)
	}
}

func TestSanitizeInner_DropsScriptsAndHandlers(t *testing.T) {
	sanitizer := NewSanitizer()

	got := sanitizer.SanitizeInner(`safe <script>alert(1)</script><img src=x onerror=alert(1)> text`)
	if strings.Contains(got, "<script") || strings.Contains(got, "onerror") || strings.Contains(got, "<img") {
		t.Fatalf("dangerous markup survived: %q", got)
	}
	if !strings.Contains(got, "safe") || !strings.Contains(got, "text") {
		t.Fatalf("plain text lost: %q", got)
	}
}

func TestSanitizeInner_KeepsLinks(t *testing.T) {
	sanitizer := NewSanitizer()

	got := sanitizer.SanitizeInner(`<a href="https://example.com">ref</a>`)
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Fatalf("link href stripped: %q", got)
	}
}
