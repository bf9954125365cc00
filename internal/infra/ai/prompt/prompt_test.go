package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAnalyzeEmbedsCategoryAndPayload(t *testing.T) {
	t.Parallel()

	payload := `{"error":"googleapi: Error 429: quota exceeded"}`
	p := Analyze("Index Coverage", payload)

	if !strings.Contains(p, "Index Coverage") {
		t.Fatalf("prompt missing category:\n%s", p)
	}
	if !strings.Contains(p, payload) {
		t.Fatalf("prompt must embed the payload verbatim, error shapes included:\n%s", p)
	}
	if p != Analyze("Index Coverage", payload) {
		t.Fatalf("prompt construction must be deterministic")
	}
}

func TestSummaryAsksForThreeParts(t *testing.T) {
	t.Parallel()

	p := Summary(`{"index_coverage":{"raw":"{}","ai_solution":"ok"}}`)
	for _, part := range []string{"Overall SEO Health", "Key Priority Issues", "Recommended Roadmap"} {
		if !strings.Contains(p, part) {
			t.Fatalf("summary prompt missing %q:\n%s", part, p)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	short := strings.Repeat("a", 100)
	if got := Truncate(short); got != short {
		t.Fatalf("short payload must pass through unchanged")
	}

	long := strings.Repeat("b", maxPayloadBytes+500)
	got := Truncate(long)
	if len(got) >= len(long) {
		t.Fatalf("long payload not truncated")
	}
	if !strings.Contains(got, "...[truncated 500 bytes]") {
		t.Fatalf("missing truncation marker: %s", got[len(got)-60:])
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	// place a multi-byte rune across the cut boundary
	long := strings.Repeat("x", maxPayloadBytes-1) + strings.Repeat("\u00e9", 300)
	got := Truncate(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated payload is not valid UTF-8")
	}
	if len(got) > maxPayloadBytes+len(" ...[truncated 601 bytes]") {
		t.Fatalf("truncated payload too long: %d bytes", len(got))
	}
}
