package export

import (
	"bytes"
	"testing"
	"time"

	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

func sampleAudit() *domain.Audit {
	// sections stored out of canonical order on purpose
	return &domain.Audit{
		ID:          "00000000-0000-0000-0000-000000000000-audit",
		TenantID:    "acme",
		SiteURL:     "https://www.example.com/",
		TriggeredAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		Status:      domain.StatusSuccess,
		Summary:     "1. Health: fine. 2. Issues: none. 3. Roadmap: keep going.",
		Sections: []domain.Section{
			{
				Category: domain.CategoryMobileUsability,
				Report:   domain.Success(map[string]any{"status": "MOBILE_FRIENDLY"}),
				Analysis: "Mobile looks fine.",
			},
			{
				Category: domain.CategoryPerformance,
				Report:   domain.Failure(errTimeout{}),
				Analysis: "Could not fetch performance data.",
			},
			{
				Category: domain.CategoryIndexCoverage,
				Report:   domain.Success(map[string]any{"verdict": "PASS"}),
				Analysis: "Coverage is healthy.",
			},
		},
	}
}

type errTimeout struct{}

func (errTimeout) Error() string { return "timeout awaiting response" }

func TestRenderDocumentIdempotent(t *testing.T) {
	t.Parallel()

	a := sampleAudit()
	var first, second bytes.Buffer
	if err := (Exporter{}).RenderDocument(&first, a); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if err := (Exporter{}).RenderDocument(&second, a); err != nil {
		t.Fatalf("second render: %v", err)
	}

	if first.Len() == 0 {
		t.Fatalf("empty document")
	}
	if !bytes.HasPrefix(first.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("identical audits rendered different bytes (%d vs %d)", first.Len(), second.Len())
	}
}

func TestOrderedSectionsCanonicalOrder(t *testing.T) {
	t.Parallel()

	got := orderedSections(sampleAudit())
	want := []domain.Category{
		domain.CategoryIndexCoverage,
		domain.CategoryPerformance,
		domain.CategoryMobileUsability,
	}
	if len(got) != len(want) {
		t.Fatalf("sections = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Category != want[i] {
			t.Fatalf("section %d = %s, want %s", i, got[i].Category, want[i])
		}
	}
	// the failed fetch renders as its error payload, not an omission
	if got[1].Report.Payload() != `{"error":"timeout awaiting response"}` {
		t.Fatalf("performance payload = %s", got[1].Report.Payload())
	}
}

func TestOrderedSectionsFillsMissing(t *testing.T) {
	t.Parallel()

	a := sampleAudit()
	a.Sections = a.Sections[:1] // mobile usability only

	got := orderedSections(a)
	if len(got) != 3 {
		t.Fatalf("sections = %d, want 3", len(got))
	}
	if !got[0].Report.Failed() || got[0].Analysis != "no analysis available" {
		t.Fatalf("missing section not rendered as placeholder: %+v", got[0])
	}
	if got[2].Analysis != "Mobile looks fine." {
		t.Fatalf("stored section lost: %+v", got[2])
	}
}
