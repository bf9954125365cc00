package audit

import (
	"errors"
	"strings"
	"testing"
)

func TestReportResultPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  ReportResult
		want string
	}{
		{
			name: "success renders the raw tree",
			res:  Success(map[string]any{"verdict": "PASS", "coverageState": "Indexed"}),
			want: `{"coverageState":"Indexed","verdict":"PASS"}`,
		},
		{
			name: "failure renders the error shape",
			res:  Failure(errors.New("googleapi: Error 403: forbidden")),
			want: `{"error":"googleapi: Error 403: forbidden"}`,
		},
		{
			name: "empty result renders an empty object",
			res:  ReportResult{},
			want: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.res.Payload(); got != tt.want {
				t.Fatalf("Payload() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReportResultPayloadDeterministic(t *testing.T) {
	t.Parallel()

	res := Success(map[string]any{"b": 2.0, "a": 1.0, "c": map[string]any{"z": true, "y": false}})
	first := res.Payload()
	for i := 0; i < 10; i++ {
		if got := res.Payload(); got != first {
			t.Fatalf("payload not deterministic: %s vs %s", got, first)
		}
	}
}

func TestCategoryOrderAndTitles(t *testing.T) {
	t.Parallel()

	want := []Category{CategoryIndexCoverage, CategoryPerformance, CategoryMobileUsability}
	if len(Categories) != len(want) {
		t.Fatalf("Categories = %v", Categories)
	}
	for i := range want {
		if Categories[i] != want[i] {
			t.Fatalf("canonical order = %v, want %v", Categories, want)
		}
		if !Categories[i].Valid() {
			t.Fatalf("%s should be valid", Categories[i])
		}
		if Categories[i].Title() == string(Categories[i]) {
			t.Fatalf("%s has no human title", Categories[i])
		}
	}
	if Category("backlinks").Valid() {
		t.Fatalf("unknown category reported valid")
	}
}

func TestAuditSectionFor(t *testing.T) {
	t.Parallel()

	a := &Audit{Sections: []Section{
		{Category: CategoryMobileUsability, Analysis: "m"},
		{Category: CategoryIndexCoverage, Analysis: "c"},
	}}

	if s, ok := a.SectionFor(CategoryIndexCoverage); !ok || s.Analysis != "c" {
		t.Fatalf("SectionFor(index_coverage) = %+v, %v", s, ok)
	}
	if _, ok := a.SectionFor(CategoryPerformance); ok {
		t.Fatalf("missing section reported present")
	}
	if !strings.HasSuffix(ArtifactFilename, ".pdf") {
		t.Fatalf("artifact filename = %s", ArtifactFilename)
	}
}
