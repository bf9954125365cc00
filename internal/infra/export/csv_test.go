package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

func TestRenderTableOneRowTwoColumns(t *testing.T) {
	t.Parallel()

	sec := domain.Section{
		Category: domain.CategoryIndexCoverage,
		Report:   domain.Success(map[string]any{"verdict": "FAIL", "coverageState": "Excluded"}),
		Analysis: "Fix the robots.txt,\nthen resubmit the sitemap.",
	}

	var buf bytes.Buffer
	if err := (Exporter{}).RenderTable(&buf, sec); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + exactly one row, got %d records", len(records))
	}
	if records[0][0] != "error_data" || records[0][1] != "ai_solution" {
		t.Fatalf("header = %v", records[0])
	}
	if len(records[1]) != 2 {
		t.Fatalf("expected exactly two columns, got %d", len(records[1]))
	}
	if records[1][0] != sec.Report.Payload() {
		t.Fatalf("error_data = %q, want stringified raw data", records[1][0])
	}
	if records[1][1] != sec.Analysis {
		t.Fatalf("ai_solution = %q, want the analysis text unmodified", records[1][1])
	}
}

func TestRenderTableErrorSection(t *testing.T) {
	t.Parallel()

	sec := domain.Section{
		Category: domain.CategoryMobileUsability,
		Report:   domain.ReportResult{Err: "connection reset by peer"},
		Analysis: "analysis unavailable: model overloaded",
	}

	var buf bytes.Buffer
	if err := (Exporter{}).RenderTable(&buf, sec); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if records[1][0] != `{"error":"connection reset by peer"}` {
		t.Fatalf("error payload not rendered: %q", records[1][0])
	}
}
