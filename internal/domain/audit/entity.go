package audit

import (
	"time"
)

// ID tipe untuk Audit
type AuditID string

// Status enum
type Status string

const (
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// ArtifactFilename is the fixed name of the generated document export. The
// file is overwritten on each generation, never versioned.
const ArtifactFilename = "SEO_Audit_Report.pdf"

// Section pairs one category's raw report with its AI narrative.
type Section struct {
	Category Category     `json:"category"`
	Report   ReportResult `json:"report"`
	Analysis string       `json:"analysis"`
}

// Aggregate Root: Audit
type Audit struct {
	ID          AuditID   `json:"id"`
	TenantID    string    `json:"tenant_id"`
	SiteURL     string    `json:"site_url"`
	TriggeredAt time.Time `json:"triggered_at"`
	Status      Status    `json:"status"`
	Sections    []Section `json:"sections,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	ArtifactURL string    `json:"artifact_url,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
}

// SectionFor returns the section for a category, regardless of storage order.
func (a *Audit) SectionFor(c Category) (Section, bool) {
	for _, s := range a.Sections {
		if s.Category == c {
			return s, true
		}
	}
	return Section{}, false
}
