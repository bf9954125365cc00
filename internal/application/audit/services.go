package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bryanwahyu/automaton-seo/internal/application"
	domainai "github.com/bryanwahyu/automaton-seo/internal/domain/ai"
	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

// Exporter port — rendering of audit artifacts.
type Exporter interface {
	RenderDocument(w io.Writer, a *domain.Audit) error
	RenderTable(w io.Writer, s domain.Section) error
}

// Service implements use-cases untuk Audit.
//
// The report pipeline is strictly sequential: per category one fetch then one
// analysis, then the executive summary, then the export. There is exactly one
// traversal path; the only short-circuit is a credential failure.
type Service struct {
	Fetchers  domain.FetcherFactory
	AI        domainai.Client
	Exporter  Exporter
	Repo      domain.Repository    // optional, nil disables history
	Artifacts domain.ArtifactStore // optional, nil keeps the artifact local
	Clock     application.Clock

	SiteURL  string
	Dates    domain.DateRange
	RowLimit int
	WorkDir  string
}

//
// ==== USE CASES ====
//

// Command untuk menjalankan audit
type RunAuditCommand struct {
	TenantID        string
	CredentialsJSON []byte
	SiteURL         string // optional override of the configured property
}

// RunAudit: authenticate → fetch per category → analyze per category →
// summarize → export/persist. Fetch and analysis failures degrade into the
// audit (error payloads and placeholder narratives); only authentication and
// persistence failures abort.
func (s *Service) RunAudit(ctx context.Context, cmd RunAuditCommand) (*domain.Audit, error) {
	now := s.Clock.Now()
	site := cmd.SiteURL
	if site == "" {
		site = s.SiteURL
	}

	fetcher, err := s.Fetchers.Connect(ctx, cmd.CredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthenticationFailed, err)
	}

	a := &domain.Audit{
		ID:          domain.AuditID(fmt.Sprintf("%s-audit", uuid.New().String())),
		TenantID:    cmd.TenantID,
		SiteURL:     site,
		TriggeredAt: now,
		Status:      domain.StatusRunning,
	}
	// initial row so the run is visible while it executes
	if s.Repo != nil {
		if err := s.Repo.Save(ctx, a); err != nil {
			return nil, err
		}
	}

	degraded := false
	a.Sections = make([]domain.Section, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		res := s.fetch(ctx, fetcher, cat, site)
		// the analyzer always runs, error payloads included verbatim
		analysis, err := s.AI.Analyze(ctx, cat.Title(), res.Payload())
		if err != nil {
			analysis = "analysis unavailable: " + err.Error()
			degraded = true
		}
		a.Sections = append(a.Sections, domain.Section{
			Category: cat,
			Report:   res,
			Analysis: analysis,
		})
	}

	// every category has an analysis (placeholders count) before this point
	summary, err := s.AI.Summarize(ctx, resultsPayload(a.Sections))
	if err != nil {
		summary = "summary unavailable: " + err.Error()
		degraded = true
	}
	a.Summary = summary

	a.Status = domain.StatusSuccess
	if degraded {
		a.Status = domain.StatusFailed
	}
	a.DurationMS = s.Clock.Now().Sub(now).Milliseconds()

	// artifact retention; a failed export never undoes the audit itself
	if s.Exporter != nil {
		url, err := s.exportArtifact(ctx, a)
		if err != nil {
			log.Printf("artifact export failed for audit=%s: %v", a.ID, err)
		} else {
			a.ArtifactURL = url
		}
	}

	if s.Repo != nil {
		if err := s.Repo.Save(ctx, a); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Get ambil 1 audit by id
func (s *Service) Get(ctx context.Context, tenant string, id domain.AuditID) (*domain.Audit, error) {
	if s.Repo == nil {
		return nil, domain.ErrNotFound
	}
	return s.Repo.Get(ctx, tenant, id)
}

// Latest ambil N audit terakhir
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Audit, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.Latest(ctx, tenant, limit)
}

// RenderDocument regenerates the document export for download. Given the
// same audit it produces byte-identical output (the generation date is the
// audit's trigger time).
func (s *Service) RenderDocument(w io.Writer, a *domain.Audit) error {
	return s.Exporter.RenderDocument(w, a)
}

// RenderTable writes the single-category tabular export. A section missing
// from the audit is rendered as its error payload, not rejected.
func (s *Service) RenderTable(w io.Writer, a *domain.Audit, cat domain.Category) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown report category: %s", cat)
	}
	sec, ok := a.SectionFor(cat)
	if !ok {
		sec = domain.Section{
			Category: cat,
			Report:   domain.ReportResult{Err: "report section missing"},
			Analysis: "no analysis available",
		}
	}
	return s.Exporter.RenderTable(w, sec)
}

// fetch dispatches the one fixed request for a category. Errors never
// propagate past here; they ride along inside the result.
func (s *Service) fetch(ctx context.Context, f domain.Fetcher, cat domain.Category, site string) domain.ReportResult {
	switch cat {
	case domain.CategoryIndexCoverage:
		return f.FetchIndexCoverage(ctx, site)
	case domain.CategoryPerformance:
		return f.FetchPerformance(ctx, site, s.Dates, s.RowLimit)
	case domain.CategoryMobileUsability:
		return f.FetchMobileUsability(ctx, site)
	}
	return domain.Failure(fmt.Errorf("unknown report category: %s", cat))
}

// resultsPayload renders the full results mapping for the summary prompt,
// keyed by category with the raw payload and narrative per entry.
func resultsPayload(sections []domain.Section) string {
	m := make(map[string]map[string]string, len(sections))
	for _, s := range sections {
		m[string(s.Category)] = map[string]string{
			"raw":         s.Report.Payload(),
			"ai_solution": s.Analysis,
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// exportArtifact writes the fixed-name document into the work dir and, when
// an artifact store is configured, moves it there.
func (s *Service) exportArtifact(ctx context.Context, a *domain.Audit) (string, error) {
	dir := s.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	local := filepath.Join(dir, domain.ArtifactFilename)
	f, err := os.Create(local)
	if err != nil {
		return "", err
	}
	if err := s.Exporter.RenderDocument(f, a); err != nil {
		f.Close()
		os.Remove(local)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	if s.Artifacts == nil {
		return local, nil
	}
	key := fmt.Sprintf("%s/%s/%s", a.TenantID, a.ID, domain.ArtifactFilename)
	url, err := s.Artifacts.UploadAndCleanup(ctx, local, key)
	if err != nil {
		os.Remove(local)
		return "", err
	}
	return url, nil
}
