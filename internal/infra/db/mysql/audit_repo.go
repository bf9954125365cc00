package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Save insert/update audit record
func (r *AuditRepository) Save(ctx context.Context, a *domain.Audit) error {
	const q = `
INSERT INTO seo_audits
  (id, tenant_id, site_url, triggered_at, status, sections_json, summary, artifact_url, duration_ms)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  status=VALUES(status), sections_json=VALUES(sections_json), summary=VALUES(summary),
  artifact_url=VALUES(artifact_url), duration_ms=VALUES(duration_ms);
`
	sections, err := json.Marshal(a.Sections)
	if err != nil {
		return err
	}
	// sections_json column requires valid JSON; use empty array while running
	if a.Sections == nil {
		sections = []byte("[]")
	}
	triggered := a.TriggeredAt
	if triggered.IsZero() {
		triggered = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		string(a.ID), stringOrDash(a.TenantID), a.SiteURL, triggered,
		string(a.Status), sections, a.Summary, a.ArtifactURL, a.DurationMS,
	)
	return err
}

// Get by ID + tenant
func (r *AuditRepository) Get(ctx context.Context, tenant string, id domain.AuditID) (*domain.Audit, error) {
	const q = `
SELECT id, tenant_id, site_url, triggered_at, status, sections_json, summary, artifact_url, duration_ms
FROM seo_audits
WHERE tenant_id=? AND id=?
LIMIT 1;
`
	a, err := scanAudit(r.db.QueryRowContext(ctx, q, tenant, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// Latest audits per tenant, newest first
func (r *AuditRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Audit, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, site_url, triggered_at, status, sections_json, summary, artifact_url, duration_ms
FROM seo_audits
WHERE tenant_id=?
ORDER BY triggered_at DESC, id DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (*domain.Audit, error) {
	var a domain.Audit
	var sections []byte
	if err := row.Scan(
		&a.ID, &a.TenantID, &a.SiteURL, &a.TriggeredAt, &a.Status,
		&sections, &a.Summary, &a.ArtifactURL, &a.DurationMS,
	); err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &a.Sections); err != nil {
			return nil, err
		}
	}
	return &a, nil
}
