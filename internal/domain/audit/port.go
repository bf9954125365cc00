package audit

import "context"

// Fetcher port: one operation, one network call per report category.
// Failures are folded into the ReportResult instead of returned, so the
// pipeline continues degraded rather than aborting.
type Fetcher interface {
	FetchIndexCoverage(ctx context.Context, siteURL string) ReportResult
	FetchPerformance(ctx context.Context, siteURL string, dates DateRange, rowLimit int) ReportResult
	FetchMobileUsability(ctx context.Context, siteURL string) ReportResult
}

// FetcherFactory builds an authenticated Fetcher from a service-account
// credential payload. Implementations must reject bad credentials here,
// before any report endpoint is called.
type FetcherFactory interface {
	Connect(ctx context.Context, credentialsJSON []byte) (Fetcher, error)
}

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Audit) error
	Get(ctx context.Context, tenant string, id AuditID) (*Audit, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Audit, error)
}

// ArtifactStore port (interface untuk penyimpanan artefak)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}
