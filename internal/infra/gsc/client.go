package gsc

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	searchconsole "google.golang.org/api/searchconsole/v1"

	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

// Factory builds read-only Search Console clients from uploaded
// service-account keys.
type Factory struct{}

func NewFactory() Factory { return Factory{} }

// Connect parses the service-account payload and exchanges it for a token.
// Both a malformed payload and a provider-side rejection fail here, before
// any report endpoint is touched.
func (Factory) Connect(ctx context.Context, credentialsJSON []byte) (domain.Fetcher, error) {
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, searchconsole.WebmastersReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	ts := cfg.TokenSource(ctx)
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	svc, err := searchconsole.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// Client issues exactly one network call per report category, no retries,
// transport-default timeouts. Errors ride along inside the result.
type Client struct {
	svc *searchconsole.Service
}

// FetchIndexCoverage inspects the site root for indexing status.
func (c *Client) FetchIndexCoverage(ctx context.Context, siteURL string) domain.ReportResult {
	resp, err := c.svc.UrlInspection.Index.Inspect(&searchconsole.InspectUrlIndexRequest{
		InspectionUrl: siteURL,
		SiteUrl:       siteURL,
	}).Context(ctx).Do()
	if err != nil {
		return domain.Failure(err)
	}
	return asResult(resp)
}

// FetchPerformance queries search-analytics rows grouped by page.
func (c *Client) FetchPerformance(ctx context.Context, siteURL string, dates domain.DateRange, rowLimit int) domain.ReportResult {
	resp, err := c.svc.Searchanalytics.Query(siteURL, &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  dates.Start,
		EndDate:    dates.End,
		Dimensions: []string{"page"},
		RowLimit:   int64(rowLimit),
	}).Context(ctx).Do()
	if err != nil {
		return domain.Failure(err)
	}
	return asResult(resp)
}

// FetchMobileUsability runs the mobile-friendly test against the site root.
func (c *Client) FetchMobileUsability(ctx context.Context, siteURL string) domain.ReportResult {
	resp, err := c.svc.UrlTestingTools.MobileFriendlyTest.Run(&searchconsole.RunMobileFriendlyTestRequest{
		Url: siteURL,
	}).Context(ctx).Do()
	if err != nil {
		return domain.Failure(err)
	}
	return asResult(resp)
}

// asResult round-trips the typed API response through JSON into the opaque
// tree the rest of the pipeline works with.
func asResult(v any) domain.ReportResult {
	b, err := json.Marshal(v)
	if err != nil {
		return domain.Failure(fmt.Errorf("encode response: %w", err))
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return domain.Failure(fmt.Errorf("decode response: %w", err))
	}
	return domain.Success(raw)
}
