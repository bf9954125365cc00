package ai

import "context"

// Client is the completion port. Analyze reviews one category's report
// payload, Summarize produces the executive summary over all of them.
type Client interface {
	Analyze(ctx context.Context, category string, payload string) (string, error)
	Summarize(ctx context.Context, resultsPayload string) (string, error)
}
