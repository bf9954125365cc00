package audit

import (
	"encoding/json"
)

// Category enum
type Category string

const (
	CategoryIndexCoverage   Category = "index_coverage"
	CategoryPerformance     Category = "performance"
	CategoryMobileUsability Category = "mobile_usability"
)

// Categories is the canonical report order. Exports and the pipeline always
// walk it in this order, whatever order results were keyed in.
var Categories = []Category{
	CategoryIndexCoverage,
	CategoryPerformance,
	CategoryMobileUsability,
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title is the human-facing section heading.
func (c Category) Title() string {
	switch c {
	case CategoryIndexCoverage:
		return "Index Coverage"
	case CategoryPerformance:
		return "Core Web Vitals"
	case CategoryMobileUsability:
		return "Mobile Usability"
	}
	return string(c)
}

// DateRange for the search-analytics query, inclusive, YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportRequest describes one fetch. Three fixed instances exist per audit.
type ReportRequest struct {
	Category Category  `json:"category"`
	SiteURL  string    `json:"site_url"`
	Dates    DateRange `json:"dates"`
	RowLimit int       `json:"row_limit"`
}

// ReportResult is a tagged union: Raw holds the provider response tree on
// success, Err holds the failure message otherwise. Downstream consumers
// never assume a schema; they read the result through Payload().
type ReportResult struct {
	Raw map[string]any `json:"raw,omitempty"`
	Err string         `json:"error,omitempty"`
}

func Success(raw map[string]any) ReportResult { return ReportResult{Raw: raw} }

func Failure(err error) ReportResult { return ReportResult{Err: err.Error()} }

func (r ReportResult) Failed() bool { return r.Err != "" }

// Payload renders the result as a canonical JSON blob. Failures keep the
// {"error": ...} shape so the analyzer sees the fetch error verbatim.
// encoding/json sorts map keys, so identical results always render the same
// bytes.
func (r ReportResult) Payload() string {
	v := r.Raw
	if r.Failed() {
		v = map[string]any{"error": r.Err}
	}
	if v == nil {
		v = map[string]any{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return `{"error":"unserializable report payload"}`
	}
	return string(b)
}
