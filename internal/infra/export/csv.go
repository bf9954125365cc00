package export

import (
	"encoding/csv"
	"io"

	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
)

// RenderTable flattens one category's result into a two-column table:
// error_data holds the stringified raw payload, ai_solution the narrative
// text, both unmodified.
func (Exporter) RenderTable(w io.Writer, s domain.Section) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"error_data", "ai_solution"}); err != nil {
		return err
	}
	if err := cw.Write([]string{s.Report.Payload(), s.Analysis}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
