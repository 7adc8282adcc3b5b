package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// =============================================================================
// CSV Renderer
// =============================================================================

// CSVRenderer writes the register as CSV, one section after another. Each
// section contributes a title line, its header row, and its data rows,
// separated by a blank line. The evidence column carries the photo key.
type CSVRenderer struct{}

// NewCSVRenderer creates a new CSV renderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Format returns the output format of this renderer.
func (r *CSVRenderer) Format() Format {
	return FormatCSV
}

// Render writes the report to w.
func (r *CSVRenderer) Render(_ context.Context, rep Report, w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writer := csv.NewWriter(cw)

	for i, section := range rep.Sections {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return cw.n, fmt.Errorf("csv write error: %w", err)
			}
		}

		if err := writer.Write([]string{section.Title}); err != nil {
			return cw.n, fmt.Errorf("csv write error: %w", err)
		}

		header := make([]string, len(section.Columns))
		for j, col := range section.Columns {
			header[j] = col.Header
		}
		if err := writer.Write(header); err != nil {
			return cw.n, fmt.Errorf("csv write error: %w", err)
		}

		for _, row := range section.Rows {
			record := make([]string, len(section.Columns))
			for j, col := range section.Columns {
				if col.Key == colEvidence {
					record[j] = row.EvidenceKey
					continue
				}
				record[j] = row.Cells[col.Key]
			}
			if err := writer.Write(record); err != nil {
				return cw.n, fmt.Errorf("csv write error: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return cw.n, fmt.Errorf("csv flush error: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
