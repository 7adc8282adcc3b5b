package report

import (
	"context"
	"io"
)

// =============================================================================
// Renderer Interface
// =============================================================================

// Format identifies a report output format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// Renderer serializes a built Report into one output format.
type Renderer interface {
	// Render writes the report to w. Returns the number of bytes written.
	Render(ctx context.Context, rep Report, w io.Writer) (int64, error)

	// Format returns the output format of this renderer.
	Format() Format
}

// =============================================================================
// Evidence Photos
// =============================================================================

// PhotoData holds fetched photo bytes for thumbnail embedding.
type PhotoData struct {
	Data        []byte
	ContentType string
}

// PhotoFetcher resolves an evidence photo key to its bytes. Implementations
// sit over the blob store; tests substitute fakes. A fetcher returning
// (nil, nil) skips the thumbnail without failing the report.
type PhotoFetcher interface {
	FetchPhoto(ctx context.Context, key string) (*PhotoData, error)
}

// =============================================================================
// Palette
// =============================================================================

// Palette defines the register color scheme.
var Palette = struct {
	HeaderFill string
	GridLine   string
	TextDark   string
	TextMuted  string
	Pass       string
	Fail       string
}{
	HeaderFill: "#F0F0F0",
	GridLine:   "#C8C8C8",
	TextDark:   "#1F2937",
	TextMuted:  "#6B7280",
	Pass:       "#15803D",
	Fail:       "#DC2626",
}

// HexToRGB converts a hex color string to RGB values.
// Input format: "#RRGGBB" or "RRGGBB"
func HexToRGB(hex string) (r, g, b int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}

	r = hexToDec(hex[0:2])
	g = hexToDec(hex[2:4])
	b = hexToDec(hex[4:6])
	return
}

// hexToDec converts a 2-character hex string to decimal.
func hexToDec(hex string) int {
	val := 0
	for _, c := range hex {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			val += int(c-'A') + 10
		}
	}
	return val
}
