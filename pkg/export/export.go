package export

import (
	"fmt"
	"strings"
	"time"
)

// Format enumerates the supported report encodings.
type Format string

const (
	FormatPDF   Format = "PDF"
	FormatExcel Format = "EXCEL"
	FormatCSV   Format = "CSV"
)

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
}

// Renderer encodes a dataset into a downloadable document.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ParseFormat normalises a user supplied format, defaulting to CSV when empty.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatExcel, "XLSX":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// RendererFor returns the renderer handling the given format.
func RendererFor(format Format) (Renderer, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	case FormatExcel:
		return NewExcelExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename builds "<prefix>_<YYYYMMDD_HHMMSS>.<ext>".
func Filename(prefix string, r Renderer, at time.Time) string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "report"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, at.UTC().Format("20060102_150405"), r.Extension())
}

func requireHeaders(data Dataset, kind string) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	return nil
}
