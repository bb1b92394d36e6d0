package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

const DefaultOutputDir = "result"

// Destination selects where a rendered report goes.
type Destination struct {
	Format string
	// Write sends the report to <OutputDir>/<source base name>.<ext> instead of stdout.
	Write     bool
	OutputDir string
}

// Output renders reports completely in memory before delivering them, so a
// failed render never leaves a partial report behind.
type Output struct {
	formats Registry
	stdout  io.Writer
}

func NewOutput(formats Registry, stdout io.Writer) *Output {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Output{formats: formats, stdout: stdout}
}

// Deliver writes the report and returns the file path, or "" for stdout.
func (o *Output) Deliver(report *domain.Report, dest Destination) (string, error) {
	var buf bytes.Buffer
	reporter, err := o.formats.Create(dest.Format, &buf)
	if err != nil {
		return "", err
	}
	if err := reporter.Handle(report); err != nil {
		return "", err
	}

	if !dest.Write {
		_, err := buf.WriteTo(o.stdout)
		return "", err
	}

	ext, err := o.formats.Extension(dest.Format)
	if err != nil {
		return "", err
	}
	dir := dest.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, OutputName(report.Source, ext))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// OutputName derives the report file name from the input document path:
// "deals/milano.yml" -> "milano.txt".
func OutputName(source, ext string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "report"
	}
	return base + "." + ext
}
