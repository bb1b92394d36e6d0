package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

// Reporter renders a report into its writer.
type Reporter interface {
	Handle(report *domain.Report) error
}

const textTemplate = `{{range .Sections}}== {{.Title}} ==
{{range .Details}}{{.Name}}: {{.Value}}
{{end}}
{{end}}`

// TextReporter writes the plain text report: a "== HEADING ==" line per
// section, one "LABEL: value" line per detail and a blank line.
type TextReporter struct {
	writer io.Writer
	tmpl   *template.Template
}

func NewTextReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &TextReporter{
		writer: writer,
		tmpl:   template.Must(template.New("report").Parse(textTemplate)),
	}
}

func (r *TextReporter) Handle(report *domain.Report) error {
	if err := r.tmpl.Execute(r.writer, report); err != nil {
		return fmt.Errorf("failed to render text report: %w", err)
	}
	return nil
}
