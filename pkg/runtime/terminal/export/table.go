package export

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableReporter renders one bordered table per section.
type TableReporter struct {
	writer io.Writer
	style  table.Style
}

func NewTableReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &TableReporter{
		writer: writer,
		style:  table.StyleRounded,
	}
}

func (r *TableReporter) Handle(report *domain.Report) error {
	if _, err := fmt.Fprintf(r.writer, "%s: %s\n\n", report.Title, report.Source); err != nil {
		return err
	}

	for _, section := range report.Sections {
		t := table.NewWriter()
		t.SetStyle(r.style)
		t.SetTitle(section.Title)
		t.AppendHeader(table.Row{"Field", "Value"})
		for _, d := range section.Details {
			t.AppendRow(table.Row{d.Name, d.Value})
		}
		if len(section.Sources) > 0 {
			t.AppendFooter(table.Row{"Sources", fmt.Sprint(section.Sources)})
		}

		if _, err := fmt.Fprintf(r.writer, "%s\n\n", t.Render()); err != nil {
			return fmt.Errorf("failed to write table for %s: %w", section.Title, err)
		}
	}
	return nil
}
