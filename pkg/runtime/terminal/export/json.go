package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

// JSONReporter writes the report in its API shape.
type JSONReporter struct {
	writer io.Writer
}

func NewJSONReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONReporter{writer: writer}
}

func (r *JSONReporter) Handle(report *domain.Report) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapters.MapReportDomainToApi(*report)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
