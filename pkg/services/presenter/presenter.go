// Package presenter turns a computed analysis into an ordered, labelled report.
package presenter

import (
	"sort"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/analysis"
	"github.com/de-tools/deal-atlas/pkg/services/format"
)

const reportTitle = "Deal analysis"

// Options controls which fields end up in the report.
type Options struct {
	// Debug shows every computed field under its raw name, sorted by name.
	Debug bool
}

// Present builds the report for result. The default view lists the reportable
// fields of each category in display order with normalized labels.
func Present(result *analysis.Result, opts Options) *domain.Report {
	report := &domain.Report{
		Title:    reportTitle,
		Source:   result.Source,
		Debug:    opts.Debug,
		Sections: make([]domain.ReportSection, 0, len(result.Categories)),
	}

	for i := range result.Categories {
		category := &result.Categories[i]

		var details []domain.ReportDetail
		if opts.Debug {
			details = debugDetails(category)
		} else {
			details = reportDetails(category)
		}

		report.Sections = append(report.Sections, domain.ReportSection{
			Title:   category.Heading,
			Sources: category.Sources,
			Details: details,
		})
	}
	return report
}

func reportDetails(category *analysis.Category) []domain.ReportDetail {
	fields := category.Reportable()
	details := make([]domain.ReportDetail, 0, len(fields))
	for _, f := range fields {
		details = append(details, domain.ReportDetail{
			Name:  format.Label(f.Name),
			Value: f.Value.String(),
		})
	}
	return details
}

func debugDetails(category *analysis.Category) []domain.ReportDetail {
	details := make([]domain.ReportDetail, 0, len(category.Fields))
	for _, f := range category.Fields {
		details = append(details, domain.ReportDetail{Name: f.Name, Value: f.Value.String()})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Name < details[j].Name
	})
	return details
}
