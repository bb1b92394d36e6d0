package presenter

import (
	"testing"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		Source: "deal.yml",
		Categories: []analysis.Category{
			{
				Name:    analysis.CategoryMetrics,
				Heading: "METRICHE",
				Sources: []string{"calculation"},
				Fields: []analysis.Field{
					{Name: "_NOI", Value: analysis.Integer(10000), Reportable: true},
					{Name: "_DSCR", Value: analysis.Number(10000.0 / 9000.0)},
					{Name: "_DSCR_FMT", Value: analysis.Text("111.11%"), Reportable: true},
					{Name: "_CAP_RATE", Value: analysis.Number(10000.0 / 220000.0)},
					{Name: "_CAP_RATE_FMT", Value: analysis.Text("4.55%"), Reportable: true},
				},
				Display: []string{"_CAP_RATE_FMT", "_NOI", "_DSCR_FMT"},
			},
			{
				Name:    analysis.CategorySummary,
				Heading: "SINTESI",
				Fields: []analysis.Field{
					{Name: "GROSS_ANNUAL_INCOME", Value: analysis.Text("+11040"), Reportable: true},
				},
				Display: []string{"GROSS_ANNUAL_INCOME"},
			},
		},
	}
}

func TestPresent_DefaultView(t *testing.T) {
	// Given
	result := sampleResult()

	// When
	report := Present(result, Options{})

	// Then
	assert.Equal(t, "Deal analysis", report.Title)
	assert.Equal(t, "deal.yml", report.Source)
	assert.False(t, report.Debug)
	require.Len(t, report.Sections, 2)

	metrics := report.Sections[0]
	assert.Equal(t, "METRICHE", metrics.Title)
	assert.Equal(t, []string{"calculation"}, metrics.Sources)
	assert.Equal(t, []domain.ReportDetail{
		{Name: "CAP_RATE", Value: "4.55%"},
		{Name: "NOI", Value: "10000"},
		{Name: "DSCR", Value: "111.11%"},
	}, metrics.Details)

	assert.Equal(t, []domain.ReportDetail{
		{Name: "GROSS_ANNUAL_INCOME", Value: "+11040"},
	}, report.Sections[1].Details)
}

func TestPresent_DebugView(t *testing.T) {
	// Given
	result := sampleResult()

	// When
	report := Present(result, Options{Debug: true})

	// Then
	assert.True(t, report.Debug)
	metrics := report.Sections[0]
	require.Len(t, metrics.Details, 5)

	var names []string
	for _, d := range metrics.Details {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"_CAP_RATE", "_CAP_RATE_FMT", "_DSCR", "_DSCR_FMT", "_NOI"}, names)
	assert.Equal(t, "1.1111111111111112", metrics.Details[2].Value)
}

func TestPresent_DoesNotModifyResult(t *testing.T) {
	result := sampleResult()

	_ = Present(result, Options{Debug: true})

	assert.Equal(t, "_NOI", result.Categories[0].Fields[0].Name)
	assert.Equal(t, sampleResult(), result)
}
