package export

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:  "Deal analysis",
		Source: "deal.yml",
		Sections: []domain.ReportSection{
			{
				Title:   "FINANZIAMENTO",
				Sources: []string{"bank"},
				Details: []domain.ReportDetail{
					{Name: "DOWNPAYMENT", Value: "40000"},
					{Name: "LOAN_AMOUNT", Value: "160000"},
				},
			},
			{
				Title:   "METRICHE",
				Details: []domain.ReportDetail{{Name: "CAP_RATE", Value: "4.55%"}},
			},
		},
	}
}

func TestTextReporter_Handle(t *testing.T) {
	// Given
	var buf bytes.Buffer
	reporter := NewTextReporter(&buf)

	// When
	err := reporter.Handle(sampleReport())

	// Then
	require.NoError(t, err)
	assert.Equal(t, "== FINANZIAMENTO ==\n"+
		"DOWNPAYMENT: 40000\n"+
		"LOAN_AMOUNT: 160000\n"+
		"\n"+
		"== METRICHE ==\n"+
		"CAP_RATE: 4.55%\n"+
		"\n", buf.String())
}

func TestTableReporter_Handle(t *testing.T) {
	var buf bytes.Buffer

	err := NewTableReporter(&buf).Handle(sampleReport())

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Deal analysis: deal.yml")
	assert.Contains(t, out, "FINANZIAMENTO")
	assert.Contains(t, out, "LOAN_AMOUNT")
	assert.Contains(t, out, "160000")
	assert.Contains(t, out, "4.55%")
}

func TestJSONReporter_Handle(t *testing.T) {
	var buf bytes.Buffer

	err := NewJSONReporter(&buf).Handle(sampleReport())
	require.NoError(t, err)

	var decoded api.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "deal.yml", decoded.Source)
	require.Len(t, decoded.Sections, 2)
	assert.Equal(t, api.ReportDetail{Name: "LOAN_AMOUNT", Value: "160000"}, decoded.Sections[0].Details[1])
}

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{FormatJSON, FormatTable, FormatText}, r.ListFormats())

	ext, err := r.Extension(FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "json", ext)

	reporter, err := r.Create(FormatText, io.Discard)
	require.NoError(t, err)
	assert.IsType(t, &TextReporter{}, reporter)

	_, err = r.Create("csv", io.Discard)
	assert.ErrorContains(t, err, `format "csv" is not registered`)

	assert.Error(t, r.Register(FormatText, "txt", NewTextReporter))
	assert.Error(t, r.Register("", "txt", NewTextReporter))
	assert.Error(t, r.Register("csv", "csv", nil))
}
