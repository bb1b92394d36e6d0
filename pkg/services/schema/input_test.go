package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `PROPERTY:
  ADDRESS: "Via Roma 1, Milano"
  BEDROOMS: 2
  BATHROOMS: 1
  UNITS: 1
  SQFTS: 75
PURCHASE:
  PURCHASE_PRICE: 200000
  IMPROVEMENT_COST: 10000
  CLOSING_COST: 2000
FINANCING:
  MORTGAGE_LOAN_DOWNPAY_PERCENTAGE: 0.2
  MORTGAGE_LOAN_YRS: 25
  MORTGAGE_LOAN_APR: 0.035
INCOME:
  MONTHLY_RENT: 1000
  VACANCY_RATE: 0.08
EXPENSES:
  PROPERTY_MANAGEMENT_FEE_RATE: 0.08
  PROPERTY_TAX_RATE: 0.0106
  MONTHLY_HOA: 100
  MONTHLY_MAINTENANCE: 50
  MONTHLY_UTILITIES: 0
  MONTHLY_ADVERTISING: 0
  MONTHLY_LANDSCAPING: 0
MISC:
  PROPERTY_APPRECIATION_RATE: 0.02
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidYAML_ReadsAllSections(t *testing.T) {
	// Given
	path := writeFile(t, "deal.yml", sampleDocument)

	// When
	in, err := Load(path, BuiltinDefaults())

	// Then
	require.NoError(t, err)
	assert.Equal(t, path, in.Source())
	for _, section := range Sections {
		assert.True(t, in.HasSection(section), "section %s", section)
	}

	price, err := in.Float(SectionPurchase, "PURCHASE_PRICE")
	require.NoError(t, err)
	assert.Equal(t, 200000.0, price)

	years, err := in.Int(SectionFinancing, "MORTGAGE_LOAN_YRS")
	require.NoError(t, err)
	assert.Equal(t, 25, years)

	address, err := in.String(SectionProperty, "address")
	require.NoError(t, err)
	assert.Equal(t, "Via Roma 1, Milano", address)
}

func TestLoad_JSONDocument_IsAccepted(t *testing.T) {
	// Given
	path := writeFile(t, "deal.json", `{"income": {"monthly_rent": 900, "vacancy_rate": 0.05}}`)

	// When
	in, err := Load(path, nil)

	// Then
	require.NoError(t, err)
	rent, err := in.Float(SectionIncome, "MONTHLY_RENT")
	require.NoError(t, err)
	assert.Equal(t, 900.0, rent)
}

func TestLoad_InvalidYAML_ReturnsMalformedInputError(t *testing.T) {
	// Given
	path := writeFile(t, "bad.yaml", "PURCHASE: [unclosed")

	// When
	_, err := Load(path, nil)

	// Then
	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, path, malformed.Path)
}

func TestLoad_MissingFile_ReturnsMalformedInputError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"), nil)

	var malformed *domain.MalformedInputError
	assert.ErrorAs(t, err, &malformed)
}

func TestInput_MissingKeyWithoutDefault_ReturnsMissingInputError(t *testing.T) {
	// Given
	in, err := Decode("inline", strings.NewReader(sampleDocument), BuiltinDefaults())
	require.NoError(t, err)

	// When
	_, err = in.Float(SectionExpenses, "MONTHLY_SNOW_REMOVAL")

	// Then
	var missing *domain.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "EXPENSES", missing.Section)
	assert.Equal(t, "MONTHLY_SNOW_REMOVAL", missing.Key)
	assert.Equal(t, "missing input EXPENSES.MONTHLY_SNOW_REMOVAL", err.Error())
}

func TestInput_OptionalKey_FallsBackToDefault(t *testing.T) {
	in, err := Decode("inline", strings.NewReader(sampleDocument), BuiltinDefaults())
	require.NoError(t, err)

	fees, err := in.Float(SectionPurchase, "NOTARY_FEES")
	require.NoError(t, err)
	assert.Zero(t, fees)

	link, err := in.String(SectionProperty, "LINK")
	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestInput_DocumentValue_WinsOverDefault(t *testing.T) {
	defaults := BuiltinDefaults().Merge(Defaults{"income.vacancy_rate": 0.5})
	in, err := Decode("inline", strings.NewReader(sampleDocument), defaults)
	require.NoError(t, err)

	rate, err := in.Float(SectionIncome, "VACANCY_RATE")
	require.NoError(t, err)
	assert.Equal(t, 0.08, rate)
}

func TestInput_NonNumericValue_ReturnsMalformedInputError(t *testing.T) {
	in, err := Decode("inline", strings.NewReader("INCOME:\n  MONTHLY_RENT: lots\n"), nil)
	require.NoError(t, err)

	_, err = in.Float(SectionIncome, "MONTHLY_RENT")

	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "INCOME.MONTHLY_RENT must be a number")
}

func TestInput_NonFiniteNumber_ReturnsDomainError(t *testing.T) {
	for _, raw := range []string{".nan", ".inf", "-.inf"} {
		t.Run(raw, func(t *testing.T) {
			in, err := Decode("inline", strings.NewReader("INCOME:\n  MONTHLY_RENT: "+raw+"\n"), nil)
			require.NoError(t, err)

			_, err = in.Float(SectionIncome, "MONTHLY_RENT")

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INCOME.MONTHLY_RENT", domainErr.Field)
		})
	}
}

func TestInput_Int_RejectsFractionalValues(t *testing.T) {
	// Given
	in, err := Decode("inline", strings.NewReader("FINANCING:\n  MORTGAGE_LOAN_YRS: 25.5\n  GRACE_YRS: \"2\"\n  TERM: 30.0\n"), nil)
	require.NoError(t, err)

	// When
	_, err = in.Int(SectionFinancing, "MORTGAGE_LOAN_YRS")

	// Then
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FINANCING.MORTGAGE_LOAN_YRS", domainErr.Field)
	assert.Contains(t, domainErr.Reason, "25.5")

	grace, err := in.Int(SectionFinancing, "GRACE_YRS")
	require.NoError(t, err)
	assert.Equal(t, 2, grace)

	term, err := in.Int(SectionFinancing, "TERM")
	require.NoError(t, err)
	assert.Equal(t, 30, term)
}

func TestDecode_SectionNotAMapping_ReturnsMalformedInputError(t *testing.T) {
	_, err := Decode("inline", strings.NewReader("PURCHASE: 12\n"), nil)

	var malformed *domain.MalformedInputError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecode_EmptyDocument_ReturnsMalformedInputError(t *testing.T) {
	_, err := Decode("inline", strings.NewReader(""), nil)

	var malformed *domain.MalformedInputError
	assert.ErrorAs(t, err, &malformed)
}

func TestInput_DefaultsAreCopied(t *testing.T) {
	defaults := Defaults{"MISC.PROPERTY_APPRECIATION_RATE": 0.01}
	in, err := New("inline", map[string]any{}, defaults)
	require.NoError(t, err)

	defaults["MISC.PROPERTY_APPRECIATION_RATE"] = 0.9

	rate, err := in.Float(SectionMisc, "PROPERTY_APPRECIATION_RATE")
	require.NoError(t, err)
	assert.Equal(t, 0.01, rate)
}

func TestSplitKey(t *testing.T) {
	section, key, err := SplitKey("purchase.notary_fees")
	require.NoError(t, err)
	assert.Equal(t, "PURCHASE", section)
	assert.Equal(t, "NOTARY_FEES", key)

	_, _, err = SplitKey("NOTARY_FEES")
	assert.Error(t, err)
}
