package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".dealatlascfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProfileRegistry_GetProfiles_SkipsEmptySections(t *testing.T) {
	// Given
	path := writeProfiles(t, `[milano]
INCOME.VACANCY_RATE = 0.08

[empty]

[torino]
purchase.notary_fees = 2500
`)

	// When
	reg, err := NewProfileRegistry(path)
	require.NoError(t, err)
	profiles, err := reg.GetProfiles()

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"milano", "torino"}, profiles)
}

func TestProfileRegistry_GetDefaults_QualifiesKeys(t *testing.T) {
	// Given
	path := writeProfiles(t, `[torino]
purchase.notary_fees = 2500
Income.Vacancy_Rate = 0.1
`)
	reg, err := NewProfileRegistry(path)
	require.NoError(t, err)

	// When
	defaults, err := reg.GetDefaults("torino")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "2500", defaults["PURCHASE.NOTARY_FEES"])
	assert.Equal(t, "0.1", defaults["INCOME.VACANCY_RATE"])
}

func TestProfileRegistry_GetDefaults_UnknownProfile(t *testing.T) {
	reg, err := NewProfileRegistry(writeProfiles(t, "[milano]\nINCOME.VACANCY_RATE = 0.08\n"))
	require.NoError(t, err)

	_, err = reg.GetDefaults("roma")

	assert.EqualError(t, err, "profile roma not found")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRegistry_GetDefaults_UnqualifiedKey(t *testing.T) {
	reg, err := NewProfileRegistry(writeProfiles(t, "[milano]\nVACANCY_RATE = 0.08\n"))
	require.NoError(t, err)

	_, err = reg.GetDefaults("milano")

	assert.Error(t, err)
}

func TestNewProfileRegistry_MissingFile(t *testing.T) {
	_, err := NewProfileRegistry(filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, err)
}
