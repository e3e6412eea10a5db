package reference_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/market-entry-advisor/internal/reference"
)

func TestCountries_SizeAndHead(t *testing.T) {
	names := reference.CountryNames()
	assert.GreaterOrEqual(t, len(names), 190)
	assert.Equal(t, []string{"Germany", "Japan", "United Kingdom", "UK"}, names[:4])
}

func TestCountries_EveryEntryHasKnownRegion(t *testing.T) {
	known := map[reference.Region]bool{}
	for _, r := range reference.AllRegions() {
		known[r] = true
	}
	for _, c := range reference.Countries() {
		assert.Truef(t, known[c.Region], "%s has region %q", c.Name, c.Region)
	}
}

func TestCountries_AliasesAreLowerCase(t *testing.T) {
	for _, c := range reference.Countries() {
		for _, a := range c.Aliases {
			assert.Equal(t, strings.ToLower(a), a, c.Name)
		}
	}
}

func TestCountries_ReturnsCopy(t *testing.T) {
	first := reference.Countries()
	first[0].Name = "Atlantis"
	first[0].Aliases[0] = "atlantean"

	again := reference.Countries()
	assert.Equal(t, "Germany", again[0].Name)
	assert.Equal(t, []string{"german"}, again[0].Aliases)
}

func TestCountriesByRegion_PreservesOrder(t *testing.T) {
	byRegion := reference.CountriesByRegion()
	require.NotEmpty(t, byRegion[reference.Africa])
	assert.Equal(t, "Rwanda", byRegion[reference.Africa][0])
	assert.Equal(t, "Germany", byRegion[reference.Europe][0])

	total := 0
	for _, names := range byRegion {
		total += len(names)
	}
	assert.Equal(t, len(reference.CountryNames()), total)
}

func TestIndustries(t *testing.T) {
	got := reference.Industries()
	assert.Len(t, got, 29)
	assert.Equal(t, reference.Technology, got[0])

	got[0] = "mutated"
	assert.Equal(t, reference.Technology, reference.Industries()[0])
}
