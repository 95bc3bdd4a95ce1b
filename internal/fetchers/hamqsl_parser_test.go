package fetchers

import (
	"errors"
	"testing"

	"bandwatch/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<solar>
<solardata>
	<source url="http://www.hamqsl.com/solar.html">N0NBH</source>
	<updated> 16 Oct 2026 0930 GMT</updated>
	<solarflux>142</solarflux>
	<aindex>8</aindex>
	<kindex>2</kindex>
	<kindexnt>No Report</kindexnt>
	<xray>B5.4</xray>
	<sunspots>118</sunspots>
	<heliumline>131.2</heliumline>
	<protonflux>2.33</protonflux>
	<electonflux>1280</electonflux>
	<aurora>1</aurora>
	<normalization>1.99</normalization>
	<latdegree>67.5</latdegree>
	<solarwind>412.6</solarwind>
	<magneticfield>-3.1</magneticfield>
	<calculatedconditions>
		<band name="80m-40m" time="day">Poor</band>
		<band name="30m-20m" time="day">Good</band>
		<band name="17m-15m" time="day">Fair</band>
		<band name="12m-10m" time="day">Poor</band>
		<band name="80m-40m" time="night">Good</band>
		<band name="30m-20m" time="night">Good</band>
		<band name="17m-15m" time="night">Poor</band>
		<band name="12m-10m" time="night">Poor</band>
	</calculatedconditions>
	<calculatedvhfconditions>
		<phenomenon name="vhf-aurora" location="northern_hemi">Band Closed</phenomenon>
		<phenomenon name="E-Skip" location="europe">Band Closed</phenomenon>
	</calculatedvhfconditions>
	<geomagfield>QUIET</geomagfield>
	<signalnoise>S0-S1</signalnoise>
</solardata>
</solar>`

func TestParseSolarXML_FullRecord(t *testing.T) {
	rec, err := ParseSolarXML(sampleXML)
	require.NoError(t, err)

	want := &models.SolarRecord{
		Source:           models.Known("N0NBH"),
		UpdatedAt:        models.Known("16 Oct 2026 0930 GMT"),
		SolarFluxIndex:   models.Known(142),
		AIndex:           models.Known(8),
		KIndex:           models.Known(2),
		XRay:             models.Known("B5.4"),
		SunspotNumber:    models.Known(118),
		SolarWindSpeed:   models.Known(412.6),
		InterplanetaryBz: models.Known(-3.1),
		GeomagneticField: models.Known("QUIET"),
		SignalToNoise:    models.Known("S0-S1"),
		ProtonFlux:       models.Known(2.33),
		ElectronFlux:     models.Known(1280.0),
		HeliumLine:       models.Known(131.2),
		AuroraActivity:   models.Known(1),
		Normalization:    models.Known("1.99"),
		LatDegree:        models.Known("67.5"),
		BandConditions: models.BandConditions{
			"80m-40m": {Day: models.ParseCondition("Poor"), Night: models.ParseCondition("Good")},
			"30m-20m": {Day: models.ParseCondition("Good"), Night: models.ParseCondition("Good")},
			"17m-15m": {Day: models.ParseCondition("Fair"), Night: models.ParseCondition("Poor")},
			"12m-10m": {Day: models.ParseCondition("Poor"), Night: models.ParseCondition("Poor")},
		},
		VHFConditions: []models.VHFPhenomenon{
			{Name: "vhf-aurora", Location: "northern_hemi", Condition: "Band Closed"},
			{Name: "E-Skip", Location: "europe", Condition: "Band Closed"},
		},
	}

	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("ParseSolarXML() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSolarXML_MissingFieldsAreUnknown(t *testing.T) {
	rec, err := ParseSolarXML(`<solardata><solarflux>150</solarflux><kindex>n/a</kindex></solardata>`)
	require.NoError(t, err)

	assert.Equal(t, models.Known(150), rec.SolarFluxIndex)
	assert.False(t, rec.KIndex.IsKnown(), "non-numeric kindex must be unknown")
	assert.False(t, rec.AIndex.IsKnown())
	assert.False(t, rec.UpdatedAt.IsKnown())
	assert.False(t, rec.InterplanetaryBz.IsKnown())
	assert.Empty(t, rec.BandConditions)
	assert.Nil(t, rec.VHFConditions)
}

func TestParseSolarXML_FieldEdgeCases(t *testing.T) {
	doc := `<solardata>
		<solarflux>150abc</solarflux>
		<aindex>  12 </aindex>
		<kindex>2.67</kindex>
		<kindex>7</kindex>
		<xray></xray>
		<calculatedconditions>
			<band name="30m-20m" time="day">fair</band>
			<band name="30m-20m" time="day">GOOD</band>
			<band name="30m-20m" time="dusk">Poor</band>
			<band name="6m" time="twilight">Poor</band>
			<band time="day">Good</band>
		</calculatedconditions>
	</solardata>`

	rec, err := ParseSolarXML(doc)
	require.NoError(t, err)

	assert.False(t, rec.SolarFluxIndex.IsKnown(), "trailing garbage must not parse")
	assert.Equal(t, models.Known(12), rec.AIndex)
	assert.Equal(t, models.Known(2), rec.KIndex, "first occurrence, truncated")
	assert.Equal(t, models.Known(""), rec.XRay, "present but empty stays known")

	require.Len(t, rec.BandConditions, 1)
	bt := rec.BandConditions["30m-20m"]
	assert.Equal(t, models.ConditionGood, bt.Day.Label, "last duplicate wins")
	assert.Equal(t, "GOOD", bt.Day.Raw)
	assert.Equal(t, models.ConditionUnrated, bt.Night.Label)
}

func TestParseSolarXML_NestedRoot(t *testing.T) {
	doc := `<response><meta/><payload><solardata><kindex>5</kindex></solardata></payload></response>`
	rec, err := ParseSolarXML(doc)
	require.NoError(t, err)
	assert.Equal(t, models.Known(5), rec.KIndex)
}

func TestParseSolarXML_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty body", ""},
		{"html error page", "<html><body>Service Unavailable</body></html>"},
		{"plain text", "rate limited"},
		{"wrong root", "<solar><data><solarflux>150</solarflux></data></solar>"},
		{"truncated solardata", "<solar><solardata><solarflux>150</solarflux>"},
		{"malformed before root", "<solar><<solardata></solardata></solar>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseSolarXML(tt.raw)
			assert.Nil(t, rec)

			var fe *models.FetchError
			require.True(t, errors.As(err, &fe), "expected *FetchError, got %T", err)
			assert.Equal(t, models.ParseError, fe.Kind)
		})
	}
}
