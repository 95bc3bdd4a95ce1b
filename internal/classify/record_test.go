package classify

import (
	"testing"

	"bandwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRecord(t *testing.T) {
	rec := &models.SolarRecord{
		SolarFluxIndex:   models.Known(150),
		KIndex:           models.Known(6),
		AIndex:           models.Known(31),
		InterplanetaryBz: models.Known(-12.0),
		ProtonFlux:       models.Unknown[float64](),
		AuroraActivity:   models.Known(3),
	}

	ind := ClassifyRecord(rec)

	assert.Equal(t, "Very good", ind.SolarFlux.Label)
	assert.Equal(t, "G2", ind.KIndex.Scale)
	assert.Contains(t, ind.KIndex.Label, "Storm G2")
	assert.Equal(t, "Active", ind.AIndex.Label)
	assert.Equal(t, "Elevated risk", ind.Bz.Label)
	assert.Equal(t, LabelUnknown, ind.ProtonFlux.Label)
	assert.Equal(t, "Active", ind.Aurora.Label)
}

func TestClassifyRecord_Nil(t *testing.T) {
	ind := ClassifyRecord(nil)
	assert.False(t, ind.SolarFlux.Known)
	assert.False(t, ind.KIndex.Known)
}

func TestBandRows(t *testing.T) {
	rec := &models.SolarRecord{
		BandConditions: models.BandConditions{
			"80m-40m": {Day: models.ParseCondition("Poor"), Night: models.ParseCondition("Good")},
			"30m-20m": {Day: models.ParseCondition("Good"), Night: models.ParseCondition("Fair")},
			"6m":      {Day: models.ParseCondition("Good"), Night: models.ParseCondition("Good")},
		},
	}

	rows := BandRows(rec)
	require.Len(t, rows, 8)

	wantOrder := []string{"80m", "40m", "30m", "20m", "17m", "15m", "12m", "10m"}
	for i, row := range rows {
		assert.Equal(t, wantOrder[i], row.Band)
	}

	// Bands in one group share the group's conditions.
	assert.Equal(t, rows[0].Day, rows[1].Day)
	assert.False(t, rows[0].Shared)
	assert.True(t, rows[1].Shared)
	assert.Equal(t, "Poor", rows[0].Day.Label)
	assert.Equal(t, "Good", rows[1].Night.Label)
	assert.Equal(t, "Fair", rows[3].Night.Label)

	// Groups absent from the record are unrated.
	assert.Equal(t, "17m-15m", rows[4].Group)
	assert.Equal(t, "?", rows[4].Day.Label)
	assert.Equal(t, ToneUnknown, rows[4].Night.Tone)
	assert.Equal(t, "", rows[4].Day.Value)
}

func TestBandRows_NilRecord(t *testing.T) {
	rows := BandRows(nil)
	require.Len(t, rows, 8)
	for _, row := range rows {
		assert.False(t, row.Day.Known)
		assert.False(t, row.Night.Known)
	}
}
