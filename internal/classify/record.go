package classify

import "bandwatch/internal/models"

// Indicators holds the classification of every headline metric of a record
type Indicators struct {
	SolarFlux  Classification `json:"sfi"`
	KIndex     Classification `json:"kindex"`
	AIndex     Classification `json:"aindex"`
	Bz         Classification `json:"bz"`
	ProtonFlux Classification `json:"protonflux"`
	Aurora     Classification `json:"aurora"`
}

// ClassifyRecord classifies the headline metrics of rec. A nil record
// classifies as all unknown.
func ClassifyRecord(rec *models.SolarRecord) Indicators {
	if rec == nil {
		rec = &models.SolarRecord{}
	}
	return Indicators{
		SolarFlux:  SolarFlux(rec.SolarFluxIndex),
		KIndex:     KIndex(rec.KIndex),
		AIndex:     AIndex(rec.AIndex),
		Bz:         Bz(rec.InterplanetaryBz),
		ProtonFlux: ProtonFlux(rec.ProtonFlux),
		Aurora:     Aurora(rec.AuroraActivity),
	}
}

// BandRow is one display band with its group's day and night conditions
type BandRow struct {
	Band   string         `json:"band"`
	Group  string         `json:"group"`
	Shared bool           `json:"shared"`
	Day    Classification `json:"day"`
	Night  Classification `json:"night"`
}

// BandRows joins the static band table to rec in table order. Groups the
// record does not carry are unrated.
func BandRows(rec *models.SolarRecord) []BandRow {
	bands := models.Bands()
	rows := make([]BandRow, 0, len(bands))
	for _, b := range bands {
		bt, ok := rec.Band(b.Group)
		if !ok {
			bt = models.BandTimes{Day: models.ParseCondition(""), Night: models.ParseCondition("")}
		}
		rows = append(rows, BandRow{
			Band:   b.Name,
			Group:  b.Group,
			Shared: b.Shared,
			Day:    Band(bt.Day),
			Night:  Band(bt.Night),
		})
	}
	return rows
}
