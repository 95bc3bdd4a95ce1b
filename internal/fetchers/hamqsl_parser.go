package fetchers

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"bandwatch/internal/models"

	"golang.org/x/net/html/charset"
)

const solarDataElement = "solardata"

// ParseSolarXML builds a SolarRecord from a HamQSL XML body. The first
// <solardata> element is used wherever it sits in the document. A body
// without one, or one that is malformed before it closes, is a parse error.
// Missing or non-numeric fields become unknown readings.
func ParseSolarXML(raw string) (*models.SolarRecord, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, models.NewFetchError(models.ParseError, "no <solardata> element in HamQSL response", nil)
		}
		if err != nil {
			return nil, models.NewFetchError(models.ParseError, fmt.Sprintf("malformed HamQSL XML: %v", err), err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != solarDataElement {
			continue
		}

		var sd models.HamQSLSolarData
		if err := dec.DecodeElement(&sd, &start); err != nil {
			return nil, models.NewFetchError(models.ParseError, fmt.Sprintf("malformed <solardata>: %v", err), err)
		}
		return buildRecord(&sd), nil
	}
}

func buildRecord(sd *models.HamQSLSolarData) *models.SolarRecord {
	rec := &models.SolarRecord{
		Source:           models.FirstText(sd.Source),
		UpdatedAt:        models.FirstText(sd.Updated),
		SolarFluxIndex:   firstInt(sd.SolarFlux),
		AIndex:           firstInt(sd.AIndex),
		KIndex:           firstInt(sd.KIndex),
		XRay:             models.FirstText(sd.XRay),
		SunspotNumber:    firstInt(sd.SunSpots),
		SolarWindSpeed:   firstFloat(sd.SolarWind),
		InterplanetaryBz: firstFloat(sd.MagneticField),
		GeomagneticField: models.FirstText(sd.GeomagField),
		SignalToNoise:    models.FirstText(sd.SignalNoise),
		ProtonFlux:       firstFloat(sd.ProtonFlux),
		ElectronFlux:     firstFloat(sd.ElectronFlux),
		HeliumLine:       firstFloat(sd.HeliumLine),
		AuroraActivity:   firstInt(sd.Aurora),
		Normalization:    models.FirstText(sd.Normalization),
		LatDegree:        models.FirstText(sd.LatDegree),
		BandConditions:   make(models.BandConditions),
	}

	for _, b := range sd.Bands {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			continue
		}
		cond := models.ParseCondition(b.Condition)
		times, seen := rec.BandConditions[name]
		if !seen {
			times = models.BandTimes{Day: models.ParseCondition(""), Night: models.ParseCondition("")}
		}
		switch strings.ToLower(strings.TrimSpace(b.Time)) {
		case "day":
			times.Day = cond
		case "night":
			times.Night = cond
		default:
			continue
		}
		rec.BandConditions[name] = times
	}

	for _, v := range sd.VHF {
		rec.VHFConditions = append(rec.VHFConditions, models.VHFPhenomenon{
			Name:      strings.TrimSpace(v.Name),
			Location:  strings.TrimSpace(v.Location),
			Condition: strings.TrimSpace(v.Condition),
		})
	}

	return rec
}

func firstInt(values []string) models.Reading[int] {
	if len(values) == 0 {
		return models.Unknown[int]()
	}
	return models.ParseInt(values[0])
}

func firstFloat(values []string) models.Reading[float64] {
	if len(values) == 0 {
		return models.Unknown[float64]()
	}
	return models.ParseFloat(values[0])
}
