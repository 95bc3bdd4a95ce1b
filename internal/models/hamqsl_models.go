package models

import "encoding/xml"

// HamQSLSolarData is the <solardata> element of the HamQSL solarxml.php feed.
// Scalar fields are slices so the first occurrence can be taken and an
// absent element can be told apart from an empty one.
type HamQSLSolarData struct {
	XMLName       xml.Name `xml:"solardata"`
	Source        []string `xml:"source"`
	Updated       []string `xml:"updated"`
	SolarFlux     []string `xml:"solarflux"`
	AIndex        []string `xml:"aindex"`
	KIndex        []string `xml:"kindex"`
	XRay          []string `xml:"xray"`
	SunSpots      []string `xml:"sunspots"`
	HeliumLine    []string `xml:"heliumline"`
	ProtonFlux    []string `xml:"protonflux"`
	ElectronFlux  []string `xml:"electonflux"` // feed spelling
	Aurora        []string `xml:"aurora"`
	Normalization []string `xml:"normalization"`
	LatDegree     []string `xml:"latdegree"`
	SolarWind     []string `xml:"solarwind"`
	MagneticField []string `xml:"magneticfield"`
	GeomagField   []string `xml:"geomagfield"`
	SignalNoise   []string `xml:"signalnoise"`

	Bands []HamQSLBand          `xml:"calculatedconditions>band"`
	VHF   []HamQSLVHFPhenomenon `xml:"calculatedvhfconditions>phenomenon"`
}

// HamQSLBand is one <band name=".." time="day|night">Good</band> entry
type HamQSLBand struct {
	Name      string `xml:"name,attr"`
	Time      string `xml:"time,attr"`
	Condition string `xml:",chardata"`
}

// HamQSLVHFPhenomenon is one <phenomenon name=".." location="..">..</phenomenon> entry
type HamQSLVHFPhenomenon struct {
	Name      string `xml:"name,attr"`
	Location  string `xml:"location,attr"`
	Condition string `xml:",chardata"`
}
