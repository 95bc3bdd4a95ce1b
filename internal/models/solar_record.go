package models

// SolarRecord is the normalized snapshot of one HamQSL fetch. It is built
// once per refresh cycle and never modified afterwards.
type SolarRecord struct {
	Source           Reading[string]  `json:"source"`
	UpdatedAt        Reading[string]  `json:"updated_at"`       // opaque, as published
	SolarFluxIndex   Reading[int]     `json:"solar_flux_index"` // 10.7cm flux
	AIndex           Reading[int]     `json:"a_index"`
	KIndex           Reading[int]     `json:"k_index"`
	XRay             Reading[string]  `json:"xray"` // e.g. "B5.4"
	SunspotNumber    Reading[int]     `json:"sunspot_number"`
	SolarWindSpeed   Reading[float64] `json:"solar_wind_speed"`  // km/s
	InterplanetaryBz Reading[float64] `json:"interplanetary_bz"` // nT, signed
	GeomagneticField Reading[string]  `json:"geomagnetic_field"` // e.g. "QUIET"
	SignalToNoise    Reading[string]  `json:"signal_to_noise"`   // e.g. "S1-S2"
	ProtonFlux       Reading[float64] `json:"proton_flux"`
	ElectronFlux     Reading[float64] `json:"electron_flux"`
	HeliumLine       Reading[float64] `json:"helium_line"`
	AuroraActivity   Reading[int]     `json:"aurora_activity"` // 0-9
	Normalization    Reading[string]  `json:"normalization"`
	LatDegree        Reading[string]  `json:"lat_degree"`
	BandConditions   BandConditions   `json:"band_conditions"`
	VHFConditions    []VHFPhenomenon  `json:"vhf_conditions,omitempty"`
}

// VHFPhenomenon is a VHF propagation indicator (aurora, E-skip) for a region
type VHFPhenomenon struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Condition string `json:"condition"`
}

// Band returns the conditions for a group key. The second result is false
// when the feed did not publish the group.
func (r *SolarRecord) Band(group string) (BandTimes, bool) {
	if r == nil || r.BandConditions == nil {
		return BandTimes{}, false
	}
	bt, ok := r.BandConditions[group]
	return bt, ok
}
