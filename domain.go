package hsami

// Basin the watershed physiography.
type Basin struct {
	AreaKm2   float64 // drainage area [km²]
	Latitude  float64 // centroid latitude [°]
	Altitude  float64 // mean elevation [m]
	Albedo    float64 // mean surface albedo [-]
	SlopeRad  float64 // mean surface slope [rad]
	AspectRad float64 // mean aspect, counterclockwise from north [rad]
	WetKm2    float64 // maximum equivalent-wetland surface [km²]

	// imposed unit hydrographs (optional); when set they replace the
	// beta-law ones built from the parameters and fix the routing memory
	HuSurf, HuInter []float64
}

// Check validates the physiography against the formulation selection.
func (b *Basin) Check(mod Modules) error {
	if !(b.AreaKm2 > 0.) {
		return &ParamError{Name: "area_km2", Value: b.AreaKm2, Reason: "must be positive"}
	}
	if b.Latitude < -90. || b.Latitude > 90. {
		return &ParamError{Name: "latitude", Value: b.Latitude, Reason: "must lie in [-90,90]"}
	}
	if mod.Wetland && !(b.WetKm2 > 0.) {
		return &ParamError{Name: "wet_km2", Value: b.WetKm2, Reason: "wetland module needs a wetland surface"}
	}
	if (b.HuSurf == nil) != (b.HuInter == nil) {
		return &ParamError{Name: "hu", Reason: "imposed hydrographs must come as a pair"}
	}
	if b.HuSurf != nil && len(b.HuSurf) != len(b.HuInter) {
		return &ParamError{Name: "hu", Reason: "imposed hydrographs must span the same memory"}
	}
	return nil
}
