package hsami

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"github.com/maseology/hsami/snow"
	"github.com/maseology/hsami/soil"
	"github.com/maseology/hsami/wetland"
)

// Parameter the watershed parameter set. Depths and capacities in cm,
// conductivities in cm/d (log-scaled fields carry the base-10 exponent),
// rates per day.
type Parameter struct {
	// evapotranspiration efficiencies
	EvapSummer, EvapWinter float64

	// snowpack
	MeltDay, MeltNight     float64 // melt rates [cm/°C/d]
	TbaseDay, TbaseNight   float64 // melt temperature thresholds [°C]
	TrainRef               float64 // rain-heat melt reference temperature [°C]
	CoverScale             float64 // thaw effect on snow-covered fraction [-]
	Tindex, Ddf, Ddfc, Tsf float64 // cold-content snowpack coefficients

	// surface runoff partition
	FrostEffect float64 // frost effect on the runoff threshold
	SolEffect   float64 // soil-moisture effect on the runoff threshold [cm]
	MinThresh   float64 // floor on the 24h runoff threshold [cm]

	// soil reservoirs
	SolMin, SolMax float64 // unsaturated store bounds [cm]
	NappeMax       float64 // water-table capacity [cm]
	RunoffSurf     float64 // interflow share of infiltrated water [-]
	RunoffSolMax   float64 // runoff share of unsaturated overflow [-]
	DrainSol       float64 // unsaturated drainage rate [1/d]
	DrainNappe     float64 // water-table drainage rate [1/d]
	DrainInter     float64 // intermediate-reserve retention rate [1/d]

	// unit hydrographs [d]
	ModeSurf, FormeSurf   float64
	ModeInter, FormeInter float64

	// infiltration
	CN    float64 // curve number
	LogKs float64 // surface saturated conductivity, log10 [cm/d] (Green-Ampt and first layer)
	PsiGA float64 // wetting-front suction [cm]
	Krec  float64 // water-table recession coefficient (dingman) [1/d]
	Sy    float64 // specific yield (dingman) [-]

	// three-layer profile
	B       [2]float64 // pore-size distribution index
	Z       [2]float64 // layer thicknesses [cm]
	CC      [2]float64 // field capacities [cm/cm]
	N       [2]float64 // total porosities [cm/cm]
	LogKs2  float64    // second-layer saturated conductivity, log10 [cm/d]
	PFP     float64    // permanent wilting point [cm/cm]

	// initial stores
	Sol0   float64 // unsaturated store [cm]
	Nappe0 float64 // water table [cm]

	// river ice cover
	IceK float64 // Stefan growth coefficient

	// equivalent wetland
	WetHmax    float64 // maximum depth [m]
	WetPnorm   float64 // normal fraction of the maximum stage [-]
	LogWetKsat float64 // bed conductivity, log10 [cm/d]
}

// Check validates the parameters needed by the selected formulations.
func (p *Parameter) Check(mod Modules) error {
	pos := func(name string, v float64) error {
		if !(v > 0.) {
			return &ParamError{Name: name, Value: v, Reason: "must be positive"}
		}
		return nil
	}
	frac := func(name string, v float64) error {
		if v < 0. || v > 1. {
			return &ParamError{Name: name, Value: v, Reason: "must lie in [0,1]"}
		}
		return nil
	}

	for _, c := range []struct {
		n string
		v float64
	}{
		{"evap_summer", p.EvapSummer}, {"evap_winter", p.EvapWinter},
		{"melt_day", p.MeltDay}, {"melt_night", p.MeltNight},
		{"nappe_max", p.NappeMax},
		{"mode_surf", p.ModeSurf}, {"forme_surf", p.FormeSurf},
		{"mode_inter", p.ModeInter}, {"forme_inter", p.FormeInter},
	} {
		if err := pos(c.n, c.v); err != nil {
			return err
		}
	}
	for _, c := range []struct {
		n string
		v float64
	}{
		{"runoff_surf", p.RunoffSurf}, {"runoff_sol_max", p.RunoffSolMax},
		{"drain_sol", p.DrainSol}, {"drain_nappe", p.DrainNappe},
		{"drain_inter", p.DrainInter},
	} {
		if err := frac(c.n, c.v); err != nil {
			return err
		}
	}

	if mod.layers() {
		for i := 0; i < 2; i++ {
			if err := pos("z", p.Z[i]); err != nil {
				return err
			}
			if p.N[i] <= 0. || p.N[i] > 1. {
				return &ParamError{Name: "n", Value: p.N[i], Reason: "porosity must lie in (0,1]"}
			}
			if p.CC[i] <= 0. || p.CC[i] >= p.N[i] {
				return &ParamError{Name: "cc", Value: p.CC[i], Reason: "field capacity must lie in (0,porosity)"}
			}
		}
		if p.PFP <= 0. || p.PFP >= p.CC[0] {
			return &ParamError{Name: "pfp", Value: p.PFP, Reason: "wilting point must lie in (0,field capacity)"}
		}
	} else {
		if err := pos("sol_max", p.SolMax); err != nil {
			return err
		}
		if p.SolMin < 0. || p.SolMin >= p.SolMax {
			return &ParamError{Name: "sol_min", Value: p.SolMin, Reason: "must lie in [0,sol_max)"}
		}
	}

	if mod.Infiltration == "scs_cn" && (p.CN <= 0. || p.CN > 100.) {
		return &ParamError{Name: "cn", Value: p.CN, Reason: "curve number must lie in (0,100]"}
	}
	if mod.Baseflow == "dingman" {
		if err := pos("krec", p.Krec); err != nil {
			return err
		}
		if err := pos("sy", p.Sy); err != nil {
			return err
		}
	}
	if mod.Wetland {
		if err := pos("wet_hmax", p.WetHmax); err != nil {
			return err
		}
		if p.WetPnorm <= 0. || p.WetPnorm >= 1. {
			return &ParamError{Name: "wet_pnorm", Value: p.WetPnorm, Reason: "must lie in (0,1)"}
		}
	}
	if mod.IceCover {
		if err := pos("ice_k", p.IceK); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parameter) snowParams(mod Modules) snow.Params {
	sp := snow.Params{
		EvapSummer: p.EvapSummer,
		EvapWinter: p.EvapWinter,
		MeltDay:    p.MeltDay,
		MeltNight:  p.MeltNight,
		TbaseDay:   p.TbaseDay,
		TbaseNight: p.TbaseNight,
		TrainRef:   p.TrainRef,
		CoverScale: p.CoverScale,
		SolMin:     p.SolMin,
	}
	if mod.layers() {
		// frost draws the top layer down to its wilting point, not SolMin
		sp.SolMin = p.PFP * p.Z[0]
	}
	return sp
}

func (p *Parameter) soilParams() soil.Params {
	return soil.Params{
		SolMin:       p.SolMin,
		SolMax:       p.SolMax,
		NappeMax:     p.NappeMax,
		RunoffSurf:   p.RunoffSurf,
		RunoffSolMax: p.RunoffSolMax,
		DrainSol:     p.DrainSol,
		DrainNappe:   p.DrainNappe,
		FrostEffect:  p.FrostEffect,
		SolEffect:    p.SolEffect,
		MinThresh:    p.MinThresh,
		CN:           p.CN,
		Ks:           math.Pow(10., p.LogKs),
		Psi:          p.PsiGA,
		Krec:         p.Krec,
		Sy:           p.Sy,
		B:            p.B,
		Z:            p.Z,
		CC:           p.CC,
		N:            p.N,
		Ks2:          math.Pow(10., p.LogKs2),
		PFP:          p.PFP,
	}
}

func (p *Parameter) wetlandParams() wetland.Params {
	return wetland.Params{
		Hmax:  p.WetHmax,
		Pnorm: p.WetPnorm,
		Ksat:  math.Pow(10., p.LogWetKsat),
	}
}

func (p *Parameter) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" parameter.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf(" parameter.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobParameter(fp string) (*Parameter, error) {
	var par Parameter
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&par); err != nil {
		return nil, err
	}
	f.Close()
	return &par, nil
}
