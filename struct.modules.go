package hsami

import (
	"github.com/maseology/hsami/pet"
	"github.com/maseology/hsami/soil"
)

// Modules the per-watershed process formulation selection. Every field has a
// default so the zero value plus Defaults() yields a runnable set.
type Modules struct {
	PET          string // potential evapotranspiration formulation (see pet.New)
	Snow         string // "hsami", "dj" or "ccf"
	Infiltration string // "hsami", "green_ampt" or "scs_cn"
	Soil         string // "hsami" or "3couches"
	Baseflow     string // "hsami" or "dingman"
	Radiation    string // "hsami" or "mdj" (terrain irradiation scaling of melt)
	Wetland      bool
	IceCover     bool // river ice-cover growth diagnostic
}

// Defaults the historical formulation set.
func Defaults() Modules {
	return Modules{
		PET:          "hsami",
		Snow:         "hsami",
		Infiltration: "hsami",
		Soil:         "hsami",
		Baseflow:     "hsami",
		Radiation:    "hsami",
	}
}

// Check validates every selection against the known formulations.
func (m *Modules) Check() error {
	if pet.New(m.PET) == nil {
		return &ParamError{Name: "modules.pet", Reason: "unknown formulation " + m.PET}
	}
	switch m.Snow {
	case "", "hsami", "dj", "ccf":
	default:
		return &ParamError{Name: "modules.snow", Reason: "unknown formulation " + m.Snow}
	}
	switch m.Infiltration {
	case "", "hsami", "green_ampt", "scs_cn":
	default:
		return &ParamError{Name: "modules.infiltration", Reason: "unknown formulation " + m.Infiltration}
	}
	switch m.Soil {
	case "", "hsami", "3couches":
	default:
		return &ParamError{Name: "modules.soil", Reason: "unknown formulation " + m.Soil}
	}
	switch m.Baseflow {
	case "", "hsami", "dingman":
	default:
		return &ParamError{Name: "modules.baseflow", Reason: "unknown formulation " + m.Baseflow}
	}
	switch m.Radiation {
	case "", "hsami", "mdj":
	default:
		return &ParamError{Name: "modules.radiation", Reason: "unknown formulation " + m.Radiation}
	}
	return nil
}

func (m *Modules) infil() soil.Infil {
	switch m.Infiltration {
	case "green_ampt":
		return soil.InfGreenAmpt
	case "scs_cn":
		return soil.InfSCS
	}
	return soil.InfHsami
}

func (m *Modules) qbase() soil.Qbase {
	if m.Baseflow == "dingman" {
		return soil.QbDingman
	}
	return soil.QbHsami
}

func (m *Modules) layers() bool { return m.Soil == "3couches" }
