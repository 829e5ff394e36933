package hsami

import "time"

// Output the simulated series. Discharges in m³/s, depths in cm of water
// over the basin per step.
type Output struct {
	T []time.Time

	// discharge lanes at the outlet
	Qtotal, Qbase, Qinter, Qsurf []float64
	Qglace, Qmh                  []float64

	// evapotranspiration
	Etp []float64 // potential demand
	Etr []float64 // actual, all lanes pooled

	// state trajectories
	Swe, Sol, Nappe []float64
	WetDepth        []float64 // equivalent basin depth held by the wetland
	IceThickness    []float64 // river ice-cover diagnostic

	// per-step water-balance residual
	Residual []float64
}

func newOutput(nt int) *Output {
	return &Output{
		T:            make([]time.Time, 0, nt),
		Qtotal:       make([]float64, 0, nt),
		Qbase:        make([]float64, 0, nt),
		Qinter:       make([]float64, 0, nt),
		Qsurf:        make([]float64, 0, nt),
		Qglace:       make([]float64, 0, nt),
		Qmh:          make([]float64, 0, nt),
		Etp:          make([]float64, 0, nt),
		Etr:          make([]float64, 0, nt),
		Swe:          make([]float64, 0, nt),
		Sol:          make([]float64, 0, nt),
		Nappe:        make([]float64, 0, nt),
		WetDepth:     make([]float64, 0, nt),
		IceThickness: make([]float64, 0, nt),
		Residual:     make([]float64, 0, nt),
	}
}

func (o *Output) append(t time.Time, r stepRecord) {
	o.T = append(o.T, t)
	o.Qtotal = append(o.Qtotal, r.qtotal)
	o.Qbase = append(o.Qbase, r.qbase)
	o.Qinter = append(o.Qinter, r.qinter)
	o.Qsurf = append(o.Qsurf, r.qsurf)
	o.Qglace = append(o.Qglace, r.qglace)
	o.Qmh = append(o.Qmh, r.qmh)
	o.Etp = append(o.Etp, r.etp)
	o.Etr = append(o.Etr, r.etr)
	o.Swe = append(o.Swe, r.swe)
	o.Sol = append(o.Sol, r.sol)
	o.Nappe = append(o.Nappe, r.nappe)
	o.WetDepth = append(o.WetDepth, r.wetDepth)
	o.IceThickness = append(o.IceThickness, r.iceThickness)
	o.Residual = append(o.Residual, r.residual)
}
