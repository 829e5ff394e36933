package hsami

import (
	"math"
	"time"

	"github.com/maseology/hsami/pet"
	"github.com/maseology/hsami/route"
	"github.com/maseology/hsami/snow"
	"github.com/maseology/hsami/wetland"
)

type stepRecord struct {
	qtotal, qbase, qinter, qsurf float64
	qglace, qmh                  float64
	etp, etr                     float64
	swe, sol, nappe              float64
	wetDepth, iceThickness       float64
	residual                     float64
}

// step advances the state one time step: potential demand, winter surface,
// surface partition, vertical flow, wetland, routing, then the balance
// closure over every store and lane.
func (k *Kernel) step(s *State, idx int, t time.Time, frc *Forcing) (stepRecord, error) {
	tmin, tmax := frc.Tmin[idx], frc.Tmax[idx]
	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}
	if s.Pas++; s.Pas > k.StepsPerDay {
		s.Pas = 1
	}
	dur := 1. / float64(k.StepsPerDay)
	doy := t.YearDay()

	etp := k.etp(doy, tmin, tmax, k.ph) * pet.StepFraction(s.Pas, k.StepsPerDay)

	s0 := s.Storage()

	if s.Ice != nil {
		s.Ice.Update(tmin, tmax, dur)
	}

	rf := 0.
	if k.psi != nil {
		rf = k.psi[doy-1]
	}

	res := s.Pack.Step(snow.Input{
		Tmin:      tmin,
		Tmax:      tmax,
		Rain:      frc.Rain[idx],
		Snow:      frc.Snow[idx],
		Sun:       frc.sun(idx),
		RadFactor: rf,
		SweObs:    frc.swe(idx),
		Dur:       dur,
	}, etp, &s.Soil.Sol[0], &s.Soil.Gel)

	ro, offer := k.col.Partition(k.StepsPerDay, &s.Soil, res.Surface)
	fl, err := k.col.Step(&s.Soil, k.StepsPerDay, offer, res.Demand, ro, s.Pack.SWE())
	if err != nil {
		return stepRecord{}, &ConvergenceError{Step: idx, Layer: 0, Err: err}
	}

	lanes := route.Lanes{Base: fl.Base, Inter: fl.Inter, Runoff: fl.Runoff, IceMelt: res.IceMelt}
	etrWet := 0.
	if s.Wet != nil {
		wl := s.Wet.Step(wetland.Lanes{Base: fl.Base, Inter: fl.Inter, Runoff: fl.Runoff}, etp)
		etrWet = wl.Evap
		lanes.Base, lanes.Inter, lanes.Runoff, lanes.Spill = wl.Base, wl.Inter, wl.Runoff, wl.Spill
	}

	rt := s.Router.Step(k.StepsPerDay, lanes)

	f := k.Bsn.AreaKm2 / 8.64 // cm per step over the basin to m³/s
	qb, qmh := rt.Base*f, rt.Spill*f
	if s.Wet != nil {
		// the wetland's seepage share of the blended baseflow reports on
		// the wetland lane
		qmh += qb * s.Wet.RatioQbase
		qb *= 1. - s.Wet.RatioQbase
	}
	rec := stepRecord{
		qbase:  qb,
		qinter: rt.Inter * f,
		qsurf:  rt.Runoff * f,
		qglace: rt.IceMelt * f,
		qmh:    qmh,
		etp:    etp,
		etr:    res.Sublim + res.Evap + fl.Evapo + fl.Pumping + etrWet,
		swe:    s.Pack.SWE(),
		sol:    s.Soil.Sol[0] + s.Soil.Sol[1],
		nappe:  s.Soil.Nappe,
	}
	rec.qtotal = rec.qbase + rec.qinter + rec.qsurf + rec.qglace + rec.qmh
	if s.Wet != nil {
		rec.wetDepth = s.Wet.Depth
	}
	if s.Ice != nil {
		rec.iceThickness = s.Ice.Thickness
	}

	out := rt.Base + rt.Inter + rt.Runoff + rt.IceMelt + rt.Spill + rec.etr
	rec.residual = s.Storage() - s0 - (frc.Rain[idx] + frc.Snow[idx] + res.Assim - out)
	if math.Abs(rec.residual) > k.BalanceTol {
		return rec, &BalanceError{Step: idx, Residual: rec.residual}
	}
	return rec, nil
}
