package wetland

import (
	"math"
	"testing"
)

func newTestWetland() *Wetland {
	return New(Params{Hmax: 1.5, Pnorm: 0.3, Ksat: 0.02}, 500., 12.)
}

func TestNewStartsAtNormalStage(t *testing.T) {
	w := newTestWetland()
	if math.Abs(w.Surf-0.3*12.*100.) > 1e-9 {
		t.Errorf("surface %v, want normal %v", w.Surf, 0.3*12.*100.)
	}
	if math.Abs(w.Vol-0.3*1.5*12.*100.*10000.) > 1e-6 {
		t.Errorf("volume %v, want normal stage", w.Vol)
	}
	if w.Ratio <= 0. || w.Ratio >= 1. {
		t.Errorf("basin share %v out of (0,1)", w.Ratio)
	}
}

func TestNoSpillBelowNormal(t *testing.T) {
	w := newTestWetland()
	w.Vol = w.vMin * 1.2
	w.Surf = w.beta * math.Pow(w.Vol, w.alpha)
	out := w.Step(Lanes{Base: 0.01}, 0.)
	if out.Spill != 0. {
		t.Errorf("spill %v below the normal volume", out.Spill)
	}
}

func TestSpillAboveNormal(t *testing.T) {
	w := newTestWetland()
	out := w.Step(Lanes{Runoff: 3., Inter: 0.5, Base: 0.2}, 0.)
	if out.Spill <= 0. {
		t.Error("no spill with the stage pushed above normal")
	}
	if w.Vol > w.vMax {
		t.Errorf("volume %v above the maximum %v", w.Vol, w.vMax)
	}
}

func TestEvaporationFloorsAtVmin(t *testing.T) {
	w := newTestWetland()
	w.Vol = w.vMin * 1.05
	w.Surf = w.beta * math.Pow(w.Vol, w.alpha)
	w.Step(Lanes{}, 50.) // absurd demand
	if w.Vol < w.vMin-1e-6 {
		t.Errorf("volume %v drawn below the floor %v", w.Vol, w.vMin)
	}
}

func TestBasinShareUntouched(t *testing.T) {
	w := newTestWetland()
	in := Lanes{Base: 0.3, Inter: 0.2, Runoff: 0.1}
	out := w.Step(in, 0.05)
	// the wetland intercepts only its basin share
	if math.Abs(out.Inter-in.Inter*(1.-360./50000.)) > 1e-9 {
		t.Errorf("interflow %v, want the basin share of %v", out.Inter, in.Inter)
	}
	if math.Abs(out.Runoff-in.Runoff*(1.-360./50000.)) > 1e-9 {
		t.Errorf("runoff %v, want the basin share of %v", out.Runoff, in.Runoff)
	}
	if out.Base <= 0. {
		t.Error("baseflow lane emptied by the wetland")
	}
}

func TestSeepageShareOfBaseflow(t *testing.T) {
	w := newTestWetland()
	w.Step(Lanes{Base: 0.2}, 0.)
	// seepage 0.02 cm/d over 360 ha rejoins a 0.2 cm baseflow lane:
	// qbMH = 720·0.0072/36000 m³, the rest is the basin share
	qb := 720. * .0072 / 36000.
	want := qb / (qb + 0.2*(1.-.0072))
	if math.Abs(w.RatioQbase-want) > 1e-12 {
		t.Errorf("seepage share %v, want %v", w.RatioQbase, want)
	}
}

func TestSeepageJoinsBaseflow(t *testing.T) {
	w := newTestWetland()
	out := w.Step(Lanes{}, 0.)
	// with no inflow the only baseflow is wetland seepage
	if out.Base <= 0. {
		t.Error("no seepage from a wetland at normal stage")
	}
	if math.Abs(w.RatioQbase-1.) > 1e-9 {
		t.Errorf("seepage share %v, want 1 with no basin baseflow", w.RatioQbase)
	}
}
