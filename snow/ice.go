package snow

import "math"

const (
	freezeSeason  = -200. // freezing degree-days opening a glaciological winter
	thawResetDays = 21.   // stagnation days ending a freeze period
)

// IceCover tracks ice-cover thickness by the Stefan law from cumulative
// freezing degree-days.
type IceCover struct {
	K         float64 // degree-day to thickness coefficient
	Thickness float64 // [cm]
	FreezeDD  float64 // cumulative freezing degree-days
	Goal      float64 // degree-day objective opening the next freeze period
	ThawDays  float64 // consecutive days without freezing
}

// NewIceCover builds an ice-cover state with coefficient k.
func NewIceCover(k float64) *IceCover {
	return &IceCover{K: k, Goal: freezeSeason}
}

// Update accumulates freezing degree-days and grows or clears the cover.
// A 21-day thaw stagnation resets the objective for the next freeze period.
func (ic *IceCover) Update(tmin, tmax, dur float64) {
	m := (tmin + tmax/2.) / 2.
	if m >= 0. {
		m = 0.
	}
	ic.FreezeDD += m

	if ic.FreezeDD >= ic.Goal {
		ic.Thickness = 0.
		return
	}
	ic.Thickness = ic.K * math.Sqrt(ic.Goal-ic.FreezeDD)

	if m == 0. {
		ic.ThawDays += dur
	} else {
		ic.ThawDays = 0.
	}
	if ic.ThawDays >= thawResetDays {
		ic.Goal = freezeSeason + ic.FreezeDD
	}
}
