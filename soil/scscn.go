package soil

// curveNumber splits the surface supply by the SCS curve-number method.
// Supply below the initial abstraction produces no runoff.
func curveNumber(avail, cn float64) (inf, runoff float64) {
	s := (25400./cn - 254.) / 10.
	if avail <= 0.2*s {
		return avail, 0.
	}
	pot := (avail - 0.2*s) * (avail - 0.2*s) / (avail + 0.8*s)
	if pot > avail {
		pot = avail
	}
	return avail - pot, pot
}
