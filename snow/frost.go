package snow

// FreezeSoil freezes unsaturated-zone water in cold weather. The pack and the
// existing frost insulate the soil. Water is drawn down to solmin at most and
// the frost store never goes negative.
func FreezeSoil(dur, dtx, solmin, sol, gel, swe float64) (float64, float64) {
	delta := -2.54 * 2.54 * 0.0036 * dtx / (2.54 + gel + swe) * dur
	if sol-delta > solmin {
		return sol - delta, gel + delta
	}
	gel += sol - solmin
	if gel < 0. {
		gel = 0.
	}
	return solmin, gel
}

// ThawSoil returns frozen soil water to the unsaturated store in mild
// weather, slowed by the insulating pack and remaining frost.
func ThawSoil(dur, dtx, sol, gel, swe float64) (float64, float64) {
	iso := 2.54 + gel + swe
	inf := 2.54*2.54*0.072*(dtx+40./9.)/iso*dur + 2.54*2.54*0.036*dtx/iso*dur
	if inf >= gel {
		return sol + gel, 0.
	}
	return sol + inf, gel - inf
}
