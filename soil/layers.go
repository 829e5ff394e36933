package soil

import "math"

// stepLayers the three-layer column after Black et al. (1970): two
// unsaturated layers over the water table, percolated on an hourly sub-step
// to keep the conductivity formulation stable.
func (c *Column) stepLayers(s *State, nbpas int, offre, demande, runoff, swe float64) (Flows, error) {
	var fl Flows
	np := float64(nbpas)

	// the water table joins the bottom of the column
	col := [3]float64{s.Sol[0], s.Sol[1], s.Nappe}

	cc := [2]float64{2.*c.Par.B[0] + 3., 2.*c.Par.B[1] + 3.} // pore-disconnectedness index
	ks := [2]float64{c.Par.Ks, c.Par.Ks2}
	solMax := [3]float64{c.Par.N[0] * c.Par.Z[0], c.Par.N[1] * c.Par.Z[1], c.Par.NappeMax}
	solMin := [2]float64{c.Par.CC[0] * c.Par.Z[0], c.Par.CC[1] * c.Par.Z[1]}

	var infPot float64
	ecart := offre - demande
	if ecart > 0. {
		fl.Evapo = demande
		offre -= demande

		switch c.Infil {
		case InfGreenAmpt:
			var err error
			infPot, fl.Runoff, err = c.GA.Infiltrate(offre, solMax[0], col[0], nbpas, s.Gel, swe)
			if err != nil {
				return fl, err
			}
		case InfSCS:
			infPot, fl.Runoff = curveNumber(offre, c.Par.CN)
		default:
			infPot = offre
			fl.Runoff = runoff
		}
	} else {
		fl.Evapo = offre
		floor := c.Par.PFP * c.Par.Z[0]
		fl.Pumping = math.Min(col[0]-floor, -col[0]/solMax[0]*ecart)
		col[0] -= fl.Pumping
		if c.Infil == InfHsami {
			fl.Runoff = runoff
		}
	}

	// hourly percolation sub-steps
	for h := 0; h < 24/nbpas; h++ {
		k := [2]float64{
			ks[0] * math.Pow(col[0]/solMax[0], cc[0]),
			ks[1] * math.Pow(col[1]/solMax[1], cc[1]),
		}
		dr := [2]float64{
			solMax[0] * k[0] / 24. / c.Par.Z[0],
			solMax[1] * k[1] / 24. / c.Par.Z[1],
		}

		// the second layer sheds an interflow share before draining down
		dr[1] = math.Min(col[1]-solMin[1], dr[1])
		fl.Inter += dr[1] * c.Par.RunoffSurf
		col[1] -= dr[1] * c.Par.RunoffSurf
		dr[1] *= 1. - c.Par.RunoffSurf

		// percolate from the bottom of the column up
		for i := 1; i >= 0; i-- {
			// hold each layer at its field capacity; frost or uptake may
			// already have drawn the top layer below it
			if i == 0 && col[0] < solMin[0] {
				dr[0] = 0.
			} else {
				dr[i] = math.Min(col[i]-solMin[i], dr[i])
			}

			// never overfill the layer below
			room := solMax[i+1] - col[i+1]
			if i == 1 {
				if surplus := dr[1] - room; surplus > 0. {
					fl.Inter += surplus
					col[1] -= surplus
				}
			}
			dr[i] = math.Min(room, dr[i])

			col[i] -= dr[i]
			col[i+1] += dr[i]
			if i == 1 {
				fl.Recharge += dr[i]
			}
		}
	}

	// surface infiltration, bounded by the room left in the top layer
	room := solMax[0] - col[0]
	inf := math.Min(room, infPot)
	fl.Runoff += infPot - inf
	col[0] += inf

	// water-table drainage
	fl.Base, col[2] = c.drain(col[2], np)

	s.Sol[0], s.Sol[1], s.Nappe = col[0], col[1], col[2]
	return fl, nil
}
