package hsami

import (
	"math"
	"time"

	"github.com/maseology/mmio"
)

// Observations an observed discharge record at the basin outlet [m³/s].
type Observations struct {
	T []time.Time
	Q []float64
}

// LoadObsCsv reads a csv file of "Date","Flow" and aligns the record to the
// forcing dates, NaN marking the gaps.
func LoadObsCsv(fp string, frc *Forcing) (*Observations, error) {
	c, err := mmio.ReadCsvDateFloat(fp)
	if err != nil {
		return nil, err
	}
	nt := len(frc.T)
	obs := &Observations{T: frc.T, Q: make([]float64, nt)}
	for i, t := range frc.T {
		if v, ok := c[dayDate(t).Unix()]; ok {
			obs.Q[i] = v
		} else {
			obs.Q[i] = math.NaN()
		}
	}
	return obs, nil
}

func dayDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
