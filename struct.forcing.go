package hsami

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"time"
)

// Forcing the meteorological series driving a simulation. Temperatures in
// °C, water depths in cm per step. Sun (daily sunshine fraction) and Swe
// (snow surveys, negative when absent) are optional and may be nil.
type Forcing struct {
	T          []time.Time // [dateID]
	Tmin, Tmax []float64
	Rain, Snow []float64
	Sun        []float64
	Swe        []float64
}

// Check validates the series before a run: non-empty, aligned, in
// chronological order and free of missing required values.
func (frc *Forcing) Check() error {
	nt := len(frc.T)
	if nt == 0 {
		return &ForcingError{Step: -1, Reason: "empty series"}
	}
	for nm, s := range map[string][]float64{
		"tmin": frc.Tmin, "tmax": frc.Tmax, "rain": frc.Rain, "snow": frc.Snow,
	} {
		if len(s) != nt {
			return &ForcingError{Step: -1, Reason: fmt.Sprintf("%s holds %d records, want %d", nm, len(s), nt)}
		}
	}
	if frc.Sun != nil && len(frc.Sun) != nt {
		return &ForcingError{Step: -1, Reason: fmt.Sprintf("sun holds %d records, want %d", len(frc.Sun), nt)}
	}
	if frc.Swe != nil && len(frc.Swe) != nt {
		return &ForcingError{Step: -1, Reason: fmt.Sprintf("swe holds %d records, want %d", len(frc.Swe), nt)}
	}
	for i := 0; i < nt; i++ {
		if i > 0 && !frc.T[i].After(frc.T[i-1]) {
			return &ForcingError{Step: i, Reason: "dates out of order"}
		}
		if math.IsNaN(frc.Tmin[i]) || math.IsNaN(frc.Tmax[i]) {
			return &ForcingError{Step: i, Reason: "missing temperature"}
		}
		if math.IsNaN(frc.Rain[i]) || math.IsNaN(frc.Snow[i]) {
			return &ForcingError{Step: i, Reason: "missing precipitation"}
		}
		if frc.Rain[i] < 0. || frc.Snow[i] < 0. {
			return &ForcingError{Step: i, Reason: "negative precipitation"}
		}
	}
	return nil
}

// sun the sunshine fraction at step i, half a day when unobserved.
func (frc *Forcing) sun(i int) float64 {
	if frc.Sun == nil || math.IsNaN(frc.Sun[i]) {
		return 0.5
	}
	return frc.Sun[i]
}

// swe the snow survey at step i, negative when absent.
func (frc *Forcing) swe(i int) float64 {
	if frc.Swe == nil || math.IsNaN(frc.Swe[i]) {
		return -1.
	}
	return frc.Swe[i]
}

func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobForcing(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	f.Close()
	return &frc, nil
}
