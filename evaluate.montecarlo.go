package hsami

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// GenerateSamples sweeps n Latin-hypercube samples of a p-dimensional
// parameter space over nwrkrs concurrent runs, writing the sample space and
// the scores next to outdirprfx. Runs are independent; only the sweep is
// parallel, never a run's time loop.
func (ev *Evaluator) GenerateSamples(gen func([]float64) Parameter, n, p, nwrkrs int, outdirprfx string) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, p, false)

	outdirbatch := outdirprfx + time.Now().Format("060102150405") // batch number = date
	func() {                                                      // save sample space
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprint(k)
			for j := 0; j < p; j++ {
				lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
			}
		}
		mmio.WriteLines(outdirbatch+".samplespace.csv", lns)
	}()

	uiprogress.Start()
	bar := uiprogress.AddBar(n).AppendCompleted().PrependElapsed()

	scores := make([]float64, n)
	var wg sync.WaitGroup
	sem := make(chan struct{}, nwrkrs)
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ut := make([]float64, p)
			for j := 0; j < p; j++ {
				ut[j] = sp.U[j][k]
			}
			scores[k] = ev.Evaluate(gen(ut))
			bar.Incr()
		}(k)
	}
	wg.Wait()
	uiprogress.Stop()

	lns := make([]string, n)
	for k, s := range scores {
		lns[k] = fmt.Sprintf("%d,%f", k, s)
	}
	mmio.WriteLines(outdirbatch+".scores.csv", lns)
}
