// Package sweep batches independent simulation runs: Latin-hypercube
// parameter sampling across a worker pool, and calibration of selected
// parameters against an observed daily water-consumption series. Runs share
// no state; ordering is irrelevant.
package sweep

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"go.uber.org/zap"
)

// Param one swept dimension. Log samples the range log-linearly.
type Param struct {
	Name     string
	Min, Max float64
	Log      bool
}

func (p Param) transform(u float64) float64 {
	if p.Log {
		return mmaths.LogLinearTransform(p.Min, p.Max, u)
	}
	return mmaths.LinearTransform(p.Min, p.Max, u)
}

// Runner scores one parameter vector. Each invocation must build its own
// run; the pool calls it concurrently.
type Runner func(x []float64) float64

// Result one scored sample.
type Result struct {
	X     []float64
	Score float64
}

// Sample draws n Latin-hypercube samples over the parameter ranges and
// scores them on nw workers. The sample space is dumped to outFP when
// non-empty.
func Sample(n, nw int, pars []Param, seed int64, run Runner, lg *zap.SugaredLogger, outFP string) []Result {
	np := len(pars)
	rng := rand.New(mrg63k3a.New())
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng.Seed(seed)

	tt := mmio.NewTimer()
	lg.Infow("sweep start", "samples", n, "dimensions", np, "workers", nw)

	sp := smpln.NewLHC(rng, n, np, false)
	xs := make([][]float64, n)
	for k := 0; k < n; k++ {
		x := make([]float64, np)
		for j := 0; j < np; j++ {
			x[j] = pars[j].transform(sp.U[j][k])
		}
		xs[k] = x
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(n).AppendCompleted().PrependElapsed()

	res := make([]Result, n)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				res[k] = Result{X: xs[k], Score: run(xs[k])}
				bar.Incr()
			}
		}()
	}
	for k := 0; k < n; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	uiprogress.Stop()

	if outFP != "" {
		lns := make([]string, 0, n+1)
		h := "score"
		for _, p := range pars {
			h += "," + p.Name
		}
		lns = append(lns, h)
		for _, r := range res {
			ln := fmt.Sprintf("%f", r.Score)
			for _, v := range r.X {
				ln += fmt.Sprintf(",%f", v)
			}
			lns = append(lns, ln)
		}
		mmio.WriteLines(outFP, lns)
	}
	tt.Print("sweep complete")
	return res
}
