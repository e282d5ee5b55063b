package sweep

import (
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"go.uber.org/zap"
)

// Series produces the simulated daily series for one parameter vector,
// aligned with the observation record.
type Series func(x []float64) []float64

// Calibrate fits the parameters to an observed daily series (typically tank
// water consumption) with shuffled-complex evolution, minimizing RMSE.
// Returns the fitted vector and its goodness of fit.
func Calibrate(pars []Param, obs []float64, sim Series, seed int64, lg *zap.SugaredLogger) ([]float64, Fit) {
	np := len(pars)
	rng := rand.New(mrg63k3a.New())
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng.Seed(seed)

	gen := func(u []float64) float64 {
		x := make([]float64, np)
		for j := range u {
			x[j] = pars[j].transform(u[j])
		}
		s := sim(x)
		if len(s) != len(obs) {
			return math.MaxFloat64
		}
		return objfunc.RMSE(obs, s)
	}

	lg.Infow("calibration start", "dimensions", np, "observations", len(obs))
	uFinal, _ := glbopt.SCE(runtime.GOMAXPROCS(0), np, rng, gen, true)

	x := make([]float64, np)
	for j := range uFinal {
		x[j] = pars[j].transform(uFinal[j])
	}
	s := sim(x)
	fit := Fit{
		RMSE: objfunc.RMSE(obs, s),
		NSE:  objfunc.NSE(obs, s),
		KGE:  objfunc.KGE(obs, s),
		Bias: objfunc.Bias(obs, s),
	}
	lg.Infow("calibration complete", "rmse", fit.RMSE, "kge", fit.KGE, "nse", fit.NSE, "bias", fit.Bias)
	return x, fit
}

// Fit goodness-of-fit statistics for a calibrated series.
type Fit struct{ RMSE, NSE, KGE, Bias float64 }
