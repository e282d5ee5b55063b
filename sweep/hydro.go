package sweep

import (
	"github.com/hydrosol/hydrosim"
	"github.com/hydrosol/hydrosim/met"
)

// ApplyParam sets one named swept parameter on a run configuration.
// Unknown names are ignored so sweeps stay forward compatible with
// configuration changes.
func ApplyParam(cfg *hydrosim.Config, name string, v float64) {
	switch name {
	case "kcb":
		cfg.Crop.Kcb = v
	case "phi":
		cfg.Crop.Phi = v
	case "lai":
		cfg.Crop.LAI = v
	case "height":
		cfg.Crop.Height = v
	case "tank_volume":
		cfg.System.TankVolume = v
	case "area":
		cfg.System.Area = v
	case "flow_rate":
		cfg.System.FlowRate = v
	case "seedling_weight":
		cfg.System.SeedlingWeight = v
	case "ec_slope":
		cfg.ECSlope = v
	}
}

// WaterSeries builds a Series yielding daily tank water consumption [L/d]
// for the configuration under the given weather record, with the named
// parameters overridden per sample. Each call constructs an independent
// run; failures yield an empty series, which the caller scores as a miss.
func WaterSeries(cfg hydrosim.Config, ws []met.Day, names []string) Series {
	return func(x []float64) []float64 {
		c := cfg
		for j, nm := range names {
			ApplyParam(&c, nm, x[j])
		}
		m, err := hydrosim.New(c)
		if err != nil {
			return nil
		}
		r, err := m.Run(ws)
		if err != nil {
			return nil
		}
		s := make([]float64, len(r.Days))
		for i, d := range r.Days {
			s[i] = d.WaterUptake
		}
		return s
	}
}
