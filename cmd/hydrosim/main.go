package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hydrosol/hydrosim"
	"github.com/hydrosol/hydrosim/met"
	"github.com/hydrosol/hydrosim/sweep"
	"github.com/joho/godotenv"
	"github.com/maseology/mmio"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() *zap.SugaredLogger {
	c := zap.NewProductionConfig()
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := c.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return l.Sugar()
}

func main() {
	var (
		cfgFP   = flag.String("c", "", "YAML run configuration (defaults when empty)")
		wxFP    = flag.String("w", "", "daily weather CSV (synthetic when empty)")
		outFP   = flag.String("o", "hydrosim.csv", "daily results CSV")
		season  = flag.String("season", "spring", "synthetic weather season template")
		lat     = flag.Float64("lat", 0., "latitude for clear-sky solar (synthetic weather)")
		seed    = flag.Int64("seed", 0, "RNG seed, 0 seeds from the clock")
		days    = flag.Int("days", 0, "override configured day count")
		nsweep  = flag.Int("sweep", 0, "run an n-sample crop-coefficient sweep instead of a single run")
		workers = flag.Int("workers", 4, "sweep worker count")
	)
	flag.Parse()
	godotenv.Load()

	lg := newLogger()
	defer lg.Sync()

	cfg := hydrosim.Default()
	if *cfgFP != "" {
		var err error
		if cfg, err = hydrosim.LoadConfig(*cfgFP); err != nil {
			lg.Fatalw("configuration rejected", "file", *cfgFP, "err", err)
		}
	}
	if *days > 0 {
		cfg.Days = *days
	}

	var ws []met.Day
	if *wxFP != "" {
		var err error
		if ws, err = met.LoadCSV(*wxFP); err != nil {
			lg.Fatalw("weather load failed", "file", *wxFP, "err", err)
		}
	} else {
		g := met.NewGenerator(*seed)
		g.Template(*season)
		g.Latitude = *lat
		nd := cfg.MaxDays
		if !cfg.MatureStop {
			nd = cfg.Days
		}
		ws = g.Generate(time.Now(), nd)
	}

	if *nsweep > 0 {
		runSweep(cfg, ws, *nsweep, *workers, *seed, lg)
		return
	}

	m, err := hydrosim.New(cfg)
	if err != nil {
		lg.Fatalw("setup failed", "err", err)
	}

	tt := mmio.NewTimer()
	r, err := m.Run(ws)
	if err != nil {
		lg.Fatalw("run rejected", "err", err)
	}
	tt.Print("simulation complete")

	r.WriteCSV(*outFP)
	lg.Infow("results written", "file", *outFP, "days", r.Summary.Days)

	s := r.Summary
	fmt.Printf("\n  days simulated:        %d (%s)\n", s.Days, s.FinalStage)
	fmt.Printf("  total water consumed:  %.1f L (%.2f L/d)\n", s.TotalWater, s.AvgWater)
	fmt.Printf("  final tank volume:     %.1f L\n", s.FinalVolume)
	fmt.Printf("  mean ETo:              %.2f mm/d\n", s.AvgETo)
	fmt.Printf("  mean transpiration:    %.2f mm/d\n", s.AvgTranspiration)
	fmt.Printf("  temperature range:     %.1f to %.1f °C\n", s.MinTemp, s.MaxTemp)
	fmt.Printf("  mean WUE:              %.2f kg/m³\n", s.AvgWUE)
	if s.FinalFreshWeight > 0. {
		fmt.Printf("  final fresh weight:    %.1f g\n", s.FinalFreshWeight)
	}
	if len(r.Faults) > 0 {
		lg.Warnw("nutrient faults raised", "n", len(r.Faults))
		for _, f := range r.Faults {
			fmt.Printf("  day %3d  %-6s %s\n", f.Day, f.Nutrient, f.Kind)
		}
	}
	for _, e := range r.Events {
		lg.Infow("event", "day", e.Day, "kind", e.Kind, "detail", e.Detail)
	}
}

func runSweep(cfg hydrosim.Config, ws []met.Day, n, nw int, seed int64, lg *zap.SugaredLogger) {
	pars := []sweep.Param{
		{Name: "kcb", Min: .5, Max: 1.3},
		{Name: "phi", Min: .6, Max: 1.},
		{Name: "lai", Min: 1., Max: 5.},
	}
	names := make([]string, len(pars))
	for i, p := range pars {
		names[i] = p.Name
	}
	series := sweep.WaterSeries(cfg, ws, names)
	run := func(x []float64) float64 {
		s := series(x)
		if len(s) == 0 {
			return 0.
		}
		var t float64
		for _, v := range s {
			t += v
		}
		return t
	}
	res := sweep.Sample(n, nw, pars, seed, run, lg, "sweep.csv")
	lg.Infow("sweep written", "file", "sweep.csv", "samples", len(res))
}
