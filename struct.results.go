package hydrosim

import (
	"time"

	"github.com/hydrosol/hydrosim/met"
	"github.com/hydrosol/hydrosim/uptake"
)

// DayResult the immutable per-day snapshot. Every field is set to its
// default at construction; active submodels overwrite their slice of the
// schema so no field is ever conditionally present.
type DayResult struct {
	Day   int
	Date  time.Time
	Stage string

	// weather as simulated (post control feedback)
	Tavg, Tmin, Tmax float64
	SolarRad         float64
	RH               float64
	Wind             float64

	// water
	NetRadiation  float64 // [MJ/m²/d]
	ETo           float64 // [mm/d]
	ETc           float64 // [mm/d]
	Transpiration float64 // [mm/d]
	WaterDemand   float64 // [L/d]
	WaterUptake   float64 // [L/d] actual
	WaterStress   float64 // actual/demand, 1 unstressed
	TankVolume    float64 // [L] end of day
	WUE           float64 // [kg/m³]

	// solution
	EC           float64 // [dS/m]
	PH           float64
	SolutionTemp float64 // [°C]

	// environment
	VPD         float64 // [kPa]
	TranspF     float64
	PhotoF      float64
	CO2F        float64
	CO2         float64 // [μmol/mol]
	EnvFactor   float64
	RZTFactor   float64
	StressLevel string
	EnergyKWh   float64

	// canopy and plant
	LAI, Height    float64
	Kcb, Phi       float64
	GDD            float64
	Assimilation   float64 // [g C/m²/d]
	TotalDry       float64 // [g]
	FreshWeight    float64 // [g]
	RootMass       float64 // [g]
	RootSurface    float64 // [cm²]
	RootHealth     float64 // 0-100
	UptakeCapacity float64

	Conc           map[string]float64 // [mg/L] end of day
	Uptake         map[string]float64 // [mg] stress-scaled
	UptakeUnscaled map[string]float64 // [mg] pre-constraint
}

func newDayResult(day int, w met.Day) DayResult {
	return DayResult{
		Day:            day,
		Date:           w.Date,
		Stage:          "static",
		Tavg:           w.Tavg,
		Tmin:           w.Tmin,
		Tmax:           w.Tmax,
		SolarRad:       w.SolarRad,
		RH:             w.RH,
		Wind:           w.Wind,
		WaterStress:    1.,
		TranspF:        1.,
		PhotoF:         1.,
		CO2F:           1.,
		EnvFactor:      1.,
		RZTFactor:      1.,
		StressLevel:    "optimal",
		Conc:           map[string]float64{},
		Uptake:         map[string]float64{},
		UptakeUnscaled: map[string]float64{},
	}
}

// Event a recovered mid-run anomaly or expected stress occurrence.
type Event struct {
	Day    int
	Kind   string // numeric_guard | water_stress | growth_signal
	Detail string
}

// Summary run statistics.
type Summary struct {
	Days             int
	TotalWater       float64 // [L]
	AvgWater         float64 // [L/d]
	FinalVolume      float64 // [L]
	AvgETo           float64 // [mm/d]
	AvgTranspiration float64 // [mm/d]
	MaxTemp          float64 // [°C]
	MinTemp          float64 // [°C]
	AvgWUE           float64 // [kg/m³]
	FinalFreshWeight float64 // [g]
	FinalStage       string
}

// Run the complete output of one simulation: the ordered daily sequence,
// its summary, and every advisory record raised along the way.
type Run struct {
	Days    []DayResult
	Summary Summary
	Faults  []uptake.Fault
	Events  []Event
}
