package hydrosim

import (
	"fmt"
	"os"

	"github.com/hydrosol/hydrosim/envctl"
	"github.com/hydrosol/hydrosim/plant"
	"github.com/hydrosol/hydrosim/roots"
	"github.com/hydrosol/hydrosim/solution"
	"github.com/hydrosol/hydrosim/uptake"
	"gopkg.in/yaml.v3"
)

// SystemConfig physical description of the recirculating system, immutable
// per run.
type SystemConfig struct {
	TankVolume     float64 `yaml:"tank_volume"`     // [L]
	FloorVolume    float64 `yaml:"floor_volume"`    // [L] reserved for circulation
	FlowRate       float64 `yaml:"flow_rate"`       // [L/min]
	SystemType     string  `yaml:"system_type"`     // NFT | DWC | AEROPONICS
	Area           float64 `yaml:"area"`            // [m²] growing area
	Plants         int     `yaml:"plants"`          // plant count
	SeedlingWeight float64 `yaml:"seedling_weight"` // [g] fresh weight per transplant
	Elevation      float64 `yaml:"elevation"`       // [m asl]
}

// CropParams static canopy description, used when dynamic growth is off.
type CropParams struct {
	Kcb       float64 `yaml:"kcb"`
	Phi       float64 `yaml:"phi"` // density index
	Height    float64 `yaml:"height"`
	RootDepth float64 `yaml:"root_depth"`
	LAI       float64 `yaml:"lai"`
}

// Config the full run description. Every field carries a default; Default()
// builds a runnable lettuce NFT configuration.
type Config struct {
	System SystemConfig `yaml:"system"`
	Crop   CropParams   `yaml:"crop"`

	DynamicGrowth     bool `yaml:"dynamic_growth"`
	MechanisticUptake bool `yaml:"mechanistic_uptake"`
	ThermalTime       bool `yaml:"thermal_time"`
	EnvControl        bool `yaml:"env_control"`

	Days       int  `yaml:"days"`
	MatureStop bool `yaml:"mature_stop"`
	MaxDays    int  `yaml:"max_days"`

	ETMethod    string  `yaml:"et_method"`    // penman | makkink
	ECIntercept float64 `yaml:"ec_intercept"` // [dS/m]
	ECSlope     float64 `yaml:"ec_slope"`     // [dS/m per meq/L]

	Species []solution.Species `yaml:"species"` // empty selects the default set

	// kernel tunables; nil selects the package defaults
	Alloc     *plant.AllocParams `yaml:"-"`
	Photo     *plant.PhotoParams `yaml:"-"`
	Setpoints *envctl.Setpoints  `yaml:"-"`
	Kinetics  uptake.Table       `yaml:"-"`
}

// Default lettuce NFT configuration, 30 calendar days, every submodel on.
func Default() Config {
	return Config{
		System: SystemConfig{
			TankVolume:     100.,
			FloorVolume:    1.,
			FlowRate:       2.,
			SystemType:     "NFT",
			Area:           10.,
			Plants:         24,
			SeedlingWeight: 5.,
			Elevation:      100.,
		},
		Crop: CropParams{
			Kcb:       .85,
			Phi:       .9,
			Height:    .25,
			RootDepth: .25,
			LAI:       3.,
		},
		DynamicGrowth:     true,
		MechanisticUptake: true,
		EnvControl:        true,
		Days:              30,
		MaxDays:           120,
		ETMethod:          "penman",
		ECIntercept:       0.,
		ECSlope:           .1,
		Species:           solution.DefaultSpecies(),
	}
}

// LoadConfig reads a YAML run description over the defaults.
func LoadConfig(fp string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(fp)
	if err != nil {
		return cfg, fmt.Errorf("hydrosim.LoadConfig: %v", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("hydrosim.LoadConfig: %v", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects unrunnable configurations before any day simulates.
func (c *Config) Validate() error {
	if c.System.TankVolume <= 0. {
		return &ConfigError{"system.tank_volume", "must be positive"}
	}
	if c.System.FloorVolume < 0. || c.System.FloorVolume >= c.System.TankVolume {
		return &ConfigError{"system.floor_volume", "must be non-negative and below tank volume"}
	}
	if c.System.Area <= 0. {
		return &ConfigError{"system.area", "must be positive"}
	}
	if c.System.Plants <= 0 {
		return &ConfigError{"system.plants", "must be positive"}
	}
	if c.System.SeedlingWeight <= 0. {
		return &ConfigError{"system.seedling_weight", "must be positive"}
	}
	if _, ok := roots.ParseKind(c.System.SystemType); !ok {
		return &ConfigError{"system.system_type", fmt.Sprintf("unknown system type %q", c.System.SystemType)}
	}
	switch c.ETMethod {
	case "penman", "makkink":
	default:
		return &ConfigError{"et_method", fmt.Sprintf("unknown method %q", c.ETMethod)}
	}
	if c.MatureStop {
		if c.MaxDays <= 0 {
			return &TerminationError{"maturity termination requires a positive max_days safety bound"}
		}
	} else if c.Days <= 0 {
		return &ConfigError{"days", "must be positive when maturity termination is off"}
	}
	if len(c.Species) == 0 {
		return &ConfigError{"species", "at least one nutrient species required"}
	}
	seen := map[string]bool{}
	for _, sp := range c.Species {
		if sp.ID == "" {
			return &ConfigError{"species", "species with empty id"}
		}
		if seen[sp.ID] {
			return &ConfigError{"species", "duplicate species " + sp.ID}
		}
		seen[sp.ID] = true
		if sp.MolarMass <= 0. {
			return &ConfigError{"species." + sp.ID, "molar mass must be positive"}
		}
		if sp.Initial < 0. || sp.Min < 0. || sp.Max < sp.Min {
			return &ConfigError{"species." + sp.ID, "concentration bounds out of order"}
		}
	}
	if c.ECSlope < 0. {
		return &ConfigError{"ec_slope", "must be non-negative"}
	}
	return nil
}

// nDays the run bound: configured day count, or the safety cap while
// waiting on maturity.
func (c *Config) nDays() int {
	if c.MatureStop {
		if c.Days > 0 && c.Days < c.MaxDays {
			return c.Days
		}
		return c.MaxDays
	}
	return c.Days
}
