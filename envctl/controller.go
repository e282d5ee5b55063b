package envctl

import (
	"fmt"
	"math"
)

// Setpoints target aerial conditions.
type Setpoints struct {
	TargetVPD    float64 `yaml:"target_vpd"`    // [kPa]
	VPDTolerance float64 `yaml:"vpd_tolerance"` // [kPa]
	MinHumidity  float64 `yaml:"min_humidity"`  // [%]
	MaxHumidity  float64 `yaml:"max_humidity"`  // [%]
	TargetCO2    float64 `yaml:"target_co2"`    // [μmol/mol] photoperiod enrichment
	AmbientCO2   float64 `yaml:"ambient_co2"`   // [μmol/mol]
	CO2Tolerance float64 `yaml:"co2_tolerance"` // [μmol/mol]
	LightHours   float64 `yaml:"light_hours"`   // [h/d]
}

// DefaultSetpoints lettuce production targets.
func DefaultSetpoints() Setpoints {
	return Setpoints{
		TargetVPD:    .8,
		VPDTolerance: .1,
		MinHumidity:  60.,
		MaxHumidity:  80.,
		TargetCO2:    1200.,
		AmbientCO2:   400.,
		CO2Tolerance: 100.,
		LightHours:   16.,
	}
}

// Gains PID tuning per control loop.
type Gains struct{ Kp, Ki, Kd float64 }

// State accumulated controller terms. A zero State is a freshly reset
// controller; callers hold the record and pass it back each step.
type State struct {
	HumidityIntegral float64
	HumidityPrevErr  float64
	CO2Integral      float64
	CO2PrevErr       float64
}

// Actions the actuation decided for one step, with its energy draw.
type Actions struct {
	HumidifierPower   float64 // [% of capacity]
	DehumidifierPower float64 // [% of capacity]
	CO2Injection      float64 // [μmol/mol/min]
	VentilationBoost  float64 // [air changes/h added]
	EnergyKWh         float64
	CO2CostPerHour    float64
	HumidityAction    string
	CO2Action         string
	Priority          string
}

// Controller proportional-integral-derivative steering of humidity and CO2.
type Controller struct {
	Set      Setpoints
	Humidity Gains
	CO2      Gains

	MaxInjection    float64 // [μmol/mol/min]
	ElectricityCost float64 // [$/kWh]
}

// NewController with lettuce gains.
func NewController(sp Setpoints) *Controller {
	return &Controller{
		Set:             sp,
		Humidity:        Gains{Kp: 2., Ki: .5, Kd: .1},
		CO2:             Gains{Kp: 1.5, Ki: .3, Kd: .05},
		MaxInjection:    50.,
		ElectricityCost: .12,
	}
}

// Step evaluates one control interval against the observed conditions and
// returns the actuation together with the successor state. The input state
// is not modified.
func (c *Controller) Step(st State, tc, rh, co2 float64, lightOn bool) (Actions, State) {
	var a Actions
	ns := st

	// humidity loop tracks the RH that realizes the target VPD
	targetRH := OptimalHumidity(tc, c.Set.TargetVPD)
	herr := targetRH - rh
	ns.HumidityIntegral += herr
	hout := c.Humidity.Kp*herr + c.Humidity.Ki*ns.HumidityIntegral + c.Humidity.Kd*(herr-st.HumidityPrevErr)
	ns.HumidityPrevErr = herr
	switch {
	case hout > 5.:
		p := math.Min(100., hout)
		a.HumidifierPower = p
		a.EnergyKWh += p * .005
		a.HumidityAction = fmt.Sprintf("humidify_%.1f%%", p)
	case hout < -5.:
		p := math.Min(100., -hout)
		a.DehumidifierPower = p
		a.EnergyKWh += p * .012
		a.HumidityAction = fmt.Sprintf("dehumidify_%.1f%%", p)
	default:
		a.EnergyKWh += .1 // circulation baseline
		a.HumidityAction = "maintain"
	}

	// CO2 enrichment only pays during the photoperiod
	targetCO2 := c.Set.TargetCO2
	if !lightOn {
		targetCO2 = c.Set.AmbientCO2
	}
	cerr := targetCO2 - co2
	ns.CO2Integral += cerr
	cout := c.CO2.Kp*cerr + c.CO2.Ki*ns.CO2Integral + c.CO2.Kd*(cerr-st.CO2PrevErr)
	ns.CO2PrevErr = cerr
	switch {
	case cerr > c.Set.CO2Tolerance && lightOn:
		inj := math.Min(c.MaxInjection, math.Max(0., cout*.5))
		a.CO2Injection = inj
		a.EnergyKWh += .05
		a.CO2CostPerHour = inj * .001 * 60. * .002
		a.CO2Action = fmt.Sprintf("inject_%.1f", inj)
	case cerr < -c.Set.CO2Tolerance:
		v := math.Min(2., -cerr/100.)
		a.VentilationBoost = v
		a.EnergyKWh += v * .1
		a.CO2Action = fmt.Sprintf("ventilate_%.1fx", v)
	default:
		a.EnergyKWh += .02
		a.CO2Action = "maintain"
	}

	a.Priority = c.priority(VPD(tc, rh), co2, lightOn)
	return a, ns
}

func (c *Controller) priority(vpd, co2 float64, lightOn bool) string {
	verr := math.Abs(vpd - c.Set.TargetVPD)
	cerr := 0.
	if lightOn {
		cerr = math.Abs(co2 - c.Set.TargetCO2)
	}
	switch {
	case verr > c.Set.VPDTolerance*2.:
		return "vpd_control_critical"
	case cerr > c.Set.CO2Tolerance*2.:
		return "co2_enrichment_critical"
	case verr > c.Set.VPDTolerance:
		return "vpd_optimization"
	case cerr > c.Set.CO2Tolerance:
		return "co2_optimization"
	default:
		return "maintain_conditions"
	}
}

// Apply folds the actuation back into next-day ambient conditions. Humidity
// drifts toward the window bounds under actuation; CO2 relaxes to the
// enrichment target while injecting and decays toward ambient otherwise.
func (c *Controller) Apply(a Actions, rh, co2 float64) (float64, float64) {
	switch {
	case a.HumidifierPower > 0.:
		rh += a.HumidifierPower * .05
	case a.DehumidifierPower > 0.:
		rh -= a.DehumidifierPower * .05
	}
	rh = math.Max(c.Set.MinHumidity, math.Min(c.Set.MaxHumidity, rh))

	switch {
	case a.CO2Injection > 0.:
		co2 += a.CO2Injection * 10.
		if co2 > c.Set.TargetCO2 {
			co2 = c.Set.TargetCO2
		}
	case a.VentilationBoost > 0.:
		co2 -= a.VentilationBoost * 100.
	default:
		co2 += (c.Set.AmbientCO2 - co2) * .25
	}
	if co2 < c.Set.AmbientCO2 {
		co2 = c.Set.AmbientCO2
	}
	return rh, co2
}
