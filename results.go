package hydrosim

import (
	"sort"
	"strings"

	"github.com/maseology/mmio"
)

func (m *Simulator) summarize(ds []DayResult) Summary {
	s := Summary{Days: len(ds)}
	if len(ds) == 0 {
		return s
	}
	s.MaxTemp, s.MinTemp = ds[0].Tmax, ds[0].Tmin
	for _, d := range ds {
		s.TotalWater += d.WaterUptake
		s.AvgETo += d.ETo
		s.AvgTranspiration += d.Transpiration
		s.AvgWUE += d.WUE
		if d.Tmax > s.MaxTemp {
			s.MaxTemp = d.Tmax
		}
		if d.Tmin < s.MinTemp {
			s.MinTemp = d.Tmin
		}
	}
	n := float64(len(ds))
	s.AvgWater = s.TotalWater / n
	s.AvgETo /= n
	s.AvgTranspiration /= n
	s.AvgWUE /= n
	last := ds[len(ds)-1]
	s.FinalVolume = last.TankVolume
	s.FinalFreshWeight = last.FreshWeight
	s.FinalStage = last.Stage
	return s
}

// speciesIDs in stable order, from the first day's concentration map.
func (r *Run) speciesIDs() []string {
	if len(r.Days) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.Days[0].Conc))
	for id := range r.Days[0].Conc {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Header the flat per-day field enumeration matching Record.
func (r *Run) Header() []string {
	h := []string{
		"day", "date", "stage",
		"tavg", "tmin", "tmax", "srad", "rh", "wind",
		"netrad", "eto", "etc", "transpiration", "demand_L", "uptake_L", "water_stress", "volume_L", "wue",
		"ec", "ph", "solution_temp",
		"vpd", "transp_factor", "photo_factor", "co2_factor", "co2", "env_factor", "rzt_factor", "stress_level", "energy_kwh",
		"lai", "height", "kcb", "phi", "gdd",
		"assim", "dry_g", "fresh_g", "root_g", "root_cm2", "root_health", "capacity",
	}
	for _, id := range r.speciesIDs() {
		h = append(h, "conc_"+id)
	}
	for _, id := range r.speciesIDs() {
		h = append(h, "uptake_"+id)
	}
	return h
}

// Record flattens one day in Header order.
func (r *Run) Record(d DayResult) []interface{} {
	rec := []interface{}{
		d.Day, d.Date.Format("2006-01-02"), d.Stage,
		d.Tavg, d.Tmin, d.Tmax, d.SolarRad, d.RH, d.Wind,
		d.NetRadiation, d.ETo, d.ETc, d.Transpiration, d.WaterDemand, d.WaterUptake, d.WaterStress, d.TankVolume, d.WUE,
		d.EC, d.PH, d.SolutionTemp,
		d.VPD, d.TranspF, d.PhotoF, d.CO2F, d.CO2, d.EnvFactor, d.RZTFactor, d.StressLevel, d.EnergyKWh,
		d.LAI, d.Height, d.Kcb, d.Phi, d.GDD,
		d.Assimilation, d.TotalDry, d.FreshWeight, d.RootMass, d.RootSurface, d.RootHealth, d.UptakeCapacity,
	}
	for _, id := range r.speciesIDs() {
		rec = append(rec, d.Conc[id])
	}
	for _, id := range r.speciesIDs() {
		rec = append(rec, d.Uptake[id])
	}
	return rec
}

// WriteCSV dumps the daily sequence column-wise.
func (r *Run) WriteCSV(fp string) {
	h := r.Header()
	cols := make([][]interface{}, len(h))
	for j := range cols {
		cols[j] = make([]interface{}, len(r.Days))
	}
	for i, d := range r.Days {
		rec := r.Record(d)
		for j, v := range rec {
			cols[j][i] = v
		}
	}
	mmio.WriteCSV(fp, strings.Join(h, ","), cols...)
}
