package met

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/maseology/mmio"
)

var requiredCols = []string{"date", "temp_avg", "temp_min", "temp_max", "solar_radiation", "rel_humidity", "wind_speed"}

// LoadCSV reads a daily weather series. The file must carry a header row
// with the required columns; rainfall is optional and defaults to zero.
// Records are returned in date order.
func LoadCSV(fp string) ([]Day, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("met.LoadCSV: file not found: %s", fp)
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("met.LoadCSV: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("met.LoadCSV: %v", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("met.LoadCSV: %s holds no records", fp)
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[h] = i
	}
	for _, c := range requiredCols {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("met.LoadCSV: missing required column %q", c)
		}
	}
	irain, hasRain := col["rainfall"]

	get := func(row []string, c string, ln int) (float64, error) {
		v, err := strconv.ParseFloat(row[col[c]], 64)
		if err != nil {
			return 0., fmt.Errorf("met.LoadCSV: line %d column %q: %v", ln, c, err)
		}
		return v, nil
	}

	ds := make([]Day, 0, len(rows)-1)
	for i, row := range rows[1:] {
		ln := i + 2
		dt, err := time.Parse("2006-01-02", row[col["date"]])
		if err != nil {
			return nil, fmt.Errorf("met.LoadCSV: line %d: %v", ln, err)
		}
		d := Day{Date: dt}
		if d.Tavg, err = get(row, "temp_avg", ln); err != nil {
			return nil, err
		}
		if d.Tmin, err = get(row, "temp_min", ln); err != nil {
			return nil, err
		}
		if d.Tmax, err = get(row, "temp_max", ln); err != nil {
			return nil, err
		}
		if d.SolarRad, err = get(row, "solar_radiation", ln); err != nil {
			return nil, err
		}
		if d.RH, err = get(row, "rel_humidity", ln); err != nil {
			return nil, err
		}
		if d.Wind, err = get(row, "wind_speed", ln); err != nil {
			return nil, err
		}
		if hasRain {
			if d.Rainfall, err = strconv.ParseFloat(row[irain], 64); err != nil {
				return nil, fmt.Errorf("met.LoadCSV: line %d column %q: %v", ln, "rainfall", err)
			}
		}
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].Date.Before(ds[j].Date) })
	return ds, nil
}
