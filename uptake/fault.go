package uptake

import (
	"math"
	"sort"

	"github.com/hydrosol/hydrosim/growth"
)

// Fault : a non-fatal advisory record. Faults are surfaced, never acted on.
type Fault struct {
	Day      int
	Nutrient string
	Kind     string
}

const (
	predictionErrThresh = 0.25 // relative error
	depletionDaysThresh = 5.0
)

// Detect compares the predicted post-uptake concentration trajectory with
// the realized one and screens against the stage reference bounds. It only
// reports; computation is never altered. Faults come back in nutrient-ID
// order so runs reproduce exactly.
func Detect(day int, predicted, actual map[string]float64, diags map[string]Diag, tbl Table) []Fault {
	ids := make([]string, 0, len(predicted))
	for id := range predicted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var fs []Fault
	for _, id := range ids {
		p := predicted[id]
		a, ok := actual[id]
		if !ok {
			continue
		}
		if p > 0 && math.Abs(p-a)/p > predictionErrThresh {
			fs = append(fs, Fault{Day: day, Nutrient: id, Kind: "prediction_error"})
		}
		if d, ok := diags[id]; ok && d.DepletionDays < depletionDaysThresh {
			fs = append(fs, Fault{Day: day, Nutrient: id, Kind: "rapid_depletion"})
		}
		if stages, ok := tbl[id]; ok {
			ref := stages[growth.Exponential]
			if a < ref.MinConc {
				fs = append(fs, Fault{Day: day, Nutrient: id, Kind: "deficiency"})
			} else if a > ref.MaxConc*1.5 {
				fs = append(fs, Fault{Day: day, Nutrient: id, Kind: "excess"})
			}
		}
	}
	return fs
}
