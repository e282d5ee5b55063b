// Package met holds daily weather records and their sources: a synthetic
// generator for greenhouse scenarios and a CSV loader for measured series.
package met

import "time"

// Day one daily weather record.
type Day struct {
	Date     time.Time
	Tavg     float64 // [°C]
	Tmin     float64 // [°C]
	Tmax     float64 // [°C]
	SolarRad float64 // [MJ/m²/d]
	RH       float64 // [%]
	Wind     float64 // [m/s] at 2 m
	Rainfall float64 // [mm] zero under cover
}
