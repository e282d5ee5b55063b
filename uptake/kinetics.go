// Package uptake implements saturating-kinetics (Monod) nutrient uptake
// with capacity gating and advisory fault detection.
package uptake

import "github.com/hydrosol/hydrosim/growth"

// Kinetics : Monod parameters for one nutrient at one growth stage
type Kinetics struct {
	Vmax       float64 // maximum uptake rate [mg/g-capacity/day]
	Km         float64 // half-saturation constant [mg/L]
	MinConc    float64 // no uptake below [mg/L]
	MaxConc    float64 // luxury-consumption damping above [mg/L]
	Efficiency float64 // stage-specific efficiency 0–1
}

// Table maps nutrient ID × growth stage to its kinetics.
type Table map[string]map[growth.Stage]Kinetics

// DefaultTable returns the stage-resolved kinetics for the standard
// five-ion solution.
func DefaultTable() Table {
	return Table{
		"N-NO3": {
			growth.Establishment: {Vmax: 0.45, Km: 18., MinConc: 5., MaxConc: 250., Efficiency: 0.7},
			growth.Exponential:   {Vmax: 1.2, Km: 12., MinConc: 10., MaxConc: 300., Efficiency: 0.95},
			growth.Maturation:    {Vmax: 0.6, Km: 22., MinConc: 8., MaxConc: 200., Efficiency: 0.8},
		},
		"P-PO4": {
			growth.Establishment: {Vmax: 0.12, Km: 8., MinConc: 2., MaxConc: 60., Efficiency: 0.6},
			growth.Exponential:   {Vmax: 0.28, Km: 6., MinConc: 3., MaxConc: 80., Efficiency: 0.85},
			growth.Maturation:    {Vmax: 0.15, Km: 10., MinConc: 2.5, MaxConc: 50., Efficiency: 0.7},
		},
		"K": {
			growth.Establishment: {Vmax: 0.35, Km: 25., MinConc: 10., MaxConc: 350., Efficiency: 0.8},
			growth.Exponential:   {Vmax: 0.75, Km: 20., MinConc: 15., MaxConc: 400., Efficiency: 0.9},
			growth.Maturation:    {Vmax: 0.85, Km: 18., MinConc: 12., MaxConc: 350., Efficiency: 0.95},
		},
		"Ca": {
			growth.Establishment: {Vmax: 0.18, Km: 15., MinConc: 5., MaxConc: 180., Efficiency: 0.65},
			growth.Exponential:   {Vmax: 0.42, Km: 12., MinConc: 8., MaxConc: 200., Efficiency: 0.8},
			growth.Maturation:    {Vmax: 0.25, Km: 18., MinConc: 6., MaxConc: 160., Efficiency: 0.7},
		},
		"Mg": {
			growth.Establishment: {Vmax: 0.08, Km: 8., MinConc: 2., MaxConc: 55., Efficiency: 0.7},
			growth.Exponential:   {Vmax: 0.15, Km: 6., MinConc: 3., MaxConc: 70., Efficiency: 0.85},
			growth.Maturation:    {Vmax: 0.10, Km: 10., MinConc: 2.5, MaxConc: 50., Efficiency: 0.75},
		},
	}
}
