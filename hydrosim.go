// hydrosim: a daily-timestep simulation engine for recirculating hydroponic
// crop production. The engine couples water uptake (FAO-56 evapotranspiration),
// nutrient-solution chemistry under strict mass balance, saturating-kinetics
// nutrient uptake, phenology-driven canopy development, carbon allocation,
// root-system dynamics and aerial environment control through one strictly
// sequential daily loop. A run either fails fast at setup or completes with
// a full ordered result sequence; mid-run numeric anomalies clamp to floors
// and surface as diagnostics.
package hydrosim
