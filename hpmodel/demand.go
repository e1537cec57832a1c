package hpmodel

// ComputeDemand derives the annual heating demand in BTU. The zone's
// heating degree days are reduced by the EPA adjustment for internal
// gains before being applied to the total heat-loss rate.
func ComputeDemand(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		d := &out[i].Demand

		d.AdjustedHDD = p.HDD - p.EPAHDDAdjustment
		d.YearlyBTU = out[i].HeatLoss.TotalHeatLossRate * d.AdjustedHDD * 24
	}
	return out
}
