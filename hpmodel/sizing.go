package hpmodel

// ComputeSizing derives the design-day heating load and the installed
// system capacity. The load on the coldest day adds internal heat gains
// back, and the capacity scales the load up by the sizing factor.
func ComputeSizing(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		sz := &out[i].Sizing

		sz.DegreeDiffColdestDay = p.IndoorDesignTempF - p.ColdestDayTempF
		sz.BTUPerHourColdestDay = out[i].HeatLoss.TotalHeatLossRate*sz.DegreeDiffColdestDay + p.InternalHeatGainsBTU
		sz.SystemCapacityBTUPerHour = sz.BTUPerHourColdestDay * p.SizingScaleUpFactor
	}
	return out
}
