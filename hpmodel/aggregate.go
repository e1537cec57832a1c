package hpmodel

import "gonum.org/v1/gonum/stat"

// WeightScenarios attaches the survey and census weights to each row.
// The weights depend only on the row's (fuel, zone) pair, so both
// technology rows of a pair carry identical weights.
func (m *Model) WeightScenarios(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		sw := m.surveyWeights[Key{Fuel: out[i].Fuel, Zone: out[i].Zone}]
		w := &out[i].Weights
		w.SurveyCount = sw.count
		w.TotalFFSurveyResponses = sw.totalFF
		w.PctFFUsingFuel = sw.count / sw.totalFF
		w.PctNewConstructionInZone = m.zoneShares[out[i].Zone]
		w.PctNewConstructionFuelZone = w.PctFFUsingFuel * w.PctNewConstructionInZone
	}
	return out
}

// Aggregates rolls the weighted yearly savings up per technology: one
// row per fuel (weighted across zones by new-construction share), one
// per zone (weighted across fuels by survey share), and one overall row
// (weighted by the product of the two). Rows must already carry weights
// from WeightScenarios.
//
// The overall row's present value is recomputed from the aggregated
// yearly savings over the analysis period rather than averaging the
// per-scenario present values; the two agree while the discount rate is
// uniform, and the aggregate-first ordering is the one the published
// figures use.
func (m *Model) Aggregates(rows []Scenario) []Aggregate {
	var aggs []Aggregate
	for _, tech := range Technologies {
		var techRows []Scenario
		for _, r := range rows {
			if r.Technology == tech {
				techRows = append(techRows, r)
			}
		}

		for _, fuel := range Fuels {
			var vals, weights []float64
			for _, r := range techRows {
				if r.Fuel == fuel {
					vals = append(vals, r.TotalYearlySavingsWithServiceLine)
					weights = append(weights, r.PctNewConstructionInZone)
				}
			}
			aggs = append(aggs, Aggregate{
				Technology:                   tech,
				Key:                          string(fuel),
				YearlySavingsWithServiceLine: stat.Mean(vals, weights),
			})
		}

		for _, zone := range ZoneList {
			var vals, weights []float64
			for _, r := range techRows {
				if r.Zone == zone {
					vals = append(vals, r.TotalYearlySavingsWithServiceLine)
					weights = append(weights, r.PctFFUsingFuel)
				}
			}
			aggs = append(aggs, Aggregate{
				Technology:                   tech,
				Key:                          string(zone),
				YearlySavingsWithServiceLine: stat.Mean(vals, weights),
			})
		}

		var vals, weights []float64
		for _, r := range techRows {
			vals = append(vals, r.TotalYearlySavingsWithServiceLine)
			weights = append(weights, r.PctNewConstructionFuelZone)
		}
		overall := stat.Mean(vals, weights)
		p := techRows[0].Params
		aggs = append(aggs, Aggregate{
			Technology:                   tech,
			Key:                          OverallKey,
			YearlySavingsWithServiceLine: overall,
			PresentValue:                 overall * AnnuityPV(p.DiscountRate, p.AnalysisPeriodYears),
		})
	}
	return aggs
}
