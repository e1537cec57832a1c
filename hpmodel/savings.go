package hpmodel

import "math"

// Pmt returns the yearly payment on a loan of the given principal, with
// annual compounding over n years. The underlying spreadsheet finances
// equipment on the mortgage this way, so the model does too.
func Pmt(rate, principal, nYears float64) float64 {
	return rate * principal / (1 - math.Pow(1+rate, -nYears))
}

// AnnuityPV returns the present-value factor of a yearly payment stream
// over n years at the given discount rate.
func AnnuityPV(rate, nYears float64) float64 {
	return (1 - math.Pow(1+rate, -nYears)) / rate
}

// ComputeSavings derives the construction, mortgage and operating cost
// deltas between the baseline and heat-pump systems, plus their present
// value over the analysis period. Positive values mean the heat pump is
// cheaper.
func ComputeSavings(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		b := &out[i].BaselineCost
		h := &out[i].HeatPumpCost
		sv := &out[i].Savings

		sv.ConstructionSavings = b.BaselineEquipmentTotal - h.HPEquipmentTotal
		sv.ConstructionSavingsWithServiceLine = b.BaselineEquipmentWithServiceLine - h.HPEquipmentTotal

		hpPmt := Pmt(p.MortgageRate, h.HPEquipmentTotal, p.MortgageTermYears)
		sv.MortgageSavings = Pmt(p.MortgageRate, b.BaselineEquipmentTotal, p.MortgageTermYears) - hpPmt
		sv.MortgageSavingsWithServiceLine = Pmt(p.MortgageRate, b.BaselineEquipmentWithServiceLine, p.MortgageTermYears) - hpPmt

		sv.OperatingSavings = b.BaselineYearlyOperating - h.HPYearlyOperatingTotal
		sv.TotalYearlySavings = sv.MortgageSavings + sv.OperatingSavings
		sv.TotalYearlySavingsWithServiceLine = sv.MortgageSavingsWithServiceLine + sv.OperatingSavings

		sv.PresentValue15Yr = sv.TotalYearlySavingsWithServiceLine * AnnuityPV(p.DiscountRate, p.AnalysisPeriodYears)
	}
	return out
}
