package hpmodel

// BTUPerKWh converts between electrical energy and heat content.
const BTUPerKWh = 3412.0

// ComputeHeatPumpCosts derives the capital and operating costs of the
// replacement heat-pump system. The space-heating column family of the
// row's inactive technology is forced to zero so the totals are plain
// sums; the water heater applies to both technologies.
func ComputeHeatPumpCosts(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		h := &out[i].HeatPumpCost
		yearlyBTU := out[i].Demand.YearlyBTU

		switch out[i].Technology {
		case CCASHP:
			h.CCASHPEquipmentCost = p.CCASHPPrice
			h.CCASHPRebate = p.CCASHPRebateAmount
			h.CCASHPFederalTaxCredit = p.CCASHPFederalCreditAmount
			h.CCASHPNetCost = h.CCASHPEquipmentCost - h.CCASHPRebate - h.CCASHPFederalTaxCredit
			// HSPF2 is BTU per Wh.
			h.CCASHPYearlyKWh = yearlyBTU / (p.CCASHPHSPF2 * 1000)
			h.CCASHPYearlyElectricalCost = h.CCASHPYearlyKWh * p.ElectricityPrice
			h.CCASHPYearlyOperatingCost = h.CCASHPYearlyElectricalCost + p.CCASHPMaintenanceCost
		case GSHP:
			h.GSHPEquipmentCost = p.GSHPPrice
			h.GSHPRebate = p.ZoneGSHPRebate
			h.GSHPNYTaxCredit = min2(h.GSHPEquipmentCost*p.NYGeoTaxCreditRate, p.NYGeoTaxCreditCap)
			h.GSHPFederalTaxCredit = h.GSHPEquipmentCost * p.Federal25DRate
			// Incentives can exceed the gross cost in heavily subsidized
			// territories; the net cost never goes negative.
			net := h.GSHPEquipmentCost - h.GSHPRebate - h.GSHPNYTaxCredit - h.GSHPFederalTaxCredit
			if net < 0 {
				net = 0
			}
			h.GSHPNetCost = net
			h.GSHPYearlyKWh = yearlyBTU / (p.GSHPCOP * BTUPerKWh)
			h.GSHPYearlyElectricalCost = h.GSHPYearlyKWh * p.ElectricityPrice
			h.GSHPYearlyOperatingCost = h.GSHPYearlyElectricalCost + p.GSHPMaintenanceCost
		}

		h.HPWHDeviceCost = p.HPWHPrice
		h.HPWHRebate = p.ZoneHPWHRebate
		h.HPWHNetCost = h.HPWHDeviceCost - h.HPWHRebate
		h.HPWHYearlyKWh = p.HPWHDailyKWh * 365
		h.HPWHYearlyElectricalCost = h.HPWHYearlyKWh * p.ElectricityPrice
		h.HPWHYearlyOperatingCost = h.HPWHYearlyElectricalCost + p.HPWHMaintenanceCost

		if out[i].Technology == CCASHP {
			h.HPEquipmentTotal = h.CCASHPNetCost + h.HPWHNetCost
			h.HPYearlyOperatingTotal = h.CCASHPYearlyOperatingCost + h.HPWHYearlyOperatingCost
		} else {
			h.HPEquipmentTotal = h.GSHPNetCost + h.HPWHNetCost
			h.HPYearlyOperatingTotal = h.GSHPYearlyOperatingCost + h.HPWHYearlyOperatingCost
		}
	}
	return out
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
