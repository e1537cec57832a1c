package hpmodel

// ComputeBaselineCosts derives the capital and operating costs of the
// incumbent fossil-fuel system. Baseline costs do not depend on the
// row's heat-pump technology: the system being replaced is the same
// whichever heat pump replaces it.
func ComputeBaselineCosts(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		b := &out[i].BaselineCost
		yearlyBTU := out[i].Demand.YearlyBTU

		// Furnace. Propane installations also buy a fuel tank, and burn a
		// fuel with a different energy content per delivered unit.
		b.FurnaceEquipmentCost = p.FurnacePrice
		if out[i].Fuel == Propane {
			b.GasTankCost = p.PropaneTankCost
			b.FurnaceYearlyFuelUsage = yearlyBTU / (p.FurnaceAFUE * p.PropaneBTUPerGallon)
		} else {
			b.GasTankCost = 0
			b.FurnaceYearlyFuelUsage = yearlyBTU / (p.FurnaceAFUE * p.NaturalGasBTUPerMcf)
		}
		b.FurnaceInstalledCost = b.FurnaceEquipmentCost + b.GasTankCost
		b.FurnaceYearlyFuelCost = b.FurnaceYearlyFuelUsage * p.FuelPrice
		// Blower electricity scales with delivered heat.
		b.FurnaceYearlyElectricalKWh = yearlyBTU / 1e6 * p.FurnaceElectricalKWhPerMMBTU
		b.FurnaceYearlyElectricalCost = b.FurnaceYearlyElectricalKWh * p.ElectricityPrice
		b.FurnaceYearlyOperatingCost = b.FurnaceYearlyFuelCost + b.FurnaceYearlyElectricalCost + p.FurnaceMaintenanceCost

		// Central AC. Cooling energy is out of scope, so operating cost is
		// maintenance alone.
		b.ACEquipmentCost = p.ACPrice
		b.ACYearlyOperatingCost = p.ACMaintenanceCost

		// Gas water heater.
		b.GWHEquipmentCost = p.GWHPrice
		b.GWHYearlyFuelUsage = p.GWHFuelUsageRate * p.GWHDailyOperatingHours * 365
		b.GWHYearlyFuelCost = b.GWHYearlyFuelUsage * p.FuelPrice
		b.GWHYearlyOperatingCost = b.GWHYearlyFuelCost + p.GWHMaintenanceCost

		// Gas service line. Propane homes have no gas service to hook up.
		if out[i].Fuel == Propane {
			b.ServiceLineCost = 0
		} else {
			b.ServiceLineCost = p.ZoneServiceLineCost
		}

		b.BaselineEquipmentTotal = b.FurnaceInstalledCost + b.ACEquipmentCost + b.GWHEquipmentCost
		b.BaselineEquipmentWithServiceLine = b.BaselineEquipmentTotal + b.ServiceLineCost
		b.BaselineYearlyOperating = b.FurnaceYearlyOperatingCost + b.ACYearlyOperatingCost + b.GWHYearlyOperatingCost
	}
	return out
}
