package hpmodel

// Overrides maps a (fuel, zone) pair to parameter substitutions applied
// to every scenario row matching that pair, across all technologies.
// Parameter names use the same snake_case spelling as the configuration
// files. Names that don't correspond to an input parameter are silently
// ignored, so an override aimed at a column a later revision introduces
// passes through harmlessly; a key that matches no row is equally not an
// error.
type Overrides map[Key]map[string]float64

// paramSetters maps override parameter names to Params field setters.
// Only input parameters are overridable: derived columns are recomputed
// by their stage from the (possibly overridden) inputs.
var paramSetters = map[string]func(*Params, float64){
	"floor_area_sf":                       func(p *Params, v float64) { p.FloorAreaSF = v },
	"stories":                             func(p *Params, v float64) { p.Stories = v },
	"wall_height_ft":                      func(p *Params, v float64) { p.WallHeightFt = v },
	"window_door_pct":                     func(p *Params, v float64) { p.WindowDoorPct = v },
	"above_grade_basement_wall_height_ft": func(p *Params, v float64) { p.AboveGradeBasementWallHeightFt = v },
	"below_grade_basement_wall_height_ft": func(p *Params, v float64) { p.BelowGradeBasementWallHeightFt = v },
	"r_attic":                             func(p *Params, v float64) { p.RAttic = v },
	"r_walls":                             func(p *Params, v float64) { p.RWalls = v },
	"r_windows_doors":                     func(p *Params, v float64) { p.RWindowsDoors = v },
	"r_basement_wall":                     func(p *Params, v float64) { p.RBasementWall = v },
	"slab_f_factor":                       func(p *Params, v float64) { p.SlabFFactor = v },
	"ach50":                               func(p *Params, v float64) { p.ACH50 = v },
	"hdd":                                 func(p *Params, v float64) { p.HDD = v },

	"mortgage_rate":           func(p *Params, v float64) { p.MortgageRate = v },
	"mortgage_term_years":     func(p *Params, v float64) { p.MortgageTermYears = v },
	"discount_rate":           func(p *Params, v float64) { p.DiscountRate = v },
	"analysis_period_years":   func(p *Params, v float64) { p.AnalysisPeriodYears = v },
	"indoor_design_temp_f":    func(p *Params, v float64) { p.IndoorDesignTempF = v },
	"sizing_scale_up_factor":  func(p *Params, v float64) { p.SizingScaleUpFactor = v },
	"internal_heat_gains_btu": func(p *Params, v float64) { p.InternalHeatGainsBTU = v },
	"epa_hdd_adjustment":      func(p *Params, v float64) { p.EPAHDDAdjustment = v },
	"propane_tank_cost":       func(p *Params, v float64) { p.PropaneTankCost = v },

	"ny_geo_tax_credit_rate":    func(p *Params, v float64) { p.NYGeoTaxCreditRate = v },
	"ny_geo_tax_credit_cap":     func(p *Params, v float64) { p.NYGeoTaxCreditCap = v },
	"federal_25d_rate":          func(p *Params, v float64) { p.Federal25DRate = v },
	"ccashp_rebate":             func(p *Params, v float64) { p.CCASHPRebateAmount = v },
	"ccashp_federal_tax_credit": func(p *Params, v float64) { p.CCASHPFederalCreditAmount = v },

	"furnace_afue":                   func(p *Params, v float64) { p.FurnaceAFUE = v },
	"ccashp_hspf2":                   func(p *Params, v float64) { p.CCASHPHSPF2 = v },
	"gshp_cop":                       func(p *Params, v float64) { p.GSHPCOP = v },
	"furnace_maintenance_cost":       func(p *Params, v float64) { p.FurnaceMaintenanceCost = v },
	"ac_maintenance_cost":            func(p *Params, v float64) { p.ACMaintenanceCost = v },
	"gwh_maintenance_cost":           func(p *Params, v float64) { p.GWHMaintenanceCost = v },
	"ccashp_maintenance_cost":        func(p *Params, v float64) { p.CCASHPMaintenanceCost = v },
	"gshp_maintenance_cost":          func(p *Params, v float64) { p.GSHPMaintenanceCost = v },
	"hpwh_maintenance_cost":          func(p *Params, v float64) { p.HPWHMaintenanceCost = v },
	"natural_gas_btu_per_mcf":        func(p *Params, v float64) { p.NaturalGasBTUPerMcf = v },
	"propane_btu_per_gallon":         func(p *Params, v float64) { p.PropaneBTUPerGallon = v },
	"hpwh_daily_kwh":                 func(p *Params, v float64) { p.HPWHDailyKWh = v },
	"gwh_fuel_usage_rate":            func(p *Params, v float64) { p.GWHFuelUsageRate = v },
	"gwh_daily_operating_hours":      func(p *Params, v float64) { p.GWHDailyOperatingHours = v },
	"furnace_electrical_usage_kwh_per_mmbtu": func(p *Params, v float64) { p.FurnaceElectricalKWhPerMMBTU = v },

	"electricity_price": func(p *Params, v float64) { p.ElectricityPrice = v },
	"fuel_price":        func(p *Params, v float64) { p.FuelPrice = v },

	"furnace_price": func(p *Params, v float64) { p.FurnacePrice = v },
	"ac_price":      func(p *Params, v float64) { p.ACPrice = v },
	"gwh_price":     func(p *Params, v float64) { p.GWHPrice = v },
	"hpwh_price":    func(p *Params, v float64) { p.HPWHPrice = v },
	"ccashp_price":  func(p *Params, v float64) { p.CCASHPPrice = v },
	"gshp_price":    func(p *Params, v float64) { p.GSHPPrice = v },

	"coldest_day_temp_f":     func(p *Params, v float64) { p.ColdestDayTempF = v },
	"zone_service_line_cost": func(p *Params, v float64) { p.ZoneServiceLineCost = v },
	"zone_hpwh_rebate":       func(p *Params, v float64) { p.ZoneHPWHRebate = v },
	"zone_gshp_rebate":       func(p *Params, v float64) { p.ZoneGSHPRebate = v },
}

// ApplyOverrides returns a copy of rows with the overrides applied. Rows
// whose (fuel, zone) pair has no entry pass through unchanged.
func ApplyOverrides(rows []Scenario, ov Overrides) []Scenario {
	out := append([]Scenario(nil), rows...)
	if len(ov) == 0 {
		return out
	}
	for i := range out {
		params, ok := ov[Key{Fuel: out[i].Fuel, Zone: out[i].Zone}]
		if !ok {
			continue
		}
		for name, value := range params {
			if set, ok := paramSetters[name]; ok {
				set(&out[i].Params, value)
			}
		}
	}
	return out
}
