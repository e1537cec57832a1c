package hpmodel

import (
	"fmt"

	"github.com/switchbox-data/reports2/hpconfig"
)

// Model holds a validated configuration together with the zone-blended
// county averages the pipeline needs. Building a Model performs every
// lookup that can fail, so the stage functions themselves never return
// errors.
type Model struct {
	cfg *hpconfig.Config

	zoneTemps       map[Zone]float64
	zoneServiceLine map[Zone]float64
	zoneHPWHRebate  map[Zone]float64
	zoneGSHPRebate  map[Zone]float64
	zoneShares      map[Zone]float64
	surveyWeights   map[Key]surveyWeight

	gshpTons float64
}

// NewModel builds a Model from cfg, computing the zone-blended design
// temperatures, service-line costs and rebate averages up front. A zone
// whose counties carry no new-construction share is a configuration
// error: every blended average for it would be a division by zero.
func NewModel(cfg *hpconfig.Config) (*Model, error) {
	m := &Model{cfg: cfg}

	gshp, err := cfg.EquipmentByDevice("GSHP", "")
	if err != nil {
		return nil, err
	}
	m.gshpTons, err = gshp.Tons()
	if err != nil {
		return nil, err
	}

	m.zoneTemps, err = zoneDesignTemps(cfg)
	if err != nil {
		return nil, err
	}
	m.zoneServiceLine, err = zoneServiceLineCosts(cfg)
	if err != nil {
		return nil, err
	}
	m.zoneHPWHRebate, err = zoneHPWHRebates(cfg)
	if err != nil {
		return nil, err
	}
	m.zoneGSHPRebate, err = zoneGSHPRebates(cfg, m.gshpTons)
	if err != nil {
		return nil, err
	}
	m.zoneShares = zoneNewConstructionShares(cfg)
	m.surveyWeights, err = surveyFuelWeights(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Scenarios builds the scenario table: the cross product of fuels, zones
// and technologies with every input parameter joined in, then applies the
// overrides. Rows sharing a (fuel, zone) pair differ only in Technology.
func (m *Model) Scenarios(ov Overrides) ([]Scenario, error) {
	cfg := m.cfg

	elec, ok := cfg.FuelPriceStats["electricity"]
	if !ok {
		return nil, fmt.Errorf("no electricity price in fuel price data")
	}
	natgas, ok := cfg.FuelPriceStats["natural_gas"]
	if !ok {
		return nil, fmt.Errorf("no natural_gas price in fuel price data")
	}
	propane, ok := cfg.FuelPriceStats["propane"]
	if !ok {
		return nil, fmt.Errorf("no propane price in fuel price data")
	}
	// Natural gas is stored in $/mcf; electricity (cents/kWh) and propane
	// (cents/gallon) are converted to dollars here.
	electricityPrice := elec.AvgPrice * 0.01
	natgasPrice := natgas.AvgPrice
	propanePrice := propane.AvgPrice * 0.01

	furnace, err := cfg.EquipmentByDevice("furnace", "")
	if err != nil {
		return nil, err
	}
	ac, err := cfg.EquipmentByDevice("ac", "")
	if err != nil {
		return nil, err
	}
	gwh, err := cfg.EquipmentByDevice("gas_water_heater", "")
	if err != nil {
		return nil, err
	}
	hpwh, err := cfg.EquipmentByDevice("hpwh", "")
	if err != nil {
		return nil, err
	}
	gshp, err := cfg.EquipmentByDevice("GSHP", "")
	if err != nil {
		return nil, err
	}

	var rows []Scenario
	for _, fuel := range Fuels {
		for _, zone := range ZoneList {
			building, err := cfg.BuildingForZone(string(zone))
			if err != nil {
				return nil, err
			}
			ccashp, err := cfg.EquipmentByDevice("ccASHP", string(zone))
			if err != nil {
				return nil, err
			}
			for _, tech := range Technologies {
				s := Scenario{
					Fuel:       fuel,
					Zone:       zone,
					Technology: tech,
				}
				p := &s.Params

				p.FloorAreaSF = building.FloorAreaSF
				p.Stories = building.Stories
				p.WallHeightFt = building.WallHeightFt
				p.WindowDoorPct = building.WindowDoorPct
				p.AboveGradeBasementWallHeightFt = building.AboveGradeBasementWallHeightFt
				p.BelowGradeBasementWallHeightFt = building.BelowGradeBasementWallHeightFt
				p.RAttic = building.RAttic
				p.RWalls = building.RWalls
				p.RWindowsDoors = building.RWindowsDoors
				p.RBasementWall = building.RBasementWall
				p.SlabFFactor = building.SlabFFactor
				p.ACH50 = building.ACH50
				p.HDD = building.HDD

				mp := cfg.Model
				p.MortgageRate = mp.MortgageRate
				p.MortgageTermYears = mp.MortgageTermYears
				p.DiscountRate = mp.DiscountRate
				p.AnalysisPeriodYears = mp.AnalysisPeriodYears
				p.IndoorDesignTempF = mp.IndoorDesignTempF
				p.SizingScaleUpFactor = mp.SizingScaleUpFactor
				p.InternalHeatGainsBTU = mp.InternalHeatGainsBTU
				p.EPAHDDAdjustment = mp.EPAHDDAdjustment
				p.PropaneTankCost = mp.PropaneTankCost
				p.NYGeoTaxCreditRate = mp.NYGeoTaxCreditRate
				p.NYGeoTaxCreditCap = mp.NYGeoTaxCreditCap
				p.Federal25DRate = mp.Federal25DRate
				p.CCASHPRebateAmount = mp.CCASHPRebate
				p.CCASHPFederalCreditAmount = mp.CCASHPFederalTaxCredit

				op := cfg.Operating
				p.FurnaceAFUE = op.Efficiency.FurnaceAFUE
				p.CCASHPHSPF2 = op.Efficiency.CCASHPHSPF2
				p.GSHPCOP = op.Efficiency.GSHPCOP
				p.FurnaceMaintenanceCost = op.Maintenance.Furnace
				p.ACMaintenanceCost = op.Maintenance.AC
				p.GWHMaintenanceCost = op.Maintenance.GasWaterHeater
				p.CCASHPMaintenanceCost = op.Maintenance.CCASHP
				p.GSHPMaintenanceCost = op.Maintenance.GSHP
				p.HPWHMaintenanceCost = op.Maintenance.HPWH
				p.NaturalGasBTUPerMcf = op.FuelContent.NaturalGasBTUPerMcf
				p.PropaneBTUPerGallon = op.FuelContent.PropaneBTUPerGallon
				p.HPWHDailyKWh = op.HPWH.DailyKWh
				p.GWHDailyOperatingHours = op.GasWaterHeater.DailyOperatingHours
				p.FurnaceElectricalKWhPerMMBTU = op.Furnace.ElectricalUsageKWhPerMMBTU

				// Fuel-dependent parameters.
				p.ElectricityPrice = electricityPrice
				if fuel == NaturalGas {
					p.FuelPrice = natgasPrice
					p.GWHFuelUsageRate = op.GasWaterHeater.FuelUsageRateNatGas
				} else {
					p.FuelPrice = propanePrice
					p.GWHFuelUsageRate = op.GasWaterHeater.FuelUsageRatePropane
				}

				p.FurnacePrice = furnace.AvgPrice
				p.ACPrice = ac.AvgPrice
				p.GWHPrice = gwh.AvgPrice
				p.HPWHPrice = hpwh.AvgPrice
				p.CCASHPPrice = ccashp.AvgPrice
				p.GSHPPrice = gshp.AvgPrice
				p.GSHPTons = m.gshpTons

				p.ColdestDayTempF = m.zoneTemps[zone]
				p.ZoneServiceLineCost = m.zoneServiceLine[zone]
				p.ZoneHPWHRebate = m.zoneHPWHRebate[zone]
				p.ZoneGSHPRebate = m.zoneGSHPRebate[zone]

				rows = append(rows, s)
			}
		}
	}
	return ApplyOverrides(rows, ov), nil
}

// Run executes the full pipeline and returns the 12-row scenario table
// with savings and aggregation weights filled in.
func (m *Model) Run(ov Overrides) ([]Scenario, error) {
	rows, err := m.Scenarios(ov)
	if err != nil {
		return nil, err
	}
	rows = ComputeGeometry(rows)
	rows = ComputeHeatLoss(rows)
	rows = ComputeDemand(rows)
	rows = ComputeSizing(rows)
	rows = ComputeBaselineCosts(rows)
	rows = ComputeHeatPumpCosts(rows)
	rows = ComputeSavings(rows)
	rows = m.WeightScenarios(rows)
	return rows, nil
}
