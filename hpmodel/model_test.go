package hpmodel

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/switchbox-data/reports2/hpconfig"
)

var approxEquals = qt.CmpEquals(cmpopts.EquateApprox(1e-9, 1e-6))

func newTestModel(c *qt.C) *Model {
	cfg, err := hpconfig.Load("../data")
	c.Assert(err, qt.IsNil)
	m, err := NewModel(cfg)
	c.Assert(err, qt.IsNil)
	return m
}

func TestScenarioTable(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Scenarios(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 12)

	// Fuel varies slowest, then zone, then technology; every triple is
	// distinct.
	seen := make(map[Scenario]bool)
	i := 0
	for _, fuel := range Fuels {
		for _, zone := range ZoneList {
			for _, tech := range Technologies {
				s := rows[i]
				c.Assert(s.Fuel, qt.Equals, fuel)
				c.Assert(s.Zone, qt.Equals, zone)
				c.Assert(s.Technology, qt.Equals, tech)
				key := Scenario{Fuel: s.Fuel, Zone: s.Zone, Technology: s.Technology}
				c.Assert(seen[key], qt.IsFalse)
				seen[key] = true
				i++
			}
		}
	}
}

func TestScenarioParams(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Scenarios(nil)
	c.Assert(err, qt.IsNil)

	cfg := m.cfg
	elec := cfg.FuelPriceStats["electricity"]
	natgas := cfg.FuelPriceStats["natural_gas"]
	propane := cfg.FuelPriceStats["propane"]

	for _, s := range rows {
		// Electricity and propane are stored in cents, natural gas in
		// dollars.
		c.Assert(s.ElectricityPrice, approxEquals, elec.AvgPrice*0.01)
		if s.Fuel == NaturalGas {
			c.Assert(s.FuelPrice, approxEquals, natgas.AvgPrice)
			c.Assert(s.GWHFuelUsageRate, qt.Equals, cfg.Operating.GasWaterHeater.FuelUsageRateNatGas)
		} else {
			c.Assert(s.FuelPrice, approxEquals, propane.AvgPrice*0.01)
			c.Assert(s.GWHFuelUsageRate, qt.Equals, cfg.Operating.GasWaterHeater.FuelUsageRatePropane)
		}

		building, err := cfg.BuildingForZone(string(s.Zone))
		c.Assert(err, qt.IsNil)
		c.Assert(s.Params.HDD, qt.Equals, building.HDD)
		c.Assert(s.Params.RAttic, qt.Equals, building.RAttic)

		c.Assert(s.GSHPTons, qt.Equals, 5.0)
		c.Assert(s.ColdestDayTempF < s.IndoorDesignTempF, qt.IsTrue)
		c.Assert(s.ZoneServiceLineCost > 0, qt.IsTrue)
	}
}

func TestRunDeterminism(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows1, err := m.Run(nil)
	c.Assert(err, qt.IsNil)
	rows2, err := m.Run(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(rows1, qt.DeepEquals, rows2)
}

func TestGeometry(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Scenarios(nil)
	c.Assert(err, qt.IsNil)
	rows = ComputeGeometry(rows)

	s := rows[0]
	p := s.Params
	wallLength := math.Sqrt(p.FloorAreaSF / p.Stories)
	c.Assert(s.WallLengthFt, approxEquals, wallLength)
	c.Assert(s.WallSurfaceAreaSF, approxEquals, wallLength*4*p.Stories*p.WallHeightFt)
	c.Assert(s.AtticFloorAreaSF, approxEquals, p.FloorAreaSF/p.Stories)
	c.Assert(s.WallAreaExclWindowsSF+s.WindowDoorAreaSF, approxEquals, s.WallSurfaceAreaSF)
	c.Assert(s.BasementFloorPerimeterFt, approxEquals, 4*wallLength)
	c.Assert(s.VolumeCF, approxEquals,
		p.FloorAreaSF*p.WallHeightFt+(p.AboveGradeBasementWallHeightFt+p.BelowGradeBasementWallHeightFt)*p.FloorAreaSF/p.Stories)

	// Geometry depends only on the zone's envelope parameters, so all
	// rows sharing a zone share a geometry.
	byZone := make(map[Zone]Geometry)
	for _, s := range rows {
		if g, ok := byZone[s.Zone]; ok {
			c.Assert(s.Geometry, qt.DeepEquals, g)
		} else {
			byZone[s.Zone] = s.Geometry
		}
	}
}

func TestHeatLoss(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Scenarios(nil)
	c.Assert(err, qt.IsNil)
	rows = ComputeHeatLoss(ComputeGeometry(rows))

	for _, s := range rows {
		c.Assert(s.AtticLoss, approxEquals, s.AtticFloorAreaSF/s.RAttic)
		c.Assert(s.WallLoss, approxEquals, s.WallAreaExclWindowsSF/s.RWalls)
		c.Assert(s.WindowDoorLoss, approxEquals, s.WindowDoorAreaSF/s.RWindowsDoors)
		c.Assert(s.AirChangeLoss, approxEquals, 0.018*(s.ACH50/20)*s.VolumeCF)
		c.Assert(s.SlabLoss, approxEquals, s.BasementFloorPerimeterFt*s.SlabFFactor)
		c.Assert(s.TotalHeatLossRate, approxEquals,
			s.AtticLoss+s.WallLoss+s.WindowDoorLoss+s.AboveGradeBasementLoss+
				s.AirChangeLoss+s.BelowGradeBasementLoss+s.SlabLoss)
	}
}

func TestDemandAndSizing(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Scenarios(nil)
	c.Assert(err, qt.IsNil)
	rows = ComputeSizing(ComputeDemand(ComputeHeatLoss(ComputeGeometry(rows))))

	for _, s := range rows {
		c.Assert(s.AdjustedHDD, approxEquals, s.Params.HDD-s.EPAHDDAdjustment)
		c.Assert(s.YearlyBTU, approxEquals, s.TotalHeatLossRate*s.AdjustedHDD*24)
		c.Assert(s.DegreeDiffColdestDay, approxEquals, s.IndoorDesignTempF-s.ColdestDayTempF)
		c.Assert(s.BTUPerHourColdestDay, approxEquals,
			s.TotalHeatLossRate*s.DegreeDiffColdestDay+s.InternalHeatGainsBTU)
		c.Assert(s.SystemCapacityBTUPerHour, approxEquals, s.BTUPerHourColdestDay*s.SizingScaleUpFactor)
	}
}

func TestBaselineCosts(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Run(nil)
	c.Assert(err, qt.IsNil)

	for _, s := range rows {
		if s.Fuel == Propane {
			// Propane homes buy a fuel tank but need no gas service line.
			c.Assert(s.GasTankCost, qt.Equals, s.PropaneTankCost)
			c.Assert(s.BaselineCost.ServiceLineCost, qt.Equals, 0.0)
			c.Assert(s.FurnaceYearlyFuelUsage, approxEquals,
				s.YearlyBTU/(s.FurnaceAFUE*s.PropaneBTUPerGallon))
		} else {
			c.Assert(s.GasTankCost, qt.Equals, 0.0)
			c.Assert(s.BaselineCost.ServiceLineCost, qt.Equals, s.ZoneServiceLineCost)
			c.Assert(s.FurnaceYearlyFuelUsage, approxEquals,
				s.YearlyBTU/(s.FurnaceAFUE*s.NaturalGasBTUPerMcf))
		}
		c.Assert(s.FurnaceInstalledCost, approxEquals, s.FurnaceEquipmentCost+s.GasTankCost)
		c.Assert(s.FurnaceYearlyElectricalKWh, approxEquals,
			s.YearlyBTU/1e6*s.FurnaceElectricalKWhPerMMBTU)
		c.Assert(s.GWHYearlyFuelUsage, approxEquals,
			s.GWHFuelUsageRate*s.GWHDailyOperatingHours*365)
		c.Assert(s.BaselineEquipmentTotal, approxEquals,
			s.FurnaceInstalledCost+s.ACEquipmentCost+s.GWHEquipmentCost)
		c.Assert(s.BaselineEquipmentWithServiceLine, approxEquals,
			s.BaselineEquipmentTotal+s.BaselineCost.ServiceLineCost)
		c.Assert(s.BaselineYearlyOperating, approxEquals,
			s.FurnaceYearlyOperatingCost+s.ACYearlyOperatingCost+s.GWHYearlyOperatingCost)
	}
}

func TestTechnologyIsolation(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Run(nil)
	c.Assert(err, qt.IsNil)

	for _, s := range rows {
		h := s.HeatPumpCost
		if s.Technology == CCASHP {
			c.Assert(h.GSHPEquipmentCost, qt.Equals, 0.0)
			c.Assert(h.GSHPNetCost, qt.Equals, 0.0)
			c.Assert(h.GSHPYearlyOperatingCost, qt.Equals, 0.0)
			c.Assert(h.HPEquipmentTotal, approxEquals, h.CCASHPNetCost+h.HPWHNetCost)
			c.Assert(h.HPYearlyOperatingTotal, approxEquals, h.CCASHPYearlyOperatingCost+h.HPWHYearlyOperatingCost)
			c.Assert(h.CCASHPYearlyKWh, approxEquals, s.YearlyBTU/(s.CCASHPHSPF2*1000))
		} else {
			c.Assert(h.CCASHPEquipmentCost, qt.Equals, 0.0)
			c.Assert(h.CCASHPNetCost, qt.Equals, 0.0)
			c.Assert(h.CCASHPYearlyOperatingCost, qt.Equals, 0.0)
			c.Assert(h.HPEquipmentTotal, approxEquals, h.GSHPNetCost+h.HPWHNetCost)
			c.Assert(h.HPYearlyOperatingTotal, approxEquals, h.GSHPYearlyOperatingCost+h.HPWHYearlyOperatingCost)
			c.Assert(h.GSHPYearlyKWh, approxEquals, s.YearlyBTU/(s.GSHPCOP*BTUPerKWh))
		}
		// The water heater applies to every scenario.
		c.Assert(h.HPWHYearlyKWh, approxEquals, s.HPWHDailyKWh*365)
		c.Assert(h.HPWHNetCost, approxEquals, h.HPWHDeviceCost-h.HPWHRebate)
	}
}

func TestGSHPIncentives(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Run(nil)
	c.Assert(err, qt.IsNil)

	for _, s := range rows {
		if s.Technology != GSHP {
			continue
		}
		h := s.HeatPumpCost
		wantNY := s.GSHPPrice * s.NYGeoTaxCreditRate
		if wantNY > s.NYGeoTaxCreditCap {
			wantNY = s.NYGeoTaxCreditCap
		}
		c.Assert(h.GSHPNYTaxCredit, approxEquals, wantNY)
		c.Assert(h.GSHPFederalTaxCredit, approxEquals, s.GSHPPrice*s.Federal25DRate)
		c.Assert(h.GSHPNetCost >= 0, qt.IsTrue)
	}
}

func TestGSHPNetCostFloor(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)

	// Push the rebate past the gross cost: the net cost clamps at zero
	// rather than going negative.
	ov := Overrides{
		{Fuel: NaturalGas, Zone: Zone4}: {"zone_gshp_rebate": 1e6},
	}
	rows, err := m.Run(ov)
	c.Assert(err, qt.IsNil)
	found := false
	for _, s := range rows {
		if s.Technology == GSHP && s.Fuel == NaturalGas && s.Zone == Zone4 {
			c.Assert(s.GSHPNetCost, qt.Equals, 0.0)
			found = true
		}
	}
	c.Assert(found, qt.IsTrue)
}

func TestOverrides(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)

	base, err := m.Run(nil)
	c.Assert(err, qt.IsNil)
	ov := Overrides{
		{Fuel: Propane, Zone: Zone5}: {
			"floor_area_sf": 3000,
			"no_such_param": 123, // unknown names pass through harmlessly
		},
	}
	rows, err := m.Run(ov)
	c.Assert(err, qt.IsNil)

	for i, s := range rows {
		if s.Fuel == Propane && s.Zone == Zone5 {
			// Both technology rows of the pair pick up the override, and
			// the derived geometry follows it.
			c.Assert(s.FloorAreaSF, qt.Equals, 3000.0)
			c.Assert(s.WallLengthFt, approxEquals, math.Sqrt(3000/s.Stories))
			c.Assert(s.YearlyBTU > base[i].YearlyBTU, qt.IsTrue)
		} else {
			c.Assert(s, qt.DeepEquals, base[i])
		}
	}
}

func TestOverrideAFUEMonotonic(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)

	base, err := m.Run(nil)
	c.Assert(err, qt.IsNil)
	rows, err := m.Run(Overrides{
		{Fuel: NaturalGas, Zone: Zone4}: {"furnace_afue": 0.99},
	})
	c.Assert(err, qt.IsNil)

	for i, s := range rows {
		if s.Fuel == NaturalGas && s.Zone == Zone4 {
			// A more efficient furnace burns less fuel, so baseline
			// operating costs drop.
			c.Assert(s.FurnaceYearlyFuelUsage < base[i].FurnaceYearlyFuelUsage, qt.IsTrue)
			c.Assert(s.BaselineYearlyOperating < base[i].BaselineYearlyOperating, qt.IsTrue)
		}
	}
}

func TestSavings(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Run(nil)
	c.Assert(err, qt.IsNil)

	for _, s := range rows {
		sv := s.Savings
		c.Assert(sv.ConstructionSavings, approxEquals, s.BaselineEquipmentTotal-s.HPEquipmentTotal)
		c.Assert(sv.ConstructionSavingsWithServiceLine, approxEquals,
			s.BaselineEquipmentWithServiceLine-s.HPEquipmentTotal)
		c.Assert(sv.MortgageSavings, approxEquals,
			Pmt(s.MortgageRate, s.BaselineEquipmentTotal, s.MortgageTermYears)-
				Pmt(s.MortgageRate, s.HPEquipmentTotal, s.MortgageTermYears))
		c.Assert(sv.OperatingSavings, approxEquals, s.BaselineYearlyOperating-s.HPYearlyOperatingTotal)
		c.Assert(sv.TotalYearlySavings, approxEquals, sv.MortgageSavings+sv.OperatingSavings)
		c.Assert(sv.TotalYearlySavingsWithServiceLine, approxEquals,
			sv.MortgageSavingsWithServiceLine+sv.OperatingSavings)
		c.Assert(sv.PresentValue15Yr, approxEquals,
			sv.TotalYearlySavingsWithServiceLine*AnnuityPV(s.DiscountRate, s.AnalysisPeriodYears))

		// Adding the service line only ever helps the heat pump case.
		if s.Fuel == NaturalGas {
			c.Assert(sv.ConstructionSavingsWithServiceLine >= sv.ConstructionSavings, qt.IsTrue)
		} else {
			c.Assert(sv.ConstructionSavingsWithServiceLine, approxEquals, sv.ConstructionSavings)
		}
	}
}

func TestPmtAndAnnuityPV(t *testing.T) {
	c := qt.New(t)
	// Standard annuity identities: financing 1000 at 5% over 10 years
	// costs 129.50 a year, and the PV factor inverts the payment factor.
	c.Assert(Pmt(0.05, 1000, 10), approxEquals, 129.50457496545667)
	c.Assert(AnnuityPV(0.05, 15), approxEquals, 10.379658)
	c.Assert(Pmt(0.05, 1, 15)*AnnuityPV(0.05, 15), approxEquals, 1.0)
}

func TestWeights(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Run(nil)
	c.Assert(err, qt.IsNil)

	// Fuel shares partition the fossil-fuel respondents within each zone.
	for _, tech := range Technologies {
		for _, zone := range ZoneList {
			sum := 0.0
			for _, s := range rows {
				if s.Technology == tech && s.Zone == zone {
					sum += s.PctFFUsingFuel
					c.Assert(s.PctNewConstructionFuelZone, approxEquals,
						s.PctFFUsingFuel*s.PctNewConstructionInZone)
				}
			}
			c.Assert(sum, approxEquals, 1.0)
		}
	}

	// Zone construction shares partition statewide new construction.
	total := 0.0
	for _, zone := range ZoneList {
		for _, s := range rows {
			if s.Zone == zone && s.Fuel == NaturalGas && s.Technology == CCASHP {
				total += s.PctNewConstructionInZone
			}
		}
	}
	c.Assert(total, approxEquals, 1.0)
}

func TestAggregates(t *testing.T) {
	c := qt.New(t)
	m := newTestModel(c)
	rows, err := m.Run(nil)
	c.Assert(err, qt.IsNil)
	aggs := m.Aggregates(rows)

	// Per technology: one row per fuel, one per zone and one overall.
	c.Assert(aggs, qt.HasLen, 2*(len(Fuels)+len(ZoneList)+1))

	byKey := make(map[string]Aggregate)
	for _, a := range aggs {
		if a.Technology == GSHP {
			byKey[a.Key] = a
		}
	}
	c.Assert(byKey, qt.HasLen, 6)

	// A weighted mean stays within the range of its inputs.
	for _, fuel := range Fuels {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, s := range rows {
			if s.Technology == GSHP && s.Fuel == fuel {
				lo = math.Min(lo, s.TotalYearlySavingsWithServiceLine)
				hi = math.Max(hi, s.TotalYearlySavingsWithServiceLine)
			}
		}
		got := byKey[string(fuel)].YearlySavingsWithServiceLine
		c.Assert(got >= lo && got <= hi, qt.IsTrue, qt.Commentf("fuel %s: %v not in [%v, %v]", fuel, got, lo, hi))
	}

	// The overall present value is derived from the aggregated savings,
	// not averaged from per-scenario PVs.
	overall := byKey[OverallKey]
	p := rows[0].Params
	c.Assert(overall.PresentValue, approxEquals,
		overall.YearlySavingsWithServiceLine*AnnuityPV(p.DiscountRate, p.AnalysisPeriodYears))
	for _, key := range []string{"natural_gas", "4"} {
		c.Assert(byKey[key].PresentValue, qt.Equals, 0.0)
	}
}

func TestZoneBlend(t *testing.T) {
	c := qt.New(t)
	counties := []hpconfig.County{
		{County: "a", Zone: "4", DesignTempF: 10, NewConstructionShare: 0.3},
		{County: "b", Zone: "4", DesignTempF: 20, NewConstructionShare: 0.1},
		{County: "c", Zone: "5", DesignTempF: -5, NewConstructionShare: 0.4},
		{County: "d", Zone: "6", DesignTempF: -12, NewConstructionShare: 0.2},
	}
	got, err := zoneBlend(counties, nil, func(c hpconfig.County) float64 {
		return c.DesignTempF
	})
	c.Assert(err, qt.IsNil)
	c.Assert(got, approxEquals, map[Zone]float64{
		// (10*0.3 + 20*0.1) / 0.4
		Zone4: 12.5,
		Zone5: -5,
		Zone6: -12,
	})

	// A zone with no weighted counties cannot be blended.
	_, err = zoneBlend(counties[:3], nil, func(c hpconfig.County) float64 {
		return c.DesignTempF
	})
	c.Assert(err, qt.ErrorMatches, `zone 6 has no new-construction weight.*`)
}
