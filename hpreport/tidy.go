// Package hpreport reshapes model results into the published tidy
// table: one row per (baseline technology, heat-pump technology,
// geography), with every cost measure for that scenario visible in a
// single wide row, and writes it to CSV.
package hpreport

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/switchbox-data/reports2/hpmodel"
)

// Row is one tidy result row. Values align with Table.Columns.
type Row struct {
	BaselineTech string
	HPTech       string
	Geography    string
	Values       []float64
}

// Table is the tidy result set. Columns names the measure columns that
// follow the three identifier columns; every row's Values slice has one
// entry per column, rounded to cents.
type Table struct {
	Columns []string
	Rows    []Row
}

// Measure column names encode side, measure and unit as
// "{side}-{measure}-{unit}". Positive deltas always mean the heat pump
// is cheaper.
var unitSuffix = map[string]string{
	"$":    "dollars",
	"$/yr": "dollars_per_year",
	"$_PV": "dollars_pv",
}

// Headline delta-only measures, in presentation order.
var deltaOnly = []struct {
	name, src, unit string
}{
	{"yearly_total_savings", "total_yearly_savings_with_service_line", "$/yr"},
	{"present_value_15yr", "present_value_15yr", "$_PV"},
	{"construction_savings", "construction_savings_with_service_line", "$"},
	{"yearly_mortgage_savings", "mortgage_savings_with_service_line", "$/yr"},
	{"yearly_operating_savings", "operating_savings", "$/yr"},
}

// Paired cost breakdowns, each emitted as baseline-, hp- and delta-
// columns.
var paired = []struct {
	name, baseline, hp, unit string
}{
	{"equipment_cost", "baseline_equipment_total", "hp_equipment_total", "$"},
	{"equipment_cost_incl_service_line", "baseline_equipment_with_service_line", "hp_equipment_total", "$"},
	{"yearly_operating", "baseline_yearly_operating", "hp_yearly_operating_total", "$/yr"},
	{"yearly_mortgage", "baseline_mortgage", "hp_mortgage", "$/yr"},
	{"yearly_mortgage_incl_service_line", "baseline_mortgage_service_line", "hp_mortgage", "$/yr"},
}

// sourceValues extracts every source measure from a scenario row. The
// mortgage payment columns are derived here with the yearly payment
// factor, since the pipeline carries equipment totals, not payments.
func sourceValues(s hpmodel.Scenario, pmtFactor float64) map[string]float64 {
	return map[string]float64{
		"total_yearly_savings_with_service_line": s.TotalYearlySavingsWithServiceLine,
		"present_value_15yr":                     s.PresentValue15Yr,
		"construction_savings_with_service_line": s.ConstructionSavingsWithServiceLine,
		"mortgage_savings_with_service_line":     s.MortgageSavingsWithServiceLine,
		"operating_savings":                      s.OperatingSavings,
		"baseline_equipment_total":               s.BaselineEquipmentTotal,
		"baseline_equipment_with_service_line":   s.BaselineEquipmentWithServiceLine,
		"hp_equipment_total":                     s.HPEquipmentTotal,
		"baseline_yearly_operating":              s.BaselineYearlyOperating,
		"hp_yearly_operating_total":              s.HPYearlyOperatingTotal,
		"baseline_mortgage":                      s.BaselineEquipmentTotal * pmtFactor,
		"baseline_mortgage_service_line":         s.BaselineEquipmentWithServiceLine * pmtFactor,
		"hp_mortgage":                            s.HPEquipmentTotal * pmtFactor,
	}
}

func columns() []string {
	var cols []string
	for _, d := range deltaOnly {
		cols = append(cols, fmt.Sprintf("delta-%s-%s", d.name, unitSuffix[d.unit]))
	}
	for _, p := range paired {
		sfx := unitSuffix[p.unit]
		cols = append(cols,
			fmt.Sprintf("baseline-%s-%s", p.name, sfx),
			fmt.Sprintf("hp-%s-%s", p.name, sfx),
			fmt.Sprintf("delta-%s-%s", p.name, sfx),
		)
	}
	return cols
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func rowValues(src map[string]float64) []float64 {
	var vals []float64
	for _, d := range deltaOnly {
		vals = append(vals, round2(src[d.src]))
	}
	for _, p := range paired {
		bl, hp := src[p.baseline], src[p.hp]
		vals = append(vals, round2(bl), round2(hp), round2(bl-hp))
	}
	return vals
}

// weightedMean averages each source measure across the given scenario
// rows using the provided per-row weight.
func weightedMean(rows []hpmodel.Scenario, pmtFactor float64, weight func(hpmodel.Scenario) float64) map[string]float64 {
	byKey := make(map[string][]float64)
	var weights []float64
	for _, s := range rows {
		for k, v := range sourceValues(s, pmtFactor) {
			byKey[k] = append(byKey[k], v)
		}
		weights = append(weights, weight(s))
	}
	out := make(map[string]float64, len(byKey))
	for k, vals := range byKey {
		out[k] = stat.Mean(vals, weights)
	}
	return out
}

func baselineTech(fuel hpmodel.Fuel) string {
	return string(fuel) + "_furnace"
}

// Build produces the tidy table from weighted scenario rows. Per
// heat-pump technology it emits the six (fuel, zone) scenario rows,
// then statewide rows per fuel (weighted across zones by
// new-construction share), zone rows across both fuels (weighted by
// survey share), and one overall statewide row.
func Build(rows []hpmodel.Scenario) *Table {
	t := &Table{Columns: columns()}
	if len(rows) == 0 {
		return t
	}
	// Equipment is financed on the mortgage; the payment factor follows
	// the first row's terms.
	pmtFactor := hpmodel.Pmt(rows[0].MortgageRate, 1, rows[0].MortgageTermYears)

	for _, tech := range hpmodel.Technologies {
		var techRows []hpmodel.Scenario
		for _, s := range rows {
			if s.Technology == tech {
				techRows = append(techRows, s)
			}
		}

		for _, s := range techRows {
			t.Rows = append(t.Rows, Row{
				BaselineTech: baselineTech(s.Fuel),
				HPTech:       string(tech),
				Geography:    "Zone " + string(s.Zone),
				Values:       rowValues(sourceValues(s, pmtFactor)),
			})
		}

		for _, fuel := range hpmodel.Fuels {
			var fuelRows []hpmodel.Scenario
			for _, s := range techRows {
				if s.Fuel == fuel {
					fuelRows = append(fuelRows, s)
				}
			}
			agg := weightedMean(fuelRows, pmtFactor, func(s hpmodel.Scenario) float64 {
				return s.PctNewConstructionInZone
			})
			t.Rows = append(t.Rows, Row{
				BaselineTech: baselineTech(fuel),
				HPTech:       string(tech),
				Geography:    "Statewide",
				Values:       rowValues(agg),
			})
		}

		for _, zone := range hpmodel.ZoneList {
			var zoneRows []hpmodel.Scenario
			for _, s := range techRows {
				if s.Zone == zone {
					zoneRows = append(zoneRows, s)
				}
			}
			agg := weightedMean(zoneRows, pmtFactor, func(s hpmodel.Scenario) float64 {
				return s.PctFFUsingFuel
			})
			t.Rows = append(t.Rows, Row{
				BaselineTech: "all_fossil_fuels",
				HPTech:       string(tech),
				Geography:    "Zone " + string(zone),
				Values:       rowValues(agg),
			})
		}

		agg := weightedMean(techRows, pmtFactor, func(s hpmodel.Scenario) float64 {
			return s.PctNewConstructionFuelZone
		})
		t.Rows = append(t.Rows, Row{
			BaselineTech: "all_fossil_fuels",
			HPTech:       string(tech),
			Geography:    "Statewide",
			Values:       rowValues(agg),
		})
	}
	return t
}
