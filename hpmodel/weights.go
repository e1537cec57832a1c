package hpmodel

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/switchbox-data/reports2/hpconfig"
)

// Survey system types counted for each baseline fuel.
var surveySystemTypes = map[Fuel][]string{
	NaturalGas: {"Furnace + Gas", "Boiler + Gas"},
	Propane:    {"Furnace + Propane or Oil", "Boiler + Propane or Oil"},
}

type surveyWeight struct {
	count   float64
	totalFF float64
}

// zoneBlend computes, for every zone, the mean of value(county) weighted
// by new-construction share normalized within the zone. Counties for
// which include returns false are left out of both the values and the
// weights. A zone with no weight is a configuration error.
func zoneBlend(counties []hpconfig.County, include func(hpconfig.County) bool, value func(hpconfig.County) float64) (map[Zone]float64, error) {
	values := make(map[Zone][]float64)
	weights := make(map[Zone][]float64)
	for _, c := range counties {
		if include != nil && !include(c) {
			continue
		}
		z := Zone(c.Zone)
		values[z] = append(values[z], value(c))
		weights[z] = append(weights[z], c.NewConstructionShare)
	}
	out := make(map[Zone]float64, len(ZoneList))
	for _, z := range ZoneList {
		total := 0.0
		for _, w := range weights[z] {
			total += w
		}
		if total <= 0 {
			return nil, fmt.Errorf("zone %s has no new-construction weight; check county data", z)
		}
		// stat.Mean normalizes by the weight sum, which is exactly the
		// within-zone normalization the blends call for.
		out[z] = stat.Mean(values[z], weights[z])
	}
	return out, nil
}

// zoneDesignTemps returns the weighted-average coldest-day design
// temperature per zone.
func zoneDesignTemps(cfg *hpconfig.Config) (map[Zone]float64, error) {
	return zoneBlend(cfg.Counties, nil, func(c hpconfig.County) float64 {
		return c.DesignTempF
	})
}

// zoneServiceLineCosts returns the blended average gas service-line cost
// per zone. Counties with no gas service are excluded entirely; gas
// counties whose utility has no service-line record contribute 0.
func zoneServiceLineCosts(cfg *hpconfig.Config) (map[Zone]float64, error) {
	byUtility := make(map[string]float64, len(cfg.ServiceLineCosts))
	for _, s := range cfg.ServiceLineCosts {
		byUtility[s.GasUtility] = s.AvgServiceLineCost
	}
	return zoneBlend(cfg.Counties,
		func(c hpconfig.County) bool { return c.GasUtility != "" },
		func(c hpconfig.County) float64 { return byUtility[c.GasUtility] },
	)
}

// zoneHPWHRebates returns the blended average HPWH rebate per zone.
// Counties whose electric utility offers no HPWH rebate contribute 0,
// not a gap: absence of a rebate is a valid domain state.
func zoneHPWHRebates(cfg *hpconfig.Config) (map[Zone]float64, error) {
	byUtility := make(map[string]float64)
	for _, r := range cfg.Rebates {
		if r.Technology == "HPWH" {
			byUtility[r.Utility] = r.Amount
		}
	}
	return zoneBlend(cfg.Counties, nil, func(c hpconfig.County) float64 {
		return byUtility[c.ElectricUtility]
	})
}

// zoneGSHPRebates returns the blended average GSHP new-construction
// rebate per zone. Rebates priced $/ton are converted to per-project
// amounts using the system tonnage and capped at the rebate's stated cap
// before blending.
func zoneGSHPRebates(cfg *hpconfig.Config, tons float64) (map[Zone]float64, error) {
	byUtility := make(map[string]float64)
	for _, r := range cfg.Rebates {
		if r.Technology != "GSHP" || r.ProjectType != "new_construction" {
			continue
		}
		amount := r.Amount
		if r.Unit == "$/ton" {
			amount *= tons
			if r.Cap != nil && amount > *r.Cap {
				amount = *r.Cap
			}
		}
		byUtility[r.Utility] = amount
	}
	return zoneBlend(cfg.Counties, nil, func(c hpconfig.County) float64 {
		return byUtility[c.ElectricUtility]
	})
}

// zoneNewConstructionShares returns each zone's total share of statewide
// new construction. Unlike the blends above these are statewide shares,
// not normalized within the zone: they are the across-zone aggregation
// weights.
func zoneNewConstructionShares(cfg *hpconfig.Config) map[Zone]float64 {
	shares := make(map[Zone]float64, len(ZoneList))
	for _, c := range cfg.Counties {
		shares[Zone(c.Zone)] += c.NewConstructionShare
	}
	return shares
}

// surveyFuelWeights returns, per (fuel, zone), the heating-survey
// respondent count for the fuel's system types and the zone's total
// fossil-fuel respondent count.
func surveyFuelWeights(cfg *hpconfig.Config) (map[Key]surveyWeight, error) {
	counts := make(map[Key]float64)
	for _, rec := range cfg.HeatingSurvey {
		for fuel, types := range surveySystemTypes {
			if !containsType(types, rec.SystemType) {
				continue
			}
			for _, zone := range ZoneList {
				n, err := rec.CountForZone(string(zone))
				if err != nil {
					return nil, err
				}
				counts[Key{Fuel: fuel, Zone: zone}] += n
			}
		}
	}
	out := make(map[Key]surveyWeight, len(counts))
	for _, zone := range ZoneList {
		totalFF := 0.0
		for _, fuel := range Fuels {
			totalFF += counts[Key{Fuel: fuel, Zone: zone}]
		}
		if totalFF <= 0 {
			return nil, fmt.Errorf("heating survey has no fossil-fuel respondents in zone %s", zone)
		}
		for _, fuel := range Fuels {
			out[Key{Fuel: fuel, Zone: zone}] = surveyWeight{
				count:   counts[Key{Fuel: fuel, Zone: zone}],
				totalFF: totalFF,
			}
		}
	}
	return out, nil
}

func containsType(types []string, t string) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
