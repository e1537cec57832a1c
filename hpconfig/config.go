// Package hpconfig loads the static configuration for the heat-pump
// cost-savings model: financial and operating scalars, per-zone building
// parameters, equipment prices, fuel prices, county data, utility rebates,
// service-line costs and the heating survey.
//
// All documents are YAML files in a single data directory. Loading is
// all-or-nothing: any missing file, unknown key or malformed record fails
// the whole load, so the model never runs on partial configuration.
package hpconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/errgo.v1"
	"gopkg.in/yaml.v2"
)

// DefaultFuelPriceStartYear is the first year included in the winter
// fuel-price averaging window.
const DefaultFuelPriceStartYear = 2020

// Zones lists the climate zones the model knows about.
var Zones = []string{"4", "5", "6"}

// ModelParams holds the financial and analysis scalars. They are broadcast
// unchanged to every scenario.
type ModelParams struct {
	MortgageRate        float64 `yaml:"mortgage_rate"`
	MortgageTermYears   float64 `yaml:"mortgage_term_years"`
	DiscountRate        float64 `yaml:"discount_rate"`
	AnalysisPeriodYears float64 `yaml:"analysis_period_years"`
	IndoorDesignTempF   float64 `yaml:"indoor_design_temp_f"`
	SizingScaleUpFactor float64 `yaml:"sizing_scale_up_factor"`
	InternalHeatGainsBTU float64 `yaml:"internal_heat_gains_btu"`
	EPAHDDAdjustment    float64 `yaml:"epa_hdd_adjustment"`
	PropaneTankCost     float64 `yaml:"propane_tank_cost"`

	// Incentive policy parameters. The ccASHP entries are currently zero
	// because new-construction ccASHP is not eligible under the Clean Heat
	// program rules; they are configuration rather than literals so a
	// program change is a data edit, not a code edit.
	NYGeoTaxCreditRate     float64 `yaml:"ny_geo_tax_credit_rate"`
	NYGeoTaxCreditCap      float64 `yaml:"ny_geo_tax_credit_cap"`
	Federal25DRate         float64 `yaml:"federal_25d_rate"`
	CCASHPRebate           float64 `yaml:"ccashp_rebate"`
	CCASHPFederalTaxCredit float64 `yaml:"ccashp_federal_tax_credit"`
}

// OperatingParams holds maintenance costs, efficiency ratings, fuel energy
// content and fixed device usage rates.
type OperatingParams struct {
	Maintenance struct {
		Furnace        float64 `yaml:"furnace"`
		AC             float64 `yaml:"ac"`
		GasWaterHeater float64 `yaml:"gas_water_heater"`
		CCASHP         float64 `yaml:"ccashp"`
		GSHP           float64 `yaml:"gshp"`
		HPWH           float64 `yaml:"hpwh"`
	} `yaml:"maintenance"`
	Efficiency struct {
		FurnaceAFUE float64 `yaml:"furnace_afue"`
		CCASHPHSPF2 float64 `yaml:"ccashp_hspf2"`
		GSHPCOP     float64 `yaml:"gshp_cop"`
	} `yaml:"efficiency"`
	Furnace struct {
		// Blower electricity per MMBTU of heat delivered.
		ElectricalUsageKWhPerMMBTU float64 `yaml:"electrical_usage_kwh_per_mmbtu"`
	} `yaml:"furnace"`
	GasWaterHeater struct {
		FuelUsageRateNatGas  float64 `yaml:"fuel_usage_rate_nat_gas"`
		FuelUsageRatePropane float64 `yaml:"fuel_usage_rate_propane"`
		DailyOperatingHours  float64 `yaml:"daily_operating_hours"`
	} `yaml:"gas_water_heater"`
	HPWH struct {
		DailyKWh float64 `yaml:"daily_kwh"`
	} `yaml:"hpwh"`
	FuelContent struct {
		NaturalGasBTUPerMcf float64 `yaml:"natural_gas_btu_per_mcf"`
		PropaneBTUPerGallon float64 `yaml:"propane_btu_per_gallon"`
	} `yaml:"fuel_content"`
}

// BuildingZone holds the building envelope parameters for one climate
// zone. The YAML file carries shared defaults as an anchor that each zone
// record merges, so most fields are identical across zones.
type BuildingZone struct {
	Zone                           string  `yaml:"zone"`
	FloorAreaSF                    float64 `yaml:"floor_area_sf"`
	Stories                        float64 `yaml:"stories"`
	WallHeightFt                   float64 `yaml:"wall_height_ft"`
	WindowDoorPct                  float64 `yaml:"window_door_pct"`
	AboveGradeBasementWallHeightFt float64 `yaml:"above_grade_basement_wall_height_ft"`
	BelowGradeBasementWallHeightFt float64 `yaml:"below_grade_basement_wall_height_ft"`
	RAttic                         float64 `yaml:"r_attic"`
	RWalls                         float64 `yaml:"r_walls"`
	RWindowsDoors                  float64 `yaml:"r_windows_doors"`
	RBasementWall                  float64 `yaml:"r_basement_wall"`
	SlabFFactor                    float64 `yaml:"slab_f_factor"`
	ACH50                          float64 `yaml:"ach50"`
	HDD                            float64 `yaml:"hdd"`
}

// Equipment holds one device record from the equipment catalog.
type Equipment struct {
	Device string `yaml:"device"`
	// Prices holds the individual vendor quotes behind AvgPrice.
	Prices   []float64 `yaml:"prices"`
	AvgPrice float64   `yaml:"avg_price"`
	// Zones restricts a record to particular climate zones (ccASHP has
	// one price tier for zone 4 and another shared by zones 5 and 6).
	Zones  []string `yaml:"zones"`
	Size   string   `yaml:"size"`
	Source string   `yaml:"source"`
}

// Tons parses the leading tonnage from the equipment size string
// (e.g. "5 ton horizontal loop" yields 5).
func (e Equipment) Tons() (float64, error) {
	fields := strings.Fields(e.Size)
	if len(fields) == 0 {
		return 0, fmt.Errorf("equipment %q has no size", e.Device)
	}
	tons, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("equipment %q has unparseable size %q", e.Device, e.Size)
	}
	return tons, nil
}

// FuelPriceRecord is one observed monthly winter fuel price. Units are as
// stored: electricity cents/kWh, natural_gas $/mcf, propane cents/gallon.
type FuelPriceRecord struct {
	Fuel  string  `yaml:"fuel"`
	Year  int     `yaml:"year"`
	Month int     `yaml:"month"`
	Price float64 `yaml:"price"`
}

// FuelPriceStat is the mean winter price for one fuel over the averaging
// window, with the number of monthly observations behind it.
type FuelPriceStat struct {
	AvgPrice float64
	NMonths  int
}

// County holds one county record. An empty GasUtility means the county has
// no gas service.
type County struct {
	County               string  `yaml:"county"`
	Population           int     `yaml:"population"`
	ElectricUtility      string  `yaml:"electric_utility"`
	GasUtility           string  `yaml:"gas_utility"`
	Zone                 string  `yaml:"zone"`
	DesignTempF          float64 `yaml:"design_temp_f"`
	NewConstructionShare float64 `yaml:"new_construction_share"`
}

// Rebate holds one (utility, technology) rebate record. Cap is nil when
// the rebate is uncapped.
type Rebate struct {
	Utility      string   `yaml:"utility"`
	Technology   string   `yaml:"technology"`
	Amount       float64  `yaml:"amount"`
	Unit         string   `yaml:"unit"`
	ProjectType  string   `yaml:"project_type"`
	BuildingType string   `yaml:"building_type"`
	Cap          *float64 `yaml:"cap"`
	Source       string   `yaml:"source"`
	SourceNotes  string   `yaml:"source_notes"`
}

// ServiceLineCost holds the average gas service-line installation cost for
// one gas utility.
type ServiceLineCost struct {
	GasUtility             string  `yaml:"gas_utility"`
	AvgServiceLineLengthFt float64 `yaml:"avg_service_line_length_ft"`
	AvgPerFootCost         float64 `yaml:"avg_per_foot_cost"`
	AvgServiceLineCost     float64 `yaml:"avg_service_line_cost"`
	Source                 string  `yaml:"source"`
}

// SurveyRecord holds heating-survey respondent counts for one heating
// system type, broken out by climate zone.
type SurveyRecord struct {
	SystemType string  `yaml:"system_type"`
	Zone4Count float64 `yaml:"zone_4_count"`
	Zone5Count float64 `yaml:"zone_5_count"`
	Zone6Count float64 `yaml:"zone_6_count"`
}

// CountForZone returns the respondent count for the given zone.
func (r SurveyRecord) CountForZone(zone string) (float64, error) {
	switch zone {
	case "4":
		return r.Zone4Count, nil
	case "5":
		return r.Zone5Count, nil
	case "6":
		return r.Zone6Count, nil
	}
	return 0, fmt.Errorf("unknown zone %q", zone)
}

// Config aggregates every configuration document the model needs.
type Config struct {
	Model            ModelParams
	Operating        OperatingParams
	Building         []BuildingZone
	Equipment        []Equipment
	FuelPrices       []FuelPriceRecord
	FuelPriceStats   map[string]FuelPriceStat
	Counties         []County
	Rebates          []Rebate
	ServiceLineCosts []ServiceLineCost
	HeatingSurvey    []SurveyRecord
}

// Load reads and validates every configuration document in dir.
func Load(dir string) (*Config, error) {
	cfg := &Config{}
	if err := loadYAML(dir, "model_params.yaml", &cfg.Model); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := loadYAML(dir, "operating_params.yaml", &cfg.Operating); err != nil {
		return nil, errgo.Mask(err)
	}
	var building struct {
		Defaults map[string]interface{} `yaml:"defaults"`
		Zones    []BuildingZone         `yaml:"zones"`
	}
	if err := loadYAML(dir, "building_params.yaml", &building); err != nil {
		return nil, errgo.Mask(err)
	}
	cfg.Building = building.Zones
	if err := loadYAML(dir, "equipment.yaml", &cfg.Equipment); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := loadYAML(dir, "fuel_prices.yaml", &cfg.FuelPrices); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := loadYAML(dir, "counties.yaml", &cfg.Counties); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := loadYAML(dir, "utility_rebates.yaml", &cfg.Rebates); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := loadYAML(dir, "service_line_costs.yaml", &cfg.ServiceLineCosts); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := loadYAML(dir, "heating_survey.yaml", &cfg.HeatingSurvey); err != nil {
		return nil, errgo.Mask(err)
	}
	if err := cfg.validate(); err != nil {
		return nil, errgo.Mask(err)
	}
	cfg.FuelPriceStats = AverageFuelPrices(cfg.FuelPrices, DefaultFuelPriceStartYear)
	return cfg, nil
}

// AverageFuelPrices returns the mean price per fuel across all monthly
// records from startYear onwards.
func AverageFuelPrices(records []FuelPriceRecord, startYear int) map[string]FuelPriceStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.Year < startYear {
			continue
		}
		sums[r.Fuel] += r.Price
		counts[r.Fuel]++
	}
	stats := make(map[string]FuelPriceStat, len(sums))
	for fuel, sum := range sums {
		stats[fuel] = FuelPriceStat{
			AvgPrice: sum / float64(counts[fuel]),
			NMonths:  counts[fuel],
		}
	}
	return stats
}

// EquipmentByDevice returns the first equipment record for the named
// device, optionally restricted to records covering the given zone.
func (cfg *Config) EquipmentByDevice(device, zone string) (Equipment, error) {
	for _, e := range cfg.Equipment {
		if e.Device != device {
			continue
		}
		if zone == "" || len(e.Zones) == 0 || containsString(e.Zones, zone) {
			return e, nil
		}
	}
	return Equipment{}, fmt.Errorf("no equipment record for device %q zone %q", device, zone)
}

// BuildingForZone returns the building parameters for the given zone.
func (cfg *Config) BuildingForZone(zone string) (BuildingZone, error) {
	for _, b := range cfg.Building {
		if b.Zone == zone {
			return b, nil
		}
	}
	return BuildingZone{}, fmt.Errorf("no building parameters for zone %q", zone)
}

func (cfg *Config) validate() error {
	if len(cfg.Building) != len(Zones) {
		return fmt.Errorf("building_params: got %d zones, want %d", len(cfg.Building), len(Zones))
	}
	for _, zone := range Zones {
		if _, err := cfg.BuildingForZone(zone); err != nil {
			return err
		}
	}
	for i, e := range cfg.Equipment {
		if e.Device == "" {
			return fmt.Errorf("equipment record %d has no device name", i)
		}
		if len(e.Prices) == 0 && e.AvgPrice == 0 {
			return fmt.Errorf("equipment %q has neither prices nor avg_price", e.Device)
		}
		if len(e.Prices) > 0 {
			mean := 0.0
			for _, p := range e.Prices {
				mean += p
			}
			mean /= float64(len(e.Prices))
			if e.AvgPrice == 0 {
				cfg.Equipment[i].AvgPrice = mean
			} else if diff := e.AvgPrice - mean; diff > 0.01 || diff < -0.01 {
				return fmt.Errorf("equipment %q: avg_price %v inconsistent with prices (mean %v)", e.Device, e.AvgPrice, mean)
			}
		}
	}
	zoneShare := make(map[string]float64)
	for _, c := range cfg.Counties {
		if !containsString(Zones, c.Zone) {
			return fmt.Errorf("county %q has unknown zone %q", c.County, c.Zone)
		}
		if c.NewConstructionShare < 0 {
			return fmt.Errorf("county %q has negative new_construction_share", c.County)
		}
		zoneShare[c.Zone] += c.NewConstructionShare
	}
	for _, zone := range Zones {
		if zoneShare[zone] <= 0 {
			return fmt.Errorf("counties: zone %q has no new-construction share; blended averages would be undefined", zone)
		}
	}
	for _, r := range cfg.Rebates {
		if r.Unit != "$/project" && r.Unit != "$/ton" {
			return fmt.Errorf("rebate %s/%s has unknown unit %q", r.Utility, r.Technology, r.Unit)
		}
	}
	if len(cfg.HeatingSurvey) == 0 {
		return fmt.Errorf("heating_survey is empty")
	}
	return nil
}

func loadYAML(dir, name string, dst interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return errgo.Notef(err, "cannot read config file %q", path)
	}
	if err := yaml.UnmarshalStrict(data, dst); err != nil {
		return errgo.Notef(err, "cannot parse %q", path)
	}
	return nil
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
