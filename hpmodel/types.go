// Package hpmodel implements the heat-pump cost-savings model: a
// deterministic pipeline that expands static configuration into one
// scenario row per (fuel, climate zone, heat-pump technology) triple and
// derives building geometry, heat-loss rates, heating demand, equipment
// sizing, baseline and heat-pump system costs, savings, and weighted
// statewide aggregates.
//
// Every stage is a pure function from a scenario slice to a new scenario
// slice; nothing is mutated in place and nothing is cached between runs,
// so identical configuration and overrides always produce identical
// results.
package hpmodel

// Fuel identifies the baseline heating fuel of a scenario.
type Fuel string

const (
	NaturalGas Fuel = "natural_gas"
	Propane    Fuel = "propane"
)

// Fuels lists the baseline fuels in scenario order.
var Fuels = []Fuel{NaturalGas, Propane}

// Zone identifies a climate zone.
type Zone string

const (
	Zone4 Zone = "4"
	Zone5 Zone = "5"
	Zone6 Zone = "6"
)

// ZoneList lists the climate zones in scenario order.
var ZoneList = []Zone{Zone4, Zone5, Zone6}

// Technology identifies the heat-pump technology of a scenario.
type Technology string

const (
	CCASHP Technology = "ccASHP"
	GSHP   Technology = "GSHP"
)

// Technologies lists the heat-pump technologies in scenario order.
var Technologies = []Technology{CCASHP, GSHP}

// Key identifies the (fuel, zone) pair a scenario belongs to. Building and
// financial parameters do not vary by technology, so overrides and survey
// weights are keyed this way.
type Key struct {
	Fuel Fuel
	Zone Zone
}

// Params holds every input parameter joined onto a scenario row when the
// scenario table is built: building envelope values for the row's zone,
// financial and operating scalars, resolved fuel prices, equipment catalog
// prices and the zone-blended county averages. Stages only read Params;
// overrides only write it.
type Params struct {
	// Building envelope (per zone).
	FloorAreaSF                    float64
	Stories                        float64
	WallHeightFt                   float64
	WindowDoorPct                  float64
	AboveGradeBasementWallHeightFt float64
	BelowGradeBasementWallHeightFt float64
	RAttic                         float64
	RWalls                         float64
	RWindowsDoors                  float64
	RBasementWall                  float64
	SlabFFactor                    float64
	ACH50                          float64
	HDD                            float64

	// Financial and analysis scalars.
	MortgageRate         float64
	MortgageTermYears    float64
	DiscountRate         float64
	AnalysisPeriodYears  float64
	IndoorDesignTempF    float64
	SizingScaleUpFactor  float64
	InternalHeatGainsBTU float64
	EPAHDDAdjustment     float64
	PropaneTankCost      float64

	// Incentive policy parameters.
	NYGeoTaxCreditRate        float64
	NYGeoTaxCreditCap         float64
	Federal25DRate            float64
	CCASHPRebateAmount        float64
	CCASHPFederalCreditAmount float64

	// Operating parameters.
	FurnaceAFUE                  float64
	CCASHPHSPF2                  float64
	GSHPCOP                      float64
	FurnaceMaintenanceCost       float64
	ACMaintenanceCost            float64
	GWHMaintenanceCost           float64
	CCASHPMaintenanceCost        float64
	GSHPMaintenanceCost          float64
	HPWHMaintenanceCost          float64
	NaturalGasBTUPerMcf          float64
	PropaneBTUPerGallon          float64
	HPWHDailyKWh                 float64
	GWHFuelUsageRate             float64
	GWHDailyOperatingHours       float64
	FurnaceElectricalKWhPerMMBTU float64

	// Fuel prices in dollars per unit ($/kWh, $/mcf or $/gallon).
	ElectricityPrice float64
	FuelPrice        float64

	// Equipment catalog prices. CCASHPPrice is the tier for the row's
	// zone; GSHPTons is parsed from the catalog size string.
	FurnacePrice float64
	ACPrice      float64
	GWHPrice     float64
	HPWHPrice    float64
	CCASHPPrice  float64
	GSHPPrice    float64
	GSHPTons     float64

	// Zone-blended county averages (weights: new-construction share
	// normalized within zone).
	ColdestDayTempF      float64
	ZoneServiceLineCost  float64
	ZoneHPWHRebate       float64
	ZoneGSHPRebate       float64
}

// Geometry holds the building envelope dimensions derived from floor area
// and story count. Identical for every technology and fuel sharing a zone.
type Geometry struct {
	WallLengthFt                 float64
	WallSurfaceAreaSF            float64
	AtticFloorAreaSF             float64
	WallAreaExclWindowsSF        float64
	WindowDoorAreaSF             float64
	AboveGradeBasementWallAreaSF float64
	BelowGradeBasementWallAreaSF float64
	BasementFloorPerimeterFt     float64
	VolumeCF                     float64
}

// HeatLoss holds the per-component heat-loss rates in BTU/hr/°F and their
// sum, the single most load-bearing derived quantity in the pipeline.
type HeatLoss struct {
	AtticLoss              float64
	WallLoss               float64
	WindowDoorLoss         float64
	AboveGradeBasementLoss float64
	AirChangeLoss          float64
	BelowGradeBasementLoss float64
	SlabLoss               float64
	TotalHeatLossRate      float64
}

// Demand holds the annual heating energy demand.
type Demand struct {
	AdjustedHDD float64
	YearlyBTU   float64
}

// Sizing holds the design-day heating load and scaled equipment capacity.
type Sizing struct {
	DegreeDiffColdestDay     float64
	BTUPerHourColdestDay     float64
	SystemCapacityBTUPerHour float64
}

// BaselineCost holds the capital and operating costs of the incumbent
// fossil-fuel system (furnace, AC, gas water heater, gas service line).
type BaselineCost struct {
	FurnaceEquipmentCost        float64
	GasTankCost                 float64
	FurnaceInstalledCost        float64
	FurnaceYearlyFuelUsage      float64
	FurnaceYearlyFuelCost       float64
	FurnaceYearlyElectricalKWh  float64
	FurnaceYearlyElectricalCost float64
	FurnaceYearlyOperatingCost  float64

	ACEquipmentCost       float64
	ACYearlyOperatingCost float64

	GWHEquipmentCost       float64
	GWHYearlyFuelUsage     float64
	GWHYearlyFuelCost      float64
	GWHYearlyOperatingCost float64

	ServiceLineCost float64

	BaselineEquipmentTotal           float64
	BaselineEquipmentWithServiceLine float64
	BaselineYearlyOperating          float64
}

// HeatPumpCost holds the capital and operating costs of the replacement
// heat-pump system. Exactly one of the ccASHP/GSHP column families is
// active per row; the inactive family is forced to 0.0 (never left unset
// as a sentinel) so downstream totals are plain sums.
type HeatPumpCost struct {
	CCASHPEquipmentCost        float64
	CCASHPRebate               float64
	CCASHPFederalTaxCredit     float64
	CCASHPNetCost              float64
	CCASHPYearlyKWh            float64
	CCASHPYearlyElectricalCost float64
	CCASHPYearlyOperatingCost  float64

	GSHPEquipmentCost        float64
	GSHPRebate               float64
	GSHPNYTaxCredit          float64
	GSHPFederalTaxCredit     float64
	GSHPNetCost              float64
	GSHPYearlyKWh            float64
	GSHPYearlyElectricalCost float64
	GSHPYearlyOperatingCost  float64

	HPWHDeviceCost           float64
	HPWHRebate               float64
	HPWHNetCost              float64
	HPWHYearlyKWh            float64
	HPWHYearlyElectricalCost float64
	HPWHYearlyOperatingCost  float64

	HPEquipmentTotal       float64
	HPYearlyOperatingTotal float64
}

// Savings holds the construction, mortgage and operating cost deltas and
// their present value. Positive values always mean the heat pump is
// cheaper.
type Savings struct {
	ConstructionSavings                float64
	ConstructionSavingsWithServiceLine float64
	MortgageSavings                    float64
	MortgageSavingsWithServiceLine     float64
	OperatingSavings                   float64
	TotalYearlySavings                 float64
	TotalYearlySavingsWithServiceLine  float64
	PresentValue15Yr                   float64
}

// Weights holds the survey and census-style weights the aggregation stage
// attaches to each scenario row.
type Weights struct {
	SurveyCount                float64
	TotalFFSurveyResponses     float64
	PctFFUsingFuel             float64
	PctNewConstructionInZone   float64
	PctNewConstructionFuelZone float64
}

// Scenario is one row of the model table, identified by its (fuel, zone,
// technology) triple. Each stage fills exactly one embedded group and
// leaves the rest untouched.
type Scenario struct {
	Fuel       Fuel
	Zone       Zone
	Technology Technology

	Params
	Geometry
	HeatLoss
	Demand
	Sizing
	BaselineCost
	HeatPumpCost
	Savings
	Weights
}

// Aggregate is one weighted summary row produced by the aggregation
// stage. Key is a fuel name for by-fuel rows, a zone for by-zone rows, or
// "overall" for the statewide row. PresentValue is only set on the
// overall row: it is computed from the aggregated yearly savings, not
// rolled up from per-scenario present values.
type Aggregate struct {
	Technology                   Technology
	Key                          string
	YearlySavingsWithServiceLine float64
	PresentValue                 float64
}

// OverallKey is the Aggregate.Key of the statewide summary row.
const OverallKey = "overall"
