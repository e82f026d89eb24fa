package energy

// Year range covered by the dataset, inclusive.
const (
	FirstYear = 2000
	LastYear  = 2024
	YearCount = LastYear - FirstYear + 1
)

// CO2 weights applied to fossil generation volumes.
const (
	CoalCO2Weight = 1.0
	OilCO2Weight  = 0.8
	GasCO2Weight  = 0.5
)

// Record is the generation mix of one region in one year. Volumes are in
// TWh, CO2 in million tonnes.
type Record struct {
	Year   int    `json:"year" yaml:"year"`
	Region Region `json:"region" yaml:"region"`
	Solar  int    `json:"solar" yaml:"solar"`
	Wind   int    `json:"wind" yaml:"wind"`
	Hydro  int    `json:"hydro" yaml:"hydro"`
	Coal   int    `json:"coal" yaml:"coal"`
	Gas    int    `json:"gas" yaml:"gas"`
	Oil    int    `json:"oil" yaml:"oil"`
	CO2    int    `json:"co2" yaml:"co2"`
}

// Renewables is solar + wind + hydro.
func (r Record) Renewables() int {
	return r.Solar + r.Wind + r.Hydro
}

// Fossil is coal + gas + oil.
func (r Record) Fossil() int {
	return r.Coal + r.Gas + r.Oil
}

// Total is the sum of all six generation sources.
func (r Record) Total() int {
	return r.Renewables() + r.Fossil()
}

// DerivedStats summarizes the most recent year of a region.
type DerivedStats struct {
	Year            int     `json:"year" yaml:"year"`
	TotalRenewables int     `json:"totalRenewables" yaml:"totalRenewables"`
	TotalFossil     int     `json:"totalFossil" yaml:"totalFossil"`
	RenewablesShare float64 `json:"renewablesShare" yaml:"renewablesShare"`
	CO2             int     `json:"co2" yaml:"co2"`
}

// TransitionPoint is one year of the fossil vs. clean projection.
type TransitionPoint struct {
	Year        int `json:"year" yaml:"year"`
	FossilTotal int `json:"fossilTotal" yaml:"fossilTotal"`
	CleanTotal  int `json:"cleanTotal" yaml:"cleanTotal"`
}

// TechnologyPoint is one year of the per-technology projection.
type TechnologyPoint struct {
	Year  int `json:"year" yaml:"year"`
	Solar int `json:"solar" yaml:"solar"`
	Wind  int `json:"wind" yaml:"wind"`
	Coal  int `json:"coal" yaml:"coal"`
	Gas   int `json:"gas" yaml:"gas"`
}
