package emissions

import "fmt"

// WasteType identifies an organic waste stream accepted by the facility
type WasteType string

const (
	WasteTypeFood               WasteType = "FOOD_WASTE"
	WasteTypeGarden             WasteType = "GARDEN_WASTE"
	WasteTypeSewageSludge       WasteType = "SEWAGE_SLUDGE"
	WasteTypeGrapeMarc          WasteType = "GRAPE_MARC"
	WasteTypeAnaerobicDigestion WasteType = "ANAEROBIC_DIGESTION"
)

// MFE emission factors for organic waste (Measuring Emissions Guidance,
// August 2022, Table 34). Units: tonnes CO2eq per tonne of waste.
// Grape marc is assumed equal to garden waste pending lab testing.
var mfeEmissionFactors = map[WasteType]float64{
	WasteTypeFood:               0.64,
	WasteTypeGarden:             0.18,
	WasteTypeSewageSludge:       0.12,
	WasteTypeGrapeMarc:          0.18,
	WasteTypeAnaerobicDigestion: 0.05,
}

// MFEEmissionFactor returns the MFE emission factor for a waste type
func MFEEmissionFactor(wasteType WasteType) (float64, error) {
	factor, ok := mfeEmissionFactors[wasteType]
	if !ok {
		return 0, fmt.Errorf("no MFE emission factor for waste type %s", wasteType)
	}
	return factor, nil
}

// EmissionsReduction applies the MFE methodology E = Q x F: waste diverted
// from landfill (tonnes) times the stream's emission factor. Result in
// tonnes CO2eq, rounded to 3 decimal places.
func EmissionsReduction(quantityTonnes float64, wasteType WasteType) (float64, error) {
	factor, err := MFEEmissionFactor(wasteType)
	if err != nil {
		return 0, err
	}
	return round3(quantityTonnes * factor), nil
}

// MethaneSource identifies the origin of feedstock for methane-yield
// estimation
type MethaneSource string

const (
	MethaneSourceSewerageSludge  MethaneSource = "SEWERAGE_SLUDGE"
	MethaneSourceLandfillOrganic MethaneSource = "LANDFILL_ORGANIC"
)

// Typical methane yields in m3 per tonne of waste
var methaneYields = map[MethaneSource]float64{
	MethaneSourceSewerageSludge:  20,
	MethaneSourceLandfillOrganic: 100,
}

// EstimateMethaneGeneration estimates methane generation potential (m3)
// from a quantity of waste input.
func EstimateMethaneGeneration(wasteQuantityTonnes float64, source MethaneSource) (float64, error) {
	yield, ok := methaneYields[source]
	if !ok {
		return 0, fmt.Errorf("no methane yield for source %s", source)
	}
	return wasteQuantityTonnes * yield, nil
}

// Nelson tech-demonstrator plant configuration
const (
	brrpSewageSludgeDaily  = 3.0  // tonnes/day from the WWTP
	brrpGreenWasteDaily    = 7.0  // tonnes/day municipal green waste
	brrpElectricitySurplus = 1200 // kWh/day estimated surplus
)

// DailyReduction breaks down the plant's daily emissions reduction by
// feedstock stream
type DailyReduction struct {
	SewageSludgeReduction float64 `json:"sewage_sludge_reduction"`
	GreenWasteReduction   float64 `json:"green_waste_reduction"`
	GrapeMarcReduction    float64 `json:"grape_marc_reduction"`
	TotalReduction        float64 `json:"total_reduction"`
	ElectricityProduced   float64 `json:"electricity_produced"`
}

// EstimateDailyReduction computes the daily emissions reduction for the
// demonstrator configuration. Zero quantities fall back to the plant
// defaults; grape marc only contributes during harvest season.
func EstimateDailyReduction(sewageSludgeTonnes, greenWasteTonnes, grapeMarcTonnes float64) DailyReduction {
	if sewageSludgeTonnes <= 0 {
		sewageSludgeTonnes = brrpSewageSludgeDaily
	}
	if greenWasteTonnes <= 0 {
		greenWasteTonnes = brrpGreenWasteDaily
	}

	sludge, _ := EmissionsReduction(sewageSludgeTonnes, WasteTypeSewageSludge)
	green, _ := EmissionsReduction(greenWasteTonnes, WasteTypeGarden)

	var marc float64
	if grapeMarcTonnes > 0 {
		marc, _ = EmissionsReduction(grapeMarcTonnes, WasteTypeGrapeMarc)
	}

	return DailyReduction{
		SewageSludgeReduction: sludge,
		GreenWasteReduction:   green,
		GrapeMarcReduction:    marc,
		TotalReduction:        round3(sludge + green + marc),
		ElectricityProduced:   brrpElectricitySurplus,
	}
}
