package emissions

import (
	"time"

	"github.com/google/uuid"
)

// Standard identifies the accounting methodology governing a calculation
type Standard string

const (
	// StandardACM0022 - alternative waste treatment processes
	StandardACM0022 Standard = "ACM0022"
	// StandardAM0053 - biogenic methane injection into a gas grid
	StandardAM0053 Standard = "AM0053"
	// StandardAMSID - grid-connected renewable electricity
	StandardAMSID Standard = "AMS-I.D"
)

// KnownStandards lists every supported accounting standard
func KnownStandards() []Standard {
	return []Standard{StandardACM0022, StandardAM0053, StandardAMSID}
}

// IsKnown reports whether the standard is one of the supported methodologies
func (s Standard) IsKnown() bool {
	switch s {
	case StandardACM0022, StandardAM0053, StandardAMSID:
		return true
	}
	return false
}

// Record is the calculated climate-accounting result for exactly one
// measurement. The unique index on measurement_id enforces the 1:1
// relationship; rows are written once and never mutated.
type Record struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeasurementID uuid.UUID `json:"measurement_id" gorm:"type:uuid;not null;uniqueIndex"`

	MethaneDestroyed        float64 `json:"methane_destroyed" gorm:"type:decimal(14,4);not null"`         // m3, copied from the measurement
	CO2Equivalent           float64 `json:"co2_equivalent" gorm:"type:decimal(12,3);not null"`            // tonnes CO2eq
	GlobalWarmingPotential  float64 `json:"global_warming_potential" gorm:"type:decimal(4,1);not null"`   // GWP factor used
	EnergyProduced          float64 `json:"energy_produced" gorm:"type:decimal(14,4);not null"`           // kWh-equivalent
	DEFValue                float64 `json:"def_value" gorm:"type:decimal(12,6);not null"`                 // emission intensity per kWh
	GrossEmissionsReduction float64 `json:"gross_emissions_reduction" gorm:"type:decimal(12,3);not null"` // tonnes CO2eq

	StandardUsed Standard  `json:"standard_used" gorm:"not null;index"`
	CalculatedAt time.Time `json:"calculated_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for GORM
func (Record) TableName() string {
	return "emissions_records"
}

// Aggregate summarises emissions for a facility over a period
type Aggregate struct {
	MeasurementCount             int     `json:"measurement_count"`
	TotalMethaneDestroyed        float64 `json:"total_methane_destroyed"`
	TotalCO2Equivalent           float64 `json:"total_co2_equivalent"`
	TotalEnergyProduced          float64 `json:"total_energy_produced"`
	TotalGrossEmissionsReduction float64 `json:"total_gross_emissions_reduction"`
}
