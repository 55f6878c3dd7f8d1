package scada

import (
	"time"

	"github.com/google/uuid"
)

// Measurement represents one immutable sensor reading from a facility.
// Rows are append-only: the repository exposes no update or delete, which is
// the enforcement point for the immutable, geolocated, time-based data the
// accounting standards require.
type Measurement struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FacilityID string    `json:"facility_id" gorm:"not null;index:idx_measurements_facility_time"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null;index:idx_measurements_facility_time"`

	// Quantities
	WasteProcessed      float64  `json:"waste_processed" gorm:"type:decimal(12,4);not null"`        // tonnes
	MethaneGenerated    float64  `json:"methane_generated" gorm:"type:decimal(14,4);not null"`      // m3
	MethaneDestroyed    float64  `json:"methane_destroyed" gorm:"type:decimal(14,4);not null"`      // m3
	ElectricityProduced *float64 `json:"electricity_produced,omitempty" gorm:"type:decimal(14,4)"`  // kWh
	ProcessHeatProduced *float64 `json:"process_heat_produced,omitempty" gorm:"type:decimal(14,4)"` // MJ

	// Location
	Latitude        *float64 `json:"latitude,omitempty" gorm:"type:decimal(9,6)"`
	Longitude       *float64 `json:"longitude,omitempty" gorm:"type:decimal(9,6)"`
	LocationAddress *string  `json:"location_address,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for GORM
func (Measurement) TableName() string {
	return "scada_measurements"
}

// GeoLocation is the ingestion-boundary representation of a facility location
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

// RecordRequest is the payload accepted by the ingestion boundary
type RecordRequest struct {
	FacilityID          string       `json:"facility_id"`
	Timestamp           time.Time    `json:"timestamp"`
	WasteProcessed      float64      `json:"waste_processed"`
	MethaneGenerated    float64      `json:"methane_generated"`
	MethaneDestroyed    float64      `json:"methane_destroyed"`
	ElectricityProduced *float64     `json:"electricity_produced,omitempty"`
	ProcessHeatProduced *float64     `json:"process_heat_produced,omitempty"`
	Location            *GeoLocation `json:"location,omitempty"`
}
