package verification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alimentary/brrp/carbon-backend/pkg/workflows"
)

// Standard identifies a third-party verification scheme. Distinct from the
// emissions accounting standard: the scheme attests the calculation, the
// accounting standard governs it.
type Standard string

const (
	StandardVerra        Standard = "VERRA"
	StandardGoldStandard Standard = "GOLD_STANDARD"
	StandardToituEkos    Standard = "TOITU_EKOS"
)

// IsKnown reports whether the standard is a supported verification scheme
func (s Standard) IsKnown() bool {
	switch s {
	case StandardVerra, StandardGoldStandard, StandardToituEkos:
		return true
	}
	return false
}

// Status represents the verification workflow state
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusVerified   Status = "VERIFIED"
	StatusRejected   Status = "REJECTED"
)

// stateMachine encodes the workflow: PENDING -> IN_PROGRESS -> {VERIFIED,
// REJECTED}. VERIFIED and REJECTED are terminal; rejection is how a pending
// verification is "cancelled".
var stateMachine = workflows.NewStateMachine(map[string][]string{
	string(StatusPending):    {string(StatusInProgress)},
	string(StatusInProgress): {string(StatusVerified), string(StatusRejected)},
	string(StatusVerified):   {},
	string(StatusRejected):   {},
})

// reverificationInterval is the bi-annual re-verification cadence
const reverificationInterval = 6 * 30 * 24 * time.Hour

// Record is one verification attempt of one emissions record by one external
// body. Mutated only through status transitions; never deleted.
type Record struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	EmissionsRecordID uuid.UUID `json:"emissions_record_id" gorm:"type:uuid;not null;index"`

	Standard         Standard  `json:"standard" gorm:"not null;index"`
	VerifiedBy       string    `json:"verified_by" gorm:"not null"`
	VerificationDate time.Time `json:"verification_date" gorm:"not null"`
	Status           Status    `json:"status" gorm:"default:'PENDING';index"`

	CertificateURL      *string        `json:"certificate_url,omitempty"`
	Notes               *string        `json:"notes,omitempty"`
	NextVerificationDue time.Time      `json:"next_verification_due" gorm:"not null;index"`
	Findings            datatypes.JSON `json:"findings" gorm:"default:'[]'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM
func (Record) TableName() string {
	return "verification_records"
}

// IsTerminal reports whether the record has reached VERIFIED or REJECTED
func (r *Record) IsTerminal() bool {
	return stateMachine.IsTerminal(string(r.Status))
}

// IsDue reports whether re-verification is due at the given instant
func (r *Record) IsDue(now time.Time) bool {
	return !now.Before(r.NextVerificationDue)
}
