package credits

import (
	"time"

	"github.com/google/uuid"

	"alimentary/brrp/carbon-backend/pkg/workflows"
)

// Status represents the lifecycle state of a carbon credit. Transitions are
// monotone and one-directional; DESTROYED is terminal and a destroyed credit
// never re-enters circulation.
type Status string

const (
	StatusMinted    Status = "MINTED"
	StatusAvailable Status = "AVAILABLE"
	StatusSold      Status = "SOLD"
	StatusOffset    Status = "OFFSET"
	StatusDestroyed Status = "DESTROYED"
)

// stateMachine encodes the credit lifecycle. The service consults it before
// every status change; the repository's conditional updates then settle
// concurrent callers at the row level.
var stateMachine = workflows.NewStateMachine(map[string][]string{
	string(StatusMinted):    {string(StatusAvailable)},
	string(StatusAvailable): {string(StatusSold)},
	string(StatusSold):      {string(StatusOffset), string(StatusDestroyed)},
	string(StatusOffset):    {string(StatusDestroyed)},
	string(StatusDestroyed): {},
})

// CarbonCredit is one mintable, tradeable unit derived from exactly one
// verified emissions record. Logically permanent: destruction is a status,
// not a deletion. The unique index on emissions_record_id prevents two
// credits from the same record.
type CarbonCredit struct {
	ID                   uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TokenID              string    `json:"token_id" gorm:"not null;uniqueIndex"`
	EmissionsRecordID    uuid.UUID `json:"emissions_record_id" gorm:"type:uuid;not null;uniqueIndex"`
	VerificationRecordID uuid.UUID `json:"verification_record_id" gorm:"type:uuid;not null"`

	Units    float64   `json:"units" gorm:"type:decimal(12,3);not null"` // tonnes CO2eq, == GER
	MintedAt time.Time `json:"minted_at" gorm:"not null"`

	BlockchainAddress string `json:"blockchain_address" gorm:"not null"`
	RegistryID        string `json:"registry_id" gorm:"not null;index"`

	NationalCarbonBudgetValidated bool   `json:"national_carbon_budget_validated" gorm:"default:false"`
	Status                        Status `json:"status" gorm:"default:'MINTED';index"`

	MarketValue *float64 `json:"market_value,omitempty" gorm:"type:decimal(14,4)"`
	Currency    *string  `json:"currency,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM
func (CarbonCredit) TableName() string {
	return "carbon_credits"
}

// IsTerminal reports whether the credit has reached DESTROYED
func (c *CarbonCredit) IsTerminal() bool {
	return stateMachine.IsTerminal(string(c.Status))
}

// TransactionType classifies ledger entries
type TransactionType string

const (
	TransactionMint    TransactionType = "MINT"
	TransactionSale    TransactionType = "SALE"
	TransactionOffset  TransactionType = "OFFSET"
	TransactionDestroy TransactionType = "DESTROY"
)

// Transaction is one immutable ledger entry for one lifecycle event on one
// credit. Rows are append-only.
type Transaction struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	CarbonCreditID   uuid.UUID       `json:"carbon_credit_id" db:"carbon_credit_id"`
	TransactionType  TransactionType `json:"transaction_type" db:"transaction_type"`
	BuyerID          *string         `json:"buyer_id,omitempty" db:"buyer_id"`
	SellerID         *string         `json:"seller_id,omitempty" db:"seller_id"`
	Amount           float64         `json:"amount" db:"amount"`
	Currency         string          `json:"currency" db:"currency"`
	Timestamp        time.Time       `json:"timestamp" db:"timestamp"`
	BlockchainTxHash string          `json:"blockchain_tx_hash" db:"blockchain_tx_hash"`
}
