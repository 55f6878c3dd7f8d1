package credits

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LedgerRepository is the append-only transaction ledger. There is no update
// or delete: once appended, an entry is permanent.
type LedgerRepository interface {
	Append(ctx context.Context, tx *Transaction) error
	ListByCredit(ctx context.Context, creditID uuid.UUID) ([]Transaction, error)
	CountByType(ctx context.Context, creditID uuid.UUID, txType TransactionType) (int, error)
}

// SQLLedger implements LedgerRepository over PostgreSQL
type SQLLedger struct {
	db *sqlx.DB
}

// NewSQLLedger creates a new ledger repository
func NewSQLLedger(db *sqlx.DB) *SQLLedger {
	return &SQLLedger{db: db}
}

func (l *SQLLedger) Append(ctx context.Context, tx *Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO carbon_credit_transactions (
			id, carbon_credit_id, transaction_type, buyer_id, seller_id,
			amount, currency, timestamp, blockchain_tx_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tx.ID, tx.CarbonCreditID, tx.TransactionType, tx.BuyerID, tx.SellerID,
		tx.Amount, tx.Currency, tx.Timestamp, tx.BlockchainTxHash,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ListByCredit returns all ledger entries for a credit in timestamp order
func (l *SQLLedger) ListByCredit(ctx context.Context, creditID uuid.UUID) ([]Transaction, error) {
	var transactions []Transaction
	err := l.db.SelectContext(ctx, &transactions, `
		SELECT id, carbon_credit_id, transaction_type, buyer_id, seller_id,
		       amount, currency, timestamp, blockchain_tx_hash
		FROM carbon_credit_transactions
		WHERE carbon_credit_id = $1
		ORDER BY timestamp ASC, transaction_type ASC`,
		creditID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (l *SQLLedger) CountByType(ctx context.Context, creditID uuid.UUID, txType TransactionType) (int, error) {
	var count int
	err := l.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM carbon_credit_transactions
		WHERE carbon_credit_id = $1 AND transaction_type = $2`,
		creditID, txType,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// EnsureLedgerSchema creates the ledger table if it does not exist. The
// entity tables are migrated through GORM; the ledger is raw SQL so it owns
// its schema here.
func EnsureLedgerSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS carbon_credit_transactions (
			id UUID PRIMARY KEY,
			carbon_credit_id UUID NOT NULL,
			transaction_type TEXT NOT NULL,
			buyer_id TEXT,
			seller_id TEXT,
			amount NUMERIC(14,4) NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'USD',
			timestamp TIMESTAMPTZ NOT NULL,
			blockchain_tx_hash TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cct_credit_time
			ON carbon_credit_transactions (carbon_credit_id, timestamp);`)
	return err
}
