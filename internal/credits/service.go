package credits

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alimentary/brrp/carbon-backend/internal/emissions"
	"alimentary/brrp/carbon-backend/internal/verification"
)

const defaultCurrency = "USD"

// Service drives the carbon credit lifecycle and keeps the transaction
// ledger in step with every transition.
type Service struct {
	credits  Repository
	ledger   LedgerRepository
	ids      IdentifierProvider
	budget   BudgetValidator
	registry RegistryClient
	logger   *zap.Logger
}

// NewService creates a new credit lifecycle service
func NewService(
	creditRepo Repository,
	ledger LedgerRepository,
	ids IdentifierProvider,
	budget BudgetValidator,
	registry RegistryClient,
	logger *zap.Logger,
) *Service {
	return &Service{
		credits:  creditRepo,
		ledger:   ledger,
		ids:      ids,
		budget:   budget,
		registry: registry,
		logger:   logger,
	}
}

// Mint creates a credit from a verified emissions record and appends the
// MINT transaction. The storage uniqueness constraint on emissions_record_id
// turns a concurrent double mint into ErrDuplicateMint.
func (s *Service) Mint(ctx context.Context, em *emissions.Record, vr *verification.Record) (*CarbonCredit, error) {
	if vr.Status != verification.StatusVerified {
		return nil, fmt.Errorf("%w: verification status is %s", ErrNotVerified, vr.Status)
	}
	if vr.EmissionsRecordID != em.ID {
		return nil, ErrVerificationMismatch
	}

	credit := &CarbonCredit{
		TokenID:              s.ids.TokenID(),
		EmissionsRecordID:    em.ID,
		VerificationRecordID: vr.ID,
		Units:                em.GrossEmissionsReduction,
		MintedAt:             time.Now().UTC(),
		BlockchainAddress:    s.ids.BlockchainAddress(),
		RegistryID:           s.ids.RegistryID(),
		Status:               StatusMinted,
	}

	if err := s.credits.Create(ctx, credit); err != nil {
		return nil, err
	}

	mintTx := &Transaction{
		CarbonCreditID:   credit.ID,
		TransactionType:  TransactionMint,
		Amount:           credit.Units,
		Currency:         defaultCurrency,
		Timestamp:        credit.MintedAt,
		BlockchainTxHash: s.ids.TransactionHash(),
	}
	if err := s.ledger.Append(ctx, mintTx); err != nil {
		return nil, fmt.Errorf("credit minted but ledger append failed: %w", err)
	}

	s.logger.Info("carbon credit minted",
		zap.String("credit_id", credit.ID.String()),
		zap.String("token_id", credit.TokenID),
		zap.Float64("units", credit.Units))

	return credit, nil
}

// ValidateAgainstNationalBudget runs the external NDC validation and records
// the outcome on the credit. External failures surface as ExternalSyncError
// and never touch lifecycle state.
func (s *Service) ValidateAgainstNationalBudget(ctx context.Context, creditID uuid.UUID) (bool, string, error) {
	credit, err := s.credits.GetByID(ctx, creditID)
	if err != nil {
		return false, "", fmt.Errorf("carbon credit not found: %w", err)
	}

	valid, message, err := s.budget.Validate(ctx, credit)
	if err != nil {
		syncErr := &ExternalSyncError{Op: "national budget validation", Err: err}
		s.logger.Warn("national budget validation failed",
			zap.String("credit_id", creditID.String()),
			zap.Error(err))
		return false, "", syncErr
	}

	if valid {
		if err := s.credits.MarkBudgetValidated(ctx, creditID); err != nil {
			return false, "", fmt.Errorf("failed to record budget validation: %w", err)
		}
	}

	return valid, message, nil
}

// MakeAvailable lists a minted, budget-validated credit for sale
func (s *Service) MakeAvailable(ctx context.Context, creditID uuid.UUID, marketValue float64, currency string) (*CarbonCredit, error) {
	credit, err := s.credits.GetByID(ctx, creditID)
	if err != nil {
		return nil, fmt.Errorf("carbon credit not found: %w", err)
	}

	if !stateMachine.CanTransition(string(credit.Status), string(StatusAvailable)) {
		return nil, fmt.Errorf("%w: cannot list a %s credit", ErrInvalidState, credit.Status)
	}
	if !credit.NationalCarbonBudgetValidated {
		return nil, ErrBudgetNotValidated
	}
	if currency == "" {
		currency = defaultCurrency
	}

	ok, err := s.credits.MakeAvailable(ctx, creditID, marketValue, currency)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the conditional update to a concurrent transition
		return nil, fmt.Errorf("%w: credit no longer in MINTED state", ErrInvalidState)
	}

	return s.credits.GetByID(ctx, creditID)
}

// Sell transfers an available credit to a buyer and appends the SALE
// transaction. Single-owner model: the credit moves to SOLD, so there is no
// resale while this design stands.
func (s *Service) Sell(ctx context.Context, creditID uuid.UUID, buyerID string, amount float64) (*Transaction, error) {
	credit, err := s.credits.GetByID(ctx, creditID)
	if err != nil {
		return nil, fmt.Errorf("carbon credit not found: %w", err)
	}

	if !stateMachine.CanTransition(string(credit.Status), string(StatusSold)) {
		return nil, fmt.Errorf("%w: status is %s", ErrNotAvailable, credit.Status)
	}

	ok, err := s.credits.MarkSold(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: credit no longer AVAILABLE", ErrNotAvailable)
	}

	currency := defaultCurrency
	if credit.Currency != nil {
		currency = *credit.Currency
	}

	saleTx := &Transaction{
		CarbonCreditID:   creditID,
		TransactionType:  TransactionSale,
		BuyerID:          &buyerID,
		Amount:           amount,
		Currency:         currency,
		Timestamp:        time.Now().UTC(),
		BlockchainTxHash: s.ids.TransactionHash(),
	}
	if err := s.ledger.Append(ctx, saleTx); err != nil {
		return nil, fmt.Errorf("credit sold but ledger append failed: %w", err)
	}

	s.logger.Info("carbon credit sold",
		zap.String("credit_id", creditID.String()),
		zap.String("buyer_id", buyerID),
		zap.Float64("amount", amount))

	return saleTx, nil
}

// OffsetAndDestroy retires a credit: appends an OFFSET transaction followed
// by a DESTROY transaction and moves the credit to its terminal state.
// Irreversible. The status-guarded update makes concurrent calls collapse to
// one destruction; the loser gets ErrAlreadyDestroyed.
func (s *Service) OffsetAndDestroy(ctx context.Context, creditID uuid.UUID, buyerID string) (*Transaction, error) {
	credit, err := s.credits.GetByID(ctx, creditID)
	if err != nil {
		return nil, fmt.Errorf("carbon credit not found: %w", err)
	}

	if credit.IsTerminal() {
		return nil, ErrAlreadyDestroyed
	}

	ok, err := s.credits.MarkDestroyed(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyDestroyed
	}

	currency := defaultCurrency
	if credit.Currency != nil {
		currency = *credit.Currency
	}
	marketValue := 0.0
	if credit.MarketValue != nil {
		marketValue = *credit.MarketValue
	}
	now := time.Now().UTC()

	offsetTx := &Transaction{
		CarbonCreditID:   creditID,
		TransactionType:  TransactionOffset,
		BuyerID:          &buyerID,
		Amount:           marketValue,
		Currency:         currency,
		Timestamp:        now,
		BlockchainTxHash: s.ids.TransactionHash(),
	}
	if err := s.ledger.Append(ctx, offsetTx); err != nil {
		return nil, fmt.Errorf("credit destroyed but offset ledger append failed: %w", err)
	}

	destroyTx := &Transaction{
		CarbonCreditID:   creditID,
		TransactionType:  TransactionDestroy,
		BuyerID:          &buyerID,
		Amount:           0,
		Currency:         currency,
		Timestamp:        now.Add(time.Millisecond),
		BlockchainTxHash: s.ids.TransactionHash(),
	}
	if err := s.ledger.Append(ctx, destroyTx); err != nil {
		return nil, fmt.Errorf("credit destroyed but destroy ledger append failed: %w", err)
	}

	s.logger.Info("carbon credit offset and destroyed",
		zap.String("credit_id", creditID.String()),
		zap.String("buyer_id", buyerID))

	return destroyTx, nil
}

// SyncToGlobalRegistry pushes a credit to the Open Earth register.
// Best-effort: a failure is logged and surfaced but the lifecycle state is
// not rolled back.
func (s *Service) SyncToGlobalRegistry(ctx context.Context, creditID uuid.UUID) (string, error) {
	credit, err := s.credits.GetByID(ctx, creditID)
	if err != nil {
		return "", fmt.Errorf("carbon credit not found: %w", err)
	}

	registryURL, err := s.registry.Sync(ctx, credit)
	if err != nil {
		syncErr := &ExternalSyncError{Op: "registry sync", Err: err}
		s.logger.Warn("registry sync failed",
			zap.String("credit_id", creditID.String()),
			zap.Error(err))
		return "", syncErr
	}

	s.logger.Info("credit synced to global registry",
		zap.String("credit_id", creditID.String()),
		zap.String("registry_url", registryURL))

	return registryURL, nil
}

// Get returns a credit by ID
func (s *Service) Get(ctx context.Context, creditID uuid.UUID) (*CarbonCredit, error) {
	return s.credits.GetByID(ctx, creditID)
}

// TransactionHistory returns a credit's ledger entries in timestamp order
func (s *Service) TransactionHistory(ctx context.Context, creditID uuid.UUID) ([]Transaction, error) {
	return s.ledger.ListByCredit(ctx, creditID)
}
