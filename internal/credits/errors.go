package credits

import (
	"errors"
	"fmt"
)

var (
	// ErrNotVerified is returned when minting against a verification record
	// that is not VERIFIED
	ErrNotVerified = errors.New("emissions record not verified")

	// ErrVerificationMismatch is returned when the verification record does
	// not belong to the emissions record being minted
	ErrVerificationMismatch = errors.New("verification record does not match emissions record")

	// ErrDuplicateMint is returned when a credit already exists for the
	// emissions record; surfaced from the storage uniqueness constraint so
	// concurrent mints cannot both succeed
	ErrDuplicateMint = errors.New("carbon credit already minted for emissions record")

	// ErrInvalidState is returned when a lifecycle operation is attempted
	// from a state that does not permit it
	ErrInvalidState = errors.New("operation not permitted in current credit status")

	// ErrBudgetNotValidated is returned when listing a credit that has not
	// passed national carbon budget validation
	ErrBudgetNotValidated = errors.New("credit not validated against national carbon budget")

	// ErrNotAvailable is returned when selling a credit that is not listed
	ErrNotAvailable = errors.New("carbon credit is not available for sale")

	// ErrAlreadyDestroyed guards double destruction: a second offset call
	// reports it rather than appending a second DESTROY transaction
	ErrAlreadyDestroyed = errors.New("carbon credit already destroyed")
)

// ExternalSyncError wraps failures from advisory external integrations
// (registry sync, national budget validation). These are logged and surfaced
// but never roll back the credit's lifecycle state.
type ExternalSyncError struct {
	Op  string
	Err error
}

func (e *ExternalSyncError) Error() string {
	return fmt.Sprintf("external sync failed during %s: %v", e.Op, e.Err)
}

func (e *ExternalSyncError) Unwrap() error {
	return e.Err
}
