package leveling

import "errors"

// Error kinds callers can check with errors.Is. Validation failures are
// rejected before anything is persisted; conflicts mean a concurrent
// update won a race and the operation can be retried; reconciliation
// errors mean role mutations failed against Discord while the XP change
// already persisted, and the diff can be re-applied later from current
// state alone.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("concurrent update conflict")
	ErrReconciliation = errors.New("role reconciliation failed")
)
