package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	// ErrNotFound signals a lookup miss. It is a normal result, not a fault;
	// callers branch on it directly.
	ErrNotFound = errors.New("not_found")
	// ErrAccountNotFound signals that the target of a balance mutation is absent.
	ErrAccountNotFound = errors.New("account_not_found")
	// ErrCapacityExceeded signals that the account ceiling has been reached.
	ErrCapacityExceeded = errors.New("capacity_exceeded")
	// ErrIDAllocation signals that random ID generation exhausted its retry budget.
	ErrIDAllocation = errors.New("id_allocation_failed")
	// ErrConcurrentModification signals that a keyed update affected an unexpected
	// number of rows: either duplicate-ID corruption or a lost race.
	ErrConcurrentModification = errors.New("concurrent_modification")
	// ErrStore wraps persistence-layer I/O and connectivity faults.
	ErrStore = errors.New("store_error")
	// ErrLogWrite wraps audit log I/O faults. A log fault never rolls back the
	// ledger mutation it describes.
	ErrLogWrite = errors.New("log_write_failed")
	// ErrInsufficientFunds signals that a payment exceeds the sender's balance.
	// Plain debits never raise it; they clamp to zero instead.
	ErrInsufficientFunds = errors.New("insufficient_funds")
	// ErrInvalid is used for malformed arguments (empty names, bad amounts).
	ErrInvalid = errors.New("invalid")
)
