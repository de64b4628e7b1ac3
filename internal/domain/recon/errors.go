package recon

import "errors"

// Precondition violations on mutating operations. They are reported to
// the caller as rejected operations; session state is untouched when
// one is returned.
var (
	// ErrEmptySelection: a pairing needs at least one record on each side.
	ErrEmptySelection = errors.New("selection must include at least one bank record and one ledger record")
	// ErrDisabledRecord: disabled records cannot enter a pairing.
	ErrDisabledRecord = errors.New("selection includes a disabled record")
	// ErrAlreadyReconciled: the target already belongs to a pairing.
	ErrAlreadyReconciled = errors.New("record is already reconciled")
	// ErrNotFound: no record with the given id (or no pairing with the
	// given key).
	ErrNotFound = errors.New("record not found")
	// ErrFileAlreadyImported: the file name was imported before.
	ErrFileAlreadyImported = errors.New("file already imported")
	// ErrNotManualEntry: the operation only applies to hand-typed
	// ledger entries.
	ErrNotManualEntry = errors.New("not a manual entry")
	// ErrMissingFields: a manual entry needs date, amount and client.
	ErrMissingFields = errors.New("date, amount and client are required")
)
