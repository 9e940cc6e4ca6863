package cell

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrNotInitialized is returned by any operation other than NewGame before
	// the first game has started.
	ErrNotInitialized = errors.New("cell: engine not initialized")
	// ErrSessionFinished is returned after Destroy until the next NewGame.
	ErrSessionFinished = errors.New("cell: session finished")
	// ErrSlotOutOfRange indicates a slot outside 0..24.
	ErrSlotOutOfRange = errors.New("cell: slot out of range")
)
