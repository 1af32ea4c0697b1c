package searcher

import "errors"

// Typed failures surfaced to the driver. Budget exhaustion is not among
// them: running out of time is a normal termination and the search still
// answers with its best effort.
var (
	// ErrGenerationFailure reports an action-generator contract violation:
	// an empty move set for a non-terminal board.
	ErrGenerationFailure = errors.New("no legal moves generated for a live position")

	// ErrSelectionInconsistency reports an internal invariant violation: a
	// non-terminal, fully expanded node with no children.
	ErrSelectionInconsistency = errors.New("search tree invariant violated")

	// ErrNoBestChild reports that the final exploitation step found no
	// children at all, so no move could be recommended.
	ErrNoBestChild = errors.New("no candidate move found")
)
