package entities

import "github.com/rotisserie/eris"

// Error kinds surfaced by loaders and the purchase service. Callers match them with eris.Is.
var (
	// ErrMissingColumn means a catalog or side table lacks a required field.
	ErrMissingColumn = eris.New("missing column")
	// ErrUnparseableInput means a pasted or side-table text could not be turned into rows.
	ErrUnparseableInput = eris.New("unparseable input")
	// ErrInsufficientInputs means a mandatory source is absent at computation time.
	ErrInsufficientInputs = eris.New("insufficient inputs")
	// ErrComputationFailure wraps any unexpected fault inside the pipeline.
	ErrComputationFailure = eris.New("computation failure")
)
