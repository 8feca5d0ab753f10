package classifier

import "errors"

// Lifecycle and usage errors surfaced by the model. All of them are
// caller-correctable; none indicate a transient failure.
var (
	// ErrNotTrained is returned when classification is attempted
	// before Train has been called.
	ErrNotTrained = errors.New("classifier: model is not trained")

	// ErrTrained is returned when accumulation or configuration is
	// attempted after Train. Call Reset to start over.
	ErrTrained = errors.New("classifier: model is already trained")

	// ErrNoTrainingData is returned by Train when no documents were
	// ever added.
	ErrNoTrainingData = errors.New("classifier: no training data")

	// ErrInvalidSmoothing is returned when the smoothing factor is
	// zero or negative.
	ErrInvalidSmoothing = errors.New("classifier: smoothing must be a positive number")
)
