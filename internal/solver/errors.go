package solver

import "errors"

// ErrDictionaryFault wraps any dictionary lookup failure. A single faulting
// batch aborts the whole run; statistics for a failed run are discarded.
var ErrDictionaryFault = errors.New("dictionary fault")
