package toolbar

import "errors"

// ErrContractViolation marks programming errors: calls that would leave
// the toolbar in a corrupt state if they were allowed to proceed.
var ErrContractViolation = errors.New("toolbar: contract violation")

var (
	// ErrNoItems is returned by New when the initial item list is empty.
	ErrNoItems = wrapContract("no items")
	// ErrIndexOutOfRange is returned by Exchange for indices outside the tree.
	ErrIndexOutOfRange = wrapContract("index out of range")
)

// ErrAnimating is logged when a selection change is rejected because a
// previous selection animation has not completed yet.
var ErrAnimating = errors.New("toolbar: selection animation in flight")

type contractError struct{ msg string }

func (e *contractError) Error() string { return "toolbar: " + e.msg }

func (e *contractError) Unwrap() error { return ErrContractViolation }

func wrapContract(msg string) error { return &contractError{msg: msg} }
