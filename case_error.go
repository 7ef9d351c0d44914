package boundchan

import (
	"errors"
	"fmt"
)

// CaseError wraps an error returned by [Select] together with the index
// and direction of the case that produced it. It unwraps to the cause, so
// errors.Is(err, ErrClosed) holds for a case that hit a closed channel.
type CaseError struct {
	Index int
	Op    Op
	Err   error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("boundchan: select case %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *CaseError) Unwrap() error {
	return e.Err
}

// IsCaseError reports whether err (or any error in its chain) is a [*CaseError].
func IsCaseError(err error) bool {
	if err == nil {
		return false
	}
	var ce *CaseError
	return errors.As(err, &ce)
}

// IndexOf extracts the case index from the first [*CaseError] in err's chain.
// Returns false if no CaseError is found.
func IndexOf(err error) (int, bool) {
	if err == nil {
		return -1, false
	}

	var ce *CaseError
	if errors.As(err, &ce) {
		return ce.Index, true
	}
	return -1, false
}

// CauseOf unwraps the first [*CaseError] in err's chain and returns its
// underlying cause. If err is not a CaseError, it is returned as-is.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var ce *CaseError
	if errors.As(err, &ce) {
		return ce.Err
	}
	return err
}
