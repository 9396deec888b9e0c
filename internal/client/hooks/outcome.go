package hooks

import (
	"errors"
	"fmt"
)

// Outcome reports what a mutator did.
type Outcome int

const (
	// OutcomeApplied means exactly one backend call was made; the returned
	// error is that call's result.
	OutcomeApplied Outcome = iota
	// OutcomeDisabled means the backend is switched off; nothing happened.
	OutcomeDisabled
	// OutcomeNoUser means no user could be resolved; nothing happened.
	OutcomeNoUser
	// OutcomeMissingID means a required record identifier was empty.
	OutcomeMissingID
	// OutcomeLocalRecord accompanies *LocalRecordError: the record is
	// client-only and no backend call was made.
	OutcomeLocalRecord
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeNoUser:
		return "no user"
	case OutcomeMissingID:
		return "missing id"
	case OutcomeLocalRecord:
		return "local record"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Skipped is true for every outcome other than OutcomeApplied.
func (o Outcome) Skipped() bool {
	return o != OutcomeApplied
}

var (
	ErrUnauthenticated = errors.New("user not authenticated, log in to create clinical documents")
	ErrLocalRecord     = errors.New("local record")
)

// LocalRecordError is returned when a remote mutation targets a client-only
// record. The caller owns that record and must apply Op itself.
type LocalRecordError struct {
	ID string
	Op string
}

func (e *LocalRecordError) Error() string {
	return fmt.Sprintf("local document %s: %s handled by caller", e.ID, e.Op)
}

func (e *LocalRecordError) Unwrap() error {
	return ErrLocalRecord
}
