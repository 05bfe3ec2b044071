package agency

import "errors"

// Error kinds surfaced by the lifecycle operations. Callers match them with
// errors.Is; the concrete error usually carries an entity specific message.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCardinality = errors.New("mission must have between 1 and 3 targets")
	ErrAlreadyAssigned    = errors.New("cat already has an active mission")
	ErrLocked             = errors.New("cannot update completed target or mission")
	ErrHasAssignment      = errors.New("cannot delete mission assigned to a cat")
	ErrHasActiveMission   = errors.New("cannot delete spy cat with active missions")
	ErrInvalidBreed       = errors.New("invalid cat breed")
)

// Error pairs an error kind with a client facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// notFound rewrites a store level ErrNotFound into an entity specific message
// and passes every other error through untouched.
func notFound(entity string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return newError(ErrNotFound, entity+" not found")
	}
	return err
}

// Code returns the stable machine readable code for err, or "internal" when
// err is not part of the lifecycle taxonomy.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidCardinality):
		return "invalid_cardinality"
	case errors.Is(err, ErrAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, ErrLocked):
		return "locked"
	case errors.Is(err, ErrHasAssignment):
		return "has_assignment"
	case errors.Is(err, ErrHasActiveMission):
		return "has_active_mission"
	case errors.Is(err, ErrInvalidBreed):
		return "invalid_breed"
	default:
		return "internal"
	}
}

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
