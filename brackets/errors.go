package brackets

import "errors"

// Validation errors reject a submitted score. Nothing is mutated when one of
// these is returned; the caller surfaces the violated rule verbatim.
var (
	ErrSetScoreNegative     = errors.New("set scores must be non-negative")
	ErrSetScoreInvalid      = errors.New("a set must reach at least 11 points with a margin of 2")
	ErrTooManySets          = errors.New("more sets than the match format allows")
	ErrMatchIncomplete      = errors.New("neither side has won enough sets to complete the match")
	ErrLoserSetCountInvalid = errors.New("losing side holds more sets than the format permits")
)

// State errors reject an operation that does not apply to the match in its
// current state. Seeding playoffs twice is deliberately not in this family:
// it is an expected race outcome and treated as a silent no-op.
var (
	ErrMatchAlreadyCompleted = errors.New("match is already completed")
	ErrOpponentNotResolved   = errors.New("match opponent is not resolved yet")
	ErrSuccessorSlotsFull    = errors.New("next round match has no free slot")
)

// Input errors reject a tournament configuration before any match is
// generated. They belong to setup time, not to play.
var (
	ErrNotEnoughParticipants = errors.New("at least 2 participants are required")
	ErrTooFewGroups          = errors.New("group stage requires at least 2 groups")
	ErrTooManyGroups         = errors.New("the number of groups exceeds the participant count")
	ErrAdvanceCountInvalid   = errors.New("players advancing per group must be at least 1")
	ErrAdvanceCountTooLarge  = errors.New("each group must keep at least one non-advancing player")
	ErrGroupConfigMissing    = errors.New("group stage tournaments require group configuration")
	ErrUnsupportedFormat     = errors.New("unsupported tournament format")
	ErrUnknownMatchFormat    = errors.New("unknown match format")
)

var validationErrors = []error{
	ErrSetScoreNegative,
	ErrSetScoreInvalid,
	ErrTooManySets,
	ErrMatchIncomplete,
	ErrLoserSetCountInvalid,
}

var stateErrors = []error{
	ErrMatchAlreadyCompleted,
	ErrOpponentNotResolved,
	ErrSuccessorSlotsFull,
}

var inputErrors = []error{
	ErrNotEnoughParticipants,
	ErrTooFewGroups,
	ErrTooManyGroups,
	ErrAdvanceCountInvalid,
	ErrAdvanceCountTooLarge,
	ErrGroupConfigMissing,
	ErrUnsupportedFormat,
	ErrUnknownMatchFormat,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err is a score validation failure.
func IsValidationError(err error) bool { return matchesAny(err, validationErrors) }

// IsStateError reports whether err is an invalid-state rejection.
func IsStateError(err error) bool { return matchesAny(err, stateErrors) }

// IsInputError reports whether err is a tournament configuration rejection.
func IsInputError(err error) bool { return matchesAny(err, inputErrors) }
