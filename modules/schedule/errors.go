package schedule

import "errors"

// Validation errors are reported back to the requester and never kill the
// process. Aggregation errors abort a single aggregation attempt only.
var (
	ErrAlreadyCollecting = errors.New("a vote is already being collected for this guild")
	ErrNotInGuild        = errors.New("command can only be used inside a guild")
	ErrInvalidStartDate  = errors.New("start_date is not a valid date")
	ErrInvalidEndDate    = errors.New("end_date is not a valid date")
	ErrDateOrder         = errors.New("end_date must be after start_date")
	ErrPastDate          = errors.New("dates must be after the current time")
	ErrScheduleOverlap   = errors.New("schedule period overlaps the voting period")
	ErrInvalidTimeRange  = errors.New("time range hours must be within 0-23 and start before end")
	ErrUnknownFilter     = errors.New("unknown filter type")
	ErrInvalidTimezone   = errors.New("unknown timezone")

	ErrConflictingRange = errors.New("end date and range length cannot both be given")
	ErrInvalidRange     = errors.New("date range contains no days")

	ErrNoCandidates      = errors.New("no dates match the given conditions")
	ErrTooManyCandidates = errors.New("more candidate dates than available reactions")

	ErrNoVotes          = errors.New("no vote counts to tally")
	ErrInvalidEventTime = errors.New("event time is out of range or in the past")
	ErrNoVenue          = errors.New("guild has no voice channel to host the event")
	ErrNoActiveSession  = errors.New("no vote is currently being collected")
)
