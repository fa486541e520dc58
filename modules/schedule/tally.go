package schedule

// TallyResult is the outcome of a single aggregation. It is rebuilt from the
// live reaction counts every time and never stored.
type TallyResult struct {
	Counts []int
	Winner int
}

// Tally picks the winning candidate index from one vote count per candidate.
// Ties go to the lowest index, which by generation order is the earliest
// date. An empty count list means the poll message lost its reactions, which
// is a contract violation rather than a zero-vote poll.
func Tally(counts []int) (int, error) {
	if len(counts) == 0 {
		return 0, ErrNoVotes
	}

	winner := 0
	for i, c := range counts {
		if c > counts[winner] {
			winner = i
		}
	}

	return winner, nil
}
