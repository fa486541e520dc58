package schedule

import (
	"errors"
	"testing"
)

func Test_Tally(t *testing.T) {
	cases := []struct {
		name   string
		counts []int
		winner int
	}{
		{"single candidate", []int{7}, 0},
		{"clear winner", []int{2, 4, 1}, 1},
		{"tie goes to the first index", []int{3, 5, 5, 1}, 1},
		{"all zero votes", []int{0, 0, 0}, 0},
		{"max at the end", []int{1, 2, 3}, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			winner, err := Tally(c.counts)
			if err != nil {
				t.Fatal(err)
			}
			if winner != c.winner {
				t.Errorf("expected winner %d, got %d", c.winner, winner)
			}
		})
	}

	t.Run("empty counts", func(t *testing.T) {
		_, err := Tally(nil)
		if !errors.Is(err, ErrNoVotes) {
			t.Errorf("expected ErrNoVotes, got %v", err)
		}
	})
}
