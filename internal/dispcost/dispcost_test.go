package dispcost

import (
	"testing"

	"github.com/elevlab/dispatch/internal/dispcar"
	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/disprequest"
)

func upCall(t *testing.T, floor int) disprequest.Request {
	t.Helper()
	req, err := disprequest.NewExternal(floor, dispconsts.Up)
	if err != nil {
		t.Fatalf("NewExternal(%d, Up) failed: %v", floor, err)
	}
	return req
}

func TestWeightedScore(t *testing.T) {
	req := upCall(t, 3)

	cases := []struct {
		name     string
		car      dispcar.Snapshot
		expected int
	}{
		{
			name:     "idle car two floors away",
			car:      dispcar.Snapshot{ID: 0, Floor: 1, Direction: dispconsts.Idle},
			expected: 2,
		},
		{
			name:     "idle car six floors away",
			car:      dispcar.Snapshot{ID: 1, Floor: 9, Direction: dispconsts.Idle},
			expected: 6,
		},
		{
			name:     "aligned car gets the bonus",
			car:      dispcar.Snapshot{ID: 2, Floor: 1, Direction: dispconsts.Up},
			expected: -3,
		},
		{
			name:     "queued stops cost two each",
			car:      dispcar.Snapshot{ID: 3, Floor: 3, Direction: dispconsts.Down, Queued: 4},
			expected: 8,
		},
	}

	strategy := Weighted{}
	for _, c := range cases {
		if got := strategy.Score(c.car, req); got != c.expected {
			t.Errorf("%s: Score() = %d, expected %d", c.name, got, c.expected)
		}
	}
}

func TestNearestScoreIgnoresLoadAndDirection(t *testing.T) {
	req := upCall(t, 5)
	car := dispcar.Snapshot{ID: 0, Floor: 2, Direction: dispconsts.Down, Queued: 10}

	if got := (Nearest{}).Score(car, req); got != 3 {
		t.Errorf("Score() = %d, expected 3", got)
	}
}
