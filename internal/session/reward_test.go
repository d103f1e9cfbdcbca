package session

import (
	"testing"

	"derby/internal/events"
)

func TestRewardFor(t *testing.T) {
	cases := map[int]string{
		1: "1.000.000đ",
		2: "500.000đ",
		3: "200.000đ",
		4: "0đ",
		5: "0đ",
		0: "0đ",
	}
	for rank, want := range cases {
		if got := RewardFor(rank).Label; got != want {
			t.Fatalf("rank %d: expected %q, got %q", rank, want, got)
		}
	}
}

func TestFormatDong(t *testing.T) {
	cases := map[int64]string{
		0:          "0đ",
		999:        "999đ",
		1000:       "1.000đ",
		123456789:  "123.456.789đ",
		-2_500_000: "-2.500.000đ",
	}
	for amount, want := range cases {
		if got := FormatDong(amount); got != want {
			t.Fatalf("%d: expected %q, got %q", amount, want, got)
		}
	}
}

func TestLeaderboardRows(t *testing.T) {
	ev := events.GameOver{
		Player: 0,
		Rank:   2,
		Results: []events.Result{
			{ID: 3, Time: 10234},
			{ID: 0, Time: 11500},
		},
	}
	rows := Leaderboard(ev)
	if rows[0].Label != "Horse 4" || rows[0].Time != "10.23s" || rows[0].Position != 1 || rows[0].Player {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Label != "Horse 1 (you)" || rows[1].Time != "11.50s" || !rows[1].Player {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}
