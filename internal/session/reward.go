package session

import (
	"fmt"
	"strconv"

	"derby/internal/events"
)

// Reward is the cash prize attached to a finishing position, in đồng.
type Reward struct {
	Rank   int
	Amount int64
	Label  string
}

var prizes = map[int]int64{
	1: 1_000_000,
	2: 500_000,
	3: 200_000,
}

// RewardFor maps a 1-based rank to its prize. Ranks without a prize pay 0.
func RewardFor(rank int) Reward {
	amount := prizes[rank]
	return Reward{Rank: rank, Amount: amount, Label: FormatDong(amount)}
}

// FormatDong renders an amount with dot thousands separators, e.g.
// "1.000.000đ".
func FormatDong(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	return sign + string(out) + "đ"
}

// Row is one line of the results table.
type Row struct {
	Position int
	Horse    int
	Label    string
	Time     string
	Player   bool
}

// Leaderboard formats a game-over payload for display. Horses are numbered
// from 1 and times shown in seconds.
func Leaderboard(ev events.GameOver) []Row {
	rows := make([]Row, len(ev.Results))
	for i, res := range ev.Results {
		label := fmt.Sprintf("Horse %d", res.ID+1)
		if res.ID == ev.Player {
			label += " (you)"
		}
		rows[i] = Row{
			Position: i + 1,
			Horse:    res.ID,
			Label:    label,
			Time:     fmt.Sprintf("%.2fs", res.Time/1000),
			Player:   res.ID == ev.Player,
		}
	}
	return rows
}
