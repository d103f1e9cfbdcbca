package ui

import (
	"fmt"
	"strconv"

	"derby/internal/race"
	"derby/internal/session"
)

// HUDLines returns the status readout shown in the corner while a race is
// on screen. It is empty in the lobby.
func HUDLines(s *session.Session) []string {
	sc := s.Scene()
	if sc == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("Horse %d", sc.Player()+1)}
	for _, a := range sc.Agents() {
		if !a.Player {
			continue
		}
		lines = append(lines,
			"Speed "+strconv.FormatFloat(a.Speed, 'f', 1, 64),
			fmt.Sprintf("Distance %.0f / %.0f", min(a.Position, sc.FinishLine()), sc.FinishLine()),
		)
	}
	lines = append(lines, fmt.Sprintf("Time %.2fs", sc.Elapsed()/1000))
	if sc.Phase() == race.PhaseRacing {
		lines = append(lines, "Tap or Space to gallop")
	}
	return lines
}

// OverlayLines returns the centred panel for the current screen: the horse
// picker, the countdown or the results. Both values are empty while racing.
func OverlayLines(s *session.Session) (title string, lines []string) {
	switch s.Phase() {
	case session.PhaseLobby:
		lines = make([]string, 0, race.AgentCount+1)
		for i := 0; i < race.AgentCount; i++ {
			lines = append(lines, fmt.Sprintf("[%d] Horse %d", i+1, i+1))
		}
		lines = append(lines, "Press 1-5 to pick your horse")
		return "Pick your horse", lines
	case session.PhaseCountdown:
		return strconv.Itoa(s.Countdown()), nil
	case session.PhaseFinished:
		ev, ok := s.Result()
		if !ok {
			return "", nil
		}
		reward := s.Reward()
		title = "You finished " + Ordinal(ev.Rank)
		lines = append(lines, "Prize: "+reward.Label, "")
		for _, row := range s.Leaderboard() {
			lines = append(lines, fmt.Sprintf("%d. %-14s %s", row.Position, row.Label, row.Time))
		}
		lines = append(lines, "", "Press R to race again")
		return title, lines
	default:
		return "", nil
	}
}

// Ordinal formats a rank as "1st", "2nd", "3rd", "4th" and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
