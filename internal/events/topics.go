package events

import "derby/internal/race"

// Signal is the payload of topics that carry no data.
type Signal struct{}

// Handle lets presentation code query a running scene.
type Handle interface {
	RaceID() string
	Player() int
	Phase() race.Phase
	Agents() []race.Agent
}

// ReadyEvent announces that a scene finished setting up.
type ReadyEvent struct {
	RaceID string
	Handle Handle
}

// Result is one leaderboard row; Time is in milliseconds.
type Result struct {
	ID   int     `json:"id"`
	Time float64 `json:"time"`
}

// GameOver carries the final standing of a race.
type GameOver struct {
	RaceID  string   `json:"raceId"`
	Player  int      `json:"player"`
	Rank    int      `json:"rank"`
	Results []Result `json:"results"`
}

// NewGameOver converts a race outcome into the outbound payload.
func NewGameOver(raceID string, player int, out race.Outcome) GameOver {
	results := make([]Result, len(out.Results))
	for i, r := range out.Results {
		results[i] = Result{ID: r.Agent, Time: r.Time}
	}
	return GameOver{RaceID: raceID, Player: player, Rank: out.PlayerRank, Results: results}
}

var (
	// Start asks the scene to begin racing.
	Start = NewTopic[Signal]("start-race")
	// Boost is a tap on the player's horse.
	Boost = NewTopic[Signal]("boost")
	// Ready is published once a scene is set up.
	Ready = NewTopic[ReadyEvent]("current-scene-ready")
	// Finished is published exactly once per race with the final standing.
	Finished = NewTopic[GameOver]("game-over")
)
