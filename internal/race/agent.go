package race

// Agent is one horse on the track. Index doubles as the lane number.
type Agent struct {
	Index    int
	Position float64
	Speed    float64
	Finished bool
	Player   bool
}

// Gait returns the animation time scale for the horse: proportional to speed
// while running and zero once it has crossed the line.
func (a Agent) Gait() float64 {
	if a.Finished {
		return 0
	}
	return a.Speed / 5
}
