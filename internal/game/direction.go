package game

import "time"

// Direction is the lane a note travels down and the key that hits it.
type Direction uint8

const (
	Left Direction = iota
	Up
	Down
	Right
)

// NLanes is the number of lanes in every chart
const NLanes = 4

var Directions = [NLanes]Direction{Left, Up, Down, Right}

var directionNames = [NLanes]string{"left", "up", "down", "right"}

func (d Direction) Valid() bool {
	return d < NLanes
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// Input is a single key-down edge at a song time
type Input struct {
	Lane Direction
	Time time.Duration
}
