package domain

// Seat is a table position. Play proceeds clockwise N, E, S, W.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// NumSeats is the fixed table size.
const NumSeats = 4

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool {
	return s >= North && s <= West
}

// Next returns the clockwise successor.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Partner returns the seat across the table.
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// Team returns the fixed partnership the seat belongs to.
func (s Seat) Team() Team {
	if s%2 == 0 {
		return TeamNorthSouth
	}
	return TeamEastWest
}

func (s Seat) String() string {
	switch s {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "?"
	}
}

// SeatsFrom returns all four seats clockwise starting at start.
func SeatsFrom(start Seat) [NumSeats]Seat {
	var out [NumSeats]Seat
	for i := range out {
		out[i] = (start + Seat(i)) % NumSeats
	}
	return out
}

// Team is one of the two fixed partnerships.
type Team int

const (
	TeamNorthSouth Team = iota
	TeamEastWest
)

// Opponent returns the other partnership.
func (t Team) Opponent() Team {
	return 1 - t
}

// Seats returns the two seats of the partnership.
func (t Team) Seats() [2]Seat {
	if t == TeamNorthSouth {
		return [2]Seat{North, South}
	}
	return [2]Seat{East, West}
}

func (t Team) String() string {
	if t == TeamNorthSouth {
		return "north-south"
	}
	return "east-west"
}

// Tally counts tricks won per seat for one hand.
type Tally [NumSeats]int

// Team sums the tricks of both partners.
func (t Tally) Team(team Team) int {
	seats := team.Seats()
	return t[seats[0]] + t[seats[1]]
}

// Total is the number of tricks taken so far.
func (t Tally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Award credits n tricks to seat s.
func (t *Tally) Award(s Seat, n int) {
	t[s] += n
}
