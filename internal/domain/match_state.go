package domain

// Phase represents the lifecycle stage of a hand.
type Phase string

const (
	// PhaseBidding waits for the auction to finish.
	PhaseBidding Phase = "bidding"
	// PhaseExchange waits for the declarer to bury cards after taking the kitty.
	PhaseExchange Phase = "exchange"
	// PhaseDeclare waits for the declarer to name trump.
	PhaseDeclare Phase = "declare"
	// PhasePlaying indicates tricks are being played.
	PhasePlaying Phase = "playing"
	// PhaseScored indicates the hand is over and has been scored.
	PhaseScored Phase = "scored"
	// PhaseRedeal indicates the auction produced no contract; the same dealer
	// deals again.
	PhaseRedeal Phase = "redeal"
)

// Terminal reports whether no further action is accepted in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseScored || p == PhaseRedeal
}

// Roster binds player identifiers to seats. An empty entry is an open seat.
type Roster [NumSeats]string

// LowestAvailableSeat returns the first open seat clockwise from North.
func LowestAvailableSeat(r *Roster) (Seat, bool) {
	for i, id := range r {
		if id == "" {
			return Seat(i), true
		}
	}
	return 0, false
}

// SeatOf returns the seat held by id.
func (r Roster) SeatOf(id string) (Seat, bool) {
	if id == "" {
		return 0, false
	}
	for i, v := range r {
		if v == id {
			return Seat(i), true
		}
	}
	return 0, false
}

// Full reports whether all four seats are taken.
func (r Roster) Full() bool {
	_, open := LowestAvailableSeat(&r)
	return !open
}
