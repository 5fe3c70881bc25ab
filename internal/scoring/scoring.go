// Package scoring turns the tricks of a finished hand into points and decides
// when a game is over.
package scoring

import (
	"fmt"

	"whist/internal/bidding"
	"whist/internal/domain"
)

// HandScore is the point delta of one hand. Seats is filled by per-seat
// variants and by solo declarers; Teams always holds the team deltas.
type HandScore struct {
	Teams       [2]int               `json:"teams"`
	Seats       [domain.NumSeats]int `json:"seats"`
	Explanation string               `json:"explanation"`
}

// Outcome ends a game. Winner is meaningless when Draw is set.
type Outcome struct {
	Winner domain.Team `json:"winner"`
	Draw   bool        `json:"draw"`
}

// Params carries hand facts a scoring rule may need beyond the contract.
type Params struct {
	TricksPerHand int
}

// Engine is the scoring contract of a variant. Scores a and b are the
// cumulative totals of North-South and East-West.
type Engine interface {
	ScoreHand(c bidding.Contract, tally domain.Tally, p Params) HandScore
	CheckGameOver(a, b, target int) *Outcome
	GameOverMessage(o Outcome, a, b int) string
}

// reachTarget ends the game once either side reaches target. When both do in
// the same hand the higher score wins and equal scores draw.
func reachTarget(a, b, target int) *Outcome {
	aWins, bWins := a >= target, b >= target
	return decide(a, b, aWins, bWins)
}

// reachEitherThreshold also ends the game when a side sinks to -target, which
// hands the win to the other side.
func reachEitherThreshold(a, b, target int) *Outcome {
	aWins := a >= target || b <= -target
	bWins := b >= target || a <= -target
	return decide(a, b, aWins, bWins)
}

func decide(a, b int, aWins, bWins bool) *Outcome {
	switch {
	case aWins && bWins:
		switch {
		case a > b:
			return &Outcome{Winner: domain.TeamNorthSouth}
		case b > a:
			return &Outcome{Winner: domain.TeamEastWest}
		default:
			return &Outcome{Draw: true}
		}
	case aWins:
		return &Outcome{Winner: domain.TeamNorthSouth}
	case bWins:
		return &Outcome{Winner: domain.TeamEastWest}
	default:
		return nil
	}
}

func standardMessage(o Outcome, a, b int) string {
	if o.Draw {
		return fmt.Sprintf("The game is drawn at %d all.", a)
	}
	win, lose := a, b
	if o.Winner == domain.TeamEastWest {
		win, lose = b, a
	}
	return fmt.Sprintf("%s wins the game %d to %d.", teamName(o.Winner), win, lose)
}

func teamName(t domain.Team) string {
	if t == domain.TeamNorthSouth {
		return "North-South"
	}
	return "East-West"
}

func declaringTeam(c bidding.Contract, who string) domain.Team {
	team, ok := c.DeclaringTeam()
	if !ok {
		panic(fmt.Sprintf("scoring: %s contract without a declarer", who))
	}
	return team
}

func odd(tricks int) int {
	if tricks > bookTricks {
		return tricks - bookTricks
	}
	return 0
}

const bookTricks = 6

// Standard engines keep the standard game-over rule.
type standard struct{}

func (standard) CheckGameOver(a, b, target int) *Outcome { return reachTarget(a, b, target) }

func (standard) GameOverMessage(o Outcome, a, b int) string { return standardMessage(o, a, b) }

// twoSided engines score negative hands, so a side can also lose by sinking
// to -target.
type twoSided struct{}

func (twoSided) CheckGameOver(a, b, target int) *Outcome { return reachEitherThreshold(a, b, target) }

func (twoSided) GameOverMessage(o Outcome, a, b int) string {
	if o.Draw {
		return standardMessage(o, a, b)
	}
	loser, loserScore, winScore := domain.TeamEastWest, b, a
	if o.Winner == domain.TeamEastWest {
		loser, loserScore, winScore = domain.TeamNorthSouth, a, b
	}
	if loserScore < 0 && -loserScore > winScore {
		return fmt.Sprintf("%s wins: %s fell to %d.", teamName(o.Winner), teamName(loser), loserScore)
	}
	return standardMessage(o, a, b)
}
