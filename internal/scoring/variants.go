package scoring

import (
	"fmt"

	"whist/internal/bidding"
	"whist/internal/domain"
)

// LowScoring selects how a Minnesota low hand is scored.
type LowScoring string

const (
	// LowPenalizeMajority costs the side with more tricks one point per trick
	// over six.
	LowPenalizeMajority LowScoring = "penalize_majority"
	// LowRewardMinority pays the side with fewer tricks one point per trick
	// under seven.
	LowRewardMinority LowScoring = "reward_minority"
)

// ParseLowScoring reads a house-rule token; empty selects the default.
func ParseLowScoring(s string) (LowScoring, error) {
	switch l := LowScoring(s); l {
	case "":
		return LowPenalizeMajority, nil
	case LowPenalizeMajority, LowRewardMinority:
		return l, nil
	default:
		return "", domain.Malformed(domain.CodeInvalidFormat, "unknown low scoring rule %q", s)
	}
}

// Minnesota scores grands and lows.
type Minnesota struct {
	standard
	Low LowScoring
}

var _ Engine = Minnesota{}

func (m Minnesota) ScoreHand(c bidding.Contract, tally domain.Tally, _ Params) HandScore {
	var hs HandScore
	switch c.Kind {
	case bidding.ContractHigh:
		decl := declaringTeam(c, "high")
		made := tally.Team(decl)
		if made > bookTricks {
			hs.Teams[decl] = made - bookTricks
			hs.Explanation = fmt.Sprintf("%s grand made with %d tricks: +%d", teamName(decl), made, hs.Teams[decl])
			return hs
		}
		opp := decl.Opponent()
		hs.Teams[opp] = 2 * odd(tally.Team(opp))
		hs.Explanation = fmt.Sprintf("%s grand set with %d tricks: %s +%d", teamName(decl), made, teamName(opp), hs.Teams[opp])
	case bidding.ContractLow:
		ns, ew := tally.Team(domain.TeamNorthSouth), tally.Team(domain.TeamEastWest)
		more, fewer := domain.TeamNorthSouth, domain.TeamEastWest
		if ew > ns {
			more, fewer = fewer, more
		}
		if m.Low == LowRewardMinority {
			under := bookTricks + 1 - tally.Team(fewer)
			if under < 0 {
				under = 0
			}
			hs.Teams[fewer] = under
			hs.Explanation = fmt.Sprintf("low hand: %s took %d tricks: +%d", teamName(fewer), tally.Team(fewer), under)
			return hs
		}
		hs.Teams[more] = -odd(tally.Team(more))
		hs.Explanation = fmt.Sprintf("low hand: %s took %d tricks: %d", teamName(more), tally.Team(more), hs.Teams[more])
	default:
		panic(fmt.Sprintf("scoring: minnesota cannot score a %s contract", c.Kind))
	}
	return hs
}

// Classic scores odd tricks: one point for each trick past the book of six.
type Classic struct {
	standard
}

var _ Engine = Classic{}

func (Classic) ScoreHand(_ bidding.Contract, tally domain.Tally, _ Params) HandScore {
	var hs HandScore
	for _, team := range []domain.Team{domain.TeamNorthSouth, domain.TeamEastWest} {
		hs.Teams[team] = odd(tally.Team(team))
	}
	hs.Explanation = fmt.Sprintf("odd tricks: North-South %d, East-West %d", hs.Teams[0], hs.Teams[1])
	return hs
}

// BidWhist scores the declaring side only. Game ends at plus or minus the
// target.
type BidWhist struct {
	twoSided
}

var _ Engine = BidWhist{}

func (BidWhist) ScoreHand(c bidding.Contract, tally domain.Tally, p Params) HandScore {
	if c.Kind != bidding.ContractLevel {
		panic(fmt.Sprintf("scoring: bid whist cannot score a %s contract", c.Kind))
	}
	if p.TricksPerHand <= 0 {
		panic("scoring: bid whist needs the tricks per hand")
	}
	decl := declaringTeam(c, "bid whist")
	took := tally.Team(decl)
	need := bookTricks + c.Level

	var hs HandScore
	if took < need {
		hs.Teams[decl] = -c.Level
		hs.Explanation = fmt.Sprintf("%s set: took %d of %d needed: %d", teamName(decl), took, need, -c.Level)
		return hs
	}
	pts := c.Level
	note := ""
	if took == p.TricksPerHand {
		pts *= 2
		note = ", boston"
	}
	if c.NoTrump {
		pts++
		note += ", no-trump bonus"
	}
	hs.Teams[decl] = pts
	hs.Explanation = fmt.Sprintf("%s made %d with %d tricks%s: +%d", teamName(decl), c.Level, took, note, pts)
	return hs
}

// OhHell scores each seat: ten plus the bid for hitting it exactly.
type OhHell struct {
	standard
}

var _ Engine = OhHell{}

func (OhHell) ScoreHand(c bidding.Contract, tally domain.Tally, _ Params) HandScore {
	if c.Kind != bidding.ContractExact {
		panic(fmt.Sprintf("scoring: oh hell cannot score a %s contract", c.Kind))
	}
	var hs HandScore
	made := 0
	for s := domain.North; s <= domain.West; s++ {
		if tally[s] == c.Bids[s] {
			hs.Seats[s] = 10 + c.Bids[s]
			made++
		}
		hs.Teams[s.Team()] += hs.Seats[s]
	}
	hs.Explanation = fmt.Sprintf("%d of 4 seats made their bids exactly", made)
	return hs
}

// Widow scores the tricks the solo declarer's own seat took; the partner's
// tricks never count toward the contract. The delta is credited to the
// declarer's partnership. Game ends at plus or minus the target.
type Widow struct {
	twoSided
}

var _ Engine = Widow{}

func (Widow) ScoreHand(c bidding.Contract, tally domain.Tally, _ Params) HandScore {
	if c.Kind != bidding.ContractSolo {
		panic(fmt.Sprintf("scoring: widow whist cannot score a %s contract", c.Kind))
	}
	decl := declaringTeam(c, "solo")
	took := tally[c.Declarer]

	var hs HandScore
	if took >= c.Level {
		hs.Teams[decl] = took - bookTricks
		hs.Explanation = fmt.Sprintf("%s made %d with %d tricks: +%d", c.Declarer, c.Level, took, hs.Teams[decl])
	} else {
		hs.Teams[decl] = -2 * (c.Level - took)
		hs.Explanation = fmt.Sprintf("%s fell %d short of %d: %d", c.Declarer, c.Level-took, c.Level, hs.Teams[decl])
	}
	hs.Seats[c.Declarer] = hs.Teams[decl]
	return hs
}
