package scores

import "fmt"

// TeamScore is a team's accumulated score: normalised league points as the
// primary ranking field, raw game points as the tiebreak.
type TeamScore struct {
	LeaguePoints float64
	GamePoints   int
}

// Add returns the elementwise sum of two TeamScores.
func (s TeamScore) Add(o TeamScore) TeamScore {
	return TeamScore{
		LeaguePoints: s.LeaguePoints + o.LeaguePoints,
		GamePoints:   s.GamePoints + o.GamePoints,
	}
}

// Less reports whether s ranks strictly worse than o: lower league points
// first, game points breaking a league-points tie.
func (s TeamScore) Less(o TeamScore) bool {
	if s.LeaguePoints != o.LeaguePoints {
		return s.LeaguePoints < o.LeaguePoints
	}
	return s.GamePoints < o.GamePoints
}

// Equal reports whether s and o have identical fields.
func (s TeamScore) Equal(o TeamScore) bool {
	return s.LeaguePoints == o.LeaguePoints && s.GamePoints == o.GamePoints
}

// CompareNullable compares two possibly-nil TeamScores, returning an error
// rather than a boolean if either side is nil: the source leaves ordering
// against "no score" undefined, and silently treating a missing score as
// "worst possible" has bitten callers before.
func CompareNullable(a, b *TeamScore) (less bool, err error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("cannot order a TeamScore against a missing score")
	}
	return a.Less(*b), nil
}
