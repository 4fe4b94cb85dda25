package models

// StandingsLine holds one cumulative win-draw-loss tally.
// Invariants: Played == Won+Drawn+Lost and Points == 3*Won+Drawn.
type StandingsLine struct {
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
	Points       int `json:"points"`
}

// Record folds one decided match into the line from the perspective of
// the team that scored `scored` goals.
func (l *StandingsLine) Record(scored, conceded int) {
	l.Played++
	l.GoalsFor += scored
	l.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		l.Won++
		l.Points += 3
	case scored == conceded:
		l.Drawn++
		l.Points++
	default:
		l.Lost++
	}
}

// Add returns the field-wise sum of two lines.
func (l StandingsLine) Add(other StandingsLine) StandingsLine {
	return StandingsLine{
		Played:       l.Played + other.Played,
		Won:          l.Won + other.Won,
		Drawn:        l.Drawn + other.Drawn,
		Lost:         l.Lost + other.Lost,
		GoalsFor:     l.GoalsFor + other.GoalsFor,
		GoalsAgainst: l.GoalsAgainst + other.GoalsAgainst,
		Points:       l.Points + other.Points,
	}
}

// Standings is a team's season tally with the home/away venue split.
// The overall line is always the sum of the two splits: it is computed
// from them, never accumulated independently.
type Standings struct {
	StandingsLine
	Home *StandingsLine `json:"home,omitempty"`
	Away *StandingsLine `json:"away,omitempty"`
}

// RecentForm is the fold over a team's most recent decided matches.
// All ignores venue; VenueRestricted only counts matches played at the
// same venue as the team's upcoming fixture.
type RecentForm struct {
	All             StandingsLine `json:"all"`
	VenueRestricted StandingsLine `json:"home_away"`
}
