package models

import "time"

// Match is a raw fixture row. Scores are null until the match has been
// played; season, league and team identifiers can be null for badly
// imported rows and must be checked before any aggregation.
type Match struct {
	ID         int       `json:"id"`
	Team1ID    *int      `json:"team1_id,omitempty"`
	Team2ID    *int      `json:"team2_id,omitempty"`
	Team1Score *int      `json:"team1_score,omitempty"`
	Team2Score *int      `json:"team2_score,omitempty"`
	MatchDate  time.Time `json:"match_date"`
	Season     *string   `json:"season,omitempty"`
	LeagueID   *int      `json:"league_id,omitempty"`
	Matchday   *string   `json:"matchday,omitempty"`
}

// Decided reports whether both final scores are present.
func (m *Match) Decided() bool {
	return m.Team1Score != nil && m.Team2Score != nil
}

// HasAggregationKeys reports whether the row carries everything the
// standings aggregators need.
func (m *Match) HasAggregationKeys() bool {
	return m.Team1ID != nil && m.Team2ID != nil && m.Season != nil && m.LeagueID != nil
}

// MatchResult is a decided match row as consumed by the aggregators.
// Rows of this shape only come from queries that filter out undecided
// matches, so the scores are plain ints.
type MatchResult struct {
	Team1ID    int       `json:"team1_id"`
	Team2ID    int       `json:"team2_id"`
	Team1Score int       `json:"team1_score"`
	Team2Score int       `json:"team2_score"`
	MatchDate  time.Time `json:"match_date"`
}
