package services

import (
	"fmt"

	"github.com/Dosada05/match-predictor/models"
)

// PredictionProbability is the placeholder confidence attached to every
// verdict. It is a product constant, not a computed statistic.
const PredictionProbability = 50

const minPlayedForPrediction = 9

// EvaluationInput bundles both teams' aggregates for one fixture.
// Team1 is the home side, team2 the away side.
type EvaluationInput struct {
	Team1Name      string
	Team2Name      string
	Team1Standings *models.Standings
	Team2Standings *models.Standings
	Team1Form      *models.RecentForm
	Team2Form      *models.RecentForm
}

// EvaluateMatch applies the winner rule chain to both sides and breaks
// the tie. A verdict is only issued when exactly one side passes: the
// rule set surfaces mismatches in form, it does not arbitrate between
// two in-form teams.
func EvaluateMatch(in EvaluationInput) models.Prediction {
	team1Passes := in.Team1Standings != nil && in.Team1Form != nil &&
		passesWinnerGates(in.Team1Standings.StandingsLine, in.Team1Form.All, in.Team1Form.VenueRestricted, in.Team1Standings.Home)
	team2Passes := in.Team2Standings != nil && in.Team2Form != nil &&
		passesWinnerGates(in.Team2Standings.StandingsLine, in.Team2Form.All, in.Team2Form.VenueRestricted, in.Team2Standings.Away)

	switch {
	case team1Passes && !team2Passes:
		return winnerPrediction(in.Team1Name, in.Team2Name)
	case team2Passes && !team1Passes:
		return winnerPrediction(in.Team2Name, in.Team1Name)
	default:
		return models.Prediction{}
	}
}

// passesWinnerGates is the "potential winner" predicate: every gate
// must hold. venue is the split for the side the team plays in the
// upcoming fixture (home split for the home team, away split for the
// away team); a missing split counts as unavailable data and fails the
// team rather than silently substituting overall stats.
func passesWinnerGates(overall, last3, last3Venue models.StandingsLine, venue *models.StandingsLine) bool {
	if venue == nil {
		return false
	}
	if overall.Played == 0 || venue.Played == 0 {
		return false
	}
	if overall.Played < minPlayedForPrediction {
		return false
	}
	if last3.GoalsAgainst >= 3 {
		return false
	}
	if last3.GoalsFor <= 2 {
		return false
	}
	if last3Venue.GoalsAgainst >= 3 || last3Venue.GoalsFor <= 2 {
		return false
	}
	if float64(overall.Won)/float64(overall.Played)*100 <= 45 {
		return false
	}
	if float64(venue.Lost)/float64(venue.Played)*100 >= 35 {
		return false
	}
	if overall.GoalsFor <= overall.GoalsAgainst {
		return false
	}
	if last3Venue.Won <= last3Venue.Lost {
		return false
	}
	return true
}

func winnerPrediction(winner, loser string) models.Prediction {
	probability := PredictionProbability
	return models.Prediction{
		HasPrediction:  true,
		PredictionText: fmt.Sprintf("%s is likely to win: their recent performance has been clearly stronger than %s's.", winner, loser),
		WinnerName:     winner,
		Probability:    &probability,
	}
}
