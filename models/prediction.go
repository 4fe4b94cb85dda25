package models

// Prediction is the verdict for one fixture. When HasPrediction is
// false every other field is absent. Probability is a fixed placeholder
// value, not a computed quantity.
type Prediction struct {
	HasPrediction  bool   `json:"has_prediction"`
	PredictionText string `json:"prediction_text,omitempty"`
	WinnerName     string `json:"winner_name,omitempty"`
	Probability    *int   `json:"probability,omitempty"`
}

// EnrichedMatch is a fixture joined with display entities, both teams'
// aggregates and the prediction verdict. It is assembled fresh per
// query and never persisted.
type EnrichedMatch struct {
	Match

	Team1  *Team   `json:"team1,omitempty"`
	Team2  *Team   `json:"team2,omitempty"`
	League *League `json:"league,omitempty"`

	Team1Standings *Standings `json:"team1_standings,omitempty"`
	Team2Standings *Standings `json:"team2_standings,omitempty"`

	Team1Form *RecentForm `json:"team1_last_3,omitempty"`
	Team2Form *RecentForm `json:"team2_last_3,omitempty"`

	Prediction Prediction `json:"prediction"`
}
