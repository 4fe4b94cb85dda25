package models

type League struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Season    string   `json:"season"`
	CountryID *int     `json:"country_id,omitempty"`
	Country   *Country `json:"country,omitempty"`
}

// LeagueOption is a league+season pair flattened for selection lists.
// The composite ID keeps two seasons of the same league distinct.
type LeagueOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LeagueID int    `json:"league_id"`
	Season   string `json:"season"`
}
