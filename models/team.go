package models

type Team struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	CrestURL *string `json:"crest_url,omitempty"`
}
