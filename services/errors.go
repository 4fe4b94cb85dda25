package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed = errors.New("validation failed")
	ErrTeamNameRequired = errors.New("team name is required")
	ErrInvalidDateRange = errors.New("date range end must not be before start")
	ErrUnsupportedImage = errors.New("crest must be a PNG or JPEG image")

	ErrTeamNotFound    = errors.New("team not found")
	ErrLeagueNotFound  = errors.New("league not found")
	ErrCountryNotFound = errors.New("country not found")
	ErrRoundNotFound   = errors.New("no matches found for the requested round")

	ErrCrestStorageDisabled = errors.New("crest storage is not configured")
)
