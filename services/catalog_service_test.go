package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/match-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundMatch(id int, matchday string, date time.Time) *models.Match {
	m := fixture(id, 1, 2, date)
	m.Matchday = &matchday
	return m
}

func newTestCatalogService(store *fakeMatchStore) CatalogService {
	leagues := &fakeLeagueStore{leagues: map[int]*models.League{
		1: {ID: 1, Name: "Primera", Season: "2024", CountryID: intPtr(10)},
		2: {ID: 2, Name: "Segunda", Season: "2024", CountryID: intPtr(10)},
	}}
	countries := &fakeCountryStore{countries: map[int]*models.Country{
		10: {ID: 10, Name: "Spain"},
	}}
	return NewCatalogService(store, leagues, countries, newTestFixtureService(store))
}

func TestListRounds_SortsByEmbeddedNumber(t *testing.T) {
	store := &fakeMatchStore{matches: []*models.Match{
		roundMatch(1, "Jornada 10", day(1)),
		roundMatch(2, "Jornada 2", day(2)),
		roundMatch(3, "Jornada 1", day(3)),
		roundMatch(4, "Jornada 2", day(4)), // duplicate label collapses
	}}
	svc := newTestCatalogService(store)

	rounds, err := svc.ListRounds(context.Background(), 1, "2024")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jornada 1", "Jornada 2", "Jornada 10"}, rounds)
}

func TestListLeaguesByCountry_BuildsCompositeOptions(t *testing.T) {
	svc := newTestCatalogService(&fakeMatchStore{})

	options, err := svc.ListLeaguesByCountry(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, options, 2)

	byID := make(map[string]*models.LeagueOption)
	for _, o := range options {
		byID[o.ID] = o
	}
	primera, ok := byID["1-2024"]
	require.True(t, ok)
	assert.Equal(t, "Primera (2024)", primera.Name)
	assert.Equal(t, 1, primera.LeagueID)
	assert.Equal(t, "2024", primera.Season)
}

func TestEnrichedByRound_UnknownRound(t *testing.T) {
	svc := newTestCatalogService(&fakeMatchStore{})

	_, err := svc.EnrichedByRound(context.Background(), 1, "2024", "Jornada 99")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestEnrichedByRound_EnrichesRoundFixtures(t *testing.T) {
	store := &fakeMatchStore{matches: []*models.Match{
		roundMatch(1, "Jornada 5", day(20)),
		roundMatch(2, "Jornada 5", day(21)),
		roundMatch(3, "Jornada 6", day(27)),
	}}
	svc := newTestCatalogService(store)

	enriched, err := svc.EnrichedByRound(context.Background(), 1, "2024", "Jornada 5")
	require.NoError(t, err)
	require.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].ID)
	assert.Equal(t, 2, enriched[1].ID)
	for _, m := range enriched {
		assert.False(t, m.Prediction.HasPrediction)
	}
}

func TestDayBounds_WholeUTCDays(t *testing.T) {
	from := time.Date(2024, time.March, 5, 13, 45, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 7, 2, 10, 0, 0, time.UTC)

	start, end := DayBounds(from, to)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.After(time.Date(2024, time.March, 7, 23, 59, 58, 0, time.UTC)))
	assert.True(t, end.Before(time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)))
}
