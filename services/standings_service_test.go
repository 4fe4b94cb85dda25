package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/Dosada05/match-predictor/models"
	"github.com/Dosada05/match-predictor/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMatchStore implements repositories.MatchRepository over an
// in-memory slice, honouring the same filtering, ordering and
// truncation contract as the Postgres implementation.
type fakeMatchStore struct {
	matches []*models.Match

	listErr        error
	decidedCalls   int
	recentCalls    int
	dateRangeCalls int
}

func (f *fakeMatchStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Match, error) {
	f.dateRangeCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if !m.MatchDate.Before(from) && !m.MatchDate.After(to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchDate.Before(out[j].MatchDate)
	})
	return out, nil
}

func (f *fakeMatchStore) ListByRound(ctx context.Context, leagueID int, season, matchday string) ([]*models.Match, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if m.LeagueID != nil && *m.LeagueID == leagueID &&
			m.Season != nil && *m.Season == season &&
			m.Matchday != nil && *m.Matchday == matchday {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchStore) ListMatchdays(ctx context.Context, leagueID int, season string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, m := range f.matches {
		if m.LeagueID == nil || *m.LeagueID != leagueID || m.Season == nil || *m.Season != season || m.Matchday == nil {
			continue
		}
		if _, ok := seen[*m.Matchday]; !ok {
			seen[*m.Matchday] = struct{}{}
			out = append(out, *m.Matchday)
		}
	}
	return out, nil
}

func (f *fakeMatchStore) ListDecidedByTeam(ctx context.Context, teamID int, season string, leagueID int, before time.Time) ([]models.MatchResult, error) {
	f.decidedCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.decidedFor(teamID, season, leagueID, nil, before, 0), nil
}

func (f *fakeMatchStore) ListRecentDecidedByTeam(ctx context.Context, teamID int, season string, leagueID int, side *repositories.Side, before time.Time, limit int) ([]models.MatchResult, error) {
	f.recentCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.decidedFor(teamID, season, leagueID, side, before, limit), nil
}

func (f *fakeMatchStore) decidedFor(teamID int, season string, leagueID int, side *repositories.Side, before time.Time, limit int) []models.MatchResult {
	out := make([]models.MatchResult, 0)
	for _, m := range f.matches {
		if !m.Decided() || !m.HasAggregationKeys() {
			continue
		}
		if *m.Season != season || *m.LeagueID != leagueID || !m.MatchDate.Before(before) {
			continue
		}
		switch {
		case side == nil:
			if *m.Team1ID != teamID && *m.Team2ID != teamID {
				continue
			}
		case *side == repositories.SideHome:
			if *m.Team1ID != teamID {
				continue
			}
		default:
			if *m.Team2ID != teamID {
				continue
			}
		}
		out = append(out, models.MatchResult{
			Team1ID:    *m.Team1ID,
			Team2ID:    *m.Team2ID,
			Team1Score: *m.Team1Score,
			Team2Score: *m.Team2Score,
			MatchDate:  m.MatchDate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchDate.After(out[j].MatchDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 20, 0, 0, 0, time.UTC)
}

func playedMatch(team1, team2, score1, score2 int, date time.Time) *models.Match {
	season := "2024"
	league := 1
	return &models.Match{
		Team1ID:    &team1,
		Team2ID:    &team2,
		Team1Score: &score1,
		Team2Score: &score2,
		MatchDate:  date,
		Season:     &season,
		LeagueID:   &league,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func TestTeamStandings_SplitsSumToOverall(t *testing.T) {
	store := &fakeMatchStore{matches: []*models.Match{
		playedMatch(1, 2, 3, 1, day(1)), // home win
		playedMatch(1, 3, 0, 0, day(3)), // home draw
		playedMatch(4, 1, 2, 0, day(5)), // away loss
		playedMatch(5, 1, 1, 2, day(7)), // away win
	}}
	svc := NewStandingsService(store, nil, testLogger())

	standings, err := svc.TeamStandings(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), day(10))
	require.NoError(t, err)
	require.NotNil(t, standings)
	require.NotNil(t, standings.Home)
	require.NotNil(t, standings.Away)

	assert.Equal(t, models.StandingsLine{Played: 2, Won: 1, Drawn: 1, Lost: 0, GoalsFor: 3, GoalsAgainst: 1, Points: 4}, *standings.Home)
	assert.Equal(t, models.StandingsLine{Played: 2, Won: 1, Drawn: 0, Lost: 1, GoalsFor: 2, GoalsAgainst: 3, Points: 3}, *standings.Away)
	assert.Equal(t, standings.Home.Add(*standings.Away), standings.StandingsLine)

	// StandingsLine invariants.
	assert.Equal(t, standings.Played, standings.Won+standings.Drawn+standings.Lost)
	assert.Equal(t, standings.Points, 3*standings.Won+standings.Drawn)
}

func TestTeamStandings_CutoffIsStrict(t *testing.T) {
	cutoff := day(10)
	store := &fakeMatchStore{matches: []*models.Match{
		playedMatch(1, 2, 1, 0, day(5)),
		playedMatch(1, 3, 4, 0, cutoff), // same instant as cutoff, must be excluded
		playedMatch(1, 4, 2, 0, day(12)),
	}}
	svc := NewStandingsService(store, nil, testLogger())

	standings, err := svc.TeamStandings(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), cutoff)
	require.NoError(t, err)
	require.NotNil(t, standings)
	assert.Equal(t, 1, standings.Played)
	assert.Equal(t, 1, standings.GoalsFor)
}

func TestTeamStandings_UndecidedMatchesIgnored(t *testing.T) {
	undecided := playedMatch(1, 2, 0, 0, day(2))
	undecided.Team1Score = nil
	store := &fakeMatchStore{matches: []*models.Match{
		undecided,
		playedMatch(1, 3, 2, 1, day(4)),
	}}
	svc := NewStandingsService(store, nil, testLogger())

	standings, err := svc.TeamStandings(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), day(10))
	require.NoError(t, err)
	require.NotNil(t, standings)
	assert.Equal(t, 1, standings.Played)
}

func TestTeamStandings_MissingKeysReturnNil(t *testing.T) {
	store := &fakeMatchStore{}
	svc := NewStandingsService(store, nil, testLogger())

	standings, err := svc.TeamStandings(context.Background(), nil, strPtr("2024"), intPtr(1), day(10))
	require.NoError(t, err)
	assert.Nil(t, standings)
	assert.Zero(t, store.decidedCalls)
}

func TestTeamStandings_StoreFailurePropagates(t *testing.T) {
	store := &fakeMatchStore{listErr: errors.New("connection refused")}
	svc := NewStandingsService(store, nil, testLogger())

	standings, err := svc.TeamStandings(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), day(10))
	require.Error(t, err)
	assert.Nil(t, standings)
}

func TestTeamStandings_Idempotent(t *testing.T) {
	store := &fakeMatchStore{matches: []*models.Match{
		playedMatch(1, 2, 3, 1, day(1)),
		playedMatch(4, 1, 2, 2, day(3)),
	}}
	svc := NewStandingsService(store, nil, testLogger())

	first, err := svc.TeamStandings(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), day(10))
	require.NoError(t, err)
	second, err := svc.TeamStandings(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), day(10))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecentForm_TruncatesToMostRecent(t *testing.T) {
	// Five decided matches; only the three most recent (days 9, 7, 5)
	// may be folded.
	store := &fakeMatchStore{matches: []*models.Match{
		playedMatch(1, 2, 0, 5, day(1)),
		playedMatch(1, 3, 0, 5, day(3)),
		playedMatch(1, 4, 1, 0, day(5)),
		playedMatch(1, 5, 2, 0, day(7)),
		playedMatch(1, 6, 3, 0, day(9)),
	}}
	svc := NewStandingsService(store, nil, testLogger())

	form, err := svc.RecentForm(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), true, day(10))
	require.NoError(t, err)
	require.NotNil(t, form)

	assert.Equal(t, 3, form.All.Played)
	assert.Equal(t, 6, form.All.GoalsFor)
	assert.Equal(t, 0, form.All.GoalsAgainst)
	assert.Equal(t, 3, form.All.Won)
}

func TestRecentForm_VenueRestriction(t *testing.T) {
	// Team 1 alternates venues. The venue-restricted line for an
	// upcoming home fixture counts the last three home matches, however
	// far back they reach, not the home subset of the last three.
	store := &fakeMatchStore{matches: []*models.Match{
		playedMatch(1, 2, 2, 0, day(1)), // home
		playedMatch(3, 1, 0, 1, day(2)), // away
		playedMatch(1, 4, 1, 1, day(3)), // home
		playedMatch(5, 1, 3, 0, day(4)), // away
		playedMatch(1, 6, 4, 0, day(5)), // home
		playedMatch(7, 1, 2, 2, day(6)), // away
	}}
	svc := NewStandingsService(store, nil, testLogger())

	form, err := svc.RecentForm(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), true, day(10))
	require.NoError(t, err)
	require.NotNil(t, form)

	// Last three regardless of venue: days 6, 5, 4.
	assert.Equal(t, models.StandingsLine{Played: 3, Won: 1, Drawn: 1, Lost: 1, GoalsFor: 6, GoalsAgainst: 5, Points: 4}, form.All)
	// Last three home matches: days 5, 3, 1.
	assert.Equal(t, models.StandingsLine{Played: 3, Won: 2, Drawn: 1, Lost: 0, GoalsFor: 7, GoalsAgainst: 1, Points: 7}, form.VenueRestricted)
}

func TestRecentForm_AwayVenueRestriction(t *testing.T) {
	store := &fakeMatchStore{matches: []*models.Match{
		playedMatch(1, 2, 2, 0, day(1)), // home win
		playedMatch(3, 1, 0, 1, day(2)), // away win
	}}
	svc := NewStandingsService(store, nil, testLogger())

	form, err := svc.RecentForm(context.Background(), intPtr(1), strPtr("2024"), intPtr(1), false, day(10))
	require.NoError(t, err)

	assert.Equal(t, 2, form.All.Played)
	assert.Equal(t, models.StandingsLine{Played: 1, Won: 1, GoalsFor: 1, Points: 3}, form.VenueRestricted)
}

func TestRecentForm_MissingKeysDegradeToZero(t *testing.T) {
	store := &fakeMatchStore{}
	svc := NewStandingsService(store, nil, testLogger())

	form, err := svc.RecentForm(context.Background(), intPtr(1), nil, intPtr(1), true, day(10))
	require.NoError(t, err)
	require.NotNil(t, form)
	assert.Equal(t, models.StandingsLine{}, form.All)
	assert.Equal(t, models.StandingsLine{}, form.VenueRestricted)
	assert.Zero(t, store.recentCalls)
}
