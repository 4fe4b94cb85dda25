package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/match-predictor/cache"
	"github.com/Dosada05/match-predictor/models"
	"github.com/Dosada05/match-predictor/repositories"
)

// DefaultFormWindow is how many recent matches the form aggregates fold.
const DefaultFormWindow = 3

// StandingsAggregator computes a team's pre-matchday aggregates. Both
// methods are pure functions of the underlying match rows: the cutoff
// is strict, so a match dated exactly at the cutoff never counts.
//
// A nil aggregate with a nil error means a required key was absent;
// callers must treat it as "data unavailable", never as zero stats.
type StandingsAggregator interface {
	TeamStandings(ctx context.Context, teamID *int, season *string, leagueID *int, cutoff time.Time) (*models.Standings, error)
	RecentForm(ctx context.Context, teamID *int, season *string, leagueID *int, homeInFixture bool, cutoff time.Time) (*models.RecentForm, error)
}

type standingsService struct {
	matchRepo  repositories.MatchRepository
	cache      *cache.StandingsCache // optional, nil disables caching
	formWindow int
	logger     *slog.Logger
}

func NewStandingsService(matchRepo repositories.MatchRepository, standingsCache *cache.StandingsCache, logger *slog.Logger) StandingsAggregator {
	return &standingsService{
		matchRepo:  matchRepo,
		cache:      standingsCache,
		formWindow: DefaultFormWindow,
		logger:     logger,
	}
}

func (s *standingsService) TeamStandings(ctx context.Context, teamID *int, season *string, leagueID *int, cutoff time.Time) (*models.Standings, error) {
	if teamID == nil || season == nil || leagueID == nil {
		return nil, nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetStandings(ctx, *teamID, *season, *leagueID, cutoff)
		if err != nil {
			s.logger.Warn("standings cache read failed", slog.Int("team_id", *teamID), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	results, err := s.matchRepo.ListDecidedByTeam(ctx, *teamID, *season, *leagueID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list decided matches for team %d: %w", *teamID, err)
	}

	var home, away models.StandingsLine
	for _, m := range results {
		scored, conceded := scoresFor(*teamID, m)
		if m.Team1ID == *teamID {
			home.Record(scored, conceded)
		} else {
			away.Record(scored, conceded)
		}
	}

	// Overall is derived from the venue buckets, which keeps the
	// overall == home + away invariant true by construction.
	standings := &models.Standings{
		StandingsLine: home.Add(away),
		Home:          &home,
		Away:          &away,
	}

	if s.cache != nil {
		if err := s.cache.SetStandings(ctx, *teamID, *season, *leagueID, cutoff, standings); err != nil {
			s.logger.Warn("standings cache write failed", slog.Int("team_id", *teamID), slog.Any("error", err))
		}
	}

	return standings, nil
}

func (s *standingsService) RecentForm(ctx context.Context, teamID *int, season *string, leagueID *int, homeInFixture bool, cutoff time.Time) (*models.RecentForm, error) {
	if teamID == nil || season == nil || leagueID == nil {
		return &models.RecentForm{}, nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetRecentForm(ctx, *teamID, *season, *leagueID, homeInFixture, cutoff)
		if err != nil {
			s.logger.Warn("recent form cache read failed", slog.Int("team_id", *teamID), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	lastMatches, err := s.matchRepo.ListRecentDecidedByTeam(ctx, *teamID, *season, *leagueID, nil, cutoff, s.formWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches for team %d: %w", *teamID, err)
	}

	// The venue query is limited after the side filter, so it yields
	// the last N home (or away) matches, not the home matches among
	// the last N.
	side := repositories.SideAway
	if homeInFixture {
		side = repositories.SideHome
	}
	lastVenueMatches, err := s.matchRepo.ListRecentDecidedByTeam(ctx, *teamID, *season, *leagueID, &side, cutoff, s.formWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent %s matches for team %d: %w", side, *teamID, err)
	}

	form := &models.RecentForm{
		All:             foldResults(*teamID, lastMatches),
		VenueRestricted: foldResults(*teamID, lastVenueMatches),
	}

	if s.cache != nil {
		if err := s.cache.SetRecentForm(ctx, *teamID, *season, *leagueID, homeInFixture, cutoff, form); err != nil {
			s.logger.Warn("recent form cache write failed", slog.Int("team_id", *teamID), slog.Any("error", err))
		}
	}

	return form, nil
}

func foldResults(teamID int, results []models.MatchResult) models.StandingsLine {
	var line models.StandingsLine
	for _, m := range results {
		scored, conceded := scoresFor(teamID, m)
		line.Record(scored, conceded)
	}
	return line
}

func scoresFor(teamID int, m models.MatchResult) (scored, conceded int) {
	if m.Team1ID == teamID {
		return m.Team1Score, m.Team2Score
	}
	return m.Team2Score, m.Team1Score
}
