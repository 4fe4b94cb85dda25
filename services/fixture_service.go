package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/match-predictor/models"
	"github.com/Dosada05/match-predictor/repositories"
	"golang.org/x/sync/errgroup"
)

// enrichConcurrency bounds how many fixtures are enriched at once. Each
// fixture already fans out four store queries of its own.
const enrichConcurrency = 8

type FixtureService interface {
	// EnrichedByDateRange enriches every fixture in the inclusive
	// window. Output order matches the store's query order. The only
	// fatal errors are top-level store failures; per-fixture problems
	// degrade that fixture to "no prediction".
	EnrichedByDateRange(ctx context.Context, from, to time.Time) ([]*models.EnrichedMatch, error)

	// EnrichMatches enriches an already loaded set of fixtures,
	// preserving input order.
	EnrichMatches(ctx context.Context, matches []*models.Match) ([]*models.EnrichedMatch, error)

	// StreamByDateRange enriches the window concurrently and delivers
	// each fixture as soon as its fan-in completes, in completion
	// order. The channel closes when the window is exhausted or ctx is
	// cancelled.
	StreamByDateRange(ctx context.Context, from, to time.Time) (<-chan *models.EnrichedMatch, error)
}

type fixtureService struct {
	matchRepo   repositories.MatchRepository
	teamRepo    repositories.TeamRepository
	leagueRepo  repositories.LeagueRepository
	countryRepo repositories.CountryRepository
	standings   StandingsAggregator
	logger      *slog.Logger
}

func NewFixtureService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	leagueRepo repositories.LeagueRepository,
	countryRepo repositories.CountryRepository,
	standings StandingsAggregator,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		leagueRepo:  leagueRepo,
		countryRepo: countryRepo,
		standings:   standings,
		logger:      logger,
	}
}

func (s *fixtureService) EnrichedByDateRange(ctx context.Context, from, to time.Time) ([]*models.EnrichedMatch, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	matches, err := s.matchRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return s.EnrichMatches(ctx, matches)
}

func (s *fixtureService) EnrichMatches(ctx context.Context, matches []*models.Match) ([]*models.EnrichedMatch, error) {
	lookups, err := s.resolveEntities(ctx, matches)
	if err != nil {
		return nil, err
	}

	enriched := make([]*models.EnrichedMatch, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, match := range matches {
		i, match := i, match
		g.Go(func() error {
			enriched[i] = s.enrichOne(gctx, match, lookups)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

func (s *fixtureService) StreamByDateRange(ctx context.Context, from, to time.Time) (<-chan *models.EnrichedMatch, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	matches, err := s.matchRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	lookups, err := s.resolveEntities(ctx, matches)
	if err != nil {
		return nil, err
	}

	out := make(chan *models.EnrichedMatch)
	go func() {
		defer close(out)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(enrichConcurrency)
		for _, match := range matches {
			match := match
			g.Go(func() error {
				enriched := s.enrichOne(gctx, match, lookups)
				select {
				case out <- enriched:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		if err := g.Wait(); err != nil {
			s.logger.Info("fixture stream cancelled", slog.Any("error", err))
		}
	}()
	return out, nil
}

// enrichOne never fails: every per-fixture problem collapses to a
// fixture without a prediction. The four aggregate computations run
// concurrently and are joined before evaluation.
func (s *fixtureService) enrichOne(ctx context.Context, match *models.Match, lookups entityLookups) *models.EnrichedMatch {
	enriched := &models.EnrichedMatch{Match: *match}
	if match.Team1ID != nil {
		enriched.Team1 = lookups.teams[*match.Team1ID]
	}
	if match.Team2ID != nil {
		enriched.Team2 = lookups.teams[*match.Team2ID]
	}
	if match.LeagueID != nil {
		enriched.League = lookups.leagues[*match.LeagueID]
	}

	if !match.HasAggregationKeys() {
		return enriched
	}

	var (
		team1Standings, team2Standings *models.Standings
		team1Form, team2Form           *models.RecentForm
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team1Standings, err = s.standings.TeamStandings(gctx, match.Team1ID, match.Season, match.LeagueID, match.MatchDate)
		return err
	})
	g.Go(func() error {
		var err error
		team2Standings, err = s.standings.TeamStandings(gctx, match.Team2ID, match.Season, match.LeagueID, match.MatchDate)
		return err
	})
	g.Go(func() error {
		var err error
		team1Form, err = s.standings.RecentForm(gctx, match.Team1ID, match.Season, match.LeagueID, true, match.MatchDate)
		return err
	})
	g.Go(func() error {
		var err error
		team2Form, err = s.standings.RecentForm(gctx, match.Team2ID, match.Season, match.LeagueID, false, match.MatchDate)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("fixture aggregation unavailable",
			slog.Int("match_id", match.ID),
			slog.Any("error", err),
		)
		return enriched
	}

	enriched.Team1Standings = team1Standings
	enriched.Team2Standings = team2Standings
	enriched.Team1Form = team1Form
	enriched.Team2Form = team2Form

	// The evaluator must never see partial data.
	if enriched.Team1 == nil || enriched.Team2 == nil ||
		team1Standings == nil || team2Standings == nil ||
		team1Form == nil || team2Form == nil {
		return enriched
	}

	enriched.Prediction = s.evaluate(EvaluationInput{
		Team1Name:      enriched.Team1.Name,
		Team2Name:      enriched.Team2.Name,
		Team1Standings: team1Standings,
		Team2Standings: team2Standings,
		Team1Form:      team1Form,
		Team2Form:      team2Form,
	}, match.ID)
	return enriched
}

// evaluate shields the batch from evaluator failures: a panic degrades
// the fixture to "no prediction" instead of aborting the request.
func (s *fixtureService) evaluate(in EvaluationInput, matchID int) (prediction models.Prediction) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("prediction evaluation failed",
				slog.Int("match_id", matchID),
				slog.Any("panic", r),
			)
			prediction = models.Prediction{}
		}
	}()
	return EvaluateMatch(in)
}

type entityLookups struct {
	teams   map[int]*models.Team
	leagues map[int]*models.League
}

// resolveEntities batch loads the display entities for a set of
// fixtures: teams, leagues and the leagues' countries. Failures here
// are fatal to the request, matching the top-level store contract.
func (s *fixtureService) resolveEntities(ctx context.Context, matches []*models.Match) (entityLookups, error) {
	lookups := entityLookups{
		teams:   make(map[int]*models.Team),
		leagues: make(map[int]*models.League),
	}
	if len(matches) == 0 {
		return lookups, nil
	}

	teamIDSet := make(map[int]struct{})
	leagueIDSet := make(map[int]struct{})
	for _, m := range matches {
		if m.Team1ID != nil {
			teamIDSet[*m.Team1ID] = struct{}{}
		}
		if m.Team2ID != nil {
			teamIDSet[*m.Team2ID] = struct{}{}
		}
		if m.LeagueID != nil {
			leagueIDSet[*m.LeagueID] = struct{}{}
		}
	}

	teams, err := s.teamRepo.ListByIDs(ctx, setToSlice(teamIDSet))
	if err != nil {
		return lookups, fmt.Errorf("failed to resolve teams: %w", err)
	}
	for _, t := range teams {
		lookups.teams[t.ID] = t
	}

	leagues, err := s.leagueRepo.ListByIDs(ctx, setToSlice(leagueIDSet))
	if err != nil {
		return lookups, fmt.Errorf("failed to resolve leagues: %w", err)
	}

	countryIDSet := make(map[int]struct{})
	for _, l := range leagues {
		if l.CountryID != nil {
			countryIDSet[*l.CountryID] = struct{}{}
		}
	}
	countries, err := s.countryRepo.ListByIDs(ctx, setToSlice(countryIDSet))
	if err != nil {
		return lookups, fmt.Errorf("failed to resolve countries: %w", err)
	}
	countryByID := make(map[int]*models.Country, len(countries))
	for _, c := range countries {
		countryByID[c.ID] = c
	}

	for _, l := range leagues {
		if l.CountryID != nil {
			l.Country = countryByID[*l.CountryID]
		}
		lookups.leagues[l.ID] = l
	}
	return lookups, nil
}

func setToSlice(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
