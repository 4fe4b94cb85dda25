package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/Dosada05/match-predictor/models"
	"github.com/Dosada05/match-predictor/repositories"
)

// CatalogService serves the navigation data the fixture browser needs:
// countries, league/season pairs and matchday lists.
type CatalogService interface {
	ListCountries(ctx context.Context) ([]*models.Country, error)
	ListLeaguesByCountry(ctx context.Context, countryID int) ([]*models.LeagueOption, error)
	ListRounds(ctx context.Context, leagueID int, season string) ([]string, error)
	EnrichedByRound(ctx context.Context, leagueID int, season, round string) ([]*models.EnrichedMatch, error)
}

type catalogService struct {
	matchRepo   repositories.MatchRepository
	leagueRepo  repositories.LeagueRepository
	countryRepo repositories.CountryRepository
	fixtures    FixtureService
}

func NewCatalogService(
	matchRepo repositories.MatchRepository,
	leagueRepo repositories.LeagueRepository,
	countryRepo repositories.CountryRepository,
	fixtures FixtureService,
) CatalogService {
	return &catalogService{
		matchRepo:   matchRepo,
		leagueRepo:  leagueRepo,
		countryRepo: countryRepo,
		fixtures:    fixtures,
	}
}

func (s *catalogService) ListCountries(ctx context.Context) ([]*models.Country, error) {
	countries, err := s.countryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (s *catalogService) ListLeaguesByCountry(ctx context.Context, countryID int) ([]*models.LeagueOption, error) {
	leagues, err := s.leagueRepo.ListByCountry(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues for country %d: %w", countryID, err)
	}

	options := make([]*models.LeagueOption, 0, len(leagues))
	for _, league := range leagues {
		options = append(options, &models.LeagueOption{
			ID:       fmt.Sprintf("%d-%s", league.ID, league.Season),
			Name:     fmt.Sprintf("%s (%s)", league.Name, league.Season),
			LeagueID: league.ID,
			Season:   league.Season,
		})
	}
	return options, nil
}

var matchdayNumber = regexp.MustCompile(`\d+`)

func (s *catalogService) ListRounds(ctx context.Context, leagueID int, season string) ([]string, error) {
	matchdays, err := s.matchRepo.ListMatchdays(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchdays for league %d: %w", leagueID, err)
	}

	// Matchday labels are free text ("Jornada 10", "Round 2"); order by
	// the embedded number so round 10 sorts after round 2.
	sort.SliceStable(matchdays, func(i, j int) bool {
		return matchdayOrdinal(matchdays[i]) < matchdayOrdinal(matchdays[j])
	})
	return matchdays, nil
}

func matchdayOrdinal(matchday string) int {
	digits := matchdayNumber.FindString(matchday)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func (s *catalogService) EnrichedByRound(ctx context.Context, leagueID int, season, round string) ([]*models.EnrichedMatch, error) {
	matches, err := s.matchRepo.ListByRound(ctx, leagueID, season, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for round %q: %w", round, err)
	}
	if len(matches) == 0 {
		return nil, ErrRoundNotFound
	}
	return s.fixtures.EnrichMatches(ctx, matches)
}

// DayBounds widens a timestamp pair to whole UTC days, the window used
// when browsing fixtures by calendar date.
func DayBounds(from, to time.Time) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	return start, end
}
