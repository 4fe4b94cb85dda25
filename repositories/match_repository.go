package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Dosada05/match-predictor/models"
)

var ErrMatchQueryInvalid = errors.New("match query parameters invalid")

// Side restricts a team-history query to matches where the team played
// on the given side.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

type MatchRepository interface {
	// ListByDateRange returns all fixtures (decided or not) in the
	// inclusive window, ordered by league then kickoff time.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Match, error)

	// ListByRound returns a round's fixtures ordered by kickoff time.
	ListByRound(ctx context.Context, leagueID int, season, matchday string) ([]*models.Match, error)

	// ListMatchdays returns the distinct matchday labels of a season.
	ListMatchdays(ctx context.Context, leagueID int, season string) ([]string, error)

	// ListDecidedByTeam returns every decided match involving the team
	// in the season/league strictly before the cutoff date.
	ListDecidedByTeam(ctx context.Context, teamID int, season string, leagueID int, before time.Time) ([]models.MatchResult, error)

	// ListRecentDecidedByTeam returns the team's most recent decided
	// matches strictly before the cutoff date, newest first, truncated
	// to limit. A non-nil side only counts matches where the team
	// occupied that side.
	ListRecentDecidedByTeam(ctx context.Context, teamID int, season string, leagueID int, side *Side, before time.Time, limit int) ([]models.MatchResult, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, team1_id, team2_id, team1_score, team2_score, match_date, season, league_id, matchday`

func (r *postgresMatchRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE match_date >= $1 AND match_date <= $2
		ORDER BY league_id ASC, match_date ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

func (r *postgresMatchRepository) ListByRound(ctx context.Context, leagueID int, season, matchday string) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE league_id = $1 AND season = $2 AND matchday = $3
		ORDER BY match_date ASC`

	rows, err := r.db.QueryContext(ctx, query, leagueID, season, matchday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

func (r *postgresMatchRepository) ListMatchdays(ctx context.Context, leagueID int, season string) ([]string, error) {
	query := `
		SELECT DISTINCT matchday
		FROM matches
		WHERE league_id = $1 AND season = $2 AND matchday IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query, leagueID, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matchdays := make([]string, 0)
	for rows.Next() {
		var md string
		if scanErr := rows.Scan(&md); scanErr != nil {
			return nil, scanErr
		}
		matchdays = append(matchdays, md)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matchdays, nil
}

func (r *postgresMatchRepository) ListDecidedByTeam(ctx context.Context, teamID int, season string, leagueID int, before time.Time) ([]models.MatchResult, error) {
	query := `
		SELECT team1_id, team2_id, team1_score, team2_score, match_date
		FROM matches
		WHERE season = $1 AND league_id = $2
		  AND match_date < $3
		  AND (team1_id = $4 OR team2_id = $4)
		  AND team1_score IS NOT NULL AND team2_score IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query, season, leagueID, before, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchResults(rows)
}

func (r *postgresMatchRepository) ListRecentDecidedByTeam(ctx context.Context, teamID int, season string, leagueID int, side *Side, before time.Time, limit int) ([]models.MatchResult, error) {
	if limit <= 0 {
		return nil, ErrMatchQueryInvalid
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT team1_id, team2_id, team1_score, team2_score, match_date
		FROM matches
		WHERE season = $1 AND league_id = $2
		  AND match_date < $3
		  AND team1_score IS NOT NULL AND team2_score IS NOT NULL`)

	if side == nil {
		queryBuilder.WriteString(" AND (team1_id = $4 OR team2_id = $4)")
	} else if *side == SideHome {
		queryBuilder.WriteString(" AND team1_id = $4")
	} else {
		queryBuilder.WriteString(" AND team2_id = $4")
	}

	queryBuilder.WriteString(" ORDER BY match_date DESC LIMIT $5")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), season, leagueID, before, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchResults(rows)
}

func scanMatches(rows *sql.Rows) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID,
			&m.Team1ID,
			&m.Team2ID,
			&m.Team1Score,
			&m.Team2Score,
			&m.MatchDate,
			&m.Season,
			&m.LeagueID,
			&m.Matchday,
		); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func scanMatchResults(rows *sql.Rows) ([]models.MatchResult, error) {
	results := make([]models.MatchResult, 0)
	for rows.Next() {
		var mr models.MatchResult
		if err := rows.Scan(
			&mr.Team1ID,
			&mr.Team2ID,
			&mr.Team1Score,
			&mr.Team2Score,
			&mr.MatchDate,
		); err != nil {
			return nil, err
		}
		results = append(results, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
