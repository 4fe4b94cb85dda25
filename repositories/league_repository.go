package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/match-predictor/models"
	"github.com/lib/pq"
)

var ErrLeagueNotFound = errors.New("league not found")

type LeagueRepository interface {
	ListByIDs(ctx context.Context, ids []int) ([]*models.League, error)
	ListByCountry(ctx context.Context, countryID int) ([]*models.League, error)
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

func (r *postgresLeagueRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.League, error) {
	if len(ids) == 0 {
		return []*models.League{}, nil
	}

	query := `SELECT id, name, season, country_id FROM leagues WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeagues(rows)
}

func (r *postgresLeagueRepository) ListByCountry(ctx context.Context, countryID int) ([]*models.League, error) {
	query := `SELECT id, name, season, country_id FROM leagues WHERE country_id = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, countryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeagues(rows)
}

func scanLeagues(rows *sql.Rows) ([]*models.League, error) {
	leagues := make([]*models.League, 0)
	for rows.Next() {
		var l models.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Season, &l.CountryID); err != nil {
			return nil, err
		}
		leagues = append(leagues, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}
