package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/match-predictor/models"
	"github.com/lib/pq"
)

type CountryRepository interface {
	ListAll(ctx context.Context) ([]*models.Country, error)
	ListByIDs(ctx context.Context, ids []int) ([]*models.Country, error)
}

type postgresCountryRepository struct {
	db *sql.DB
}

func NewPostgresCountryRepository(db *sql.DB) CountryRepository {
	return &postgresCountryRepository{db: db}
}

func (r *postgresCountryRepository) ListAll(ctx context.Context) ([]*models.Country, error) {
	query := `SELECT id, name FROM countries ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCountries(rows)
}

func (r *postgresCountryRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.Country, error) {
	if len(ids) == 0 {
		return []*models.Country{}, nil
	}

	query := `SELECT id, name FROM countries WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCountries(rows)
}

func scanCountries(rows *sql.Rows) ([]*models.Country, error) {
	countries := make([]*models.Country, 0)
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return countries, nil
}
