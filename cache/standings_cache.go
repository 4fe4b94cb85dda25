package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/match-predictor/models"
	"github.com/redis/go-redis/v9"
)

// StandingsTTL bounds how long a computed aggregate may be reused. The
// store is append-only for past matchdays, so a short TTL is only
// needed to pick up late result corrections.
const StandingsTTL = 15 * time.Minute

// StandingsCache is a read-through cache for computed standings
// aggregates. All operations are best effort: a cache failure must
// never fail an enrichment request.
type StandingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStandingsCache(client *redis.Client) *StandingsCache {
	return &StandingsCache{client: client, ttl: StandingsTTL}
}

func standingsKey(teamID int, season string, leagueID int, cutoff time.Time) string {
	return fmt.Sprintf("standings:%d:%s:%d:%d", teamID, season, leagueID, cutoff.UTC().Unix())
}

func formKey(teamID int, season string, leagueID int, homeInFixture bool, cutoff time.Time) string {
	venue := "away"
	if homeInFixture {
		venue = "home"
	}
	return fmt.Sprintf("form:%d:%s:%d:%s:%d", teamID, season, leagueID, venue, cutoff.UTC().Unix())
}

func (c *StandingsCache) GetStandings(ctx context.Context, teamID int, season string, leagueID int, cutoff time.Time) (*models.Standings, error) {
	data, err := c.client.Get(ctx, standingsKey(teamID, season, leagueID, cutoff)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var st models.Standings
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshaling cached standings: %w", err)
	}
	return &st, nil
}

func (c *StandingsCache) SetStandings(ctx context.Context, teamID int, season string, leagueID int, cutoff time.Time, st *models.Standings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling standings: %w", err)
	}
	return c.client.Set(ctx, standingsKey(teamID, season, leagueID, cutoff), data, c.ttl).Err()
}

func (c *StandingsCache) GetRecentForm(ctx context.Context, teamID int, season string, leagueID int, homeInFixture bool, cutoff time.Time) (*models.RecentForm, error) {
	data, err := c.client.Get(ctx, formKey(teamID, season, leagueID, homeInFixture, cutoff)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var form models.RecentForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("unmarshaling cached recent form: %w", err)
	}
	return &form, nil
}

func (c *StandingsCache) SetRecentForm(ctx context.Context, teamID int, season string, leagueID int, homeInFixture bool, cutoff time.Time, form *models.RecentForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("marshaling recent form: %w", err)
	}
	return c.client.Set(ctx, formKey(teamID, season, leagueID, homeInFixture, cutoff), data, c.ttl).Err()
}
