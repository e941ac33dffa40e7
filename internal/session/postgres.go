package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/dododevs/tg-tplfvg/core/logger"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore constructs a Store backed by the sessions table.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

type sessionRow struct {
	UserID      int64  `db:"user_id"`
	Status      string `db:"status"`
	FavStops    []byte `db:"fav_stops"`
	RecentStops []byte `db:"recent_stops"`
	Zones       []byte `db:"zones"`
}

const selectSessionSQL = `
SELECT user_id, status, fav_stops, recent_stops, zones
FROM sessions
WHERE user_id = $1`

const upsertSessionSQL = `
INSERT INTO sessions (user_id, status, fav_stops, recent_stops, zones, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (user_id) DO UPDATE SET
	status = EXCLUDED.status,
	fav_stops = EXCLUDED.fav_stops,
	recent_stops = EXCLUDED.recent_stops,
	zones = EXCLUDED.zones,
	updated_at = NOW()`

func (p *postgresStore) Get(ctx context.Context, userID int64) (*Session, error) {
	var row sessionRow
	err := p.db.GetContext(ctx, &row, selectSessionSQL, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	return rowToSession(row)
}

func (p *postgresStore) Save(ctx context.Context, s *Session) error {
	row, err := sessionToRow(s)
	if err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, upsertSessionSQL,
		row.UserID, row.Status, row.FavStops, row.RecentStops, row.Zones); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Update runs the read-modify-write inside a transaction holding a row lock
// on the user's record, so concurrent updates for the same user serialize.
func (p *postgresStore) Update(ctx context.Context, userID int64, fn func(*Session) error) (*Session, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("session update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var row sessionRow
	current := New(userID)
	err = tx.GetContext(ctx, &row, selectSessionSQL+" FOR UPDATE", userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("session update: select: %w", err)
	default:
		if current, err = rowToSession(row); err != nil {
			return nil, err
		}
	}

	if err := fn(current); err != nil {
		return nil, err
	}

	updated, err := sessionToRow(current)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, upsertSessionSQL,
		updated.UserID, updated.Status, updated.FavStops, updated.RecentStops, updated.Zones); err != nil {
		return nil, fmt.Errorf("session update: write: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("session update: commit: %w", err)
	}

	if logger.SESS != nil && logger.ShouldSampleDebug() {
		logger.SESS.LogAttrs(ctx, slog.LevelDebug, "session updated",
			slog.String("event", "session.update"),
			slog.Int64("user_id", userID),
		)
	}
	return current, nil
}

func (p *postgresStore) Close() error {
	return p.db.Close()
}

func rowToSession(row sessionRow) (*Session, error) {
	s := &Session{
		UserID: row.UserID,
		Status: row.Status,
	}
	if len(row.FavStops) > 0 {
		if err := json.Unmarshal(row.FavStops, &s.FavStops); err != nil {
			return nil, fmt.Errorf("session decode fav_stops: %w", err)
		}
	}
	if len(row.RecentStops) > 0 {
		if err := json.Unmarshal(row.RecentStops, &s.RecentStops); err != nil {
			return nil, fmt.Errorf("session decode recent_stops: %w", err)
		}
	}
	if len(row.Zones) > 0 {
		if err := json.Unmarshal(row.Zones, &s.Zones); err != nil {
			return nil, fmt.Errorf("session decode zones: %w", err)
		}
	}
	return s, nil
}

func sessionToRow(s *Session) (sessionRow, error) {
	favs := s.FavStops
	if favs == nil {
		favs = map[string]string{}
	}
	recents := s.RecentStops
	if recents == nil {
		recents = []RecentStop{}
	}
	zones := s.Zones
	if zones == nil {
		zones = []string{}
	}

	favJSON, err := json.Marshal(favs)
	if err != nil {
		return sessionRow{}, fmt.Errorf("session encode fav_stops: %w", err)
	}
	recentJSON, err := json.Marshal(recents)
	if err != nil {
		return sessionRow{}, fmt.Errorf("session encode recent_stops: %w", err)
	}
	zoneJSON, err := json.Marshal(zones)
	if err != nil {
		return sessionRow{}, fmt.Errorf("session encode zones: %w", err)
	}

	return sessionRow{
		UserID:      s.UserID,
		Status:      s.Status,
		FavStops:    favJSON,
		RecentStops: recentJSON,
		Zones:       zoneJSON,
	}, nil
}
