package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
)

// CacheRepo implements domain.CacheRepo interface
type CacheRepo struct {
	log zerolog.Logger
	db  *DB
	now func() time.Time
}

// NewCacheRepo creates a new cache repository
func NewCacheRepo(log zerolog.Logger, db *DB) *CacheRepo {
	return &CacheRepo{
		log: log.With().Str("repo", "cache").Logger(),
		db:  db,
		now: time.Now,
	}
}

var _ domain.CacheRepo = (*CacheRepo)(nil)

// GetPayload returns the body stored for source and key when it was fetched
// less than maxAge ago
func (r *CacheRepo) GetPayload(ctx context.Context, source, key string, maxAge time.Duration) ([]byte, bool, error) {
	queryBuilder := r.db.squirrel.
		Select("body").
		From("payload_cache").
		Where(sq.Eq{"source": source, "cache_key": key}).
		Where(sq.Gt{"fetched_at": r.now().Add(-maxAge).UnixNano()})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, false, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("GetPayload")

	var body []byte
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "error executing query")
	}

	return body, true, nil
}

// PutPayload inserts or replaces a payload entry
func (r *CacheRepo) PutPayload(ctx context.Context, source, key string, body []byte) error {
	queryBuilder := r.db.squirrel.
		Replace("payload_cache").
		Columns("source", "cache_key", "body", "fetched_at").
		Values(source, key, body, r.now().UnixNano())

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Str("source", source).Str("key", key).Msg("PutPayload")

	r.db.lock.Lock()
	defer r.db.lock.Unlock()

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

// Prune deletes payloads fetched before the given time
func (r *CacheRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	queryBuilder := r.db.squirrel.
		Delete("payload_cache").
		Where(sq.Lt{"fetched_at": before.UnixNano()})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Prune")

	r.db.lock.Lock()
	defer r.db.lock.Unlock()

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "error executing delete query")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "error reading affected rows")
	}

	return n, nil
}
