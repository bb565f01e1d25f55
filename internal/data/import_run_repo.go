package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/target/aircraft-catalog/internal/data/pgxutil"
	"github.com/target/aircraft-catalog/internal/domain/model"
)

const importRunSelectList = `id::text AS id, source, requested, imported, status, output, error, started_at, finished_at`

const defaultImportRunLimit = 20

// ImportRunRepo persists the history of import executions.
type ImportRunRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewImportRunRepo creates a new ImportRunRepo with real time provider.
func NewImportRunRepo(db *sql.DB) *ImportRunRepo {
	return &ImportRunRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewImportRunRepoWithTimeProvider creates a repo with a custom clock.
func NewImportRunRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ImportRunRepo {
	return &ImportRunRepo{DB: db, timeProvider: tp}
}

// Create records a running import with a new random id.
func (r *ImportRunRepo) Create(ctx context.Context, source model.ImportSource, requested int) (*model.ImportRun, error) {
	id := uuid.New()
	out, err := r.queryOne(ctx, `
		INSERT INTO import_runs (id, source, requested, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+importRunSelectList,
		id, string(source), max(requested, 0), string(model.ImportRunning), r.timeProvider.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("create import run: %w", err)
	}
	return out, nil
}

// Finish stores the outcome of a run.
func (r *ImportRunRepo) Finish(ctx context.Context, req model.FinishImportRunRequest) (*model.ImportRun, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrImportRunNotFound, req.ID)
	}
	out, err := r.queryOne(ctx, `
		UPDATE import_runs
		SET imported = $2, status = $3, output = $4, error = $5, finished_at = $6
		WHERE id = $1
		RETURNING `+importRunSelectList,
		id, max(req.Imported, 0), string(req.Status), req.Output, req.Error, r.timeProvider.Now().UTC())
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrImportRunNotFound, req.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("finish import run: %w", err)
	}
	return out, nil
}

// GetByID returns the run with id.
func (r *ImportRunRepo) GetByID(ctx context.Context, id string) (*model.ImportRun, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrImportRunNotFound, id)
	}
	out, err := r.queryOne(ctx, `SELECT `+importRunSelectList+` FROM import_runs WHERE id = $1`, uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrImportRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get import run: %w", err)
	}
	return out, nil
}

// ListRecent returns the newest runs first.
func (r *ImportRunRepo) ListRecent(ctx context.Context, limit int) ([]*model.ImportRun, error) {
	if limit <= 0 {
		limit = defaultImportRunLimit
	}
	var rowsOut []model.ImportRun
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+importRunSelectList+` FROM import_runs ORDER BY started_at DESC, id LIMIT $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ImportRun])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	res := make([]*model.ImportRun, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *ImportRunRepo) queryOne(ctx context.Context, q string, args ...any) (*model.ImportRun, error) {
	var out model.ImportRun
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ImportRun])
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
