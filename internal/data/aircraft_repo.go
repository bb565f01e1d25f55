package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/target/aircraft-catalog/internal/data/database"
	"github.com/target/aircraft-catalog/internal/data/pgxutil"
	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
)

const (
	aircraftTable = "aircraft"
	sortDirAsc    = "ASC"
	sortDirDesc   = "DESC"
)

// aircraftColumns is the select list matching model.Aircraft.
var aircraftColumns = []string{
	"id", "name", "manufacturer", "model", "first_flight_year", "mtow", "wing_area", "wingspan",
	"cruise_speed", "takeoff_speed", "landing_speed", "service_ceiling", "max_thrust", "engine_type",
	"engine_count", "category_type", "category_era", "category_engine", "category_size", "image_url",
	"cruise_altitude", "max_speed", "range_km", "max_roc", "created_at", "updated_at",
}

var aircraftSelectList = strings.Join(aircraftColumns, ", ")

// aircraftSorts maps accepted sort keys to columns.
var aircraftSorts = map[string]string{
	"id":                "id",
	"name":              "name",
	"first_flight_year": "first_flight_year",
	"mtow":              "mtow",
	"cruise_speed":      "cruise_speed",
	"created_at":        "created_at",
}

// AircraftRepo provides database operations for aircraft records.
type AircraftRepo struct {
	DB *sql.DB
}

// NewAircraftRepo creates a new AircraftRepo.
func NewAircraftRepo(db *sql.DB) *AircraftRepo {
	return &AircraftRepo{DB: db}
}

// Create validates and inserts a record.
func (r *AircraftRepo) Create(ctx context.Context, in *model.AircraftInput) (*model.Aircraft, error) {
	if in == nil {
		return nil, errors.New("aircraft input is required")
	}
	if err := in.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	patch := in.Patch(false)
	cols := patch.Columns()
	names := make([]string, len(cols))
	holders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		holders[i] = "$" + strconv.Itoa(i+1)
		args[i] = c.Value
	}
	q := "INSERT INTO aircraft (" + strings.Join(names, ", ") + ") VALUES (" +
		strings.Join(holders, ", ") + ") RETURNING " + aircraftSelectList

	out, err := r.queryOne(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("create aircraft: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByID returns the record with id or ErrAircraftNotFound.
func (r *AircraftRepo) GetByID(ctx context.Context, id int64) (*model.Aircraft, error) {
	out, err := r.queryOne(ctx, "SELECT "+aircraftSelectList+" FROM aircraft WHERE id = $1", id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrAircraftNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get aircraft %d: %w", id, err)
	}
	return out, nil
}

// FindByName returns the oldest record whose trimmed name matches,
// ignoring case.
func (r *AircraftRepo) FindByName(ctx context.Context, name string) (*model.Aircraft, error) {
	out, err := r.queryOne(ctx, "SELECT "+aircraftSelectList+
		" FROM aircraft WHERE lower(name) = lower($1) ORDER BY id LIMIT 1", strings.TrimSpace(name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: name %q", ErrAircraftNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("find aircraft by name: %w", err)
	}
	return out, nil
}

// FindByManufacturerModel returns the oldest record with the given
// manufacturer and model, ignoring case.
func (r *AircraftRepo) FindByManufacturerModel(ctx context.Context, manufacturer, modelName string) (*model.Aircraft, error) {
	out, err := r.queryOne(ctx, "SELECT "+aircraftSelectList+
		" FROM aircraft WHERE lower(manufacturer) = lower($1) AND lower(model) = lower($2) ORDER BY id LIMIT 1",
		strings.TrimSpace(manufacturer), strings.TrimSpace(modelName))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s", ErrAircraftNotFound, manufacturer, modelName)
	}
	if err != nil {
		return nil, fmt.Errorf("find aircraft by manufacturer and model: %w", err)
	}
	return out, nil
}

// List returns records filtered and sorted by opts. A zero limit returns
// every match.
func (r *AircraftRepo) List(ctx context.Context, opts model.AircraftListOptions) ([]*model.Aircraft, error) {
	q, args := database.BuildListQuery(buildAircraftQueryOptions(opts))
	out, err := r.queryMany(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	return out, nil
}

// ListByIDs returns the records with the given ids ordered by id. Unknown
// ids are ignored.
func (r *AircraftRepo) ListByIDs(ctx context.Context, ids []int64) ([]*model.Aircraft, error) {
	if len(ids) == 0 {
		return []*model.Aircraft{}, nil
	}
	q, args := database.BuildListQuery(database.NewListQueryOptions(aircraftTable,
		database.WithColumns(aircraftColumns...),
		database.WithCondition(database.WhereCond("id", database.In, ids)),
		database.WithOrderBy("id", sortDirAsc),
	))
	out, err := r.queryMany(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list aircraft by ids: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (r *AircraftRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM aircraft").Scan(&n); err != nil {
		return 0, fmt.Errorf("count aircraft: %w", err)
	}
	return n, nil
}

// Update applies patch to the record with id.
func (r *AircraftRepo) Update(ctx context.Context, id int64, patch model.AircraftPatch) (*model.Aircraft, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	cols := patch.Columns()
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		args = append(args, c.Value)
		sets[i] = c.Name + " = $" + strconv.Itoa(len(args))
	}
	args = append(args, id)
	q := "UPDATE aircraft SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + aircraftSelectList

	out, err := r.queryOne(ctx, q, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrAircraftNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update aircraft %d: %w", id, apperrors.MapDBError(err))
	}
	return out, nil
}

// Delete removes the record with id and reports whether it existed.
func (r *AircraftRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM aircraft WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete aircraft %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete aircraft %d: %w", id, err)
	}
	return n > 0, nil
}

// SetRanges sets range_km on every record matching each name, ignoring
// case, in one transaction. It returns the names that matched no record.
func (r *AircraftRepo) SetRanges(ctx context.Context, ranges map[string]float64) ([]string, error) {
	var missing []string
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		for name, km := range ranges {
			tag, err := tx.Exec(ctx, "UPDATE aircraft SET range_km = $1 WHERE lower(name) = lower($2)", km, name)
			if err != nil {
				return fmt.Errorf("set range for %q: %w", name, err)
			}
			if tag.RowsAffected() == 0 {
				missing = append(missing, name)
			}
		}
		return nil
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	slices.Sort(missing)
	return missing, nil
}

func (r *AircraftRepo) queryOne(ctx context.Context, q string, args ...any) (*model.Aircraft, error) {
	var out model.Aircraft
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Aircraft])
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AircraftRepo) queryMany(ctx context.Context, q string, args ...any) ([]*model.Aircraft, error) {
	var rowsOut []model.Aircraft
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Aircraft])
		return err
	})
	if err != nil {
		return nil, err
	}
	res := make([]*model.Aircraft, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func buildAircraftQueryOptions(opts model.AircraftListOptions) *database.ListQueryOptions {
	qo := []database.ListQueryOption{
		database.WithColumns(aircraftColumns...),
	}
	if opts.Limit > 0 {
		qo = append(qo, database.WithLimit(opts.Limit))
	}
	if opts.Offset > 0 {
		qo = append(qo, database.WithOffset(opts.Offset))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		qo = append(qo, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+escapeLike(strings.TrimSpace(*opts.Q))+"%"),
		))
	}
	if opts.WithYearOnly {
		qo = append(qo, database.WithCondition(database.WhereNotNull("first_flight_year")))
	}

	col, dir := validateSortOptions(opts.Sort, opts.Dir)
	qo = append(qo, database.WithOrderBy(col, dir), database.WithNullsLast(), database.WithThenBy("id"))
	return database.NewListQueryOptions(aircraftTable, qo...)
}

// validateSortOptions resolves sort and dir against the allowlist. The
// default is id ascending.
func validateSortOptions(sort, dir string) (string, string) {
	col := "id"
	if c, ok := aircraftSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
		col = c
	}
	d := sortDirAsc
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		d = sortDirDesc
	}
	return col, d
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
