package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
)

// StatsServiceOptions groups dependencies for StatsService.
type StatsServiceOptions struct {
	Repo   core.AircraftRepository
	Cache  *core.GenerationCache // Optional
	Logger *slog.Logger
}

// StatsService builds chart data over the whole catalog.
type StatsService struct {
	repo   core.AircraftRepository
	cache  *core.GenerationCache
	logger *slog.Logger
}

// NewStatsService constructs a StatsService. Repo is required.
func NewStatsService(opts StatsServiceOptions) *StatsService {
	if opts.Repo == nil {
		panic("StatsService requires a Repo")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{repo: opts.Repo, cache: opts.Cache, logger: logger.With("component", "stats_service")}
}

// Parameters returns the chartable parameter descriptors.
func (s *StatsService) Parameters() []model.Parameter {
	return model.Parameters()
}

// Scatter pairs x and y for every record that has both.
func (s *StatsService) Scatter(ctx context.Context, x, y string) ([]model.ScatterPoint, error) {
	if err := checkParam("x", x); err != nil {
		return nil, err
	}
	if err := checkParam("y", y); err != nil {
		return nil, err
	}

	key := "scatter:" + x + ":" + y
	var points []model.ScatterPoint
	gen, hit := s.cache.GetJSON(ctx, key, &points)
	if hit {
		return points, nil
	}

	rows, err := s.repo.List(ctx, model.AircraftListOptions{})
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	points = make([]model.ScatterPoint, 0, len(rows))
	for _, v := range views(rows) {
		xv, yv := v.Value(x), v.Value(y)
		if xv == nil || yv == nil {
			continue
		}
		points = append(points, model.ScatterPoint{ID: v.ID, Name: v.DisplayName(), X: *xv, Y: *yv})
	}
	s.cache.SetJSON(ctx, gen, key, points)
	return points, nil
}

// Timeline returns param against first flight year, ordered by year.
func (s *StatsService) Timeline(ctx context.Context, param string) ([]model.TimelinePoint, error) {
	if err := checkParam("param", param); err != nil {
		return nil, err
	}

	key := "timeline:" + param
	var points []model.TimelinePoint
	gen, hit := s.cache.GetJSON(ctx, key, &points)
	if hit {
		return points, nil
	}

	rows, err := s.repo.List(ctx, model.AircraftListOptions{
		WithYearOnly: true,
		Sort:         "first_flight_year",
		Dir:          "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	points = make([]model.TimelinePoint, 0, len(rows))
	for _, v := range views(rows) {
		val := v.Value(param)
		if val == nil || v.FirstFlightYear == nil {
			continue
		}
		points = append(points, model.TimelinePoint{ID: v.ID, Name: v.DisplayName(), Year: *v.FirstFlightYear, Value: *val})
	}
	slices.SortStableFunc(points, func(a, b model.TimelinePoint) int { return a.Year - b.Year })
	s.cache.SetJSON(ctx, gen, key, points)
	return points, nil
}

// Comparison returns the comparison parameters of the given records.
// Unknown ids are skipped.
func (s *StatsService) Comparison(ctx context.Context, ids []int64) ([]model.ComparisonRow, error) {
	if len(ids) == 0 {
		return []model.ComparisonRow{}, nil
	}
	rows, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("comparison: %w", err)
	}
	out := make([]model.ComparisonRow, 0, len(rows))
	for _, v := range views(rows) {
		out = append(out, model.NewComparisonRow(&v))
	}
	return out, nil
}

// ParseIDs parses a comma separated id list. Blank entries are ignored.
func ParseIDs(raw string) ([]int64, error) {
	var ids []int64
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, apperrors.ValidationField("ids", fmt.Sprintf("invalid id %q", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func checkParam(field, name string) error {
	if name == "" {
		return apperrors.ValidationField(field, field+" is required")
	}
	if !model.IsNumericParameter(name) {
		return apperrors.ValidationField(field, fmt.Sprintf("unknown parameter %q", name))
	}
	return nil
}
