package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/data"
	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
)

// UpsertKey selects how an incoming record is matched against stored ones.
type UpsertKey int

const (
	// ByName matches case-insensitively on the trimmed name.
	ByName UpsertKey = iota
	// ByManufacturerModel matches on manufacturer plus model, falling back to
	// the name when either is missing.
	ByManufacturerModel
)

// UpsertOptions controls AircraftService.Upsert.
type UpsertOptions struct {
	Key UpsertKey
	// MergeNonNil leaves stored values alone where the input is nil, zero or
	// blank. Without it every non-nil input field overwrites.
	MergeNonNil bool
}

// AircraftServiceOptions groups dependencies for AircraftService.
type AircraftServiceOptions struct {
	Repo   core.AircraftRepository
	Cache  *core.GenerationCache // Optional: invalidated after writes
	Logger *slog.Logger
}

// AircraftService wraps the aircraft repository with validation, upserts and
// stats cache invalidation.
type AircraftService struct {
	repo   core.AircraftRepository
	cache  *core.GenerationCache
	logger *slog.Logger
}

// NewAircraftService constructs an AircraftService. Repo is required.
func NewAircraftService(opts AircraftServiceOptions) *AircraftService {
	if opts.Repo == nil {
		panic("AircraftService requires a Repo")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AircraftService{
		repo:   opts.Repo,
		cache:  opts.Cache,
		logger: logger.With("component", "aircraft_service"),
	}
}

// List returns records with their derived values.
func (s *AircraftService) List(ctx context.Context, opts model.AircraftListOptions) ([]model.AircraftView, error) {
	rows, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	return views(rows), nil
}

// Get returns one record with its derived values.
func (s *AircraftService) Get(ctx context.Context, id int64) (*model.AircraftView, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	v := model.NewAircraftView(*a)
	return &v, nil
}

// Create validates and stores a new record.
func (s *AircraftService) Create(ctx context.Context, in *model.AircraftInput) (*model.AircraftView, error) {
	if in == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := in.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	a, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create aircraft: %w", err)
	}
	s.invalidate(ctx)
	v := model.NewAircraftView(*a)
	return &v, nil
}

// Update applies a partial update.
func (s *AircraftService) Update(ctx context.Context, id int64, patch model.AircraftPatch) (*model.AircraftView, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	a, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	s.invalidate(ctx)
	v := model.NewAircraftView(*a)
	return &v, nil
}

// Delete removes a record. A missing id is a NotFound error.
func (s *AircraftService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete aircraft: %w", err)
	}
	if !ok {
		return apperrors.NotFoundf("aircraft %d not found", id)
	}
	s.invalidate(ctx)
	return nil
}

// Upsert creates in or updates the stored record it matches. It reports
// whether a new record was created. The stats cache is not rotated; bulk
// callers invalidate once via Invalidate.
func (s *AircraftService) Upsert(ctx context.Context, in *model.AircraftInput, opts UpsertOptions) (*model.Aircraft, bool, error) {
	if err := in.Validate(); err != nil {
		return nil, false, apperrors.Validation(err.Error())
	}

	existing, err := s.lookup(ctx, in, opts.Key)
	switch {
	case errors.Is(err, data.ErrAircraftNotFound):
		created, createErr := s.repo.Create(ctx, in)
		if createErr != nil {
			return nil, false, fmt.Errorf("upsert %q: %w", in.Name, createErr)
		}
		return created, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("upsert lookup %q: %w", in.Name, err)
	}

	patch := in.Patch(opts.MergeNonNil)
	if opts.MergeNonNil {
		// Keep the stored name so manufacturer+model matches do not rename.
		patch.Name = nil
	}
	if !patch.HasUpdates() {
		return existing, false, nil
	}
	updated, err := s.repo.Update(ctx, existing.ID, patch)
	if err != nil {
		return nil, false, fmt.Errorf("upsert update %q: %w", in.Name, err)
	}
	return updated, false, nil
}

func (s *AircraftService) lookup(ctx context.Context, in *model.AircraftInput, key UpsertKey) (*model.Aircraft, error) {
	if key == ByManufacturerModel {
		m, mdl := strings.TrimSpace(deref(in.Manufacturer)), strings.TrimSpace(deref(in.Model))
		if m != "" && mdl != "" {
			return s.repo.FindByManufacturerModel(ctx, m, mdl)
		}
	}
	return s.repo.FindByName(ctx, in.Name)
}

// Count returns the number of stored records.
func (s *AircraftService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Invalidate rotates the stats cache generation. Failures are logged.
func (s *AircraftService) Invalidate(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *AircraftService) invalidate(ctx context.Context) {
	if err := s.cache.Rotate(ctx); err != nil {
		s.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}

func mapNotFound(err error, id int64) error {
	if errors.Is(err, data.ErrAircraftNotFound) {
		return apperrors.NotFoundf("aircraft %d not found", id)
	}
	return err
}

func views(rows []*model.Aircraft) []model.AircraftView {
	out := make([]model.AircraftView, 0, len(rows))
	for _, a := range rows {
		out = append(out, model.NewAircraftView(*a))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
