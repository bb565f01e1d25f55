package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/data"
	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
	"github.com/target/aircraft-catalog/internal/mocks"
	"github.com/target/aircraft-catalog/internal/testutil"
)

func newAircraftService(t *testing.T) (*mocks.MockAircraftRepository, *AircraftService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAircraftRepository(ctrl)
	return repo, NewAircraftService(AircraftServiceOptions{Repo: repo})
}

// stored turns a fixture into a persisted record.
func stored(id int64, in *model.AircraftInput) *model.Aircraft {
	return &model.Aircraft{
		ID:              id,
		Name:            in.Name,
		Manufacturer:    in.Manufacturer,
		Model:           in.Model,
		FirstFlightYear: in.FirstFlightYear,
		MTOW:            in.MTOW,
		WingArea:        in.WingArea,
		Wingspan:        in.Wingspan,
		CruiseSpeed:     in.CruiseSpeed,
		LandingSpeed:    in.LandingSpeed,
		EngineCount:     in.EngineCount,
		CategoryType:    in.CategoryType,
		CruiseAltitude:  in.CruiseAltitude,
	}
}

func notFound(name string) error {
	return fmt.Errorf("%w: name %q", data.ErrAircraftNotFound, name)
}

func TestAircraftService_Get(t *testing.T) {
	t.Parallel()
	repo, svc := newAircraftService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(7)).Return(stored(7, testutil.A320()), nil)

	got, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	require.NotNil(t, got.WingLoading)
	assert.InDelta(t, 78000/122.6, *got.WingLoading, 1e-9)
}

func TestAircraftService_GetNotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newAircraftService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(99)).Return(nil, fmt.Errorf("%w: id 99", data.ErrAircraftNotFound))

	_, err := svc.Get(ctx, 99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAircraftService_CreateValidation(t *testing.T) {
	t.Parallel()
	_, svc := newAircraftService(t)

	_, err := svc.Create(context.Background(), &model.AircraftInput{Name: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAircraftService_CreateRotatesCache(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAircraftRepository(ctrl)
	cacheRepo := mocks.NewMockCacheRepository(ctrl)
	cache := core.NewGenerationCache(core.GenerationCacheOptions{Cache: cacheRepo, Namespace: "stats"})
	svc := NewAircraftService(AircraftServiceOptions{Repo: repo, Cache: cache})
	ctx := context.Background()

	in := &model.AircraftInput{Name: "Embraer E195"}
	repo.EXPECT().Create(ctx, in).Return(&model.Aircraft{ID: 1, Name: "Embraer E195"}, nil)
	cacheRepo.EXPECT().Set(ctx, "stats:generation", gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Embraer E195", got.Name)
}

func TestAircraftService_DeleteMissing(t *testing.T) {
	t.Parallel()
	repo, svc := newAircraftService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, int64(3)).Return(false, nil)

	err := svc.Delete(ctx, 3)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAircraftService_UpdateRejectsEmptyPatch(t *testing.T) {
	t.Parallel()
	_, svc := newAircraftService(t)

	_, err := svc.Update(context.Background(), 1, model.AircraftPatch{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAircraftService_UpsertCreatesWhenMissing(t *testing.T) {
	t.Parallel()
	repo, svc := newAircraftService(t)
	ctx := context.Background()

	in := testutil.NewAircraft("Concorde").WithMaker("Aérospatiale", "Concorde").Build()
	repo.EXPECT().FindByName(ctx, "Concorde").Return(nil, notFound("Concorde"))
	repo.EXPECT().Create(ctx, in).Return(&model.Aircraft{ID: 5, Name: "Concorde"}, nil)

	got, created, err := svc.Upsert(ctx, in, UpsertOptions{Key: ByName})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(5), got.ID)
}

func TestAircraftService_UpsertMergesByManufacturerModel(t *testing.T) {
	t.Parallel()
	repo, svc := newAircraftService(t)
	ctx := context.Background()

	zero := 0.0
	in := testutil.NewAircraft("Boeing 747-400").WithMaker("Boeing", "747-400").WithCruise(913, 10700).Build()
	in.MTOW = &zero
	existing := &model.Aircraft{ID: 11, Name: "Jumbo"}

	repo.EXPECT().FindByManufacturerModel(ctx, "Boeing", "747-400").Return(existing, nil)
	repo.EXPECT().Update(ctx, int64(11), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, p model.AircraftPatch) (*model.Aircraft, error) {
			assert.Nil(t, p.Name, "merge keeps the stored name")
			assert.Nil(t, p.MTOW, "zero values do not overwrite")
			require.NotNil(t, p.CruiseSpeed)
			assert.InDelta(t, 913.0, *p.CruiseSpeed, 1e-9)
			return existing, nil
		})

	_, created, err := svc.Upsert(ctx, in, UpsertOptions{Key: ByManufacturerModel, MergeNonNil: true})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAircraftService_UpsertFallsBackToName(t *testing.T) {
	t.Parallel()
	repo, svc := newAircraftService(t)
	ctx := context.Background()

	in := model.AircraftInput{Name: "Demoiselle"}
	repo.EXPECT().FindByName(ctx, "Demoiselle").Return(nil, errors.New("connection reset"))

	_, _, err := svc.Upsert(ctx, &in, UpsertOptions{Key: ByManufacturerModel})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
