package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
	"github.com/target/aircraft-catalog/internal/testutil"
)

func TestAircraftRepo_CRUD(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAircraftRepo(db)

		created, err := repo.Create(ctx, testutil.A320())
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.Equal(t, "Airbus A320", created.Name)
		assert.NotZero(t, created.CreatedAt)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, got.Name)
		assert.InDelta(t, 78000, *got.MTOW, 1e-9)

		byName, err := repo.FindByName(ctx, "  airbus a320 ")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)

		byModel, err := repo.FindByManufacturerModel(ctx, "AIRBUS", "a320")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byModel.ID)

		updated, err := repo.Update(ctx, created.ID, model.AircraftPatch{Range: testutil.FloatPtr(6300)})
		require.NoError(t, err)
		assert.InDelta(t, 6300, *updated.Range, 1e-9)
		assert.Equal(t, "Airbus A320", updated.Name)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, ErrAircraftNotFound)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestAircraftRepo_Validation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAircraftRepo(db)

		_, err := repo.Create(ctx, &model.AircraftInput{Name: "  "})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		_, err = repo.Update(ctx, 1, model.AircraftPatch{})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		_, err = repo.Update(ctx, 999999, model.AircraftPatch{Name: testutil.StringPtr("x")})
		require.ErrorIs(t, err, ErrAircraftNotFound)
	})
}

func TestAircraftRepo_ListAndRanges(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAircraftRepo(db)

		a320, err := repo.Create(ctx, testutil.A320())
		require.NoError(t, err)
		flyer, err := repo.Create(ctx, testutil.WrightFlyer())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewAircraft("Mystery 100%").Build())
		require.NoError(t, err)

		all, err := repo.List(ctx, model.AircraftListOptions{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, a320.ID, all[0].ID)

		byYear, err := repo.List(ctx, model.AircraftListOptions{Sort: "first_flight_year", WithYearOnly: true})
		require.NoError(t, err)
		require.Len(t, byYear, 2)
		assert.Equal(t, flyer.ID, byYear[0].ID)

		q := "100%"
		matched, err := repo.List(ctx, model.AircraftListOptions{Q: &q})
		require.NoError(t, err)
		require.Len(t, matched, 1)
		assert.Equal(t, "Mystery 100%", matched[0].Name)

		paged, err := repo.List(ctx, model.AircraftListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, flyer.ID, paged[0].ID)

		some, err := repo.ListByIDs(ctx, []int64{flyer.ID, 424242})
		require.NoError(t, err)
		require.Len(t, some, 1)

		missing, err := repo.SetRanges(ctx, map[string]float64{"wright flyer": 0.26, "Nope": 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"Nope"}, missing)

		got, err := repo.GetByID(ctx, flyer.ID)
		require.NoError(t, err)
		assert.InDelta(t, 0.26, *got.Range, 1e-9)
	})
}

func TestValidateSortOptions(t *testing.T) {
	t.Parallel()

	col, dir := validateSortOptions("MTOW", "desc")
	assert.Equal(t, "mtow", col)
	assert.Equal(t, sortDirDesc, dir)

	col, dir = validateSortOptions("password; drop", "sideways")
	assert.Equal(t, "id", col)
	assert.Equal(t, sortDirAsc, dir)
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
