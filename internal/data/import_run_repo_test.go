package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/domain/model"
	"github.com/target/aircraft-catalog/internal/testutil"
)

func TestImportRunRepo_Lifecycle(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := NewFixedTimeProvider(testutil.TestTime())
		repo := NewImportRunRepoWithTimeProvider(db, clock)

		run, err := repo.Create(ctx, model.SourcePredefined, 10)
		require.NoError(t, err)
		assert.Len(t, run.ID, 36)
		assert.Equal(t, model.ImportRunning, run.Status)
		assert.True(t, run.StartedAt.Equal(testutil.TestTime()))
		assert.Nil(t, run.FinishedAt)

		clock.AddTime(time.Minute)
		finished, err := repo.Finish(ctx, model.FinishImportRunRequest{
			ID:       run.ID,
			Imported: 7,
			Status:   model.ImportSucceeded,
			Output:   "Total de 7 aeronaves importadas",
		})
		require.NoError(t, err)
		assert.Equal(t, 7, finished.Imported)
		require.NotNil(t, finished.FinishedAt)
		assert.True(t, finished.FinishedAt.Equal(testutil.TestTime().Add(time.Minute)))

		got, err := repo.GetByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ImportSucceeded, got.Status)

		clock.AddTime(time.Minute)
		_, err = repo.Create(ctx, model.SourceBirds, 14)
		require.NoError(t, err)

		recent, err := repo.ListRecent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, model.SourceBirds, recent[0].Source)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, ErrImportRunNotFound)

		_, err = repo.Finish(ctx, model.FinishImportRunRequest{ID: "00000000-0000-0000-0000-000000000000"})
		require.ErrorIs(t, err, ErrImportRunNotFound)
	})
}
