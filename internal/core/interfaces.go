package core

import (
	"context"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// Repository ports. Services depend on these, the data package implements
// them.

// AircraftRepository persists catalog records.
type AircraftRepository interface {
	Create(ctx context.Context, in *model.AircraftInput) (*model.Aircraft, error)
	GetByID(ctx context.Context, id int64) (*model.Aircraft, error)
	FindByName(ctx context.Context, name string) (*model.Aircraft, error)
	FindByManufacturerModel(ctx context.Context, manufacturer, modelName string) (*model.Aircraft, error)
	List(ctx context.Context, opts model.AircraftListOptions) ([]*model.Aircraft, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*model.Aircraft, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, patch model.AircraftPatch) (*model.Aircraft, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SetRanges(ctx context.Context, ranges map[string]float64) ([]string, error)
}

// ImportRunRepository records import executions.
type ImportRunRepository interface {
	Create(ctx context.Context, source model.ImportSource, requested int) (*model.ImportRun, error)
	Finish(ctx context.Context, req model.FinishImportRunRequest) (*model.ImportRun, error)
	GetByID(ctx context.Context, id string) (*model.ImportRun, error)
	ListRecent(ctx context.Context, limit int) ([]*model.ImportRun, error)
}

// AircraftSource fetches up to limit records from an online provider.
type AircraftSource interface {
	Source() model.ImportSource
	Fetch(ctx context.Context, limit int) ([]model.AircraftInput, error)
}
