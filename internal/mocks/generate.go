// Package mocks holds gomock doubles for the ports in internal/core.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockAircraftRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(rec, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=aircraft_repository_mock.go github.com/target/aircraft-catalog/internal/core AircraftRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=import_run_repository_mock.go github.com/target/aircraft-catalog/internal/core ImportRunRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=aircraft_source_mock.go github.com/target/aircraft-catalog/internal/core AircraftSource
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/target/aircraft-catalog/internal/core CacheRepository
