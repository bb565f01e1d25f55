package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/target/aircraft-catalog/internal/catalog"
	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
	"github.com/target/aircraft-catalog/internal/observability/metrics"
	"github.com/target/aircraft-catalog/internal/observability/statsd"
)

// onlineOrder is the source order used by SourceAll.
var onlineOrder = []model.ImportSource{
	model.SourceEurocontrol,
	model.SourceAviation,
	model.SourceWikipedia,
	model.SourcePredefined,
}

var sourceLabels = map[model.ImportSource]string{
	model.SourceEurocontrol: "do EUROCONTROL",
	model.SourceAviation:    "da API do Aviation Stack",
	model.SourceWikipedia:   "da Wikipedia",
	model.SourcePredefined:  "do banco de dados pré-definido",
	model.SourceSample:      "dos dados de exemplo",
	model.SourceBirds:       "de aves",
}

// ImportServiceOptions groups dependencies for ImportService.
type ImportServiceOptions struct {
	Aircraft *AircraftService
	Runs     core.ImportRunRepository // Optional: runs are not recorded when nil
	Sources  []core.AircraftSource    // Remote sources; predefined is built in
	Metrics  statsd.Sink
	Logger   *slog.Logger
}

// ImportService populates the catalog from embedded datasets and online
// sources and runs the bulk maintenance tasks.
type ImportService struct {
	aircraft *AircraftService
	runs     core.ImportRunRepository
	sources  map[model.ImportSource]core.AircraftSource
	metrics  statsd.Sink
	logger   *slog.Logger
}

// NewImportService constructs an ImportService. Aircraft is required.
func NewImportService(opts ImportServiceOptions) *ImportService {
	if opts.Aircraft == nil {
		panic("ImportService requires an AircraftService")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sources := map[model.ImportSource]core.AircraftSource{
		model.SourcePredefined: PredefinedSource{},
	}
	for _, src := range opts.Sources {
		if src != nil {
			sources[src.Source()] = src
		}
	}
	return &ImportService{
		aircraft: opts.Aircraft,
		runs:     opts.Runs,
		sources:  sources,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "import_service"),
	}
}

// PredefinedSource serves the embedded reference aircraft.
type PredefinedSource struct{}

var _ core.AircraftSource = PredefinedSource{}

// Source implements core.AircraftSource.
func (PredefinedSource) Source() model.ImportSource { return model.SourcePredefined }

// Fetch returns the first limit predefined records; limit <= 0 returns all.
func (PredefinedSource) Fetch(_ context.Context, limit int) ([]model.AircraftInput, error) {
	recs, err := catalog.PredefinedAircraft()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// ImportSample upserts the embedded sample records by name.
func (s *ImportService) ImportSample(ctx context.Context) (*model.ImportResult, error) {
	recs, err := catalog.SampleAircraft()
	if err != nil {
		return nil, fmt.Errorf("load sample data: %w", err)
	}
	for i := range recs {
		catalog.ApplyCategories(&recs[i])
	}
	return s.importDataset(ctx, model.SourceSample, recs)
}

// ImportBirds upserts the embedded bird records by name.
func (s *ImportService) ImportBirds(ctx context.Context) (*model.ImportResult, error) {
	recs, err := catalog.BirdRecords()
	if err != nil {
		return nil, fmt.Errorf("load bird data: %w", err)
	}
	return s.importDataset(ctx, model.SourceBirds, recs)
}

func (s *ImportService) importDataset(ctx context.Context, source model.ImportSource, recs []model.AircraftInput) (*model.ImportResult, error) {
	start := time.Now()
	run := s.startRun(ctx, source, len(recs))

	count := 0
	var firstErr error
	for i := range recs {
		if _, _, err := s.aircraft.Upsert(ctx, &recs[i], UpsertOptions{Key: ByName}); err != nil {
			s.logger.WarnContext(ctx, "upsert failed", "source", source, "name", recs[i].Name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		count++
	}
	if count > 0 {
		s.aircraft.Invalidate(ctx)
	}

	output := fmt.Sprintf("Importadas %d aeronaves %s\n", count, sourceLabels[source])
	res := &model.ImportResult{Count: count, Output: output}
	var err error
	if count == 0 && firstErr != nil {
		err = fmt.Errorf("import %s: %w", source, firstErr)
	}
	s.finishRun(ctx, run, res, err)
	metrics.EmitImport(s.metrics, metrics.ImportMetric{
		Source:   string(source),
		Result:   metrics.ResultFor(err),
		Count:    count,
		Duration: time.Since(start),
		Err:      err,
	})
	s.logger.InfoContext(ctx, "dataset imported", "source", source, "count", count)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ImportOnline fetches from the requested source (or every source for
// "all"), classifies each record, estimates missing cruise altitudes and
// upserts. A failing source is reported in the output and contributes 0.
func (s *ImportService) ImportOnline(ctx context.Context, req model.OnlineImportRequest) (*model.ImportResult, error) {
	source, ok := model.ParseImportSource(req.Source)
	if !ok {
		return nil, apperrors.ValidationField("source", fmt.Sprintf("unknown source %q", req.Source))
	}
	limit := req.Limit()

	selected := []model.ImportSource{source}
	if source == model.SourceAll {
		selected = onlineOrder
	}

	run := s.startRun(ctx, source, limit)
	var out strings.Builder
	total := 0
	var errs []error
	for _, src := range selected {
		n, err := s.importSource(ctx, src, limit, &out)
		if err != nil {
			errs = append(errs, err)
			fmt.Fprintf(&out, "Erro ao importar %s: %v\n", sourceLabels[src], err)
			continue
		}
		total += n
		fmt.Fprintf(&out, "Importadas %d aeronaves %s\n", n, sourceLabels[src])
	}
	fmt.Fprintf(&out, "Importação concluída. Total de %d aeronaves importadas com sucesso!\n", total)

	if total > 0 {
		s.aircraft.Invalidate(ctx)
	}

	res := &model.ImportResult{Count: total, Output: out.String()}
	var runErr error
	if len(errs) == len(selected) {
		runErr = errors.Join(errs...)
	}
	s.finishRun(ctx, run, res, runErr)
	return res, nil
}

func (s *ImportService) importSource(ctx context.Context, source model.ImportSource, limit int, out *strings.Builder) (int, error) {
	start := time.Now()
	fmt.Fprintf(out, "Importando até %d aeronaves %s...\n", limit, sourceLabels[source])

	n, err := s.fetchAndUpsert(ctx, source, limit, out)
	result := metrics.ResultFor(err)
	if err == nil && n == 0 {
		result = metrics.ResultNoop
	}
	metrics.EmitImport(s.metrics, metrics.ImportMetric{
		Source:   string(source),
		Result:   result,
		Count:    n,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "source import failed", "source", source, "error", err)
		return 0, err
	}
	s.logger.InfoContext(ctx, "source imported", "source", source, "count", n)
	return n, nil
}

func (s *ImportService) fetchAndUpsert(ctx context.Context, source model.ImportSource, limit int, out *strings.Builder) (int, error) {
	src, ok := s.sources[source]
	if !ok {
		return 0, apperrors.Unavailablef(nil, "source %s is not configured", source)
	}
	recs, err := src.Fetch(ctx, limit)
	if err != nil {
		return 0, err
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	opts := UpsertOptions{Key: ByName, MergeNonNil: true}
	if source == model.SourcePredefined {
		opts.Key = ByManufacturerModel
	}

	count := 0
	for i := range recs {
		in := &recs[i]
		catalog.ApplyCategories(in)
		catalog.ApplyCruiseAltitude(in)
		if _, _, err := s.aircraft.Upsert(ctx, in, opts); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return count, ctxErr
			}
			fmt.Fprintf(out, "Dados insuficientes para a aeronave %q: %v\n", in.Name, err)
			continue
		}
		count++
	}
	return count, nil
}

func (s *ImportService) startRun(ctx context.Context, source model.ImportSource, requested int) *model.ImportRun {
	if s.runs == nil {
		return nil
	}
	run, err := s.runs.Create(ctx, source, requested)
	if err != nil {
		s.logger.WarnContext(ctx, "import run not recorded", "source", source, "error", err)
		return nil
	}
	return run
}

// finishRun closes run and stores its id on res. It uses a context detached
// from cancellation so an aborted import is still recorded.
func (s *ImportService) finishRun(ctx context.Context, run *model.ImportRun, res *model.ImportResult, runErr error) {
	if run == nil {
		return
	}
	res.RunID = run.ID
	req := model.FinishImportRunRequest{
		ID:       run.ID,
		Imported: res.Count,
		Status:   model.ImportSucceeded,
		Output:   res.Output,
	}
	if runErr != nil {
		msg := runErr.Error()
		req.Status = model.ImportFailed
		req.Error = &msg
	}
	if _, err := s.runs.Finish(context.WithoutCancel(ctx), req); err != nil {
		s.logger.WarnContext(ctx, "import run not finished", "run_id", run.ID, "error", err)
	}
}

// ListRuns returns the most recent import runs.
func (s *ImportService) ListRuns(ctx context.Context, limit int) ([]*model.ImportRun, error) {
	if s.runs == nil {
		return []*model.ImportRun{}, nil
	}
	return s.runs.ListRecent(ctx, limit)
}
