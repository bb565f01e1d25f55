package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/target/aircraft-catalog/internal/bootstrap"
	"github.com/target/aircraft-catalog/internal/catalog"
	"github.com/target/aircraft-catalog/internal/domain/model"
	"github.com/target/aircraft-catalog/internal/migrate"
)

type migrateOptions struct {
	Timeout time.Duration
	Status  bool
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{Timeout: defaultMigrationTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	fs.BoolVar(&opts.Status, "status", false, "List pending migrations without applying them")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	if opts.Status {
		pending, pendErr := migrate.Pending(ctx, db)
		if pendErr != nil {
			return fmt.Errorf("list pending migrations: %w", pendErr)
		}
		if len(pending) == 0 {
			return writeln(cmdCtx.Out, "database is up to date")
		}
		return writef(cmdCtx.Out, "pending migrations:\n  %s\n", strings.Join(pending, "\n  "))
	}

	cmdCtx.Logger.Info("running database migrations")
	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

type importOptions struct {
	Kind   string
	Source string
	Max    int
}

func parseImportFlags(args []string) (importOptions, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return importOptions{}, errors.New("usage: import <sample|birds|online> [--source S] [--max N]")
	}
	opts := importOptions{Kind: args[0]}

	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&opts.Source, "source", string(model.SourceAll), "Online source: all, predefined, wikipedia, eurocontrol or aviation")
	fs.IntVar(&opts.Max, "max", model.DefaultMaxAircraft, "Maximum records per online source")
	if err := fs.Parse(args[1:]); err != nil {
		return importOptions{}, err
	}

	switch opts.Kind {
	case "sample", "birds", "online":
	default:
		return importOptions{}, fmt.Errorf("unknown import kind %q", opts.Kind)
	}
	if _, ok := model.ParseImportSource(opts.Source); !ok {
		return importOptions{}, fmt.Errorf("unknown source %q", opts.Source)
	}
	return opts, nil
}

func runImport(cmdCtx *commandContext, args []string) error {
	opts, err := parseImportFlags(args)
	if err != nil {
		return err
	}
	services, closeAll, err := connectServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeAll()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	var res *model.ImportResult
	switch opts.Kind {
	case "sample":
		res, err = services.Import.ImportSample(ctx)
	case "birds":
		res, err = services.Import.ImportBirds(ctx)
	default:
		res, err = services.Import.ImportOnline(ctx, model.OnlineImportRequest{Source: opts.Source, MaxAircraft: &opts.Max})
	}
	if err != nil {
		return err
	}
	if res.Output != "" {
		if err = writef(cmdCtx.Out, "%s\n", strings.TrimRight(res.Output, "\n")); err != nil {
			return err
		}
	}
	return writef(cmdCtx.Out, "imported %d records (run %s)\n", res.Count, res.RunID)
}

func runImportRuns(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("import-runs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	limit := fs.Int("limit", 20, "Number of runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, closeAll, err := connectServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeAll()

	runs, err := services.Import.ListRuns(cmdCtx.Ctx, *limit)
	if err != nil {
		return err
	}
	return printImportRuns(cmdCtx, runs)
}

func printImportRuns(cmdCtx *commandContext, runs []*model.ImportRun) error {
	if len(runs) == 0 {
		return writeln(cmdCtx.Out, "(no import runs)")
	}
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tSOURCE\tSTATUS\tREQUESTED\tIMPORTED\tSTARTED\n"); err != nil {
		return err
	}
	for _, r := range runs {
		if err := writef(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Source, r.Status, r.Requested, r.Imported, r.StartedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runCheckDuplicates(cmdCtx *commandContext, _ []string) error {
	services, closeAll, err := connectServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeAll()

	groups, err := services.Import.Duplicates(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printDuplicates(cmdCtx, groups)
}

func printDuplicates(cmdCtx *commandContext, groups []catalog.DuplicateGroup) error {
	if len(groups) == 0 {
		return writeln(cmdCtx.Out, "no duplicates found")
	}
	for _, g := range groups {
		ids := make([]string, len(g.IDs))
		for i, id := range g.IDs {
			ids[i] = fmt.Sprint(id)
		}
		if err := writef(cmdCtx.Out, "%-24s %-40s ids: %s\n", g.Kind, g.Key, strings.Join(ids, ", ")); err != nil {
			return err
		}
	}
	return writef(cmdCtx.Out, "\n%d duplicate groups\n", len(groups))
}

func runUpdateRanges(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("update-ranges", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	file := fs.String("file", "aircraft_ranges.txt", "File with one 'name: range km' per line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open ranges: %w", err)
	}
	defer f.Close()

	updates, bad, err := catalog.ParseRangeUpdates(f)
	if err != nil {
		return fmt.Errorf("read ranges: %w", err)
	}
	for _, e := range bad {
		cmdCtx.Logger.Warn("skipping range line", "error", e)
	}

	services, closeAll, err := connectServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeAll()

	report, err := services.Import.ApplyRanges(cmdCtx.Ctx, updates)
	if err != nil {
		return err
	}
	for _, name := range report.Missing {
		if err = writef(cmdCtx.Out, "not found: %s\n", name); err != nil {
			return err
		}
	}
	return writef(cmdCtx.Out, "updated %d aircraft, %d not found\n", len(report.Updated), len(report.Missing))
}

func runEstimateAltitudes(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("estimate-altitudes", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dryRun := fs.Bool("dry-run", false, "Print the estimates without saving them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, closeAll, err := connectServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeAll()

	changes, err := services.Import.EstimateAltitudes(cmdCtx.Ctx, *dryRun)
	if err != nil {
		return err
	}
	for _, c := range changes {
		if err = writef(cmdCtx.Out, "%-40s %8.0f m\n", c.Name, c.Altitude); err != nil {
			return err
		}
	}
	verb := "updated"
	if *dryRun {
		verb = "would update"
	}
	return writef(cmdCtx.Out, "%s %d aircraft\n", verb, len(changes))
}
