package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/target/aircraft-catalog/config"
	"github.com/target/aircraft-catalog/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
}

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultCommandTimeout   = 30 * time.Minute
)

func main() {
	logger := bootstrap.InitLogger(false)

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	if cfg.IsDev {
		logger = bootstrap.InitLogger(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	stop()
	if runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations (--status lists pending ones)",
			run:         runMigrations,
		},
		"import": {
			name:        "import",
			description: "Import sample, birds or online data (online: --source --max)",
			run:         runImport,
		},
		"import-runs": {
			name:        "import-runs",
			description: "List recent import runs",
			run:         runImportRuns,
		},
		"process": {
			name:        "process",
			description: "Add derived values to SI-unit JSON documents",
			run:         runProcess,
		},
		"attribution": {
			name:        "attribution",
			description: "Scrape Wikimedia Commons attributions (--file or --url)",
			run:         runAttribution,
		},
		"thumbnails": {
			name:        "thumbnails",
			description: "Add Commons thumbnail URLs to an images CSV",
			run:         runThumbnails,
		},
		"download-images": {
			name:        "download-images",
			description: "Download aircraft images with category fallbacks (--update-db rewrites image_url)",
			run:         runDownloadImages,
		},
		"check-duplicates": {
			name:        "check-duplicates",
			description: "Report records sharing a name or manufacturer and model",
			run:         runCheckDuplicates,
		},
		"update-ranges": {
			name:        "update-ranges",
			description: "Set ranges from a 'name: km' file",
			run:         runUpdateRanges,
		},
		"estimate-altitudes": {
			name:        "estimate-altitudes",
			description: "Fill missing cruise altitudes from the classification",
			run:         runEstimateAltitudes,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: aircraft-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := writef(w, "  %-20s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
