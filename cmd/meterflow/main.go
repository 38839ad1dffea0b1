package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"meterflow/internal/config"
	"meterflow/internal/database"
	"meterflow/internal/database/migration"
	"meterflow/internal/repository/postgres"
	"meterflow/internal/service"
	"meterflow/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:           "meterflow",
		Short:         "D0010 meter reading flow file tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newImportCmd(), newClearCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the config, opens the database, ensures the schema, and
// builds the optional archive client. The caller closes the db.
func setup(ctx context.Context) (*sql.DB, storage.Archive, zerolog.Logger, error) {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, nil, logger, fmt.Errorf("connect to database: %w", err)
	}

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		db.Close()
		return nil, nil, logger, err
	}

	var archive storage.Archive
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinIOArchive(cfg.Archive)
		if err != nil {
			db.Close()
			return nil, nil, logger, fmt.Errorf("initialize flow file archive: %w", err)
		}
	}

	return db, archive, logger, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	// Result lines go to stdout; logs stay on stderr
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

type importOptions struct {
	dir    string
	dryRun bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import D0010 flow files into the reading store",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Directory to scan for *.uff flow files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and validate without persisting")

	return cmd
}

func runImport(ctx context.Context, opts importOptions, args []string) error {
	paths := append([]string(nil), args...)
	if opts.dir != "" {
		found, err := collectFlowFiles(opts.dir)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no flow files given: pass file paths or --dir")
	}

	db, archive, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewImportService(postgres.NewImportStorePostgres(db), archive, nil, logger)

	results := svc.ImportFiles(ctx, paths, opts.dryRun)

	total := 0
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", res.Path, res.Err)
			continue
		}
		if opts.dryRun {
			total += res.Result.ParsedCount
			fmt.Printf("✓ %s: %d readings parsed\n", res.Path, res.Result.ParsedCount)
			continue
		}
		total += res.Result.ImportedCount
		fmt.Printf("✓ %s: %d readings imported\n", res.Path, res.Result.ImportedCount)
	}

	if opts.dryRun {
		fmt.Printf("Dry run completed. Total readings: %d\n", total)
	} else {
		fmt.Printf("Import completed. Total readings: %d\n", total)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// collectFlowFiles lists *.uff files in dir, in name order.
func collectFlowFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read flow file directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".uff") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every imported reading, meter, meter point, and flow file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear imported data without --yes")
			}
			return runClear(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all imported data")

	return cmd
}

func runClear(ctx context.Context) error {
	db, archive, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := service.MeterDataRepos{
		FlowFiles:   postgres.NewFlowFilePostgres(db),
		MeterPoints: postgres.NewMeterPointPostgres(db),
		Meters:      postgres.NewMeterPostgres(db),
		Readings:    postgres.NewReadingPostgres(db),
		Maintenance: postgres.NewMaintenancePostgres(db),
	}
	svc := service.NewMeterDataService(repos, archive, logger)

	counts, err := svc.ClearData(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Cleared %d readings, %d meters, %d meter points, %d flow files.\n",
		counts.Readings, counts.Meters, counts.MeterPoints, counts.FlowFiles)
	return nil
}
