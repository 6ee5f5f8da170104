package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/config"
	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
	"github.com/ev-siting/internal/ingest"
	"github.com/ev-siting/internal/pkg/logger"
	"github.com/ev-siting/internal/repository/postgres"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/solver"
)

// env - конфигурация, логгер и подключение к основной базе
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *postgres.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Level, "sitectl")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := postgres.New(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		e.log.Error("Failed to close PostgreSQL connection", zap.Error(err))
	}
	_ = e.log.Sync()
}

func (e *env) stationRepo() repository.StationRepository {
	return postgres.NewStationRepository(e.db, postgres.StationDefaults{
		Cost:     e.cfg.Catalog.DefaultCost,
		Coverage: e.cfg.Catalog.DefaultCoverage,
	})
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create catalog tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.db.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func stationsCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "stations [registry.csv]",
		Short: "Replace the station catalog with a Ladesäulenregister CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			defaults := ingest.Defaults{
				Cost:     e.cfg.Catalog.DefaultCost,
				Coverage: e.cfg.Catalog.DefaultCoverage,
				City:     city,
			}
			return importStations(cmd.Context(), f, defaults, e.stationRepo(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&city, "city", "Berlin", "keep only rows with this Ort (empty - all rows)")
	return cmd
}

func districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts [districts.csv]",
		Short: "Replace district boundaries with a Gemeinde_name/geometry CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			return importDistricts(cmd.Context(), f, postgres.NewDistrictRepository(e.db), cmd.OutOrStdout())
		},
	}
}

func optimizeCmd() *cobra.Command {
	var (
		minStations int
		minCoverage float64
		backend     string
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run site selection once against the stored catalog and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			optCfg := e.cfg.Optimizer
			if backend != "" {
				optCfg.Solver = backend
			}
			s, err := solver.New(optCfg)
			if err != nil {
				return err
			}

			params := domain.SelectionParams{MinStations: optCfg.MinStations, MinCoverage: optCfg.MinCoverage}
			if cmd.Flags().Changed("min-stations") {
				params.MinStations = minStations
			}
			if cmd.Flags().Changed("min-coverage") {
				params.MinCoverage = minCoverage
			}

			optimizer := siting.NewOptimizer(s, optCfg.Timeout)
			return runOptimize(cmd.Context(), e.stationRepo(), optimizer, params, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&minStations, "min-stations", 0, "minimum number of selected stations (default OPTIMIZER_MIN_STATIONS)")
	cmd.Flags().Float64Var(&minCoverage, "min-coverage", 0, "minimum total coverage (default OPTIMIZER_MIN_COVERAGE)")
	cmd.Flags().StringVar(&backend, "solver", "", "solver backend: branchbound or glpk (default OPTIMIZER_SOLVER)")
	return cmd
}

func importStations(ctx context.Context, r io.Reader, defaults ingest.Defaults, repo repository.StationRepository, out io.Writer) error {
	stations, report, err := ingest.ParseRegistry(r, defaults)
	if err != nil {
		return fmt.Errorf("parse registry: %w", err)
	}
	if err := siting.ValidateStations(stations); err != nil {
		return err
	}
	if err := repo.ReplaceAll(ctx, stations); err != nil {
		return err
	}
	stored, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, struct {
		ingest.Report
		Stored int `json:"stored"`
	}{report, stored})
}

func importDistricts(ctx context.Context, r io.Reader, repo repository.DistrictRepository, out io.Writer) error {
	records, err := ingest.ParseDistricts(r)
	if err != nil {
		return fmt.Errorf("parse districts: %w", err)
	}
	// Проверяем, что строки собираются в округа так же, как при загрузке каталога
	districts, err := siting.BuildDistricts(records)
	if err != nil {
		return err
	}
	if err := repo.ReplaceAll(ctx, records); err != nil {
		return err
	}
	return writeJSON(out, map[string]int{"rows": len(records), "districts": len(districts)})
}

func runOptimize(ctx context.Context, repo repository.StationRepository, optimizer *siting.Optimizer, params domain.SelectionParams, out io.Writer) error {
	stations, _, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	result, err := optimizer.Optimize(ctx, stations, params)
	if err != nil {
		return err
	}
	return writeJSON(out, result)
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
