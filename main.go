package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"varstats/adapters/db/postgres"
	"varstats/adapters/excel"
	"varstats/app"
	"varstats/internal"
	"varstats/internal/config"
	"varstats/internal/errors"
	"varstats/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "varstats",
		Short: "Ad-hoc statistical analysis over tabular data",
		Long: `varstats runs variance tests and embedding analyses over rows
fetched from a read-only data source (PostgreSQL via DATABASE_URL, or
an Excel/CSV file via DATA_FILE).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newAnovaCmd(),
		newTukeyCmd(),
		newVarianceReportCmd(),
		newEmbeddingMapCmd(),
		newCentroidCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnovaCmd() *cobra.Command {
	var minSampleSize int

	cmd := &cobra.Command{
		Use:   "anova [table-or-query]",
		Short: "One-way ANOVA over (category, value) rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := service.Anova(cmd.Context(), asQuery(cfg, args[0]), minSampleSize)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().IntVar(&minSampleSize, "min-sample-size", 0, "Exclude categories with this many samples or fewer")
	return cmd
}

func newTukeyCmd() *cobra.Command {
	var minSampleSize int

	cmd := &cobra.Command{
		Use:   "tukey [table-or-query]",
		Short: "Tukey HSD post-hoc comparisons (rejecting pairs only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			comparisons, err := service.TukeyHSD(cmd.Context(), asQuery(cfg, args[0]), minSampleSize)
			if err != nil {
				return err
			}
			return printJSON(comparisons)
		},
	}

	cmd.Flags().IntVar(&minSampleSize, "min-sample-size", 0, "Exclude categories with this many samples or fewer")
	return cmd
}

func newVarianceReportCmd() *cobra.Command {
	var minSampleSize int

	cmd := &cobra.Command{
		Use:   "variance-report [table-or-query]",
		Short: "ANOVA and Tukey HSD over one fetched dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := service.VarianceReport(cmd.Context(), asQuery(cfg, args[0]), minSampleSize)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}

	cmd.Flags().IntVar(&minSampleSize, "min-sample-size", 0, "Exclude categories with this many samples or fewer")
	return cmd
}

func newEmbeddingMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embedding-map [query]",
		Short: "Project (id, embedding) rows to 2-D and cluster by density",
		Long: fmt.Sprintf(`Projects embedding vectors to 2-D coordinates and labels dense
regions as clusters (-1 = noise). Keep queries under ~%d rows; the
projection cost grows super-linearly with the record count.`, app.EmbeddingRecordGuideline),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := service.EmbeddingMap(cmd.Context(), asQuery(cfg, args[0]))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func newCentroidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "centroid [query]",
		Short: "Coordinate-wise mean of single-column embedding rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			centroid, err := service.Centroid(cmd.Context(), asQuery(cfg, args[0]))
			if err != nil {
				return err
			}
			return printJSON(centroid)
		},
	}
}

// buildService loads configuration and wires the query executor the
// environment selects. The cleanup func releases the data source.
func buildService() (*app.AnalysisService, *config.Config, func(), error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := internal.NewDefaultLogger()

	var queries ports.QueryExecutor
	cleanup := func() {}

	if cfg.UsesDatabase() {
		db, err := sqlx.Connect("postgres", cfg.ConnectionURL())
		if err != nil {
			return nil, nil, nil, errors.DatabaseError("failed to connect to database", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, nil, errors.DatabaseError("failed to ping database", err)
		}
		queries = postgres.NewQueryExecutorAdapter(db)
		cleanup = func() { db.Close() }
		logger.With("main").Info("using PostgreSQL data source")
	} else {
		queries = excel.NewQueryExecutorAdapter(cfg.Data.File, cfg.Data.Sheet)
		logger.With("main").Info("using file data source: %s", cfg.Data.File)
	}

	return app.NewAnalysisService(queries, logger), cfg, cleanup, nil
}

// asQuery accepts either a full SQL query or a bare table name, which
// expands to a full-table select. For file sources the argument is
// already a sheet name and passes through untouched.
func asQuery(cfg *config.Config, arg string) string {
	trimmed := strings.TrimSpace(arg)
	if !cfg.UsesDatabase() || strings.ContainsAny(trimmed, " \t\n") {
		return trimmed
	}
	return fmt.Sprintf("SELECT * FROM %s;", trimmed)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(out))
	return err
}
