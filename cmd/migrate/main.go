package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"s7scheduling/database"
	"s7scheduling/logging"
	"s7scheduling/store"
)

var (
	databaseURL string
	fixtureFile string
	timeout     time.Duration
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the stripboard database",
	Long:  `Applies the embedded schema migrations and loads seed fixtures into PostgreSQL.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New("development", level)
		if err != nil {
			return err
		}
		if databaseURL == "" {
			return fmt.Errorf("DATABASE_URL not set")
		}
		return nil
	},
	RunE: runUp,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runUp,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate, then load sample projects, scenes and locations",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func connect(ctx context.Context) (*database.DB, error) {
	db, err := database.Connect(ctx, databaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return db, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return err
	}
	for _, name := range applied {
		logger.Info("Applied migration", zap.String("file", name))
	}
	if len(applied) == 0 {
		fmt.Println("Database is up to date")
		return nil
	}
	fmt.Printf("\nAll migrations completed! (%d applied)\n", len(applied))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixtures, err := loadFixtures()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return err
	}

	n, err := store.Seed(ctx, db, fixtures)
	if err != nil {
		return err
	}
	logger.Info("Seeded fixtures", zap.Int("projects", n), zap.Int("locations", len(fixtures.Locations)))
	fmt.Printf("Seeded %d projects\n", n)
	return nil
}

func loadFixtures() (*store.Fixtures, error) {
	if fixtureFile == "" {
		return store.DefaultFixtures()
	}
	data, err := os.ReadFile(fixtureFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return store.ParseFixtures(data)
}

func main() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL (or set DATABASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	seedCmd.Flags().StringVarP(&fixtureFile, "file", "f", "", "YAML fixture file (default: built-in sample data)")

	rootCmd.AddCommand(upCmd, seedCmd)

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
