// Command cli provides operational tooling: migrations, demo seeding, and
// password digest generation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"finledger/internal/app"
	"finledger/internal/auth"
	"finledger/internal/config"
	"finledger/internal/db"
)

func main() {
	root := &cobra.Command{
		Use:           "finledger",
		Short:         "Personal finance API operational tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), seedCmd(), hashPasswordCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	return config.LoadFromEnv()
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writeDB, err := db.Open(cfg.DBPath, "write", 1)
			if err != nil {
				return err
			}
			defer writeDB.Close() //nolint:errcheck

			if err := db.RunMigrations(writeDB); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo dataset (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writeDB, readDB, err := db.OpenPair(cfg.DBPath, 2)
			if err != nil {
				return err
			}
			defer writeDB.Close() //nolint:errcheck
			defer readDB.Close()  //nolint:errcheck

			if err := db.RunMigrations(writeDB); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			a := app.New(cfg, writeDB, readDB, logger)
			return a.Seed(context.Background())
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from the terminal and print its argon2id digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(os.Stderr, "Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			digest, err := auth.NewArgon2Hasher().Hash(string(raw))
			if err != nil {
				return err
			}
			fmt.Println(digest)
			return nil
		},
	}
}
