package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/lt/internal/cli"
	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/config"
	"github.com/alexanderramin/lt/internal/credentials"
	"github.com/alexanderramin/lt/internal/db"
	"github.com/mattn/go-isatty"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("finding working directory: %w", err)
	}
	paths, err := config.ResolvePaths(os.LookupEnv, workDir)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(paths.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	app := &cli.App{
		Paths:    paths,
		Env:      os.LookupEnv,
		DB:       database,
		Keyring:  credentials.NewKeyring(),
		Prompter: cli.HuhPrompter{},
		Trackers: cli.DefaultTrackers,
		Now:      time.Now,
		Version:  version,
	}

	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.UseColors = formatter.ResolveColors(os.LookupEnv,
		isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
