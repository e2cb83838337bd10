package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alex-galey/pages-janitor/internal/cleanup"
	"github.com/alex-galey/pages-janitor/pkg/config"
	"github.com/alex-galey/pages-janitor/pkg/fxapp"
	"go.uber.org/fx"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Handle version flag before Fx starts
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("pages-janitor version %s (built on %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	os.Exit(run(context.Background(), os.Stderr))
}

// run executes one cleanup and returns the process exit code.
func run(ctx context.Context, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		var missing *config.MissingVariablesError
		if errors.As(err, &missing) {
			fmt.Fprintf(stderr, "Missing variables: %s\n", strings.Join(missing.Variables, ", "))
		} else {
			fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		}
		return 1
	}

	var cleaner *cleanup.Cleaner
	app := fxapp.New(cfg, fx.Populate(&cleaner))
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer func() { _ = app.Stop(ctx) }()

	if _, err := cleaner.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
