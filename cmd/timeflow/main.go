// Package main is the entry point for the timeflow CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	// The container is built before cobra parses flags.
	flags := scanGlobalFlags(os.Args[1:])

	opts := app.Options{ConfigPath: flags.configPath}
	if flags.verbose {
		opts.LogMirror = os.Stderr
	}

	container, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if cerr := container.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// globalFlags holds the persistent flags needed before command dispatch.
type globalFlags struct {
	configPath string
	verbose    bool
}

// scanGlobalFlags extracts --config and --verbose from args.
// Scanning stops at "--".
func scanGlobalFlags(args []string) globalFlags {
	var f globalFlags
	configFlag := "--" + cli.FlagConfig
	verboseFlag := "--" + cli.FlagVerbose

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return f
		case arg == configFlag:
			if i+1 < len(args) {
				f.configPath = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, configFlag+"="):
			f.configPath = strings.TrimPrefix(arg, configFlag+"=")
		case arg == verboseFlag, arg == verboseFlag+"=true":
			f.verbose = true
		case arg == verboseFlag+"=false":
			f.verbose = false
		}
	}
	return f
}
