// Package main is the relnum demo: a read-only pager that renders
// relative line numbers as end-of-line annotations over a file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/relnum/internal/app"
	"github.com/dshills/relnum/internal/config"
	"github.com/dshills/relnum/internal/script"
	"github.com/dshills/relnum/internal/term"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	var (
		verbose    bool
		configPath string
		scriptPath string
	)

	root := &cobra.Command{
		Use:          "relnum <file>",
		Short:        "View a file with relative line numbers as overlay annotations",
		Version:      version + " (" + commit + ")",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], configPath, scriptPath, verbose)
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	root.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	root.Flags().StringVarP(&scriptPath, "format-script", "f", "", "Lua script defining format(offset)")

	return root.Execute()
}

func run(path, configPath, scriptPath string, verbose bool) error {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	lines, err := readLines(path)
	if err != nil {
		return err
	}

	var opts config.Options
	if configPath != "" {
		opts, err = config.LoadFile(configPath)
		if err != nil {
			return err
		}
	}

	if scriptPath != "" {
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read format script: %w", err)
		}
		formatter, err := script.Compile(string(src))
		if err != nil {
			return err
		}
		defer formatter.Close()
		opts.Format = formatter.Func()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	pager := term.NewPager(screen, filepath.Base(path), filetypeOf(path), lines)

	a := app.New(pager, app.WithLogger(logger))
	if err := a.Setup(opts); err != nil {
		return err
	}

	pager.Bind(a.Bus(), a.Toggle)
	pager.Run()

	logger.Debug("bus stats", "stats", a.Bus().Stats())
	return nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	return lines, nil
}

// filetypeOf derives a filetype string from the file extension, standing
// in for a real editor's filetype detection.
func filetypeOf(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "text"
	}
	return ext
}
