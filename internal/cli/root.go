// Package cli is the presentation layer: cobra commands and pterm
// rendering over the project engine. No versioning semantics live here.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keshon/fvc/internal/config"
	"github.com/keshon/fvc/internal/logging"
	"github.com/keshon/fvc/internal/project"
)

// RootDependencies carries everything a subcommand needs, resolved once
// per invocation from flags and the config file.
type RootDependencies struct {
	Config  config.Config
	Logger  *zap.Logger
	Manager *project.Manager

	cleanup func()
}

var rootCmd = &cobra.Command{
	Use:   "fvc",
	Short: "File version control for small, human-curated file sets",
	Long: `fvc tracks versions of a handful of files as full copies. Each version
is a complete snapshot directory; the latest one doubles as the working
directory. Content changes are detected by hash, inspected as line
diffs, and searched across all stored versions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to an fvc config file (YAML)")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "directory projects live in (overrides config)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "project name inside the workspace")
}

// Execute runs the CLI. Errors are rendered once, here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// handleRootCommand resolves config, logging and the project manager
// for a subcommand. The returned cleanup flushes the log file.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	workspace, _ := cmd.Flags().GetString("workspace")

	var cfg config.Config
	var err error
	if cfgPath != "" {
		cfg, err = config.LoadFrom(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if workspace != "" {
		cfg.Workspace = workspace
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		logger = zap.NewNop()
		cleanup = func() {}
	}

	return &RootDependencies{
		Config:  cfg,
		Logger:  logger,
		Manager: project.NewManager(cfg.Workspace, logger),
		cleanup: cleanup,
	}, nil
}

// Close flushes the log file.
func (d *RootDependencies) Close() {
	if d.cleanup != nil {
		d.cleanup()
	}
}

// openProject loads the project named by -p, or falls back to the
// current directory when it holds a project document.
func openProject(cmd *cobra.Command, deps *RootDependencies) (*project.Project, error) {
	name, _ := cmd.Flags().GetString("project")
	if name != "" {
		return deps.Manager.LoadProjectByName(name)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	metadata := filepath.Join(cwd, config.MetadataFile)
	if _, err := os.Stat(metadata); err != nil {
		return nil, fmt.Errorf("no project here: pass --project <name> or run inside a project directory")
	}
	return deps.Manager.LoadProject(metadata)
}
