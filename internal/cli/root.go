// Package cli wires the memfs commands together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"memfs/internal/config"
	"memfs/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("cli")
)

var rootCmd = &cobra.Command{
	Use:   "memfs",
	Short: "In-memory hierarchical filesystem",
	Long: `memfs keeps a directory tree in memory and lets you work on it with
familiar commands: mkdir, touch, ls, cd, pwd, rm and tree.

Without a subcommand memfs starts the interactive shell.

Configuration is read from memfs.yaml in the working directory, from the file
named by $MEMFS_CONFIG, or from --config. A .env file is loaded first.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runShell,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default memfs.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadConfig resolves and reads the configuration for cmd and applies its
// log level. A missing default file means defaults; a missing file that was
// asked for explicitly is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	path, err := config.ResolvePath(explicit)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if explicit != "" {
		cfg, err = config.Load(path)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}

	if err := applyLogLevel(cfg, getVerboseFlag(cmd)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLogLevel(cfg *config.Config, verbose bool) error {
	root := logging.GetLogger()
	switch {
	case verbose:
		root.SetLevel(logging.LevelDebug)
	case cfg.LogLevel != "":
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		root.SetLevel(level)
	}
	logger.Debug("Log level is %s", root.Level())
	return nil
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
