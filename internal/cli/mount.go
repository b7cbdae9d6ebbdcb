package cli

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"memfs/internal/fs"
	"memfs/internal/fuseview"
	"memfs/internal/shell"
)

var mountFlags struct {
	seed bool
}

var mountCmd = &cobra.Command{
	Use:   "mount <mountpoint>",
	Short: "Serve a filesystem over FUSE",
	Long: `Mount an empty memfs filesystem at mountpoint and serve it until
interrupted. Directories and empty files can be created and removed with the
usual tools; each file's kind is exposed as the user.memfs.kind attribute.`,
	Args: cobra.ExactArgs(1),
	RunE: runMount,
}

func init() {
	mountCmd.Flags().BoolVar(&mountFlags.seed, "seed", false, "Populate the filesystem with the demo script before mounting")
	rootCmd.AddCommand(mountCmd)
}

func runMount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := fs.NewEngine(cfg.RootName)
	if mountFlags.seed {
		shell.New(engine, nil, io.Discard, shell.Options{}).RunScript(shell.Demo)
		logger.Info("Seeded filesystem with %d top-level entries", len(engine.Entries("/")))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mountPoint := filepath.Clean(args[0])
	logger.Info("Serving %s", mountPoint)
	return fuseview.New(engine).Mount(ctx, mountPoint)
}
