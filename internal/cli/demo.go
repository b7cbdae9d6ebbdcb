package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"memfs/internal/fs"
	"memfs/internal/shell"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in demonstration script",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	engine := fs.NewEngine(cfg.RootName)
	sh := shell.New(engine, nil, out, shell.Options{
		Prompt: cfg.Prompt,
		Color:  shell.ColorEnabled(cfg.Color, out),
	})
	sh.RunScript(shell.Demo)

	if err := engine.Check(); err != nil {
		return fmt.Errorf("filesystem inconsistent after demo: %w", err)
	}
	return nil
}
