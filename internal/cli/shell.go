package cli

import (
	"os"

	"github.com/spf13/cobra"

	"memfs/internal/fs"
	"memfs/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell. Commands are read one per line; type help
for the list and exit to leave. The prompt is shown only when reading from a
terminal, so scripts can be piped in.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = shell.IsTerminal(f)
	}

	sh := shell.New(fs.NewEngine(cfg.RootName), in, out, shell.Options{
		Prompt:     cfg.Prompt,
		Color:      shell.ColorEnabled(cfg.Color, out),
		ShowPrompt: interactive,
	})
	logger.Debug("Starting shell (interactive=%v)", interactive)
	return sh.Run(cmd.Context())
}
