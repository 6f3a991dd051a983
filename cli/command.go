package cli

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/config"
	"github.com/grovetools/autosync/logging"
)

// CommandOptions holds flag values shared by every autosync command.
type CommandOptions struct {
	Dir        string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command with the standard autosync flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("dir", "C", ".", "Repository directory to operate on")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger creates a logger based on command flags.
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logging.NewLogger("cli").Logger

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts the standard flag values from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	dir, _ := cmd.Flags().GetString("dir")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		Dir:        dir,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// ResolveDir turns the --dir flag value into an absolute repository path.
// A relative value is resolved against the working directory, and a
// directory inside a repository resolves to the directory itself, not the
// repository root, so nested setups keep their own autosync.yml.
func ResolveDir(opts CommandOptions) (string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// FindConfigDir walks upward from dir looking for an autosync.yml. When none
// is found it returns dir unchanged, since every command can run on defaults.
func FindConfigDir(dir string) string {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, config.DefaultFileName)); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
