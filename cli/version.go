package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo holds build-time version information.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// SetVersionTemplate wires the --version flag with a multi-line template.
func SetVersionTemplate(cmd *cobra.Command, info VersionInfo) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(fmt.Sprintf(`{{.Name}} {{.Version}}
  Commit:    %s
  Built:     %s
`, info.Commit, info.BuildDate))
}
