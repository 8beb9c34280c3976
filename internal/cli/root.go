// Package cli wires the gitgate command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitgate",
	Short: "Local pre-commit gatekeeper with bounded self-healing",
	Long: `gitgate inspects the pending changes in a git working tree, classifies
them, and only creates a commit once a lint check and a build check both
pass. Failing checks trigger bounded automatic remediation between
retries. gitgate never pushes or touches the network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
