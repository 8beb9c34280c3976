package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/gitgate/internal/classify"
	"github.com/sprite-ai/gitgate/internal/git"
	"github.com/sprite-ai/gitgate/internal/scan"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Classify the pending changes and print the digest (read-only)",
	Long: `Inspect the working tree without running any gate or creating any
commit: print the change category, the bounded per-file digest, and any
sensitive-path warnings.`,
	Args: cobra.NoArgs,
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().Bool("color", false, "syntax-highlight the snippet lines")
}

func runDigest(cmd *cobra.Command, args []string) error {
	client, err := git.Open()
	if err != nil {
		return err
	}

	paths, err := client.ChangedPaths()
	if err != nil {
		return fmt.Errorf("listing changed paths: %w", err)
	}
	if len(paths) == 0 {
		fmt.Println("Nothing to digest.")
		return nil
	}

	category := classify.Classify(paths)
	fmt.Printf("category: %s\n", category)
	fmt.Printf("suggested summary: %s\n\n", classify.Summary(category, paths))

	colorize, _ := cmd.Flags().GetBool("color")
	d := classify.Digest(paths, client)
	fmt.Print(d.Render(colorize))

	if findings := scan.Flag(paths); len(findings) > 0 {
		fmt.Printf("\nwarning: %d path(s) look sensitive:\n", len(findings))
		for _, f := range findings {
			fmt.Printf("  %s (%s)\n", f.Path, f.Category)
		}
	}

	return nil
}
