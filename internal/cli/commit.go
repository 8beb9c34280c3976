package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/gitgate/internal/gate"
	"github.com/sprite-ai/gitgate/internal/git"
	"github.com/sprite-ai/gitgate/internal/heal"
	"github.com/sprite-ai/gitgate/internal/model"
	"github.com/sprite-ai/gitgate/internal/pipeline"
	"github.com/sprite-ai/gitgate/internal/tui"
)

var (
	failBannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	okBannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")).Bold(true)
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Gate the pending changes, heal failures, then commit",
	Long: `Run the full pipeline on the working tree: classify the pending
changes, compose a timestamped commit message, run the lint gate and the
build gate with bounded retries, and create the commit once both pass.

Between failed attempts gitgate can apply remediation: the fix variant of
the lint command (--auto-fix), and an external hook named by the
` + heal.HookEnv + ` environment variable, fed the failure output on stdin.

Examples:
  gitgate commit                         # full pipeline, interactive summary
  gitgate commit -m "fix rounding"       # explicit summary
  gitgate commit --skip-build --no-heal  # lint only, fail fast
  gitgate commit --dry-run               # run gates, skip the commit`,
	Args: cobra.NoArgs,
	RunE: runCommit,
}

func init() {
	defaults := model.Defaults()

	commitCmd.Flags().StringP("summary", "m", "", "commit summary (wins over the heuristic one)")
	commitCmd.Flags().Bool("no-heal", false, "fail a gate on its first non-zero exit")
	commitCmd.Flags().Bool("auto-fix", false, "apply the lint fix variant once between retries")
	commitCmd.Flags().Int("lint-attempts", defaults.LintMaxAttempts, "max lint gate attempts")
	commitCmd.Flags().Int("build-attempts", defaults.BuildMaxAttempts, "max build gate attempts")
	commitCmd.Flags().Bool("skip-build", false, "skip the build gate")
	commitCmd.Flags().String("lint", defaults.LintCommand, "lint command")
	commitCmd.Flags().String("build", defaults.BuildCommand, "build command")
	commitCmd.Flags().String("fix", defaults.FixCommand, "lint fix-variant command")
	commitCmd.Flags().Bool("detail", false, "print the full change digest before the gates")
	commitCmd.Flags().Bool("force-branch", false, "allow committing on a protected branch")
	commitCmd.Flags().Bool("non-interactive", false, "never prompt; rely on --summary or the heuristic")
	commitCmd.Flags().Bool("no-auto-summary", false, "disable the heuristic summary")
	commitCmd.Flags().Bool("dry-run", false, "run the gates but create no commit")
}

// resolveConfig reads the flags into the immutable RunConfig snapshot.
func resolveConfig(cmd *cobra.Command) *model.RunConfig {
	cfg := model.Defaults()

	cfg.Summary, _ = cmd.Flags().GetString("summary")
	noHeal, _ := cmd.Flags().GetBool("no-heal")
	cfg.HealEnabled = !noHeal
	cfg.AutoFix, _ = cmd.Flags().GetBool("auto-fix")
	cfg.LintMaxAttempts, _ = cmd.Flags().GetInt("lint-attempts")
	cfg.BuildMaxAttempts, _ = cmd.Flags().GetInt("build-attempts")
	cfg.SkipBuild, _ = cmd.Flags().GetBool("skip-build")
	cfg.LintCommand, _ = cmd.Flags().GetString("lint")
	cfg.BuildCommand, _ = cmd.Flags().GetString("build")
	cfg.FixCommand, _ = cmd.Flags().GetString("fix")
	cfg.Detail, _ = cmd.Flags().GetBool("detail")
	cfg.AllowProtected, _ = cmd.Flags().GetBool("force-branch")
	cfg.NonInteractive, _ = cmd.Flags().GetBool("non-interactive")
	cfg.NoAutoSummary, _ = cmd.Flags().GetBool("no-auto-summary")
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")

	return &cfg
}

func runCommit(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	client, err := git.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, failBannerStyle.Render(err.Error()))
		return err
	}

	healer := heal.New(cfg, heal.HookFromEnv(), os.Stderr)
	executor := gate.New(healer, os.Stderr)
	p := pipeline.New(cfg, client, executor, promptSummary, os.Stderr)

	if err := p.Run(); err != nil {
		return reportFailure(err)
	}

	fmt.Fprintln(os.Stderr, okBannerStyle.Render("all gates passed"))
	return nil
}

func promptSummary(category, prefix, defaultSummary string) (string, error) {
	return tui.PromptSummary(category, prefix, defaultSummary)
}

// reportFailure prints the failure for the operator, naming the stage and
// — for gate failures — the tail of the offending command's output.
func reportFailure(err error) error {
	if errors.Is(err, pipeline.ErrNothingToCommit) {
		fmt.Fprintln(os.Stderr, "Nothing to commit.")
		return nil
	}

	var exhausted *gate.ExhaustedError
	if errors.As(err, &exhausted) {
		fmt.Fprintln(os.Stderr, failBannerStyle.Render(exhausted.Error()))
		for _, line := range outputTail(exhausted.Output, 20) {
			fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
		return err
	}

	fmt.Fprintln(os.Stderr, failBannerStyle.Render(err.Error()))
	return err
}

func outputTail(output string, max int) []string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}
