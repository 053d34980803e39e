package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gitscribe.dev/gitscribe/internal/config"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/lint"
	"gitscribe.dev/gitscribe/internal/ui"
)

var lintCmd = &cobra.Command{
	Use:   "lint [count]",
	Short: "Check recent commit subjects against the convention",
	Long: "Lint checks the subjects of unpushed commits (or, without an upstream, the last [count] commits) " +
		"against the configured Conventional Commits rules. Exits 1 when any subject violates them.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := 10
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("count must be a positive integer, got %q", args[0])
			}
			count = n
		}

		cfg, err := config.Load(nil)
		if err != nil {
			fail(err)
			return nil
		}

		desc, subjects, err := gitio.SubjectsSincePush(count)
		if err != nil {
			fail(err)
			return nil
		}
		if len(subjects) == 0 {
			fmt.Fprintln(os.Stdout, "No commits to lint.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "Linting %s\n\n", desc)
		results, total := lint.CheckSubjects(subjects, cfg.Lint)
		fmt.Fprint(os.Stdout, ui.FormatLintResults(results))

		if total > 0 {
			fmt.Fprintf(os.Stdout, "\n%s\n", ui.Error(fmt.Sprintf("%d violation(s) in %d commit(s)", total, len(subjects))))
			exitCode = ExitViolations
			return nil
		}
		fmt.Fprintf(os.Stdout, "\n%s\n", ui.Success("All subjects pass."))
		return nil
	},
}
