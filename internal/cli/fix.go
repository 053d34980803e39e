package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitscribe.dev/gitscribe/internal/apply"
	"gitscribe.dev/gitscribe/internal/config"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/planner"
	"gitscribe.dev/gitscribe/internal/ui"
)

var (
	fixMaxCount int
	fixForce    bool
	fixDryRun   bool
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Rewrite unpushed history into a clean commit series",
	Long: "Fix sends the unpushed commits, diffs included, to the model and applies the rewritten history it proposes: " +
		"squashing, dropping, or renaming commits. The working tree must be clean and the range must contain no merges.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fail(err)
			return nil
		}

		desc, window, err := gitio.CommitsForFix(fixMaxCount, fixForce)
		if err != nil {
			fail(err)
			return nil
		}
		if len(window) == 0 {
			fmt.Fprintln(os.Stderr, "No commits to rewrite.")
			return nil
		}
		// Merge commits block the rewrite; refuse before asking the model.
		shas := make([]gitio.Commit, 0, len(window))
		for _, c := range window {
			shas = append(shas, gitio.Commit{SHA: c.SHA})
		}
		if err := gitio.EnsureNoMerges(shas); err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintf(os.Stderr, "Analyzing %s\n", desc)

		pl, err := planner.New(cfg)
		if err != nil {
			fail(err)
			return nil
		}
		plan, err := withSpinner("Asking "+cfg.Provider+" for a rewrite plan", func() (planner.RewritePlan, error) {
			return pl.RewritePlan(cmd.Context(), window)
		})
		if err != nil {
			fail(err)
			return nil
		}

		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintln(os.Stdout, string(data))
		if ui.Interactive() {
			fmt.Fprintln(os.Stderr, ui.FormatRewritePlan(plan))
		}
		if fixDryRun {
			fmt.Fprintln(os.Stderr, ui.Dim("Dry run; history unchanged."))
			return nil
		}

		head, err := apply.Rewrite(window, plan)
		if err != nil {
			fail(err)
			return nil
		}
		if head == "" {
			fmt.Fprintln(os.Stderr, ui.Success("Dropped the commit window."))
			return nil
		}
		fmt.Fprintln(os.Stderr, ui.Success(fmt.Sprintf("History rewritten; HEAD is now %.7s", head)))
		return nil
	},
}

func init() {
	fixCmd.Flags().IntVar(&fixMaxCount, "max-count", 20, "Maximum commits to analyze when no upstream exists")
	fixCmd.Flags().BoolVar(&fixForce, "force", false, "Analyze the last max-count commits even if some are pushed")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Show the rewrite plan without touching history")
	addModelFlags(fixCmd)
}
