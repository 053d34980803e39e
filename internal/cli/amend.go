package cli

import (
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
	amendMaxCount   int
	amendDryRun     bool
	amendAllowDirty bool
)

var amendCmd = &cobra.Command{
	Use:     "amend-unpushed",
	Aliases: []string{"amend_unpushed"},
	Short:   "Rewrite the messages of unpushed commits",
	Long: "Amend-unpushed asks the model for better Conventional Commit messages for every commit that has not been pushed yet, " +
		"then rebuilds the chain with the same trees and the new messages. Pushed history is never touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fail(err)
			return nil
		}

		desc, window, err := gitio.UnpushedCommits(amendMaxCount)
		if err != nil {
			fail(err)
			return nil
		}
		if len(window) == 0 {
			fmt.Fprintln(os.Stdout, "No unpushed commits.")
			return nil
		}
		// Merge commits block the rewrite; refuse before asking the model.
		if err := gitio.EnsureNoMerges(window); err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintf(os.Stdout, "Rewriting %s\n\n", desc)

		pl, err := planner.New(cfg)
		if err != nil {
			fail(err)
			return nil
		}
		amendments, err := withSpinner("Asking "+cfg.Provider+" for better messages", func() ([]planner.Amendment, error) {
			return pl.Amendments(cmd.Context(), window)
		})
		if err != nil {
			fail(err)
			return nil
		}

		fmt.Fprintln(os.Stdout, ui.FormatAmendments(window, amendments))
		if amendDryRun {
			fmt.Fprintln(os.Stdout, ui.Dim("Dry run; history unchanged."))
			return nil
		}

		head, err := apply.Amendments(window, amendments, amendAllowDirty)
		if err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintln(os.Stdout, ui.Success(fmt.Sprintf("Rewrote %d commit messages; HEAD is now %.7s", len(amendments), head)))
		return nil
	},
}

func init() {
	amendCmd.Flags().IntVar(&amendMaxCount, "max-count", 20, "Maximum commits to rewrite when no upstream exists")
	amendCmd.Flags().BoolVar(&amendDryRun, "dry-run", false, "Show the proposed messages without rewriting")
	amendCmd.Flags().BoolVar(&amendAllowDirty, "allow-dirty", false, "Rewrite even with uncommitted changes in the working tree")
	addModelFlags(amendCmd)
}
