package cli

import (
	"context"
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

// Shared change-selection flags
var (
	flagStaged    bool
	flagUnstaged  bool
	flagUntracked bool
	flagDryRun    bool
	flagProvider  string
	flagModel     string
)

func addChangeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagStaged, "staged", false, "Include only staged changes (index vs HEAD)")
	cmd.Flags().BoolVar(&flagUnstaged, "unstaged", false, "Include only unstaged changes (working tree vs index)")
	cmd.Flags().BoolVar(&flagUntracked, "untracked", false, "Include untracked files")
	addModelFlags(cmd)
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, ollama, lmstudio)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	return m
}

func changeOptions() gitio.ChangeOptions {
	return gitio.ChangeOptions{
		Staged:    flagStaged,
		Unstaged:  flagUnstaged,
		Untracked: flagUntracked,
	}
}

// requestCommitPlan collects the selected changes and asks the model for a
// plan, with a spinner while the call is in flight. A nil plan with a nil
// error means there was nothing to plan. The change set is returned alongside
// the plan so callers can show the diff the plan was built from.
func requestCommitPlan(ctx context.Context, cfg config.Config) (planner.CommitPlan, gitio.ChangeSet, error) {
	cs, err := gitio.Collect(changeOptions())
	if err != nil {
		return nil, gitio.ChangeSet{}, err
	}
	if cs.Empty() {
		return nil, cs, nil
	}

	pl, err := planner.New(cfg)
	if err != nil {
		return nil, cs, err
	}

	plan, err := withSpinner("Asking "+cfg.Provider+" for a commit plan", func() (planner.CommitPlan, error) {
		return pl.CommitPlan(ctx, cs)
	})
	return plan, cs, err
}

// withSpinner runs fn with a terminal spinner when stderr is interactive.
func withSpinner[T any](message string, fn func() (T, error)) (T, error) {
	if !ui.Interactive() {
		return fn()
	}
	s := ui.NewSpinner(os.Stderr, message)
	s.Start()
	defer s.Stop()
	return fn()
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Propose a commit plan without committing",
	Long: "Generate groups the pending changes into logical commits and prints the proposed plan as JSON on stdout. " +
		"Nothing is staged or committed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fail(err)
			return nil
		}

		plan, _, err := requestCommitPlan(cmd.Context(), cfg)
		if err != nil {
			fail(err)
			return nil
		}
		if plan == nil {
			fmt.Fprintln(os.Stderr, "No pending changes.")
			return nil
		}

		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintln(os.Stdout, string(data))
		if ui.Interactive() {
			fmt.Fprintln(os.Stderr, ui.FormatCommitPlan(plan))
		}
		return nil
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Plan and create commits from pending changes",
	Long:  "Commit groups the pending changes into logical commits, then stages and commits each group in order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fail(err)
			return nil
		}

		plan, cs, err := requestCommitPlan(cmd.Context(), cfg)
		if err != nil {
			fail(err)
			return nil
		}
		if plan == nil {
			fmt.Fprintln(os.Stdout, "No pending changes.")
			return nil
		}

		fmt.Fprintln(os.Stdout, ui.FormatCommitPlan(plan))
		if flagDryRun && cs.Diff != "" {
			fmt.Fprintf(os.Stdout, "%s\n%s\n\n", ui.Heading("Diff used for planning:"), cs.Diff)
		}

		res, err := apply.CommitPlan(plan, flagDryRun)
		if out := ui.FormatApplyResult(res, flagDryRun); out != "" {
			fmt.Fprint(os.Stdout, out)
		}
		if err != nil {
			fail(err)
		}
		return nil
	},
}

func init() {
	addChangeFlags(generateCmd)
	addChangeFlags(commitCmd)
	commitCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Show the plan without staging or committing")
}
