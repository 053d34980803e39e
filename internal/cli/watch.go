package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gitscribe.dev/gitscribe/internal/apply"
	"gitscribe.dev/gitscribe/internal/config"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/planner"
	"gitscribe.dev/gitscribe/internal/ui"
	"gitscribe.dev/gitscribe/internal/watch"
)

var watchIntervalFlag int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the repository and auto-commit pending changes",
	Long: "Watch checks the repository on a fixed interval. Whenever it finds pending changes it plans and creates commits " +
		"the same way `gitscribe commit` does. Stop with Ctrl-C.",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if watchIntervalFlag > 0 {
			overrides["watchInterval"] = fmt.Sprint(watchIntervalFlag)
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			fail(err)
			return nil
		}

		pl, err := planner.New(cfg)
		if err != nil {
			fail(err)
			return nil
		}

		loop := watch.New(time.Duration(cfg.WatchIntervalSeconds)*time.Second, func(ctx context.Context) error {
			return watchCycle(ctx, pl)
		})
		loop.OnError = func(err error) {
			fmt.Fprintf(os.Stderr, "%s\n", ui.Warn("watch: "+err.Error()))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stdout, "Watching repository every %s; Ctrl-C to stop.\n", loop.Interval())
		if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
			fail(err)
			return nil
		}
		fmt.Fprintln(os.Stdout, "\nWatch stopped.")
		return nil
	},
}

// watchCycle is one poll: collect everything pending, including untracked
// files, and commit it with a fresh plan. An empty repository is a no-op.
func watchCycle(ctx context.Context, pl *planner.Planner) error {
	cs, err := gitio.Collect(gitio.ChangeOptions{Untracked: true})
	if err != nil {
		return err
	}
	if cs.Empty() {
		return nil
	}

	plan, err := pl.CommitPlan(ctx, cs)
	if err != nil {
		return err
	}

	res, err := apply.CommitPlan(plan, false)
	if out := ui.FormatApplyResult(res, false); out != "" {
		fmt.Fprint(os.Stdout, out)
	}
	return err
}

func init() {
	watchCmd.Flags().IntVar(&watchIntervalFlag, "interval", 0, "Polling interval in seconds (default from config, 60)")
	addModelFlags(watchCmd)
}
