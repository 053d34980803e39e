package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitscribe.dev/gitscribe/internal/apply"
	"gitscribe.dev/gitscribe/internal/config"
	"gitscribe.dev/gitscribe/internal/providers"
)

const version = "0.3.0"

// Exit codes. Violations covers lint failures and partially applied plans;
// both leave the repository in a state the user should look at.
const (
	ExitSuccess      = 0
	ExitViolations   = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "gitscribe",
	Short: "AI-assisted git commit automation",
	Long:  "Gitscribe turns pending changes into Conventional Commits, rewrites unpushed history, and lints commit subjects using LLM providers.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(amendCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail reports err on stderr and maps it to an exit code.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	switch {
	case providers.IsAuthError(err), config.IsCredentialError(err):
		exitCode = ExitAuthError
	case apply.IsPartialError(err):
		exitCode = ExitViolations
	default:
		exitCode = ExitRuntimeError
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gitscribe version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "gitscribe version %s\n", version)
	},
}
