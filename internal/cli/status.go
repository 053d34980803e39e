package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending changes and unpushed commits",
	RunE: func(cmd *cobra.Command, args []string) error {
		staged, err := gitio.StagedFiles()
		if err != nil {
			fail(err)
			return nil
		}
		unstaged, err := gitio.UnstagedFiles()
		if err != nil {
			fail(err)
			return nil
		}
		untracked, err := gitio.UntrackedFiles()
		if err != nil {
			fail(err)
			return nil
		}

		printFileSection("Staged changes", staged)
		printFileSection("Unstaged changes", unstaged)
		printFileSection("Untracked files", untracked)

		desc, subjects, err := gitio.SubjectsSincePush(10)
		if err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s\n", ui.Heading(capitalize(desc)+":"))
		if len(subjects) == 0 {
			fmt.Fprintf(os.Stdout, "  %s\n", ui.Dim("none"))
			return nil
		}
		for _, s := range subjects {
			fmt.Fprintf(os.Stdout, "  %s\n", ui.Subject(s))
		}
		return nil
	},
}

func printFileSection(title string, files []string) {
	fmt.Fprintf(os.Stdout, "%s\n", ui.Heading(title+":"))
	if len(files) == 0 {
		fmt.Fprintf(os.Stdout, "  %s\n\n", ui.Dim("none"))
		return
	}
	for _, f := range files {
		fmt.Fprintf(os.Stdout, "  %s\n", f)
	}
	fmt.Fprintln(os.Stdout)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
