package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestCommit_DryRunShowsPlanningDiff(t *testing.T) {
	initRepo(t)
	writeFile(t, "a.go", "package a\n")
	commitAll(t, "seed")
	writeFile(t, "a.go", "package a\n\nvar Greeting = \"hello\"\n")

	requests := startPlanServer(t, `[{"type":"feat","title":"add greeting","files":["a.go"]}]`)

	exitCode = ExitSuccess
	defer func() { exitCode = ExitSuccess }()
	resetFlags()
	defer resetFlags()
	flagDryRun = true

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	commitCmd.SetContext(context.Background())
	runErr := commitCmd.RunE(commitCmd, nil)
	w.Close()
	os.Stdout = oldStdout
	captured, _ := io.ReadAll(r)

	if runErr != nil {
		t.Fatalf("RunE error: %v", runErr)
	}
	if n := atomic.LoadInt32(requests); n != 1 {
		t.Errorf("model received %d request(s), want 1", n)
	}

	out := string(captured)
	if !strings.Contains(out, "Diff used for planning:") {
		t.Errorf("dry run output missing planning diff heading:\n%s", out)
	}
	if !strings.Contains(out, "+var Greeting") {
		t.Errorf("dry run output missing diff content:\n%s", out)
	}
	if !strings.Contains(out, "Would create commit") {
		t.Errorf("dry run output missing preview:\n%s", out)
	}
	if count := git(t, "rev-list", "--count", "HEAD"); count != "1" {
		t.Errorf("dry run created commits: %s", count)
	}
	if exitCode != ExitSuccess {
		t.Errorf("exit code = %d, want %d", exitCode, ExitSuccess)
	}
}

func TestGenerate_CorruptConfigIsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gitscribe"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gitscribe", "config.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)

	exitCode = ExitSuccess
	defer func() { exitCode = ExitSuccess }()
	resetFlags()
	if err := generateCmd.RunE(generateCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if exitCode != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", exitCode, ExitRuntimeError)
	}
}
