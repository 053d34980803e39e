package cli

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestAmendUnpushed_MergeWindowAbortsBeforeRequest(t *testing.T) {
	initRepo(t)
	writeFile(t, "a.txt", "one\n")
	commitAll(t, "base")
	git(t, "checkout", "-q", "-b", "feature")
	writeFile(t, "b.txt", "two\n")
	commitAll(t, "feature work")
	git(t, "checkout", "-q", "main")
	writeFile(t, "c.txt", "three\n")
	commitAll(t, "main work")
	git(t, "merge", "-q", "--no-ff", "--no-edit", "feature")

	requests := startPlanServer(t, "[]")

	exitCode = ExitSuccess
	defer func() { exitCode = ExitSuccess }()
	resetFlags()
	amendCmd.SetContext(context.Background())
	if err := amendCmd.RunE(amendCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}

	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("model received %d request(s) for a window containing a merge", n)
	}
	if exitCode != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", exitCode, ExitRuntimeError)
	}
}
