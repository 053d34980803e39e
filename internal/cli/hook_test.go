package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript(10)

	if !strings.Contains(script, hookMarkerStart) {
		t.Error("Script missing start marker")
	}
	if !strings.Contains(script, hookMarkerEnd) {
		t.Error("Script missing end marker")
	}
	if !strings.Contains(script, "gitscribe lint 10") {
		t.Error("Script missing gitscribe lint command")
	}
	if !strings.Contains(script, "GITSCRIBE_EXIT=$?") {
		t.Error("Script missing exit code capture")
	}
	if !strings.Contains(script, "exit 1") {
		t.Error("Script missing exit 1 for violations")
	}
	if !strings.Contains(script, "allowing push") {
		t.Error("Script missing warning for errors")
	}
}

func TestGenerateHookScript_CustomCount(t *testing.T) {
	script := generateHookScript(25)
	if !strings.Contains(script, "gitscribe lint 25") {
		t.Error("Script doesn't use custom count")
	}
}

func TestReplaceHookSection_NoExisting(t *testing.T) {
	existing := "#!/bin/sh\nsome-other-hook\n"
	section := generateHookScript(10)

	result := replaceHookSection(existing, section)

	if !strings.HasPrefix(result, "#!/bin/sh\nsome-other-hook\n") {
		t.Error("Existing content should be preserved")
	}
	if !strings.Contains(result, hookMarkerStart) {
		t.Error("New section should be appended")
	}
}

func TestReplaceHookSection_ExistingSection(t *testing.T) {
	oldSection := generateHookScript(20)
	existing := "#!/bin/sh\nbefore\n" + oldSection + "after\n"
	newSection := generateHookScript(5)

	result := replaceHookSection(existing, newSection)

	if !strings.Contains(result, "before") {
		t.Error("Content before gitscribe section should be preserved")
	}
	if !strings.Contains(result, "after") {
		t.Error("Content after gitscribe section should be preserved")
	}
	if !strings.Contains(result, "gitscribe lint 5") {
		t.Error("New section should have updated count")
	}
	if strings.Contains(result, "gitscribe lint 20") {
		t.Error("Old section should be replaced")
	}
}

func TestRemoveHookSection(t *testing.T) {
	section := generateHookScript(10)
	existing := "#!/bin/sh\nbefore\n" + section + "after\n"

	result := removeHookSection(existing)

	if strings.Contains(result, hookMarkerStart) {
		t.Error("Gitscribe section should be removed")
	}
	if !strings.Contains(result, "before") {
		t.Error("Content before should be preserved")
	}
	if !strings.Contains(result, "after") {
		t.Error("Content after should be preserved")
	}
}

func TestRemoveHookSection_NoSection(t *testing.T) {
	existing := "#!/bin/sh\nsome-hook\n"
	result := removeHookSection(existing)
	if result != existing {
		t.Error("Content without gitscribe section should be unchanged")
	}
}

func TestReplaceHookSection_NoTrailingNewline(t *testing.T) {
	existing := "#!/bin/sh\nsome-hook"
	section := generateHookScript(10)

	result := replaceHookSection(existing, section)

	if !strings.Contains(result, "some-hook") {
		t.Error("Existing content should be preserved")
	}
	if !strings.Contains(result, hookMarkerStart) {
		t.Error("Section should be appended")
	}
}
