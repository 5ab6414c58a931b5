// Package testutil holds assertions shared by framegen tests
package testutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// ExpectNoDiff reports a unified diff when a and b differ
func ExpectNoDiff(t *testing.T, a, b string) {
	t.Helper()
	if diff := Diff(a, b); diff != "" {
		t.Error(diff)
	}
}

// ExpectSameCode compares Go sources line by line, ignoring blank lines
// and runs of horizontal whitespace, so column alignment does not matter
func ExpectSameCode(t *testing.T, want, got string) {
	t.Helper()
	if diff := Diff(NormalizeCode(want), NormalizeCode(got)); diff != "" {
		t.Error(diff)
	}
}

// Diff returns a unified diff of a and b, empty when they are equal
func Diff(a, b string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "want",
		ToFile:   "got",
		Context:  5,
	})
	return diff
}

var spaceRun = regexp.MustCompile(`[ \t]+`)

// NormalizeCode trims every line, collapses inner whitespace and drops
// blank lines
func NormalizeCode(src string) string {
	var b strings.Builder
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
