package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(10 * time.Millisecond)
		return now
	}
}

func newTestReport(outputDir string) (*BuildReport, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	report := NewBuildReport(NewOutputTo(&stdout, &stderr, false), outputDir)
	report.now = fixedClock()
	report.startTime = report.now()
	return report, &stdout, &stderr
}

func TestBuildReportMinimal(t *testing.T) {
	report, stdout, _ := newTestReport("dist")
	report.SetDocumentCount(1)
	step := report.StartStep("Compiling components")
	report.AddArtifacts(2)
	report.EndStep(step, true, "")
	report.Render()

	want := "  ✓ 1 component found\n" +
		"  ✓ 2 artifacts written\n" +
		"  ✓ Build complete in 30ms\n" +
		"\n  Output: dist\n"
	if got := stdout.String(); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
	if report.HasFailures() {
		t.Error("HasFailures() = true")
	}
}

func TestBuildReportErrors(t *testing.T) {
	report, stdout, stderr := newTestReport("")
	report.SetDocumentCount(2)
	step := report.StartStep("Compiling components")
	report.AddError("a.vue", "Failed with compiler error", []string{"Error compiling template:", "bad", "bad"})
	report.EndStep(step, false, "")
	report.Render()

	if !report.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if !strings.Contains(stdout.String(), "  ✗ Compiling components\n") {
		t.Errorf("stdout missing failed step:\n%s", stdout)
	}
	errOut := stderr.String()
	for _, want := range []string{"Errors (1):", "✗ a.vue", "Failed with compiler error", "• bad (2 occurrences)", "Build failed after"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestDeduplicateStrings(t *testing.T) {
	got := deduplicateStrings([]string{"b", "a", "b", "c"})
	want := []string{"b (2 occurrences)", "a", "c"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("deduplicateStrings() = %v, want %v", got, want)
	}
}

func TestOutputColors(t *testing.T) {
	var stdout bytes.Buffer
	colored := NewOutputTo(&stdout, &stdout, true)
	if got := colored.Green("ok"); !strings.Contains(got, "\x1b[") {
		t.Errorf("Green() = %q, want ANSI escapes", got)
	}

	plain := NewOutputTo(&stdout, &stdout, false)
	if got := plain.Green("ok"); got != "ok" {
		t.Errorf("Green() = %q, want plain text", got)
	}
}
