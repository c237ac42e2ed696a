package cli

import (
	"fmt"
	"io"
	"time"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

// ReportOutput is what a BuildReport needs to color and print itself.
type ReportOutput interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Stdout() io.Writer
	Stderr() io.Writer
}

type ReportEntry struct {
	Document string
	Message  string
	Details  []string
}

type BuildReport struct {
	out           ReportOutput
	steps         []*BuildStep
	warnings      []ReportEntry
	errors        []ReportEntry
	startTime     time.Time
	documentCount int
	artifactCount int
	outputDir     string
	hasFailures   bool
	now           func() time.Time
}

func NewBuildReport(out ReportOutput, outputDir string) *BuildReport {
	return &BuildReport{
		out:       out,
		warnings:  make([]ReportEntry, 0),
		errors:    make([]ReportEntry, 0),
		startTime: time.Now(),
		outputDir: outputDir,
		now:       time.Now,
	}
}

func (r *BuildReport) SetDocumentCount(count int) {
	r.documentCount = count
}

func (r *BuildReport) AddArtifacts(count int) {
	r.artifactCount += count
}

func (r *BuildReport) StartStep(name string) *BuildStep {
	step := &BuildStep{
		Name:      name,
		StartTime: r.now(),
	}
	r.steps = append(r.steps, step)
	return step
}

func (r *BuildReport) EndStep(step *BuildStep, success bool, err string) {
	step.EndTime = r.now()
	step.Success = success
	step.Error = err
	if !success {
		r.hasFailures = true
	}
}

func (r *BuildReport) AddWarning(document string, message string, details []string) {
	r.warnings = append(r.warnings, ReportEntry{
		Document: document,
		Message:  message,
		Details:  details,
	})
}

func (r *BuildReport) AddError(document string, message string, details []string) {
	r.errors = append(r.errors, ReportEntry{
		Document: document,
		Message:  message,
		Details:  details,
	})
	r.hasFailures = true
}

func (r *BuildReport) Render() {
	duration := r.now().Sub(r.startTime)

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

func (r *BuildReport) renderMinimal(duration time.Duration) {
	out := r.out.Stdout()
	fmt.Fprintf(out, "  "+r.out.Green("✓ ")+"%s found\n", plural(r.documentCount, "component"))

	var failed []string
	for _, step := range r.steps {
		if !step.Success {
			failed = append(failed, "  "+r.out.Red("✗ ")+step.Name)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintf(out, "  "+r.out.Green("✓ ")+"%s written\n", plural(r.artifactCount, "artifact"))
		fmt.Fprintf(out, "  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Failed steps:")
		for _, line := range failed {
			fmt.Fprintln(out, line)
		}
	}

	if r.outputDir != "" {
		fmt.Fprintf(out, "\n  %s\n", r.out.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	out, errOut := r.out.Stdout(), r.out.Stderr()
	fmt.Fprintf(out, "  %s found\n", plural(r.documentCount, "component"))

	fmt.Fprintln(out)
	for _, step := range r.steps {
		status := r.out.Green("✓")
		if !step.Success {
			status = r.out.Red("✗")
		}
		fmt.Fprintf(out, "  %s %s\n", status, step.Name)
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(errOut)
		fmt.Fprintf(errOut, "  "+r.out.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderEntries(errOut, r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  "+r.out.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderEntries(out, r.warnings)
	}

	fmt.Fprintln(out)
	if len(r.errors) > 0 {
		fmt.Fprintf(errOut, "  %s\n", r.out.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(out, "  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}

	if r.outputDir != "" {
		fmt.Fprintf(out, "\n  %s\n", r.out.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderEntries(w io.Writer, entries []ReportEntry) {
	for _, entry := range entries {
		fmt.Fprintf(w, "  %s %s\n", r.out.Red("✗"), entry.Document)
		fmt.Fprintf(w, "    %s\n", entry.Message)

		for _, detail := range deduplicateStrings(entry.Details) {
			fmt.Fprintf(w, "      • %s\n", detail)
		}
	}
}

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

// deduplicateStrings collapses repeated items, keeping first-seen order.
func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if n := counts[item]; n > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, n))
		} else {
			result = append(result, item)
		}
	}
	return result
}
