package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/vuebuild/internal/adapters/cli"
	"github.com/3-lines-studio/vuebuild/internal/core"
)

type BatchInput struct {
	Documents []Document
	Settings  core.Settings
	Sink      OutputSink
	// Jobs caps concurrent builds; zero means GOMAXPROCS.
	Jobs int
	// OutputDir is only shown in the report.
	OutputDir string
	// ManifestPath is where manifest.json goes; empty skips it.
	ManifestPath string
}

// DocumentOutcome is the result of one document in a batch. Exactly one of
// Result and Err is set.
type DocumentOutcome struct {
	Document string
	Result   *core.BuildResult
	Err      error
}

type BatchOutput struct {
	Success  bool
	Outcomes []DocumentOutcome
	Manifest *core.Manifest
	Error    error
}

// BatchService builds many documents concurrently. One failing document
// never stops the others.
type BatchService struct {
	builder *BuildService
	fs      FileSystem
	cli     CLIOutput
	logger  *slog.Logger
}

func NewBatchService(builder *BuildService, fs FileSystem, cli CLIOutput, logger *slog.Logger) *BatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchService{
		builder: builder,
		fs:      fs,
		cli:     cli,
		logger:  logger,
	}
}

func (s *BatchService) BuildAll(ctx context.Context, input BatchInput) BatchOutput {
	s.cli.PrintHeader("vuebuild")

	if len(input.Documents) == 0 {
		return BatchOutput{
			Success: false,
			Error:   fmt.Errorf("no components found"),
		}
	}

	report := cli.NewBuildReport(s.cli, input.OutputDir)
	report.SetDocumentCount(len(input.Documents))

	stepCompile := report.StartStep("Compiling components")
	outcomes := s.compileAll(ctx, input)

	manifest := core.NewManifest()
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			report.AddError(outcome.Document, errorHeadline(outcome.Err), errorDetails(outcome.Err))
			continue
		}
		manifest.Add(outcome.Result)
		report.AddArtifacts(len(outcome.Result.Artifacts))
	}
	report.EndStep(stepCompile, failed == 0, "")

	if input.ManifestPath != "" {
		stepManifest := report.StartStep("Writing manifest")
		if err := s.writeManifest(input.ManifestPath, manifest); err != nil {
			report.EndStep(stepManifest, false, err.Error())
			report.AddError(input.ManifestPath, "Failed to write manifest", []string{err.Error()})
		} else {
			report.EndStep(stepManifest, true, "")
		}
	}

	report.Render()

	out := BatchOutput{
		Success:  !report.HasFailures(),
		Outcomes: outcomes,
		Manifest: manifest,
	}
	if failed > 0 {
		out.Error = fmt.Errorf("%d of %d components failed to build", failed, len(outcomes))
	} else if !out.Success {
		out.Error = errors.New("build failed")
	}
	return out
}

func (s *BatchService) compileAll(ctx context.Context, input BatchInput) []DocumentOutcome {
	jobs := input.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns its slot
	outcomes := make([]DocumentOutcome, len(input.Documents))

	var g errgroup.Group
	g.SetLimit(min(jobs, len(input.Documents)))

	for i, doc := range input.Documents {
		g.Go(func() error {
			outcomes[i].Document = doc.Name()
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}

			result, err := s.builder.Build(ctx, BuildInput{
				Document: doc,
				Settings: input.Settings,
				Sink:     input.Sink,
			})
			if err != nil {
				s.logger.Debug("component failed", "document", doc.Name(), "kind", core.KindOf(err).String(), "error", err)
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result = result
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *BatchService) writeManifest(path string, manifest *core.Manifest) error {
	data, err := manifest.Marshal()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create manifest dir: %w", err)
		}
	}
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	s.logger.Debug("wrote manifest", "path", path, "documents", len(manifest.Entries))
	return nil
}

func errorHeadline(err error) string {
	if kind := core.KindOf(err); kind != 0 {
		return "Failed with " + kind.String() + " error"
	}
	return "Failed to build"
}

// errorDetails splits multi-line compiler messages into report bullets.
func errorDetails(err error) []string {
	var details []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			details = append(details, line)
		}
	}
	return details
}
