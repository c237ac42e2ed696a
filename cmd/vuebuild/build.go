package main

import (
	"fmt"
	"maps"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/vuebuild/internal/adapters/compiler"
	"github.com/3-lines-studio/vuebuild/internal/adapters/config"
	"github.com/3-lines-studio/vuebuild/internal/adapters/disk"
	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

var buildCmd = &cobra.Command{
	Use:   "build [paths...]",
	Short: "Compile components into the output directory",
	Long: `Compile every .vue file named on the command line, or found under the
given directories, into <out>/<name>.js plus one stylesheet per style language.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default \"dist\")")
	buildCmd.Flags().IntP("jobs", "j", 0, "max components built in parallel (0 = GOMAXPROCS)")
	buildCmd.Flags().Bool("no-manifest", false, "do not write manifest.json")
	buildCmd.Flags().Bool("no-validate-extension", false, "accept components without the .vue extension")
	buildCmd.Flags().String("pad", "", "pad section content to keep line numbers (line|space|none)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	fsys := fs.NewOSFileSystem()

	cfg, err := loadConfig(cmd, fsys)
	if err != nil {
		return err
	}
	if err := applyBuildFlags(cmd, cfg); err != nil {
		return err
	}
	settings, err := cfg.BuildSettings()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	docs, err := collectDocuments(fsys, args)
	if err != nil {
		return err
	}

	manifestPath := ""
	if cfg.ManifestEnabled() {
		manifestPath = filepath.Join(cfg.OutDir, config.DefaultManifestName)
	}

	builder := usecase.NewBuildService(
		compiler.SectionParser{},
		compiler.TemplateCompiler{},
		compiler.Transpiler{},
		compiler.StyleCompiler{},
		compiler.ExportRewriter{},
		logger,
	)
	batch := usecase.NewBatchService(builder, fsys, out, logger)

	result := batch.BuildAll(cmd.Context(), usecase.BatchInput{
		Documents:    docs,
		Settings:     settings,
		Sink:         disk.NewOutputDir(fsys, cfg.OutDir),
		Jobs:         cfg.Jobs,
		OutputDir:    cfg.OutDir,
		ManifestPath: manifestPath,
	})
	return result.Error
}

func loadConfig(cmd *cobra.Command, fsys fs.FileSystem) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(fsys, path)
	}
	return config.Resolve(fsys, ".")
}

// applyBuildFlags lets explicitly set flags win over the config file.
func applyBuildFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("out") {
		cfg.OutDir, _ = flags.GetString("out")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if noManifest, _ := flags.GetBool("no-manifest"); noManifest {
		disabled := false
		cfg.Manifest = &disabled
	}

	settings := maps.Clone(cfg.Settings)
	if settings == nil {
		settings = make(map[string]any)
	}
	if noValidate, _ := flags.GetBool("no-validate-extension"); noValidate {
		settings[core.SettingValidateFileExtension] = false
	}
	if flags.Changed("pad") {
		pad, _ := flags.GetString("pad")
		compilerSettings := map[string]any{"pad": "line"}
		if existing, ok := settings[core.SettingCompilerSettings].(map[string]any); ok {
			compilerSettings = maps.Clone(existing)
		}
		switch pad {
		case "line", "space":
			compilerSettings["pad"] = pad
		case "none":
			compilerSettings["pad"] = false
		default:
			return fmt.Errorf("invalid --pad value %q (want line, space or none)", pad)
		}
		settings[core.SettingCompilerSettings] = compilerSettings
	}
	cfg.Settings = settings
	return nil
}

// collectDocuments expands directories into the components under them.
// Files are taken as given, named by their path.
func collectDocuments(fsys fs.FileSystem, paths []string) ([]usecase.Document, error) {
	var docs []usecase.Document
	seen := make(map[string]bool)

	add := func(doc *disk.FileDocument) {
		if seen[doc.SourcePath()] {
			return
		}
		seen[doc.SourcePath()] = true
		docs = append(docs, doc)
	}

	for _, path := range paths {
		if _, err := fsys.ReadDir(path); err != nil {
			if !fsys.FileExists(path) {
				return nil, fmt.Errorf("%s: no such file or directory", path)
			}
			add(disk.NewFileDocument(fsys, core.DocumentName("", filepath.Clean(path)), path))
			continue
		}

		found, err := disk.Discover(fsys, path)
		if err != nil {
			return nil, err
		}
		for _, doc := range found {
			add(doc)
		}
	}
	return docs, nil
}
