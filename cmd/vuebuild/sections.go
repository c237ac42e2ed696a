package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/sfc"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "List the top-level sections of a component",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}
	fsys := fs.NewOSFileSystem()

	cfg, err := loadConfig(cmd, fsys)
	if err != nil {
		return err
	}
	settings, err := cfg.BuildSettings()
	if err != nil {
		return err
	}
	parserOpts, err := settings.ParserOptions()
	if err != nil {
		return err
	}

	data, err := fsys.ReadFile(args[0])
	if err != nil {
		return err
	}
	desc, err := sfc.Parse(string(data), parserOpts)
	if err != nil {
		return err
	}

	out.PrintHeader(args[0])
	for _, section := range desc.Sections() {
		out.PrintSuccess("%s", describeSection(section))
		if attrs := formatAttrs(section.Attrs); attrs != "" {
			out.PrintFile(out.Gray(attrs))
		}
	}
	if desc.Script == nil {
		out.PrintWarning("no <script> section: this component cannot be built")
	}
	return nil
}

func describeSection(s *core.Section) string {
	name := string(s.Type)
	if s.Type == core.SectionCustom {
		name = "<" + s.Tag + ">"
	}
	lines := strings.Count(s.Content, "\n")
	desc := fmt.Sprintf("%-10s line %d-%d, %d bytes", name, s.Line, s.Line+lines, len(s.Content))
	if s.Lang != "" {
		desc += ", lang " + s.Lang
	}
	if s.Scoped {
		desc += ", scoped"
	}
	return desc
}

func formatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + attrs[k]
	}
	return strings.Join(parts, " ")
}
