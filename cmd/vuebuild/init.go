package main

import (
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/vuebuild/internal/adapters"
	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a config file and a starter component",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newOutput(cmd)
		if err != nil {
			return err
		}
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		template, _ := cmd.Flags().GetString("template")

		service := usecase.NewInitService(fs.NewOSFileSystem(), out, adapters.NewTemplateSource())
		return service.InitProject(usecase.InitInput{ProjectDir: dir, Template: template}).Error
	},
}

func init() {
	initCmd.Flags().StringP("template", "t", "minimal", "scaffold to use (minimal|yaml)")
}
