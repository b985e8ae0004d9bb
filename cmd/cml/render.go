package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmlang/cml/pkg/generator"
	"github.com/cmlang/cml/pkg/loader"
)

func registerRenderCmd(rootCmd *cobra.Command) {
	renderCmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "render model documents as canonical source text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRender,
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	manager, err := loader.LoadFromFiles(cmd.Context(), args)
	if err != nil {
		return err
	}

	for i, file := range manager.ModelFiles() {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprint(cmd.OutOrStdout(), generator.GenerateModelFileSource(file))
	}
	return nil
}
