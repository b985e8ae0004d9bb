package main

import (
	"errors"

	"github.com/spf13/cobra"

	log "github.com/cmlang/cml/internal/logging"
	"github.com/cmlang/cml/pkg/loader"
	"github.com/cmlang/cml/pkg/model"
	"github.com/cmlang/cml/pkg/modelerrors"
)

func registerValidateCmd(rootCmd *cobra.Command) {
	validateCmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "validate a set of model documents",
		Long:  "validate a set of YAML model documents as one universe of types, resolving imports across all given files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manager, err := loader.LoadFromFiles(cmd.Context(), args)
	if err != nil {
		event := log.Error().Err(err)
		if serr, ok := modelerrors.AsWithSourceError(err); ok {
			event = event.Str("path", serr.Source)
		}
		var imErr model.IllegalModelError
		if errors.As(err, &imErr) {
			event = event.Str("code", string(imErr.Code()))
		}
		event.Msg("model set is invalid")
		return err
	}

	declarations := manager.AllDeclarations()
	for _, decl := range declarations {
		log.Debug().Str("class", decl.String()).Msg("validated class")
	}
	log.Info().
		Int("files", len(args)).
		Int("classes", len(declarations)).
		Msg("model set is valid")
	return nil
}
