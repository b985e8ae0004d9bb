package main

import (
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cmlang/cml/internal/logging"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cml",
		Short:         "A semantic analyzer for class models",
		Long:          "A compiler front end that loads class model documents, resolves inheritance across namespaces and validates the resulting type graph",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrazerolog.New(
				cobrazerolog.WithTarget(func(logger zerolog.Logger) {
					logging.SetGlobalLogger(logger)
				}),
			).RunE(),
		),
	}

	cobrazerolog.New().RegisterFlags(rootCmd.PersistentFlags())
	return rootCmd
}
