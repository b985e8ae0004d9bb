package main

import (
	"os"

	log "github.com/cmlang/cml/internal/logging"
)

func main() {
	rootCmd := newRootCmd()

	registerValidateCmd(rootCmd)
	registerRenderCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("terminated with errors")
		os.Exit(1)
	}
}
