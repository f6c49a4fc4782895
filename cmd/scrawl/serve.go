package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scrawlmath/scrawl/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve equation solving over stdin/stdout",
	Long: `Serve reads image paths (bare, or JSON objects with a "path"
field) line by line from stdin and writes one JSON result line per
request to stdout. This is the protocol the chat front-end speaks.

Example:
  echo /tmp/equation.jpg | scrawl serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().
			Timestamp().
			Logger()

		srv := server.New(pipe, os.Stdin, os.Stdout, logger)
		return srv.Run(cmd.Context())
	},
}
