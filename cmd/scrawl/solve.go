package main

import (
	"os"

	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <image>",
	Short: "Solve a single equation image",
	Long: `Solve processes one image and prints the result as a single
JSON line on stdout:

  {"equation":"(2*(x)+3)","solution":"{-1.5}"}

An unsolvable or malformed equation still produces a result line; the
solution field then carries the failure sentinel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := pipe.Run(args[0])
		if err != nil {
			return err
		}
		return result.WriteLine(os.Stdout)
	},
}
