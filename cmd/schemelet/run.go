package main

import (
	"fmt"
	"os"

	"github.com/corvid-lang/schemelet"
	"github.com/corvid-lang/schemelet/ascii"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a schemelet source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("can't read %s: %w", path, err)
			}

			ctx := schemelet.NewContext()
			file := ctx.SymCase(path)

			result, err := ctx.Execute(source, file)
			if err != nil {
				fmt.Fprintln(os.Stderr, ascii.Color(ascii.DefaultTheme.Error, "error: %s", err))
				os.Exit(1)
			}
			if !quiet {
				fmt.Println(writeString(result))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Don't print the final value")
	return cmd
}
