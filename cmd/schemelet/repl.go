package main

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/corvid-lang/schemelet"
	"github.com/corvid-lang/schemelet/ascii"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive schemelet session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	rl, err := readline.New(ascii.Color(ascii.DefaultTheme.Accent, "schemelet> "))
	if err != nil {
		return err
	}
	defer rl.Close()

	ctx := schemelet.NewContext()
	replFile := ctx.SymCase("<repl>")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		result, err := ctx.ExecuteString(line, replFile)
		if err != nil {
			fmt.Println(ascii.Color(ascii.DefaultTheme.Error, "%s", err))
			continue
		}
		fmt.Println(writeString(result))
	}
}
