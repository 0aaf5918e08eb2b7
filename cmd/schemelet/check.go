package main

import (
	"fmt"
	"os"

	"github.com/corvid-lang/schemelet"
	"github.com/corvid-lang/schemelet/ascii"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Read, macro-expand, and compile a source file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("can't read %s: %w", path, err)
			}

			ctx := schemelet.NewContext()
			file := ctx.SymCase(path)

			reader := schemelet.NewReader(ctx, source, file)
			forms, err := reader.ParseSExpList()
			if err != nil {
				sym, param, _ := ctx.GetError()
				fmt.Fprintln(os.Stderr, ascii.Color(ascii.DefaultTheme.Error, "%s: %s @ %s", sym.Name, writeString(param), ctx.PosOf(param)))
				os.Exit(1)
			}

			var body schemelet.Value = ctx.Nil()
			for i := len(forms) - 1; i >= 0; i-- {
				body = ctx.MakePair(forms[i], body)
			}

			expanded, err := ctx.MacroExpand(body)
			if err != nil {
				sym, param, _ := ctx.GetError()
				fmt.Fprintln(os.Stderr, ascii.Color(ascii.DefaultTheme.Error, "%s: %s", sym.Name, writeString(param)))
				os.Exit(1)
			}

			if _, err := ctx.Compile(expanded); err != nil {
				fmt.Fprintln(os.Stderr, ascii.Color(ascii.DefaultTheme.Error, "%s", err))
				os.Exit(1)
			}

			fmt.Println(ascii.Color(ascii.DefaultTheme.Success, "ok"))
			return nil
		},
	}
}
