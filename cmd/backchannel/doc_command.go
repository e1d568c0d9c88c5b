package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDocCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "doc NAME",
		Aliases: []string{"explain"},
		Short:   "Describe a setting",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.registry(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := reg.Doc(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}
