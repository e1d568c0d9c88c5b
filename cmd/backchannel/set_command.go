package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/backchannel/internal/shell"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [NAME [+] [VALUE...]]",
		Short: "View and edit session settings",
		Long: `View and edit session settings.

  set                       display every setting
  set PREFIX                display settings whose name starts with PREFIX
  set NAME VALUE            assign VALUE to NAME (only if valid)
  set NAME %%DEFAULT%%      restore the default value of NAME
  set NAME file:///path     bind NAME to the content of a local file
  set NAME +                edit the value of NAME in EDITOR
  set NAME + LINE           add LINE to the value of NAME
  set NAME + file:///path   rebind NAME, keeping its value while the file
                            is unreachable

Settings starting with HTTP_ are sent as HTTP request headers.
Assign the 'None' magic string to remove one:

  set HTTP_ACCEPT_LANGUAGE en-CA
  set HTTP_ACCEPT_LANGUAGE None`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.registry(cmd.Context())
			if err != nil {
				return err
			}

			editor := commandEditor{
				Command: func() (string, error) { return reg.Value("EDITOR") },
			}
			if err := shell.Set(reg, args, editor, cmd.OutOrStdout()); err != nil {
				return err
			}
			return ctx.save()
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset NAME...",
		Short: "Restore the default value of settings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.registry(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := reg.Reset(name); err != nil {
					return err
				}
			}
			return ctx.save()
		},
	}
}
