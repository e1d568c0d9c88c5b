package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newHeadersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "headers",
		Short: "Render the HTTP headers sent with the next request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.registry(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), headersTable(reg.Headers()))
			return nil
		},
	}
}

// headersTable lists header fields in name order.
func headersTable(headers map[string]string) string {
	fields := make([]string, 0, len(headers))
	for field := range headers {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, field := range fields {
		tw.AppendRow(table.Row{field, headers[field]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 80},
	})
	return tw.Render()
}
