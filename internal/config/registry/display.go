package registry

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dshills/backchannel/internal/config/buffer"
)

// Display renders the settings whose name starts with prefix as a table.
// Random line buffers with several choices are summarized instead of
// materialized.
func (r *Registry) Display(prefix string) string {
	names := r.Filter(prefix)
	if len(names) == 0 {
		return fmt.Sprintf("No setting matching %q\n", NormalizeName(prefix))
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Variable", "Value", "State"})

	for _, name := range names {
		r.mu.RLock()
		e := r.entries[name]
		r.mu.RUnlock()
		if e == nil {
			continue
		}
		if e.buf == nil {
			tw.AppendRow(table.Row{name, e.removed, "removed"})
			continue
		}
		tw.AppendRow(table.Row{name, displayValue(e.buf), e.buf.State().String()})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 60},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render() + "\n"
}

func displayValue(b buffer.Buffer) string {
	switch v := b.(type) {
	case *buffer.LiteralBuffer:
		if v.State() != buffer.StateLiteral {
			return v.Raw()
		}
		return v.Render()
	case *buffer.RandomLineBuffer:
		if v.State() != buffer.StateLiteral {
			return v.Raw()
		}
		choices := v.Choices()
		if len(choices) > 1 {
			return fmt.Sprintf("<%d choices>", len(choices))
		}
		return v.Render()
	}
	return b.Raw()
}
