package registry

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/backchannel/internal/config/buffer"
)

var highlight = color.New(color.FgCyan, color.Bold).SprintFunc()

// RenderDoc formats the help text of a setting: its description followed by
// a summary of its buffer type.
func RenderDoc(d Descriptor) string {
	var sb strings.Builder
	sb.WriteString("\nDESCRIPTION:\n    ")
	sb.WriteString(indent(d.Doc))
	sb.WriteString("\n\nBUFFER TYPE:\n    ")
	sb.WriteString(d.Kind.String())
	sb.WriteString("\n\n    ")
	sb.WriteString(indent(kindSummary(d.Kind, highlight(d.Name))))
	return sb.String()
}

func kindSummary(k buffer.Kind, name string) string {
	switch k {
	case buffer.KindLiteral:
		return fmt.Sprintf(`%[1]s is a literal buffer: its whole content is
used as value, line breaks included.
Use 'set %[1]s +' to edit it in a text editor.`, name)
	case buffer.KindRandomLine:
		return fmt.Sprintf(`%[1]s is a random line buffer: each time it is
used, one of its non-empty lines is picked at random.
Lines starting with '#' are comments.
Use 'set %[1]s + <LINE>' to add a choice, or
'set %[1]s file:///path/to/file' to read choices from a file.`, name)
	}
	return ""
}

// headerDoc describes a dynamic HTTP header setting.
func headerDoc(name string) string {
	doc := fmt.Sprintf("Define a value for %q HTTP header field.\n", HeaderField(name))
	if name != UserAgent {
		doc += fmt.Sprintf("\nThis setting is dynamic and can be removed\n"+
			"by assigning the 'None' magic string to it:\n> set %s None", name)
	}
	return doc
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n    ")
}
