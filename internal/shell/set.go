// Package shell implements the interactive commands acting on session
// settings.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/backchannel/internal/config/registry"
)

// EditMarker opens a setting in the editor, or appends to it when followed
// by a value.
const EditMarker = "+"

// Editor edits a value in an external program.
type Editor interface {
	// Edit lets the user change content. file names the temporary file
	// (e.g., "BACKDOOR.php"). changed is false when the user left the
	// content untouched.
	Edit(file, content string) (edited string, changed bool, err error)
}

// Set runs the set command. argv excludes the command name:
//
//	set                      display every setting
//	set PREFIX               display settings starting with PREFIX
//	set NAME VALUE...        assign the space-joined values
//	set NAME +               edit the value in the editor
//	set NAME + VALUE...      append a line (or rebind to a file:// address)
func Set(reg *registry.Registry, argv []string, ed Editor, out io.Writer) error {
	switch {
	case len(argv) < 2:
		prefix := ""
		if len(argv) == 1 {
			prefix = argv[0]
		}
		_, err := io.WriteString(out, reg.Display(prefix))
		return err

	case argv[1] == EditMarker && len(argv) == 2:
		return edit(reg, argv[0], ed)

	case argv[1] == EditMarker:
		return reg.Append(argv[0], strings.Join(argv[2:], " "))

	default:
		return reg.Set(argv[0], strings.Join(argv[1:], " "))
	}
}

// edit round-trips the raw value of name through ed. Unchanged content is
// not written back.
func edit(reg *registry.Registry, name string, ed Editor) error {
	if ed == nil {
		return errors.New("no editor available")
	}
	name = registry.NormalizeName(name)
	// Unknown names fail here, before the editor is opened.
	if _, err := reg.Doc(name); err != nil {
		return err
	}

	var content string
	buf, err := reg.Get(name)
	switch {
	case err == nil:
		content = buf.Raw()
	case !errors.Is(err, registry.ErrNotSet):
		return err
	}

	edited, changed, err := ed.Edit(editFile(reg, name), content)
	if err != nil {
		return fmt.Errorf("editing %s: %w", name, err)
	}
	if !changed {
		return nil
	}
	return reg.Set(name, strings.TrimSuffix(edited, "\n"))
}

func editFile(reg *registry.Registry, name string) string {
	ext := "txt"
	if d, ok := reg.Table().Lookup(name); ok && d.FileExt != "" {
		ext = d.FileExt
	}
	return name + "." + ext
}
