// Package registry provides the settings registry for backchannel sessions.
//
// The registry owns a closed table of declared setting descriptors and the
// current buffer of every written setting. Names in the HTTP_ namespace are
// dynamic: their descriptor is synthesized on demand and they become request
// headers.
package registry

import (
	"regexp"
	"strings"

	"github.com/dshills/backchannel/internal/config/buffer"
)

// Magic markers recognized by Set.
const (
	// DefaultMarker resets a setting to its computed default.
	DefaultMarker = "%%DEFAULT%%"

	// NoneMarker removes a dynamic header.
	NoneMarker = "None"
)

var namePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]+$`)

// NormalizeName maps user input to a setting name: dashes become
// underscores and letters are upper-cased.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// ValidName reports whether name is a well formed setting name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Descriptor declares a setting.
type Descriptor struct {
	// Name is the setting name (e.g., "REQ_INTERVAL").
	Name string

	// Kind is the buffer variant holding the value.
	Kind buffer.Kind

	// Validator checks every candidate line.
	Validator buffer.Validator

	// Default computes the value written by %%DEFAULT%%.
	Default func() string

	// Doc is the human-readable description.
	Doc string

	// Fallback is served when a bound source is unreachable on first bind.
	Fallback string

	// FileExt names the file type used when the value is opened in an
	// editor. Empty means "txt".
	FileExt string
}

// check reports the first schema problem of d.
func (d *Descriptor) check() error {
	switch {
	case d.Name == "":
		return &SchemaError{Message: "missing name"}
	case !ValidName(d.Name):
		return &SchemaError{Name: d.Name, Message: "name must match " + namePattern.String()}
	case !d.Kind.Valid():
		return &SchemaError{Name: d.Name, Message: "unknown buffer kind"}
	case d.Validator == nil:
		return &SchemaError{Name: d.Name, Message: "missing validator"}
	case d.Default == nil:
		return &SchemaError{Name: d.Name, Message: "missing default factory"}
	case strings.TrimSpace(d.Doc) == "":
		return &SchemaError{Name: d.Name, Message: "missing docstring"}
	}
	return nil
}

// Table is the immutable set of declared descriptors.
type Table struct {
	byName map[string]*Descriptor
	order  []string
}

// NewTable builds a table from descs. A duplicate name or an incomplete
// descriptor fails the whole table.
func NewTable(descs []Descriptor) (*Table, error) {
	t := &Table{
		byName: make(map[string]*Descriptor, len(descs)),
		order:  make([]string, 0, len(descs)),
	}

	for i := range descs {
		d := descs[i] // Copy to heap
		if err := d.check(); err != nil {
			return nil, err
		}
		if _, exists := t.byName[d.Name]; exists {
			return nil, &SchemaError{Name: d.Name, Message: "declared twice"}
		}
		t.byName[d.Name] = &d
		t.order = append(t.order, d.Name)
	}

	return t, nil
}

// Lookup returns the descriptor for an exact name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	d, ok := t.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Names returns declared names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of declared settings.
func (t *Table) Len() int {
	return len(t.order)
}
