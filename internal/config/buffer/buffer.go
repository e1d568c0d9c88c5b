// Package buffer provides the value containers backing backchannel settings.
//
// A buffer owns an ordered sequence of text lines, optionally bound to a
// file whose content replaces the stored lines each time the buffer is
// rendered. Two kinds exist:
//
//   - LiteralBuffer renders its full content, line order preserved.
//   - RandomLineBuffer renders one randomly chosen non-empty, non-comment line.
//
// Every accepted line passes through the setting's Validator; construction,
// Append and Bind either fully succeed or leave the buffer untouched.
package buffer

import (
	"errors"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"strings"
)

// AddressPrefix marks a value as a file-binding address.
const AddressPrefix = "file://"

// Validator checks a candidate value and returns its accepted form.
type Validator func(value string) (string, error)

// Buffer is the capability set shared by all buffer kinds.
//
// The set of implementations is closed: LiteralBuffer and RandomLineBuffer.
// Use Kind for exhaustive matching.
type Buffer interface {
	// Kind reports the buffer variant.
	Kind() Kind

	// Render materializes the current value. Bound buffers re-read their
	// source first; render never fails.
	Render() string

	// Append adds a line to the buffer, or rebinds it when line is a
	// file address.
	Append(line string) error

	// Bind associates the buffer content with a file source.
	Bind(src Source) error

	// Raw returns the persistable form of the buffer: the bind address
	// when bound, the literal content otherwise.
	Raw() string

	// Lines returns a copy of the stored lines.
	Lines() []string

	// State reports the binding state of the buffer.
	State() State

	sealed()
}

// Kind identifies a buffer variant.
type Kind uint8

const (
	// KindLiteral renders the whole content.
	KindLiteral Kind = iota + 1
	// KindRandomLine renders one random line.
	KindRandomLine
)

// String returns the buffer type name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "LiteralBuffer"
	case KindRandomLine:
		return "RandomLineBuffer"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known buffer kind.
func (k Kind) Valid() bool {
	return k == KindLiteral || k == KindRandomLine
}

// State is the binding state of a setting value.
type State uint8

const (
	// StateUnset means no value was ever written.
	StateUnset State = iota
	// StateLiteral means the content was written directly.
	StateLiteral
	// StateFresh means the content comes from a readable bound file.
	StateFresh
	// StateStale means the bound file is unreadable and the last good
	// content is served.
	StateStale
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateLiteral:
		return "literal"
	case StateFresh:
		return "file-bound (fresh)"
	case StateStale:
		return "file-bound (stale)"
	default:
		return "unknown"
	}
}

// Source is a file-binding target. Fallback, when not empty, is used as the
// buffer content if the file cannot be read at bind time.
type Source struct {
	Path     string
	Fallback string
}

// Address returns the file:// address of the source.
func (s Source) Address() string {
	return AddressPrefix + s.Path
}

// IsAddress reports whether value is a file-binding address.
func IsAddress(value string) bool {
	return strings.HasPrefix(value, AddressPrefix) && len(value) > len(AddressPrefix)
}

// ParseSource converts a file:// address into a Source.
func ParseSource(value string) (Source, bool) {
	if !IsAddress(value) {
		return Source{}, false
	}
	return Source{Path: strings.TrimPrefix(value, AddressPrefix)}, true
}

// FileSystem reads bound sources.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// MaxBindSize is the largest bound file OSFS will read.
const MaxBindSize = 16 << 20

var (
	errNotRegular = errors.New("not a regular file")
	errTooLarge   = errors.New("file too large")
)

// ReadFile reads the regular file at path, up to MaxBindSize bytes.
// Pipes, devices and sockets are refused before they are opened so a
// bind never waits on a writer.
func (OSFS) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errNotRegular}
	}
	if info.Size() > MaxBindSize {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errTooLarge}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxBindSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBindSize {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errTooLarge}
	}
	return data, nil
}

// MapFS is an in-memory FileSystem keyed by path.
type MapFS map[string]string

// ReadFile returns the content stored for path.
func (m MapFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

// Option configures a buffer.
type Option func(*store)

// WithFileSystem sets the file system used to read bound sources.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithRandom sets the function used to pick a line index in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(s *store) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// New builds a buffer of the given kind from value. A file:// value binds
// the buffer to that file.
func New(kind Kind, value string, validate Validator, opts ...Option) (Buffer, error) {
	if src, ok := ParseSource(value); ok {
		return NewBound(kind, src, validate, opts...)
	}
	var (
		b   Buffer
		err error
	)
	switch kind {
	case KindLiteral:
		b, err = NewLiteral(value, validate, opts...)
	case KindRandomLine:
		b, err = NewRandomLine(value, validate, opts...)
	default:
		return nil, errUnknownKind(kind)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewBound builds a buffer of the given kind bound to src.
func NewBound(kind Kind, src Source, validate Validator, opts ...Option) (Buffer, error) {
	switch kind {
	case KindLiteral:
		b := &LiteralBuffer{}
		b.init(checkWhole, validate, opts)
		if err := b.Bind(src); err != nil {
			return nil, err
		}
		return b, nil
	case KindRandomLine:
		b := &RandomLineBuffer{}
		b.init(checkLines, validate, opts)
		if err := b.Bind(src); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, errUnknownKind(kind)
	}
}

func defaultIntN(n int) int {
	return rand.IntN(n)
}
