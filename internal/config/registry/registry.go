package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/backchannel/internal/config/buffer"
	"github.com/dshills/backchannel/internal/config/notify"
)

// UserAgentsFile is the name of the shipped user agent list.
const UserAgentsFile = "user_agents.lst"

// Logger receives registry diagnostics.
type Logger interface {
	Debugf(msg string, args ...any)
	Warnf(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// entry is the stored state of one setting. Exactly one of buf and removed
// is meaningful: removed holds the sentinel of a removed header.
type entry struct {
	buf     buffer.Buffer
	removed string
	doc     string
}

func (e *entry) raw() string {
	if e.buf == nil {
		return e.removed
	}
	return e.buf.Raw()
}

// Registry maintains the descriptor table and the current value of every
// written setting.
//
// A Registry is owned by one session. Writes are serialized; renders may run
// from several goroutines.
type Registry struct {
	mu      sync.RWMutex
	table   *Table
	entries map[string]*entry

	descs      []Descriptor
	fs         buffer.FileSystem
	intn       func(n int) int
	getenv     func(string) string
	userAgents string
	log        Logger
	notifier   *notify.Notifier
}

// Option configures a Registry.
type Option func(*Registry)

// WithDescriptors replaces the built-in descriptor table.
func WithDescriptors(descs []Descriptor) Option {
	return func(r *Registry) {
		r.descs = descs
	}
}

// WithFileSystem sets the file system used to read bound files.
func WithFileSystem(fsys buffer.FileSystem) Option {
	return func(r *Registry) {
		if fsys != nil {
			r.fs = fsys
		}
	}
}

// WithRandom sets the line picker of random line buffers.
func WithRandom(intn func(n int) int) Option {
	return func(r *Registry) {
		r.intn = intn
	}
}

// WithGetenv sets the environment lookup used by default factories.
func WithGetenv(getenv func(string) string) Option {
	return func(r *Registry) {
		if getenv != nil {
			r.getenv = getenv
		}
	}
}

// WithDataDir sets the directory holding the shipped user agent list.
func WithDataDir(dir string) Option {
	return func(r *Registry) {
		r.userAgents = buffer.AddressPrefix + filepath.Join(dir, UserAgentsFile)
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithNotifier publishes every successful write to n.
func WithNotifier(n *notify.Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// New builds the descriptor table and writes every declared default, then
// the user agent default. A malformed table fails construction.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		entries:    make(map[string]*entry),
		fs:         buffer.OSFS{},
		getenv:     os.Getenv,
		userAgents: buffer.AddressPrefix + filepath.Join("data", UserAgentsFile),
		log:        nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.descs == nil {
		r.descs = Declared(r.getenv)
	}

	table, err := NewTable(r.descs)
	if err != nil {
		return nil, err
	}
	r.table = table
	r.descs = nil

	for _, name := range table.Names() {
		if err := r.Set(name, DefaultMarker); err != nil {
			return nil, fmt.Errorf("default value: %w", err)
		}
	}
	if err := r.Set(UserAgent, DefaultMarker); err != nil {
		return nil, fmt.Errorf("default value: %w", err)
	}

	return r, nil
}

// Table returns the declared descriptor table.
func (r *Registry) Table() *Table {
	return r.table
}

// Set writes raw to the named setting. The name is normalized first.
//
// For a dynamic header other than HTTP_USER_AGENT, "", "None" and
// "%%DEFAULT%%" (case-insensitive) mark the header as removed. Otherwise
// "%%DEFAULT%%" is replaced by the descriptor default and a file:// value
// binds the setting to that file.
//
// On error the previous value is left intact.
func (r *Registry) Set(name, raw string) error {
	name = NormalizeName(name)
	if !ValidName(name) {
		return &NameError{Name: name}
	}

	if IsHeader(name) && name != UserAgent && isRemoval(raw) {
		r.install(name, &entry{removed: raw, doc: RenderDoc(r.headerDescriptor(name))}, notify.ChangeRemove)
		return nil
	}

	desc, ok := r.descriptor(name)
	if !ok {
		return &NameError{Name: name, Unknown: true}
	}

	buf, err := r.build(desc, raw)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	r.install(name, &entry{buf: buf, doc: RenderDoc(desc)}, notify.ChangeSet)
	return nil
}

// Reset restores the default value of a setting.
func (r *Registry) Reset(name string) error {
	return r.Set(name, DefaultMarker)
}

// Append adds line to the current buffer of the setting, in place. A file
// address rebinds the buffer; "%%DEFAULT%%" rebinds it to its default
// source. Unset settings behave as Set.
func (r *Registry) Append(name, line string) error {
	name = NormalizeName(name)
	if !ValidName(name) {
		return &NameError{Name: name}
	}

	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok || e.buf == nil {
		r.mu.Unlock()
		return r.Set(name, line)
	}

	old := e.buf.Raw()
	var err error
	if line == DefaultMarker {
		err = r.rebindDefault(name, e.buf)
	} else {
		err = e.buf.Append(line)
	}
	r.mu.Unlock()

	if err != nil {
		return fmt.Errorf("append %s: %w", name, err)
	}
	r.publish(notify.Change{Name: name, Type: notify.ChangeAppend, OldValue: old, NewValue: e.buf.Raw()})
	return nil
}

// rebindDefault rebinds buf to the default source of name. Defaults that
// are not file addresses are appended as a line.
func (r *Registry) rebindDefault(name string, buf buffer.Buffer) error {
	desc, ok := r.descriptor(name)
	if !ok {
		return &NameError{Name: name, Unknown: true}
	}
	def := desc.Default()
	src, ok := buffer.ParseSource(def)
	if !ok {
		return buf.Append(def)
	}
	src.Fallback = desc.Fallback
	return buf.Bind(src)
}

// Get returns the buffer of a setting.
func (r *Registry) Get(name string) (buffer.Buffer, error) {
	name = NormalizeName(name)
	if !ValidName(name) {
		return nil, &NameError{Name: name}
	}

	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %s", ErrNotSet, name)
	case e.buf == nil:
		return nil, fmt.Errorf("%w: %s was removed", ErrNotSet, name)
	}
	return e.buf, nil
}

// Value renders the current value of a setting.
func (r *Registry) Value(name string) (string, error) {
	buf, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return buf.Render(), nil
}

// IsRemoved reports whether a dynamic header was marked for removal.
func (r *Registry) IsRemoved(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[NormalizeName(name)]
	return ok && e.buf == nil
}

// State reports the binding state of a setting.
func (r *Registry) State(name string) buffer.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[NormalizeName(name)]
	if !ok || e.buf == nil {
		return buffer.StateUnset
	}
	return e.buf.State()
}

// Keys returns all written setting names, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for name := range r.entries {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Filter returns the written names starting with prefix (case-insensitive).
func (r *Registry) Filter(prefix string) []string {
	prefix = NormalizeName(prefix)
	var out []string
	for _, name := range r.Keys() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// Doc returns the rendered documentation of a setting, written or not.
func (r *Registry) Doc(name string) (string, error) {
	name = NormalizeName(name)
	if !ValidName(name) {
		return "", &NameError{Name: name}
	}

	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if ok {
		return e.doc, nil
	}

	desc, ok := r.descriptor(name)
	if !ok {
		return "", &NameError{Name: name, Unknown: true}
	}
	return RenderDoc(desc), nil
}

// Snapshot returns the raw value of every setting: literals, bind addresses
// and removal sentinels. Random picks are never materialized.
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.entries))
	for name, e := range r.entries {
		out[name] = e.raw()
	}
	return out
}

// Restore writes every value of a snapshot. Each key is applied on its
// own; failures are joined and the remaining keys are still written.
func (r *Registry) Restore(values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := r.Set(name, values[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// descriptor resolves the declared or dynamic descriptor of name.
func (r *Registry) descriptor(name string) (Descriptor, bool) {
	if IsHeader(name) {
		return r.headerDescriptor(name), true
	}
	return r.table.Lookup(name)
}

// build constructs the buffer for a write. Construction validates.
func (r *Registry) build(desc Descriptor, raw string) (buffer.Buffer, error) {
	if raw == DefaultMarker {
		raw = desc.Default()
	}

	opts := []buffer.Option{
		buffer.WithFileSystem(r.fs),
		buffer.WithRandom(r.intn),
	}

	src, ok := buffer.ParseSource(raw)
	if !ok {
		return buffer.New(desc.Kind, raw, desc.Validator, opts...)
	}

	src.Fallback = desc.Fallback
	buf, err := buffer.NewBound(desc.Kind, src, desc.Validator, opts...)
	if err != nil {
		return nil, err
	}
	if buf.State() == buffer.StateStale {
		r.log.Warnf("%s: cannot read %s, using built-in value", desc.Name, src.Address())
	}
	return buf, nil
}

// install replaces the entry of name and publishes the change.
func (r *Registry) install(name string, e *entry, typ notify.ChangeType) {
	r.mu.Lock()
	var old string
	if prev, ok := r.entries[name]; ok {
		old = prev.raw()
	}
	r.entries[name] = e
	r.mu.Unlock()

	r.log.Debugf("%s %s = %q", typ, name, e.raw())
	r.publish(notify.Change{Name: name, Type: typ, OldValue: old, NewValue: e.raw()})
}

func (r *Registry) publish(change notify.Change) {
	if r.notifier != nil {
		r.notifier.Notify(change)
	}
}
