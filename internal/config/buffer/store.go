package buffer

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

// checker validates a full line set and returns the accepted lines plus the
// value rendered when no line is selectable.
type checker func(lines []string, validate Validator) ([]string, string, error)

// store holds the line storage and binding metadata shared by all kinds.
type store struct {
	mu sync.Mutex

	check    checker
	validate Validator
	fs       FileSystem
	intn     func(n int) int

	lines []string
	empty string

	// src is the bound source; nil for literal content.
	src   *Source
	state State
}

func (s *store) init(check checker, validate Validator, opts []Option) {
	s.check = check
	s.validate = validate
	if s.validate == nil {
		s.validate = func(v string) (string, error) { return v, nil }
	}
	s.fs = OSFS{}
	s.intn = defaultIntN
	for _, opt := range opts {
		opt(s)
	}
}

// set replaces the content with a literal value.
func (s *store) set(value string) error {
	lines, empty, err := s.check(strings.Split(value, "\n"), s.validate)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines, s.empty = lines, empty
	s.src = nil
	s.state = StateLiteral
	return nil
}

// Bind associates the buffer with src. An unreadable file is not an error
// when the source carries a fallback or the buffer already holds content;
// that content is then served as stale until the file becomes readable.
func (s *store) Bind(src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bindLocked(src)
}

func (s *store) bindLocked(src Source) error {
	lines, empty, err := s.read(src.Path)
	switch {
	case err == nil:
		s.lines, s.empty = lines, empty
		s.state = StateFresh
	case errors.Is(err, ErrInvalidValue):
		return err
	case src.Fallback != "":
		lines, empty, ferr := s.check(splitLines(src.Fallback), s.validate)
		if ferr != nil {
			return ferr
		}
		s.lines, s.empty = lines, empty
		s.state = StateStale
	case s.state != StateUnset:
		s.state = StateStale
	default:
		return err
	}

	bound := src
	s.src = &bound
	return nil
}

// Append adds line to the content. A file address rebinds the buffer
// instead; appending a literal line to a bound buffer unbinds it.
func (s *store) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src, ok := ParseSource(line); ok {
		return s.bindLocked(src)
	}

	var candidate []string
	if len(s.lines) == 1 && s.lines[0] == "" {
		candidate = []string{line}
	} else {
		candidate = append(slices.Clone(s.lines), line)
	}

	lines, empty, err := s.check(candidate, s.validate)
	if err != nil {
		return err
	}
	s.lines, s.empty = lines, empty
	s.src = nil
	s.state = StateLiteral
	return nil
}

// Raw returns the bind address when bound, the joined content otherwise.
func (s *store) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src != nil {
		return s.src.Address()
	}
	return strings.Join(s.lines, "\n")
}

// Lines returns a copy of the stored lines.
func (s *store) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// State reports the binding state.
func (s *store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// refreshLocked re-reads the bound source. One attempt; on failure the last
// good lines stay in place.
func (s *store) refreshLocked() {
	if s.src == nil {
		return
	}
	lines, empty, err := s.read(s.src.Path)
	if err != nil {
		s.state = StateStale
		return
	}
	s.lines, s.empty = lines, empty
	s.state = StateFresh
}

func (s *store) read(path string) ([]string, string, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, "", &BindError{Path: path, Err: err}
	}
	return s.check(splitLines(string(data)), s.validate)
}

// splitLines splits file content, dropping a single trailing newline.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// isChoice reports whether a trimmed line can be picked by a random render.
func isChoice(trimmed string) bool {
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

// checkWhole validates the joined content as a single value.
func checkWhole(lines []string, validate Validator) ([]string, string, error) {
	joined := strings.Join(lines, "\n")
	out, err := validate(joined)
	if err != nil {
		return nil, "", &InvalidValueError{Value: joined, Reason: err}
	}
	return strings.Split(out, "\n"), "", nil
}

// checkLines validates every selectable line on its own. When no line is
// selectable the empty value must itself be accepted.
func checkLines(lines []string, validate Validator) ([]string, string, error) {
	out := make([]string, 0, len(lines))
	choices := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !isChoice(trimmed) {
			out = append(out, line)
			continue
		}
		val, err := validate(trimmed)
		if err != nil {
			return nil, "", &InvalidValueError{Value: trimmed, Reason: err}
		}
		out = append(out, val)
		choices++
	}
	if choices > 0 {
		return out, "", nil
	}

	empty, err := validate("")
	if err != nil {
		return nil, "", &InvalidValueError{Value: "", Reason: err}
	}
	return out, empty, nil
}
