package buffer

import "strings"

// RandomLineBuffer renders one line picked at random among its non-empty,
// non-comment lines. Lines starting with '#' are comments.
type RandomLineBuffer struct {
	store
}

// NewRandomLine creates a RandomLineBuffer from value. Each selectable line
// is validated on its own.
func NewRandomLine(value string, validate Validator, opts ...Option) (*RandomLineBuffer, error) {
	b := &RandomLineBuffer{}
	b.init(checkLines, validate, opts)
	if err := b.set(value); err != nil {
		return nil, err
	}
	return b, nil
}

// Kind returns KindRandomLine.
func (b *RandomLineBuffer) Kind() Kind {
	return KindRandomLine
}

// Render picks a random choice. With no choice left it renders the
// validated empty value.
func (b *RandomLineBuffer) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshLocked()

	choices := b.choicesLocked()
	if len(choices) == 0 {
		return b.empty
	}
	return choices[b.intn(len(choices))]
}

// Choices returns the lines a render can pick from.
func (b *RandomLineBuffer) Choices() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.choicesLocked()
}

func (b *RandomLineBuffer) choicesLocked() []string {
	var choices []string
	for _, line := range b.lines {
		trimmed := strings.TrimSpace(line)
		if isChoice(trimmed) {
			choices = append(choices, trimmed)
		}
	}
	return choices
}

func (*RandomLineBuffer) sealed() {}
